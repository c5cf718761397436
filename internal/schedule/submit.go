package schedule

import (
	"errors"

	"gymdesk/gym-app/internal/domain"
)

// ErrNoMeals is returned when a built plan would contain no complete
// meal on any day. Such a plan is rejected before any persistence call.
var ErrNoMeals = errors.New("add at least one meal")

// Build produces the wire-ready weekly plan from the draft: it applies
// any staged copy selection, drops cards without an item name, and
// emits exactly 7 day schedules in Monday..Sunday order. The draft
// itself is not mutated unless a copy selection is applied.
func Build(w Week, copySource domain.Weekday, copies CopySet) ([]domain.DaySchedule, error) {
	if len(copies) > 0 {
		w.CopyTo(copySource, copies)
	}

	weekly := make([]domain.DaySchedule, 0, len(domain.Weekdays))
	total := 0
	for _, day := range domain.Weekdays {
		meals := []domain.MealCard{}
		for _, card := range w[day] {
			if card.Complete() {
				meals = append(meals, card)
			}
		}
		total += len(meals)
		weekly = append(weekly, domain.DaySchedule{Day: day, Meals: meals})
	}
	if total == 0 {
		return nil, ErrNoMeals
	}
	return weekly, nil
}

// CountMeals returns the number of complete cards across a weekly plan.
func CountMeals(weekly []domain.DaySchedule) int {
	n := 0
	for _, ds := range weekly {
		for _, card := range ds.Meals {
			if card.Complete() {
				n++
			}
		}
	}
	return n
}
