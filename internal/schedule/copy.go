package schedule

import (
	"gymdesk/gym-app/internal/domain"

	"github.com/google/uuid"
)

// CopySet is the staged selection of target days for a day copy. It is
// toggled while editing but only applied at submit time, so the source
// day can keep changing until the plan is actually built.
type CopySet map[domain.Weekday]bool

// Toggle flips a day's membership. Toggling is idempotent per state:
// selecting a selected day deselects it and vice versa. Invalid days
// are ignored.
func (s CopySet) Toggle(day domain.Weekday) {
	if !day.IsValid() {
		return
	}
	if s[day] {
		delete(s, day)
	} else {
		s[day] = true
	}
}

// Contains reports whether the day is currently selected.
func (s CopySet) Contains(day domain.Weekday) bool {
	return s[day]
}

// Days returns the selected days in calendar order.
func (s CopySet) Days() []domain.Weekday {
	var days []domain.Weekday
	for _, d := range domain.Weekdays {
		if s[d] {
			days = append(days, d)
		}
	}
	return days
}

// CopyTo replaces each target day's card list with a deep copy of the
// source day's cards. Every clone gets a fresh id so later edits on a
// target day can never alias back into the source. The source day
// itself is never a target.
func (w Week) CopyTo(source domain.Weekday, targets CopySet) {
	if !source.IsValid() {
		return
	}
	for _, day := range targets.Days() {
		if day == source {
			continue
		}
		w[day] = cloneCards(w[source])
	}
}

func cloneCards(cards []domain.MealCard) []domain.MealCard {
	clones := make([]domain.MealCard, len(cards))
	for i, c := range cards {
		clone := c
		clone.ID = uuid.NewString()
		clones[i] = clone
	}
	return clones
}
