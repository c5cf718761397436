// Package schedule holds the in-memory weekly diet draft: a 7-day card
// store with day-scoped edits, staged day copying, and the submit-time
// transform that turns a draft into a persistable weekly plan.
package schedule

import (
	"gymdesk/gym-app/internal/domain"

	"github.com/google/uuid"
)

// Defaults for a freshly added card.
const (
	defaultQuantity = "1"
	defaultTiming   = "08:00"
)

// Week maps every weekday to its ordered meal card list. A Week always
// carries all 7 days; days without meals hold an empty slice. Construct
// one with NewWeek so the invariant holds even for sparse source data.
type Week map[domain.Weekday][]domain.MealCard

// NewWeek builds a Week from a (possibly partial) weekly plan. Every
// weekday is seeded empty first and then overlaid with matching source
// days, so missing or out-of-order days in the source cannot break the
// 7-day shape. Days with unknown names are ignored.
func NewWeek(source []domain.DaySchedule) Week {
	w := make(Week, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		w[d] = []domain.MealCard{}
	}
	for _, ds := range source {
		if !ds.Day.IsValid() {
			continue
		}
		cards := make([]domain.MealCard, len(ds.Meals))
		copy(cards, ds.Meals)
		w[ds.Day] = cards
	}
	return w
}

// Day returns the card list for a weekday. It never fails; an invalid
// day yields nil, a valid empty day yields an empty slice.
func (w Week) Day(day domain.Weekday) []domain.MealCard {
	return w[day]
}

// SetDay replaces a weekday's card list wholesale. Unknown days are
// rejected so a typo cannot create an eighth bucket.
func (w Week) SetDay(day domain.Weekday, cards []domain.MealCard) {
	if !day.IsValid() {
		return
	}
	if cards == nil {
		cards = []domain.MealCard{}
	}
	w[day] = cards
}

// NewCard returns a card with editor defaults and a fresh id. The item
// name starts empty; until it is filled in the card is a draft and will
// not survive submission.
func NewCard() domain.MealCard {
	return domain.MealCard{
		ID:       uuid.NewString(),
		FoodType: domain.FoodVeg,
		MealType: domain.MealBreakfast,
		Quantity: defaultQuantity,
		Unit:     domain.UnitGlass,
		Timing:   defaultTiming,
	}
}

// AddCard appends a new default card to the day and returns it.
// There is no upper bound on cards per day.
func (w Week) AddCard(day domain.Weekday) domain.MealCard {
	if !day.IsValid() {
		return domain.MealCard{}
	}
	card := NewCard()
	w[day] = append(w[day], card)
	return card
}

// CardPatch carries the fields of a card edit. Nil fields are left
// untouched. Using an explicit struct instead of a field-name map means
// a misspelled field cannot silently create dead state.
type CardPatch struct {
	FoodType    *domain.FoodType
	MealType    *domain.MealType
	Quantity    *string
	Unit        *domain.Unit
	Timing      *string
	ItemName    *string
	Description *string
}

// UpdateCard applies a patch to the card with the given id within one
// day. A missing card id is a no-op; it reports whether a card matched.
func (w Week) UpdateCard(day domain.Weekday, cardID string, patch CardPatch) bool {
	cards := w[day]
	for i := range cards {
		if cards[i].ID != cardID {
			continue
		}
		if patch.FoodType != nil {
			cards[i].FoodType = *patch.FoodType
		}
		if patch.MealType != nil {
			cards[i].MealType = *patch.MealType
		}
		if patch.Quantity != nil {
			cards[i].Quantity = *patch.Quantity
		}
		if patch.Unit != nil {
			cards[i].Unit = *patch.Unit
		}
		if patch.Timing != nil {
			cards[i].Timing = *patch.Timing
		}
		if patch.ItemName != nil {
			cards[i].ItemName = *patch.ItemName
		}
		if patch.Description != nil {
			cards[i].Description = *patch.Description
		}
		return true
	}
	return false
}

// DeleteCard removes the card with the given id from the day. Removing
// the last card leaves the day empty, which is a valid rest day.
func (w Week) DeleteCard(day domain.Weekday, cardID string) bool {
	cards := w[day]
	for i := range cards {
		if cards[i].ID == cardID {
			w[day] = append(cards[:i:i], cards[i+1:]...)
			return true
		}
	}
	return false
}
