package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrivacyMode controls whether a plan is visible to all members or only
// the ones it was assigned to.
type PrivacyMode string

const (
	PrivacyPublic  PrivacyMode = "Public"
	PrivacyPrivate PrivacyMode = "Private"
)

func (p PrivacyMode) IsValid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

// FoodType classifies a meal entry.
type FoodType string

const (
	FoodVeg    FoodType = "VEG"
	FoodNonVeg FoodType = "NON-VEG"
	FoodVegan  FoodType = "VEGAN"
)

func (f FoodType) IsValid() bool {
	return f == FoodVeg || f == FoodNonVeg || f == FoodVegan
}

// MealType names the meal slot within a day.
type MealType string

const (
	MealBreakfast    MealType = "Breakfast"
	MealLunch        MealType = "Lunch"
	MealEveningSnack MealType = "Evening Snacks"
	MealDinner       MealType = "Dinner"
)

// ParseMealType accepts the canonical names plus the shorthand "Snack"
// some clients send for the evening slot.
func ParseMealType(s string) (MealType, bool) {
	switch s {
	case string(MealBreakfast), string(MealLunch), string(MealDinner):
		return MealType(s), true
	case string(MealEveningSnack), "Snack":
		return MealEveningSnack, true
	}
	return "", false
}

// Unit is the serving unit for a meal quantity.
type Unit string

const (
	UnitGlass Unit = "Glass"
	UnitCup   Unit = "Cup"
	UnitPlate Unit = "Plate"
	UnitBowl  Unit = "Bowl"
	UnitPiece Unit = "Piece"
	UnitGram  Unit = "gm"
	UnitMl    Unit = "ml"
	UnitPcs   Unit = "pcs"
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitGlass, UnitCup, UnitPlate, UnitBowl, UnitPiece, UnitGram, UnitMl, UnitPcs:
		return true
	}
	return false
}

// MealCard is a single meal entry within one day of a plan.
// The ID is generated client- or server-side when the card is created and
// is only unique within the plan; the stored document is the source of
// truth after a save. A card with an empty ItemName is an editing draft
// and is filtered out before the plan is persisted.
type MealCard struct {
	ID          string   `bson:"id" json:"id"`
	FoodType    FoodType `bson:"foodType" json:"foodType"`
	MealType    MealType `bson:"mealType" json:"mealType"`
	Quantity    string   `bson:"quantity" json:"quantity"`
	Unit        Unit     `bson:"unit" json:"unit"`
	Timing      string   `bson:"timing" json:"timing"` // "HH:MM", 24h
	ItemName    string   `bson:"itemName" json:"itemName"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
}

// Complete reports whether the card is ready to be persisted.
func (c MealCard) Complete() bool {
	return c.ItemName != ""
}

// DaySchedule is the ordered meal list for one weekday. Order reflects
// the order cards were added and only matters for display.
type DaySchedule struct {
	Day   Weekday    `bson:"day" json:"day"`
	Meals []MealCard `bson:"meals" json:"meals"`
}

// DietPlan is the full weekly diet document. WeeklyPlan always holds
// exactly 7 entries, one per weekday in calendar order, even for days
// with no meals. Updates replace the whole document; there is no
// per-meal patch path.
type DietPlan struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	TrainerID       primitive.ObjectID   `bson:"trainerId" json:"trainerId"`
	Name            string               `bson:"name" json:"name"`
	PrivacyMode     PrivacyMode          `bson:"privacyMode" json:"privacyMode"`
	WeeklyPlan      []DaySchedule        `bson:"weeklyPlan" json:"weeklyPlan"`
	AssignedMembers []primitive.ObjectID `bson:"assignedMembers,omitempty" json:"assignedMembers,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsAssigned reports whether the member is already on the plan.
func (p *DietPlan) IsAssigned(memberID primitive.ObjectID) bool {
	for _, id := range p.AssignedMembers {
		if id == memberID {
			return true
		}
	}
	return false
}
