package domain

import "testing"

func TestParseWeekday(t *testing.T) {
	if len(Weekdays) != 7 {
		t.Fatalf("Weekdays has %d entries", len(Weekdays))
	}
	for _, d := range Weekdays {
		got, ok := ParseWeekday(string(d))
		if !ok || got != d {
			t.Errorf("ParseWeekday(%q) = %q, %v", d, got, ok)
		}
	}
	for _, bad := range []string{"", "monday", "Mon", "Funday"} {
		if _, ok := ParseWeekday(bad); ok {
			t.Errorf("ParseWeekday(%q) accepted an unknown day", bad)
		}
	}
}

func TestParseMealType(t *testing.T) {
	cases := map[string]MealType{
		"Breakfast":      MealBreakfast,
		"Lunch":          MealLunch,
		"Dinner":         MealDinner,
		"Evening Snacks": MealEveningSnack,
		"Snack":          MealEveningSnack, // client shorthand
	}
	for in, want := range cases {
		got, ok := ParseMealType(in)
		if !ok || got != want {
			t.Errorf("ParseMealType(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseMealType("Brunch"); ok {
		t.Error("ParseMealType accepted an unknown slot")
	}
}

func TestMealCardComplete(t *testing.T) {
	card := MealCard{ItemName: ""}
	if card.Complete() {
		t.Error("card with empty item name must not be complete")
	}
	card.ItemName = "Oats"
	if !card.Complete() {
		t.Error("named card should be complete")
	}
}
