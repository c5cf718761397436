package schedule

import (
	"testing"

	"gymdesk/gym-app/internal/domain"
)

func namedCard(item string) domain.MealCard {
	card := NewCard()
	card.ItemName = item
	return card
}

func TestNewWeekSevenDayCompleteness(t *testing.T) {
	t.Run("EmptySource", func(t *testing.T) {
		w := NewWeek(nil)
		if len(w) != 7 {
			t.Fatalf("expected 7 days, got %d", len(w))
		}
		for _, d := range domain.Weekdays {
			cards, ok := w[d]
			if !ok {
				t.Errorf("day %s missing", d)
			}
			if len(cards) != 0 {
				t.Errorf("day %s expected empty, got %d cards", d, len(cards))
			}
		}
	})

	t.Run("SparseSource", func(t *testing.T) {
		source := []domain.DaySchedule{
			{Day: domain.Wednesday, Meals: []domain.MealCard{namedCard("Oats")}},
		}
		w := NewWeek(source)
		if len(w) != 7 {
			t.Fatalf("expected 7 days, got %d", len(w))
		}
		if len(w.Day(domain.Wednesday)) != 1 {
			t.Errorf("Wednesday should hold the source card")
		}
		if len(w.Day(domain.Monday)) != 0 {
			t.Errorf("Monday should be empty")
		}
	})

	t.Run("UnknownDayIgnored", func(t *testing.T) {
		source := []domain.DaySchedule{
			{Day: "Funday", Meals: []domain.MealCard{namedCard("Pizza")}},
		}
		w := NewWeek(source)
		if len(w) != 7 {
			t.Fatalf("unknown day created an extra bucket: %d days", len(w))
		}
	})
}

func TestNewCardDefaults(t *testing.T) {
	card := NewCard()
	if card.ID == "" {
		t.Error("card should get a generated id")
	}
	if card.FoodType != domain.FoodVeg {
		t.Errorf("default food type = %s, want VEG", card.FoodType)
	}
	if card.MealType != domain.MealBreakfast {
		t.Errorf("default meal type = %s, want Breakfast", card.MealType)
	}
	if card.Quantity != "1" || card.Unit != domain.UnitGlass || card.Timing != "08:00" {
		t.Errorf("unexpected defaults: %+v", card)
	}
	if card.Complete() {
		t.Error("fresh card has no item name and must not count as complete")
	}

	other := NewCard()
	if other.ID == card.ID {
		t.Error("two fresh cards share an id")
	}
}

func TestAddUpdateDeleteCard(t *testing.T) {
	w := NewWeek(nil)

	card := w.AddCard(domain.Monday)
	if len(w.Day(domain.Monday)) != 1 {
		t.Fatalf("expected 1 card after add, got %d", len(w.Day(domain.Monday)))
	}

	t.Run("UpdateExisting", func(t *testing.T) {
		item := "Oats"
		if !w.UpdateCard(domain.Monday, card.ID, CardPatch{ItemName: &item}) {
			t.Fatal("update reported no match for existing card")
		}
		if got := w.Day(domain.Monday)[0].ItemName; got != "Oats" {
			t.Errorf("itemName = %q, want Oats", got)
		}
	})

	t.Run("UpdateMissingIsNoop", func(t *testing.T) {
		item := "Ghost"
		if w.UpdateCard(domain.Monday, "no-such-id", CardPatch{ItemName: &item}) {
			t.Error("update matched a nonexistent card")
		}
		if got := w.Day(domain.Monday)[0].ItemName; got != "Oats" {
			t.Errorf("state changed on missing id: %q", got)
		}
	})

	t.Run("NilPatchFieldsUntouched", func(t *testing.T) {
		qty := "2"
		w.UpdateCard(domain.Monday, card.ID, CardPatch{Quantity: &qty})
		got := w.Day(domain.Monday)[0]
		if got.Quantity != "2" || got.ItemName != "Oats" || got.Unit != domain.UnitGlass {
			t.Errorf("patch touched unrelated fields: %+v", got)
		}
	})

	t.Run("DeleteLastCardLeavesRestDay", func(t *testing.T) {
		if !w.DeleteCard(domain.Monday, card.ID) {
			t.Fatal("delete reported no match")
		}
		if len(w.Day(domain.Monday)) != 0 {
			t.Errorf("expected empty day after deleting the only card")
		}
		if w.DeleteCard(domain.Monday, card.ID) {
			t.Error("second delete matched an already removed card")
		}
	})
}

func TestCopySetToggle(t *testing.T) {
	s := CopySet{}
	s.Toggle(domain.Tuesday)
	s.Toggle(domain.Thursday)
	if !s.Contains(domain.Tuesday) || !s.Contains(domain.Thursday) {
		t.Fatal("toggled days not selected")
	}
	s.Toggle(domain.Tuesday)
	if s.Contains(domain.Tuesday) {
		t.Error("second toggle should deselect")
	}
	s.Toggle("Caturday")
	if len(s) != 1 {
		t.Errorf("invalid day changed the selection: %v", s)
	}
}

func TestCopyToProducesIndependentClones(t *testing.T) {
	w := NewWeek(nil)
	w.SetDay(domain.Monday, []domain.MealCard{namedCard("Oats"), namedCard("Eggs")})

	copies := CopySet{}
	copies.Toggle(domain.Tuesday)
	copies.Toggle(domain.Monday) // source must never be a target
	w.CopyTo(domain.Monday, copies)

	mon, tue := w.Day(domain.Monday), w.Day(domain.Tuesday)
	if len(tue) != len(mon) {
		t.Fatalf("Tuesday has %d cards, want %d", len(tue), len(mon))
	}
	for i := range mon {
		if tue[i].ItemName != mon[i].ItemName || tue[i].MealType != mon[i].MealType {
			t.Errorf("clone %d content differs from source", i)
		}
		if tue[i].ID == mon[i].ID {
			t.Errorf("clone %d shares id %s with source", i, tue[i].ID)
		}
	}

	// Editing a clone must not reach back into the source.
	item := "Paneer"
	w.UpdateCard(domain.Tuesday, tue[0].ID, CardPatch{ItemName: &item})
	if w.Day(domain.Monday)[0].ItemName != "Oats" {
		t.Error("editing Tuesday's clone mutated Monday's card")
	}
}
