package form

import (
	"errors"
	"testing"

	"github.com/theirongolddev/footprint/internal/model"
)

func sampleLog() model.DailyLog {
	d := model.DefaultDailyLog()
	d.Travel = model.Travel{Mode: model.ModePublic, Distance: 12.5}
	d.Energy.ACHours = 3
	d.Energy.Level = model.LevelMedium
	d.Diet.Morning = model.Meal{Dairy: 1, Plant: 2}
	d.Diet.Evening = model.Meal{RedMeat: 1}
	return d
}

func TestLoadReadRoundTrip(t *testing.T) {
	f := NewMapFields()
	in := sampleLog()

	if err := LoadIntoFields(f, in); err != nil {
		t.Fatalf("LoadIntoFields: %v", err)
	}

	got := ReadFromFields(f, model.DefaultDailyLog())
	if got != in {
		t.Fatalf("round trip = %+v, want %+v", got, in)
	}
}

func TestLoadSetsNoMealFromEmptyMeals(t *testing.T) {
	f := NewMapFields()
	if err := LoadIntoFields(f, sampleLog()); err != nil {
		t.Fatal(err)
	}

	want := map[model.MealSlot]bool{
		model.Morning:   false,
		model.Afternoon: true,
		model.Evening:   false,
		model.Night:     true,
	}
	for slot, none := range want {
		got, err := f.Checked(NoMealField(slot))
		if err != nil {
			t.Fatal(err)
		}
		if got != none {
			t.Errorf("noMeal_%s = %v, want %v", slot, got, none)
		}
		if d := f.Disabled(NutrientField(model.Plant, slot)); d != none {
			t.Errorf("plant_%s disabled = %v, want %v", slot, d, none)
		}
	}
}

func TestEmptyMealRoundTripsWithFlag(t *testing.T) {
	f := NewMapFields()
	log := model.DefaultDailyLog()
	if err := LoadIntoFields(f, log); err != nil {
		t.Fatal(err)
	}

	got := ReadDiet(f, model.Diet{Night: model.Meal{Plant: 9}})
	if got.Night != (model.Meal{}) {
		t.Fatalf("night = %+v, want all zero", got.Night)
	}
	checked, _ := f.Checked(NoMealField(model.Night))
	if !checked {
		t.Fatal("noMeal_night should be checked after loading an empty meal")
	}
}

func TestNoMealForcesZeroOnRead(t *testing.T) {
	f := NewMapFields()
	if err := LoadIntoFields(f, sampleLog()); err != nil {
		t.Fatal(err)
	}

	// Stale values left behind in disabled fields must not leak into the save.
	_ = f.SetChecked(NoMealField(model.Morning), true)
	_ = f.SetValue(NutrientField(model.Dairy, model.Morning), "4")

	got := ReadDiet(f, model.Diet{})
	if got.Morning != (model.Meal{}) {
		t.Fatalf("morning = %+v, want all zero", got.Morning)
	}
}

func TestToggleNoMeal(t *testing.T) {
	f := NewMapFields()
	if err := LoadIntoFields(f, sampleLog()); err != nil {
		t.Fatal(err)
	}
	id := NutrientField(model.Plant, model.Morning)

	_ = f.SetChecked(NoMealField(model.Morning), true)
	if err := ToggleNoMeal(f, model.Morning); err != nil {
		t.Fatalf("ToggleNoMeal: %v", err)
	}
	if v, _ := f.Value(id); v != "0" {
		t.Errorf("%s = %q after check, want 0", id, v)
	}
	if !f.Disabled(id) {
		t.Errorf("%s should be disabled", id)
	}

	_ = f.SetChecked(NoMealField(model.Morning), false)
	if err := ToggleNoMeal(f, model.Morning); err != nil {
		t.Fatalf("ToggleNoMeal: %v", err)
	}
	if f.Disabled(id) {
		t.Errorf("%s should be enabled again", id)
	}
	if v, _ := f.Value(id); v != "0" {
		t.Errorf("%s = %q after uncheck, want value kept at 0", id, v)
	}
}

func TestUncheckKeepsValues(t *testing.T) {
	f := NewMapFields()
	id := NutrientField(model.RedMeat, model.Night)
	_ = f.SetValue(id, "2")

	if err := ToggleNoMeal(f, model.Night); err != nil {
		t.Fatal(err)
	}
	if v, _ := f.Value(id); v != "2" {
		t.Fatalf("%s = %q, want 2 (clearing must not reset values)", id, v)
	}
}

func TestMissingFieldIsIsolated(t *testing.T) {
	f := NewMapFields()
	f.Remove(FieldACHours)
	f.Remove(NoMealField(model.Evening))

	in := sampleLog()
	err := LoadIntoFields(f, in)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("LoadIntoFields error = %v, want ErrMissingField", err)
	}

	// Siblings were still written.
	if v, _ := f.Value(FieldWashingMachine); v != "0" {
		t.Errorf("washingMachine = %q, want 0", v)
	}
	if v, _ := f.Value(FieldTravelDistance); v != "12.5" {
		t.Errorf("travelDistance = %q, want 12.5", v)
	}

	base := in
	base.Energy.ACHours = 7
	got := ReadFromFields(f, base)
	if got.Energy.ACHours != 7 {
		t.Errorf("ACHours = %v, want base value 7 for a missing field", got.Energy.ACHours)
	}
	if got.Diet.Evening != in.Diet.Evening {
		t.Errorf("evening = %+v, want %+v", got.Diet.Evening, in.Diet.Evening)
	}
}

func TestEnumsPassThrough(t *testing.T) {
	f := NewMapFields()
	_ = f.SetValue(FieldTravelMode, "hovercraft")
	_ = f.SetValue(FieldSeason, "")

	tr := ReadTravel(f, model.DefaultTravel())
	if tr.Mode != "hovercraft" {
		t.Errorf("Mode = %q, want passthrough", tr.Mode)
	}
	en := ReadEnergy(f, model.DefaultEnergy())
	if en.Season != "" {
		t.Errorf("Season = %q, want empty passthrough", en.Season)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 3 ", 3},
		{"", 0},
		{"abc", 0},
		{"-4", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2", 2},
		{"2.9", 2},
		{"", 0},
		{"x", 0},
		{"-1", 0},
		{"1e12", 0},
	}
	for _, tt := range tests {
		if got := ParseCount(tt.in); got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
