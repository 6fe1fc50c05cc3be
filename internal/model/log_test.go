package model

import (
	"encoding/json"
	"testing"
)

func TestMergeWithDefaults_Nil(t *testing.T) {
	got := MergeWithDefaults(nil)
	want := DefaultDailyLog()
	if got != want {
		t.Fatalf("MergeWithDefaults(nil) = %+v, want %+v", got, want)
	}
	if got.Travel.Mode != ModeCar {
		t.Errorf("Travel.Mode = %q, want car", got.Travel.Mode)
	}
	if got.Energy.Level != LevelLow || got.Energy.Location != LocationUrban || got.Energy.Season != SeasonSummer {
		t.Errorf("Energy = %+v, want low/urban/summer defaults", got.Energy)
	}
}

func TestMergeWithDefaults_FromJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DailyLog
	}{
		{
			name: "empty object",
			raw:  `{}`,
			want: DefaultDailyLog(),
		},
		{
			name: "travel only",
			raw:  `{"travel":{"mode":"bike"}}`,
			want: func() DailyLog {
				d := DefaultDailyLog()
				d.Travel.Mode = ModeBike
				return d
			}(),
		},
		{
			name: "energy partial keeps other defaults",
			raw:  `{"energy":{"acHours":2.5,"season":"winter"}}`,
			want: func() DailyLog {
				d := DefaultDailyLog()
				d.Energy.ACHours = 2.5
				d.Energy.Season = SeasonWinter
				return d
			}(),
		},
		{
			name: "blank strings fall back",
			raw:  `{"energy":{"location":"","level":"high"}}`,
			want: func() DailyLog {
				d := DefaultDailyLog()
				d.Energy.Level = LevelHigh
				return d
			}(),
		},
		{
			name: "diet slot with missing nutrients",
			raw:  `{"diet":{"evening":{"plant":3}}}`,
			want: func() DailyLog {
				d := DefaultDailyLog()
				d.Diet.Evening = Meal{Plant: 3}
				return d
			}(),
		},
		{
			name: "unknown enum passes through",
			raw:  `{"travel":{"mode":"scooter","distance":4}}`,
			want: func() DailyLog {
				d := DefaultDailyLog()
				d.Travel = Travel{Mode: "scooter", Distance: 4}
				return d
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PartialDailyLog
			if err := json.Unmarshal([]byte(tt.raw), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := MergeWithDefaults(&p); got != tt.want {
				t.Fatalf("MergeWithDefaults = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsMealEmpty(t *testing.T) {
	if !IsMealEmpty(Meal{}) {
		t.Error("zero meal should be empty")
	}
	for _, n := range Nutrients {
		m := Meal{}.Set(n, 1)
		if IsMealEmpty(m) {
			t.Errorf("meal with %s=1 reported empty", n)
		}
		if m.Get(n) != 1 {
			t.Errorf("Get(%s) = %d, want 1", n, m.Get(n))
		}
	}
}

func TestDailyLogWireNames(t *testing.T) {
	d := DefaultDailyLog()
	d.Diet = d.Diet.SetMeal(Night, Meal{RedMeat: 1})

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"acHours", "washingMachine", "location", "season", "level"} {
		if _, ok := raw["energy"][key]; !ok {
			t.Errorf("energy.%s missing from %s", key, data)
		}
	}
	night, ok := raw["diet"]["night"].(map[string]any)
	if !ok || night["redMeat"] != float64(1) {
		t.Errorf("diet.night.redMeat not encoded: %s", data)
	}
}
