package model

// PartialTravel is a travel entry as stored by the server; any field may be absent.
type PartialTravel struct {
	Mode     *string  `json:"mode,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
}

// PartialEnergy is an energy entry with optional fields.
type PartialEnergy struct {
	Level          *string  `json:"level,omitempty"`
	ACHours        *float64 `json:"acHours,omitempty"`
	WashingMachine *float64 `json:"washingMachine,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Season         *string  `json:"season,omitempty"`
}

// PartialMeal is a meal with optional counts.
type PartialMeal struct {
	RedMeat   *int `json:"redMeat,omitempty"`
	WhiteMeat *int `json:"whiteMeat,omitempty"`
	Dairy     *int `json:"dairy,omitempty"`
	Plant     *int `json:"plant,omitempty"`
}

// PartialDiet is a diet with optional meal slots.
type PartialDiet struct {
	Morning   *PartialMeal `json:"morning,omitempty"`
	Afternoon *PartialMeal `json:"afternoon,omitempty"`
	Evening   *PartialMeal `json:"evening,omitempty"`
	Night     *PartialMeal `json:"night,omitempty"`
}

func (d *PartialDiet) meal(slot MealSlot) *PartialMeal {
	if d == nil {
		return nil
	}
	switch slot {
	case Morning:
		return d.Morning
	case Afternoon:
		return d.Afternoon
	case Evening:
		return d.Evening
	case Night:
		return d.Night
	}
	return nil
}

// PartialDailyLog is a daily log as returned by the today endpoint, where any
// section, slot or field may be missing.
type PartialDailyLog struct {
	Travel *PartialTravel `json:"travel,omitempty"`
	Energy *PartialEnergy `json:"energy,omitempty"`
	Diet   *PartialDiet   `json:"diet,omitempty"`
}

// MergeWithDefaults fills every field the partial leaves out with its default.
// A nil partial yields DefaultDailyLog.
func MergeWithDefaults(p *PartialDailyLog) DailyLog {
	out := DefaultDailyLog()
	if p == nil {
		return out
	}

	if t := p.Travel; t != nil {
		out.Travel.Mode = stringOr(t.Mode, out.Travel.Mode)
		out.Travel.Distance = floatOr(t.Distance, out.Travel.Distance)
	}

	if e := p.Energy; e != nil {
		out.Energy.Level = stringOr(e.Level, out.Energy.Level)
		out.Energy.ACHours = floatOr(e.ACHours, out.Energy.ACHours)
		out.Energy.WashingMachine = floatOr(e.WashingMachine, out.Energy.WashingMachine)
		out.Energy.Location = stringOr(e.Location, out.Energy.Location)
		out.Energy.Season = stringOr(e.Season, out.Energy.Season)
	}

	for _, slot := range MealSlots {
		pm := p.Diet.meal(slot)
		if pm == nil {
			continue
		}
		out.Diet = out.Diet.SetMeal(slot, Meal{
			RedMeat:   intOr(pm.RedMeat, 0),
			WhiteMeat: intOr(pm.WhiteMeat, 0),
			Dairy:     intOr(pm.Dairy, 0),
			Plant:     intOr(pm.Plant, 0),
		})
	}

	return out
}

// An empty string from the server counts as absent, matching how the
// browser client fell back to defaults for blank selects.
func stringOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
