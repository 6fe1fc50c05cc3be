package form

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/footprint/internal/model"
)

// LoadIntoFields writes every field from log, recomputes each meal's no-meal
// checkbox and applies its disable rule. A failing field never stops the
// others; all failures are joined into the returned error.
func LoadIntoFields(f Fields, log model.DailyLog) error {
	return errors.Join(
		LoadTravel(f, log.Travel),
		LoadEnergy(f, log.Energy),
		LoadDiet(f, log.Diet),
	)
}

// LoadTravel writes the travel fields.
func LoadTravel(f Fields, t model.Travel) error {
	return errors.Join(
		f.SetValue(FieldTravelMode, t.Mode),
		f.SetValue(FieldTravelDistance, formatAmount(t.Distance)),
	)
}

// LoadEnergy writes the energy fields.
func LoadEnergy(f Fields, e model.Energy) error {
	return errors.Join(
		f.SetValue(FieldEnergyLevel, e.Level),
		f.SetValue(FieldACHours, formatAmount(e.ACHours)),
		f.SetValue(FieldWashingMachine, formatAmount(e.WashingMachine)),
		f.SetValue(FieldLocation, e.Location),
		f.SetValue(FieldSeason, e.Season),
	)
}

// LoadDiet writes the meal counts and each slot's no-meal state.
func LoadDiet(f Fields, d model.Diet) error {
	var errs []error
	for _, slot := range model.MealSlots {
		meal := d.Meal(slot)
		for _, n := range model.Nutrients {
			if err := f.SetValue(NutrientField(n, slot), strconv.Itoa(meal.Get(n))); err != nil {
				errs = append(errs, err)
			}
		}
		empty := model.IsMealEmpty(meal)
		if err := f.SetChecked(NoMealField(slot), empty); err != nil {
			errs = append(errs, err)
		}
		errs = append(errs, applyNoMeal(f, slot, empty))
	}
	return errors.Join(errs...)
}

// ReadFromFields is the inverse of LoadIntoFields. Any field that cannot be
// read keeps its value from base.
func ReadFromFields(f Fields, base model.DailyLog) model.DailyLog {
	return model.DailyLog{
		Travel: ReadTravel(f, base.Travel),
		Energy: ReadEnergy(f, base.Energy),
		Diet:   ReadDiet(f, base.Diet),
	}
}

// ReadTravel reads the travel section.
func ReadTravel(f Fields, base model.Travel) model.Travel {
	out := base
	if v, err := f.Value(FieldTravelMode); err == nil {
		out.Mode = v
	}
	if v, err := f.Value(FieldTravelDistance); err == nil {
		out.Distance = ParseAmount(v)
	}
	return out
}

// ReadEnergy reads the energy section.
func ReadEnergy(f Fields, base model.Energy) model.Energy {
	out := base
	if v, err := f.Value(FieldEnergyLevel); err == nil {
		out.Level = v
	}
	if v, err := f.Value(FieldACHours); err == nil {
		out.ACHours = ParseAmount(v)
	}
	if v, err := f.Value(FieldWashingMachine); err == nil {
		out.WashingMachine = ParseAmount(v)
	}
	if v, err := f.Value(FieldLocation); err == nil {
		out.Location = v
	}
	if v, err := f.Value(FieldSeason); err == nil {
		out.Season = v
	}
	return out
}

// ReadDiet reads all four meals. A slot whose no-meal box is checked is
// written back as all zero whatever its (disabled) fields hold.
func ReadDiet(f Fields, base model.Diet) model.Diet {
	out := base
	for _, slot := range model.MealSlots {
		if none, err := f.Checked(NoMealField(slot)); err == nil && none {
			out = out.SetMeal(slot, model.Meal{})
			continue
		}
		meal := base.Meal(slot)
		for _, n := range model.Nutrients {
			if v, err := f.Value(NutrientField(n, slot)); err == nil {
				meal = meal.Set(n, ParseCount(v))
			}
		}
		out = out.SetMeal(slot, meal)
	}
	return out
}

// ToggleNoMeal applies the slot's current checkbox state: checked zeroes and
// disables the four count fields, unchecked re-enables them as they are.
func ToggleNoMeal(f Fields, slot model.MealSlot) error {
	checked, err := f.Checked(NoMealField(slot))
	if err != nil {
		return err
	}
	return applyNoMeal(f, slot, checked)
}

func applyNoMeal(f Fields, slot model.MealSlot, none bool) error {
	var errs []error
	for _, n := range model.Nutrients {
		id := NutrientField(n, slot)
		if none {
			if err := f.SetValue(id, "0"); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		if err := f.SetDisabled(id, none); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ParseAmount parses a distance or hours field. Anything that is not a
// finite, non-negative number yields 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseCount parses a portion count. Decimal input truncates toward zero;
// anything unparseable or negative yields 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	v := ParseAmount(s)
	if v >= math.MaxInt32 {
		return 0
	}
	return int(v)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
