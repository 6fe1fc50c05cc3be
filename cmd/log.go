package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/syncclient"

	"github.com/spf13/cobra"
)

var (
	flagMode     string
	flagDistance float64

	flagLevel    string
	flagACHours  float64
	flagWashing  float64
	flagLocation string
	flagSeason   string

	flagSlot      string
	flagRedMeat   int
	flagWhiteMeat int
	flagDairy     int
	flagPlant     int
	flagNoMeal    bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Save one section of today's log",
}

var logTravelCmd = &cobra.Command{
	Use:     "travel",
	Short:   "Save today's travel",
	Example: "  footprint log travel --mode bike --distance 12.5",
	RunE:    runLogTravel,
}

var logEnergyCmd = &cobra.Command{
	Use:     "energy",
	Short:   "Save today's household energy",
	Example: "  footprint log energy --level medium --ac-hours 2 --season winter",
	RunE:    runLogEnergy,
}

var logDietCmd = &cobra.Command{
	Use:     "diet",
	Short:   "Save one meal of today's diet",
	Example: "  footprint log diet --slot evening --plant 2 --dairy 1\n  footprint log diet --slot night --no-meal",
	RunE:    runLogDiet,
}

func init() {
	tf := logTravelCmd.Flags()
	tf.StringVar(&flagMode, "mode", "", "Travel mode: "+strings.Join(model.TravelModes, ", "))
	tf.Float64Var(&flagDistance, "distance", 0, "Distance in km")

	ef := logEnergyCmd.Flags()
	ef.StringVar(&flagLevel, "level", "", "Energy level: "+strings.Join(model.EnergyLevels, ", "))
	ef.Float64Var(&flagACHours, "ac-hours", 0, "Hours of air conditioning")
	ef.Float64Var(&flagWashing, "washing", 0, "Hours of washing machine use")
	ef.StringVar(&flagLocation, "location", "", "Location: "+strings.Join(model.Locations, ", "))
	ef.StringVar(&flagSeason, "season", "", "Season: "+strings.Join(model.Seasons, ", "))

	df := logDietCmd.Flags()
	df.StringVar(&flagSlot, "slot", "", "Meal slot: "+strings.Join(slotNames(), ", "))
	df.IntVar(&flagRedMeat, "red-meat", 0, "Red meat portions")
	df.IntVar(&flagWhiteMeat, "white-meat", 0, "White meat portions")
	df.IntVar(&flagDairy, "dairy", 0, "Dairy portions")
	df.IntVar(&flagPlant, "plant", 0, "Plant-based portions")
	df.BoolVar(&flagNoMeal, "no-meal", false, "Mark the slot as no meal")
	_ = logDietCmd.MarkFlagRequired("slot")

	logCmd.AddCommand(logTravelCmd, logEnergyCmd, logDietCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogTravel(cmd *cobra.Command, _ []string) error {
	if err := checkChoice("mode", flagMode, model.TravelModes); err != nil {
		return err
	}
	if err := checkAmount("distance", flagDistance); err != nil {
		return err
	}
	return saveSection(dashboard.SectionTravel, func(f form.Fields) error {
		return errors.Join(
			setIfChanged(cmd, f, "mode", form.FieldTravelMode, flagMode),
			setIfChanged(cmd, f, "distance", form.FieldTravelDistance, formatAmount(flagDistance)),
		)
	})
}

func runLogEnergy(cmd *cobra.Command, _ []string) error {
	if err := errors.Join(
		checkChoice("level", flagLevel, model.EnergyLevels),
		checkChoice("location", flagLocation, model.Locations),
		checkChoice("season", flagSeason, model.Seasons),
		checkAmount("ac-hours", flagACHours),
		checkAmount("washing", flagWashing),
	); err != nil {
		return err
	}
	return saveSection(dashboard.SectionEnergy, func(f form.Fields) error {
		return errors.Join(
			setIfChanged(cmd, f, "level", form.FieldEnergyLevel, flagLevel),
			setIfChanged(cmd, f, "ac-hours", form.FieldACHours, formatAmount(flagACHours)),
			setIfChanged(cmd, f, "washing", form.FieldWashingMachine, formatAmount(flagWashing)),
			setIfChanged(cmd, f, "location", form.FieldLocation, flagLocation),
			setIfChanged(cmd, f, "season", form.FieldSeason, flagSeason),
		)
	})
}

func runLogDiet(cmd *cobra.Command, _ []string) error {
	if err := checkChoice("slot", flagSlot, slotNames()); err != nil {
		return err
	}
	slot := model.MealSlot(flagSlot)

	counts := map[model.Nutrient]int{
		model.RedMeat:   flagRedMeat,
		model.WhiteMeat: flagWhiteMeat,
		model.Dairy:     flagDairy,
		model.Plant:     flagPlant,
	}
	anyCount := false
	for n, v := range counts {
		if v < 0 {
			return fmt.Errorf("--%s must not be negative", nutrientFlag(n))
		}
		if cmd.Flags().Changed(nutrientFlag(n)) {
			anyCount = true
		}
	}
	if flagNoMeal && anyCount {
		return errors.New("--no-meal cannot be combined with portion counts")
	}

	return saveSection(dashboard.SectionDiet, func(f form.Fields) error {
		if flagNoMeal {
			return setNoMeal(f, slot, true)
		}
		if !anyCount {
			return nil
		}
		// Counts reopen a slot that was saved empty.
		errs := []error{setNoMeal(f, slot, false)}
		for _, n := range model.Nutrients {
			errs = append(errs, setIfChanged(cmd, f, nutrientFlag(n), form.NutrientField(n, slot), strconv.Itoa(counts[n])))
		}
		return errors.Join(errs...)
	})
}

// saveSection loads today's log, applies edit to the fields and saves one
// section, the same path the dashboard takes for its save buttons.
func saveSection(section dashboard.Section, edit func(form.Fields) error) error {
	cfg, client, err := requireSession()
	if err != nil {
		return err
	}
	ctrl, view, done := newController(cfg, client)
	defer done()

	ctx, cancel := requestContext()
	defer cancel()

	progress("  Fetching today's log...\n")
	if err := ctrl.RefreshToday(ctx); err != nil && !errors.Is(err, syncclient.ErrNoData) {
		return explain(err)
	}

	if err := edit(view); err != nil {
		return fmt.Errorf("setting fields: %w", err)
	}
	ctrl.MarkEditing(section)

	progress("  Saving %s...\n", sectionName(section))
	if err := saveWith(ctx, ctrl, section); err != nil {
		printAlerts(view)
		return explain(err)
	}

	printScore(view)
	printStats(view)
	return nil
}

func saveWith(ctx context.Context, ctrl *dashboard.Controller, section dashboard.Section) error {
	switch section {
	case dashboard.SectionTravel:
		return ctrl.SaveTravel(ctx)
	case dashboard.SectionEnergy:
		return ctrl.SaveEnergy(ctx)
	default:
		return ctrl.SaveDiet(ctx)
	}
}

func setNoMeal(f form.Fields, slot model.MealSlot, none bool) error {
	if err := f.SetChecked(form.NoMealField(slot), none); err != nil {
		return err
	}
	return form.ToggleNoMeal(f, slot)
}

func setIfChanged(cmd *cobra.Command, f form.Fields, flag, field, value string) error {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return f.SetValue(field, value)
}

func checkChoice(flag, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("--%s must be one of %s, got %q", flag, strings.Join(allowed, ", "), value)
}

func checkAmount(flag string, v float64) error {
	if v < 0 {
		return fmt.Errorf("--%s must not be negative", flag)
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func slotNames() []string {
	names := make([]string, len(model.MealSlots))
	for i, s := range model.MealSlots {
		names[i] = string(s)
	}
	return names
}

func nutrientFlag(n model.Nutrient) string {
	switch n {
	case model.RedMeat:
		return "red-meat"
	case model.WhiteMeat:
		return "white-meat"
	}
	return string(n)
}

func sectionName(s dashboard.Section) string {
	switch s {
	case dashboard.SectionTravel:
		return "travel"
	case dashboard.SectionEnergy:
		return "energy"
	}
	return "diet"
}
