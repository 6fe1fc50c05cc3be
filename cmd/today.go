package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/footprint/internal/cli"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/syncclient"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's log and CO₂ score",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(_ *cobra.Command, _ []string) error {
	cfg, client, err := requireSession()
	if err != nil {
		return err
	}
	ctrl, view, done := newController(cfg, client)
	defer done()

	ctx, cancel := requestContext()
	defer cancel()

	progress("  Fetching today's log...\n")
	err = ctrl.RefreshToday(ctx)
	switch {
	case errors.Is(err, syncclient.ErrNoData):
		fmt.Println("\n  Nothing logged today yet.")
		fmt.Println("  Start with `footprint log travel --mode bike --distance 5`.")
		fmt.Println()
		return nil
	case err != nil:
		return explain(err)
	}
	_ = ctrl.RefreshStats(ctx)

	printScore(view)
	printLog(ctrl.State().Log)
	printStats(view)
	return nil
}

// printLog prints the three sections of a daily log.
func printLog(l model.DailyLog) {
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Travel & Energy",
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Mode", cli.Title(l.Travel.Mode)},
			{"Distance", cli.FormatDistance(l.Travel.Distance)},
			{"---"},
			{"Energy level", cli.Title(l.Energy.Level)},
			{"AC", cli.FormatHours(l.Energy.ACHours)},
			{"Washing machine", cli.FormatHours(l.Energy.WashingMachine)},
			{"Location", cli.Title(l.Energy.Location)},
			{"Season", cli.Title(l.Energy.Season)},
		},
	}))

	headers := []string{"Meal"}
	for _, n := range model.Nutrients {
		headers = append(headers, nutrientTitle(n))
	}
	rows := make([][]string, 0, len(model.MealSlots))
	for _, slot := range model.MealSlots {
		meal := l.Diet.Meal(slot)
		row := []string{cli.Title(string(slot))}
		if model.IsMealEmpty(meal) {
			row = append(row, "-", "-", "-", "-")
		} else {
			for _, n := range model.Nutrients {
				row = append(row, cli.FormatNumber(int64(meal.Get(n))))
			}
		}
		rows = append(rows, row)
	}
	fmt.Println(cli.RenderTable(cli.Table{Title: "Diet", Headers: headers, Rows: rows}))
}

func nutrientTitle(n model.Nutrient) string {
	switch n {
	case model.RedMeat:
		return "Red meat"
	case model.WhiteMeat:
		return "White meat"
	case model.Dairy:
		return "Dairy"
	case model.Plant:
		return "Plant"
	}
	return string(n)
}
