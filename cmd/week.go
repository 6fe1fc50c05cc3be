package cmd

import (
	"fmt"

	"github.com/theirongolddev/footprint/internal/cli"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/trend"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"trends"},
	Short:   "Daily CO₂ for the last seven days",
	RunE:    runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(_ *cobra.Command, _ []string) error {
	cfg, client, err := requireSession()
	if err != nil {
		return err
	}
	ctrl, view, done := newController(cfg, client)
	defer done()

	ctx, cancel := requestContext()
	defer cancel()

	progress("  Fetching the last %d days...\n", trend.Days)
	if err := ctrl.RefreshWeekly(ctx); err != nil {
		return explain(err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LAST 7 DAYS"))
	fmt.Println()

	if view.week == nil {
		fmt.Printf("  %s\n\n", trend.NoDataMessage)
		return nil
	}
	printWeek(*view.week)
	return nil
}

func printWeek(w trend.Week) {
	peak := 0.0
	for _, v := range w.Values {
		peak = max(peak, v)
	}
	for i, v := range w.Values {
		label := w.Labels[i] + " " + w.Days[i].Format("02")
		fmt.Println(cli.RenderHorizontalBar(label, v, peak, 30, colorForTotal(v)))
	}
	fmt.Println()

	fmt.Printf("  Week total: %s   %s\n", cli.FormatKg(w.Total()), cli.RenderSparkline(w.Values))
	if w.Comparable {
		fmt.Printf("  Last 3 days avg %s vs %s before (%s)\n",
			cli.FormatAverage(w.Comparison.RecentAvg),
			cli.FormatAverage(w.Comparison.OlderAvg),
			cli.FormatChange(w.Comparison.Percent),
		)
	}
	fmt.Printf("  %s\n\n", w.Message())
}

// colorForTotal colors a day by its status tier.
func colorForTotal(total float64) lipgloss.Color {
	return lipgloss.Color(presenter.StatusFor(total).Foreground)
}
