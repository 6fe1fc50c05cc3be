package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/footprint/internal/cli"
	"github.com/theirongolddev/footprint/internal/syncclient"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"profile"},
	Short:   "Streak, days logged and daily average",
	RunE:    runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, client, err := requireSession()
	if err != nil {
		return err
	}
	ctrl, view, done := newController(cfg, client)
	defer done()

	ctx, cancel := requestContext()
	defer cancel()

	progress("  Fetching stats...\n")
	if err := ctrl.RefreshStats(ctx); err != nil {
		return explain(err)
	}
	// Today's total decides the low-footprint badge.
	if err := ctrl.RefreshToday(ctx); err != nil && !errors.Is(err, syncclient.ErrNoData) {
		progress("  Today's log unavailable: %v\n", explain(err))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PROFILE  " + cfg.Server.Email))
	fmt.Println()
	printStats(view)
	printBadges(ctrl.State().Badges)
	return nil
}
