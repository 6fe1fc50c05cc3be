package cmd

import (
	"fmt"

	"github.com/theirongolddev/footprint/internal/cli"
	"github.com/theirongolddev/footprint/internal/config"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/store"

	"github.com/spf13/cobra"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges earned on this machine",
	RunE:  runBadges,
}

func init() {
	rootCmd.AddCommand(badgesCmd)
}

func runBadges(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	st, err := store.Open(store.DefaultPath())
	if err != nil {
		return fmt.Errorf("opening badge store: %w", err)
	}
	defer st.Close()

	count, err := st.Count(cfg.Server.Email)
	if err != nil {
		return fmt.Errorf("counting badges: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BADGES"))
	fmt.Println()

	if count == 0 {
		fmt.Println("  No badges yet. Log a low-footprint day or keep a streak going!")
		fmt.Println()
		printBadges(presenter.BadgeSet{})
		return nil
	}

	earned, err := st.List(cfg.Server.Email)
	if err != nil {
		return fmt.Errorf("reading badges: %w", err)
	}

	rows := make([][]string, 0, len(earned))
	set := make(presenter.BadgeSet, len(earned))
	loc := config.Location(cfg)
	for _, e := range earned {
		set[e.ID] = true
		b, ok := presenter.BadgeByID(e.ID)
		if !ok {
			continue
		}
		rows = append(rows, []string{b.Icon + " " + b.Name, e.EarnedAt.In(loc).Format("Jan 2, 2006")})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Earned",
		Headers: []string{"Badge", "Earned on"},
		Rows:    rows,
	}))
	printBadges(set)
	return nil
}
