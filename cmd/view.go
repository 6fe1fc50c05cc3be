package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/footprint/internal/cli"
	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/trend"
)

// cliView records what the controller renders so a one-shot command can
// print it afterwards.
type cliView struct {
	*form.MapFields

	screen dashboard.Screen
	header string
	dash   presenter.Dashboard
	stats  *model.Stats
	week   *trend.Week
	earned presenter.BadgeSet
	alerts []string
}

var _ dashboard.View = (*cliView)(nil)

func newCLIView() *cliView {
	return &cliView{
		MapFields: form.NewMapFields(),
		earned:    presenter.BadgeSet{},
	}
}

func (v *cliView) ShowScreen(s dashboard.Screen)            { v.screen = s }
func (v *cliView) HighlightNav(dashboard.Screen)            {}
func (v *cliView) SetDateHeader(text string)                { v.header = text }
func (v *cliView) RenderDashboard(d presenter.Dashboard)    { v.dash = d }
func (v *cliView) RenderStats(s model.Stats)                { v.stats = &s }
func (v *cliView) RenderTrend(w trend.Week)                 { v.week = &w }
func (v *cliView) SetDietCardExpanded(model.MealSlot, bool) {}
func (v *cliView) Alert(msg string)                         { v.alerts = append(v.alerts, msg) }
func (v *cliView) RenderBadges(earned presenter.BadgeSet)   { v.earned = earned }

// printScore prints the score card the dashboard screen shows.
func printScore(v *cliView) {
	d := v.dash
	fmt.Println()
	fmt.Println(cli.RenderTitle(v.header))
	fmt.Println()

	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "CO₂ Today",
		Headers: []string{"Category", "kg CO₂"},
		Rows: [][]string{
			{"Travel", d.Travel},
			{"Energy", d.Energy},
			{"Diet", d.Diet},
			{"---"},
			{"Total", d.Total},
		},
	}))

	total := d.Score.Total
	fmt.Printf("  Status: %s\n", cli.RenderStatus(d.Status))
	fmt.Println(cli.RenderHorizontalBar("Travel", d.Score.Travel, total, 30, cli.ColorTravel))
	fmt.Println(cli.RenderHorizontalBar("Energy", d.Score.Energy, total, 30, cli.ColorEnergy))
	fmt.Println(cli.RenderHorizontalBar("Diet", d.Score.Diet, total, 30, cli.ColorDiet))
	fmt.Println()

	fmt.Println("  Suggestions")
	for _, s := range d.Suggestions {
		fmt.Printf("    %s %s\n", s.Icon, s.Text)
	}
	fmt.Println()
}

// printStats prints the profile numbers and the way to the next badge.
func printStats(v *cliView) {
	if v.stats == nil {
		fmt.Println("  Stats unavailable.")
		fmt.Println()
		return
	}
	s := *v.stats
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Profile",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Current streak", cli.FormatDays(s.Streak)},
			{"Days logged", cli.FormatNumber(int64(s.TotalDays))},
			{"Daily average", cli.FormatAverage(s.AvgDaily)},
		},
	}))

	if next, ok := presenter.NextStreakBadge(s.Streak); ok {
		fmt.Printf("  Next badge: %s %s\n", next.Icon, next.Name)
		fmt.Printf("  %s\n", cli.RenderProgressBar(s.Streak, next.StreakDays, 30))
	} else {
		fmt.Println("  Every streak badge earned.")
	}
	fmt.Println()
}

// printBadges lists every badge, earned ones first.
func printBadges(earned presenter.BadgeSet) {
	var have, missing []string
	for _, b := range presenter.AllBadges {
		line := fmt.Sprintf("    %s %-16s %s", b.Icon, b.Name, b.Description)
		if earned.Has(b.ID) {
			have = append(have, line)
		} else {
			missing = append(missing, line)
		}
	}

	fmt.Printf("  Badges earned: %d/%d\n", len(have), len(presenter.AllBadges))
	if len(have) > 0 {
		fmt.Println(strings.Join(have, "\n"))
	}
	if len(missing) > 0 {
		fmt.Println()
		fmt.Println("  Still to earn")
		fmt.Println(strings.Join(missing, "\n"))
	}
	fmt.Println()
}

// printAlerts reports controller alerts on stderr-style output.
func printAlerts(v *cliView) {
	for _, a := range v.alerts {
		fmt.Printf("  ⚠ %s\n", a)
	}
}
