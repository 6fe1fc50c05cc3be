package tui

import (
	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/trend"
)

// screenView is the dashboard.View the App renders from. The controller
// writes into it; View() reads it. Both run on the Bubble Tea goroutine.
type screenView struct {
	*form.MapFields

	screen   dashboard.Screen
	nav      dashboard.Screen
	header   string
	dash     presenter.Dashboard
	stats    *model.Stats
	badges   presenter.BadgeSet
	week     *trend.Week
	expanded map[model.MealSlot]bool
	alert    string
}

var _ dashboard.View = (*screenView)(nil)

func newScreenView() *screenView {
	return &screenView{
		MapFields: form.NewMapFields(),
		screen:    dashboard.ScreenDashboard,
		nav:       dashboard.ScreenDashboard,
		badges:    presenter.BadgeSet{},
		expanded:  make(map[model.MealSlot]bool, len(model.MealSlots)),
	}
}

func (v *screenView) ShowScreen(s dashboard.Screen)   { v.screen = s }
func (v *screenView) HighlightNav(s dashboard.Screen) { v.nav = s }
func (v *screenView) SetDateHeader(text string)       { v.header = text }

func (v *screenView) RenderDashboard(d presenter.Dashboard) { v.dash = d }

func (v *screenView) RenderStats(s model.Stats) { v.stats = &s }

func (v *screenView) RenderBadges(earned presenter.BadgeSet) {
	v.badges = make(presenter.BadgeSet, len(earned))
	for id, ok := range earned {
		v.badges[id] = ok
	}
}

func (v *screenView) RenderTrend(w trend.Week) { v.week = &w }

func (v *screenView) SetDietCardExpanded(slot model.MealSlot, expanded bool) {
	v.expanded[slot] = expanded
}

// Alert shows msg in the status bar until the next key press.
func (v *screenView) Alert(msg string) { v.alert = msg }
