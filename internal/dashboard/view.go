// Package dashboard owns the application state and the command surface of
// the footprint dashboard: navigation, the three save actions and the diet
// card toggles. It keeps the state consistent with the backend and pushes
// everything the user sees through a View.
package dashboard

import (
	"context"

	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/syncclient"
	"github.com/theirongolddev/footprint/internal/trend"
)

// Screen identifies a main screen.
type Screen string

// Screens.
const (
	ScreenDashboard Screen = "dashboard"
	ScreenTravel    Screen = "travel"
	ScreenEnergy    Screen = "energy"
	ScreenDiet      Screen = "diet"
	ScreenTrends    Screen = "trends"
	ScreenProfile   Screen = "profile"
)

// Screens lists every screen in navigation order.
var Screens = []Screen{ScreenDashboard, ScreenTravel, ScreenEnergy, ScreenDiet, ScreenTrends, ScreenProfile}

// Title returns the navigation label for s.
func (s Screen) Title() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenTravel:
		return "Travel"
	case ScreenEnergy:
		return "Energy"
	case ScreenDiet:
		return "Diet"
	case ScreenTrends:
		return "Trends"
	case ScreenProfile:
		return "Profile"
	}
	return string(s)
}

// SaveErrorMessage is the alert shown when a save fails.
const SaveErrorMessage = "Error saving log."

// View is the render target. It carries the editable form fields plus one
// method per piece of derived display state.
type View interface {
	form.Fields

	ShowScreen(s Screen)
	HighlightNav(s Screen)
	SetDateHeader(text string)
	RenderDashboard(d presenter.Dashboard)
	RenderStats(s model.Stats)
	RenderBadges(earned presenter.BadgeSet)
	RenderTrend(w trend.Week)
	SetDietCardExpanded(slot model.MealSlot, expanded bool)
	Alert(msg string)
}

// Backend is the subset of the sync client the controller needs.
type Backend interface {
	FetchToday(ctx context.Context) (*syncclient.Today, error)
	SaveLog(ctx context.Context, log model.DailyLog) (model.CO2Score, error)
	FetchWeekly(ctx context.Context) ([]model.WeeklyLogEntry, error)
	FetchStats(ctx context.Context) (model.Stats, error)
}

// BadgeStore persists earned badges.
type BadgeStore interface {
	Earn(ids ...presenter.BadgeID) ([]presenter.BadgeID, error)
}
