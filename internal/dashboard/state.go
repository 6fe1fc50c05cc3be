package dashboard

import (
	"time"

	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/trend"
)

// Ticket orders requests. Every request takes a fresh ticket; a response is
// applied only if no newer response of the same kind already was.
type Ticket uint64

// State is the single application state: the editable daily log plus
// everything derived from server responses.
type State struct {
	Log    model.DailyLog
	Score  model.CO2Score
	Stats  *model.Stats
	Week   *trend.Week
	Badges presenter.BadgeSet

	Screen   Screen
	Expanded map[model.MealSlot]bool

	// Loaded is set once a fetch-today result has populated the form or a
	// save has succeeded.
	Loaded bool
	// Editing is set when the user changes a field and cleared by a
	// successful save. Fetch-today never touches an edited section.
	Editing bool
	// Dirty holds the sections the user has changed since the last save.
	Dirty map[Section]bool

	clock       Ticket
	todayTicket Ticket // latest fetch-today issued
	scoreTicket Ticket // ticket of the score on screen
	statsTicket Ticket
	weekTicket  Ticket
}

// NewState returns the start-up state: default log, zero score, morning
// card expanded.
func NewState(earned presenter.BadgeSet) *State {
	if earned == nil {
		earned = presenter.BadgeSet{}
	}
	return &State{
		Log:    model.DefaultDailyLog(),
		Badges: earned,
		Screen: ScreenDashboard,
		Dirty:  map[Section]bool{},
		Expanded: map[model.MealSlot]bool{
			model.Morning:   true,
			model.Afternoon: false,
			model.Evening:   false,
			model.Night:     false,
		},
	}
}

func (s *State) next() Ticket {
	s.clock++
	return s.clock
}

// DateHeader formats a day the way the dashboard title shows it.
func DateHeader(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
