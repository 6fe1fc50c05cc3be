package dashboard

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/syncclient"
	"github.com/theirongolddev/footprint/internal/trend"
)

// Section is the part of the log a save action reads from the form.
type Section int

// Sections.
const (
	SectionTravel Section = iota
	SectionEnergy
	SectionDiet
)

// Controller applies user actions and backend responses to the State and
// renders the result. It is not safe for concurrent use: call it from one
// goroutine (the Bubble Tea Update loop, or a CLI command).
//
// Each backend exchange is split into Begin and Finish so the TUI can run the
// request in a tea.Cmd. The Activate, ShowMainScreen and Save methods run
// the whole exchange synchronously.
type Controller struct {
	state   *State
	view    View
	backend Backend
	badges  BadgeStore
	now     func() time.Time
	loc     *time.Location
}

// Option configures a Controller.
type Option func(*Controller)

// WithBadgeStore persists earned badges.
func WithBadgeStore(b BadgeStore) Option {
	return func(c *Controller) { c.badges = b }
}

// WithClock sets the time source and the timezone that decides "today".
func WithClock(now func() time.Time, loc *time.Location) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
		if loc != nil {
			c.loc = loc
		}
	}
}

// New creates a controller over state. The view receives the initial render
// immediately: default fields, a zero score and the start-up card layout.
func New(state *State, view View, backend Backend, opts ...Option) *Controller {
	c := &Controller{
		state:   state,
		view:    view,
		backend: backend,
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, o := range opts {
		o(c)
	}

	if err := form.LoadIntoFields(view, state.Log); err != nil {
		log.Printf("footprint: initial form sync: %v", err)
	}
	for _, slot := range model.MealSlots {
		view.SetDietCardExpanded(slot, state.Expanded[slot])
	}
	view.SetDateHeader(DateHeader(c.Today()))
	view.RenderDashboard(presenter.Render(state.Score))
	view.RenderBadges(state.Badges)
	view.ShowScreen(state.Screen)
	view.HighlightNav(state.Screen)
	return c
}

// State returns the controller's state.
func (c *Controller) State() *State { return c.state }

// Today returns the current time in the configured timezone.
func (c *Controller) Today() time.Time {
	return c.now().In(c.loc)
}

// Navigate switches screens and highlights trigger in the navigation. It
// reports which fetch the new screen needs, or FetchNone.
func (c *Controller) Navigate(screen, trigger Screen) Fetch {
	c.state.Screen = screen
	c.view.ShowScreen(screen)
	c.view.HighlightNav(trigger)

	switch screen {
	case ScreenTrends:
		return FetchWeekly
	case ScreenProfile:
		return FetchStats
	case ScreenDashboard:
		c.view.SetDateHeader(DateHeader(c.Today()))
		return FetchToday
	}
	return FetchNone
}

// Fetch names a read request.
type Fetch int

// Fetch kinds.
const (
	FetchNone Fetch = iota
	FetchToday
	FetchStats
	FetchWeekly
)

// MarkEditing records that the user changed a field of section.
func (c *Controller) MarkEditing(section Section) {
	c.state.Editing = true
	c.state.Dirty[section] = true
}

// ToggleDietCard expands or collapses a meal card.
func (c *Controller) ToggleDietCard(slot model.MealSlot) {
	expanded := !c.state.Expanded[slot]
	c.state.Expanded[slot] = expanded
	c.view.SetDietCardExpanded(slot, expanded)
}

// ToggleNoMeal applies the slot's no-meal checkbox to its count fields.
func (c *Controller) ToggleNoMeal(slot model.MealSlot) {
	c.MarkEditing(SectionDiet)
	if err := form.ToggleNoMeal(c.view, slot); err != nil {
		log.Printf("footprint: toggle no-meal %s: %v", slot, err)
	}
}

// BeginFetchToday issues a fetch-today ticket.
func (c *Controller) BeginFetchToday() Ticket {
	t := c.state.next()
	c.state.todayTicket = t
	return t
}

// FinishFetchToday applies a fetch-today response. A superseded or failed
// fetch changes nothing. The form is populated only on the first successful
// load, and only the sections the user has not edited; later results only
// refresh the score.
func (c *Controller) FinishFetchToday(t Ticket, today *syncclient.Today, err error) {
	if err != nil {
		logRead("fetch today", err)
		return
	}
	if today == nil || t != c.state.todayTicket {
		return
	}

	if !c.state.Loaded {
		c.state.Loaded = true
		if err := c.loadClean(today.Log); err != nil {
			log.Printf("footprint: form sync: %v", err)
		}
	}
	if t > c.state.scoreTicket {
		c.applyScore(t, today.Score)
	}
}

// loadClean copies every section the user has not edited into the model and
// the form.
func (c *Controller) loadClean(l model.DailyLog) error {
	var errs []error
	if !c.state.Dirty[SectionTravel] {
		c.state.Log.Travel = l.Travel
		errs = append(errs, form.LoadTravel(c.view, l.Travel))
	}
	if !c.state.Dirty[SectionEnergy] {
		c.state.Log.Energy = l.Energy
		errs = append(errs, form.LoadEnergy(c.view, l.Energy))
	}
	if !c.state.Dirty[SectionDiet] {
		c.state.Log.Diet = l.Diet
		errs = append(errs, form.LoadDiet(c.view, l.Diet))
	}
	return errors.Join(errs...)
}

// BeginFetchStats issues a stats ticket.
func (c *Controller) BeginFetchStats() Ticket {
	return c.state.next()
}

// FinishFetchStats applies a stats response unless a newer one already was.
// Fresh stats settle the streak badges; the low-footprint badge also needs a
// score from the server, so the start-up placeholder never counts.
func (c *Controller) FinishFetchStats(t Ticket, stats model.Stats, err error) {
	if err != nil {
		logRead("fetch stats", err)
		return
	}
	if t <= c.state.statsTicket {
		return
	}
	c.state.statsTicket = t
	c.state.Stats = &stats
	c.view.RenderStats(stats)
	if c.state.scoreTicket == 0 {
		c.earn(presenter.StreakBadges(stats))
		return
	}
	c.earn(presenter.EarnedBadges(c.state.Score.Total, &stats))
}

// BeginFetchWeekly issues a weekly ticket.
func (c *Controller) BeginFetchWeekly() Ticket {
	return c.state.next()
}

// FinishFetchWeekly renders the trend chart. An empty window is not an
// update.
func (c *Controller) FinishFetchWeekly(t Ticket, logs []model.WeeklyLogEntry, err error) {
	if err != nil {
		logRead("fetch weekly", err)
		return
	}
	if len(logs) == 0 || t <= c.state.weekTicket {
		return
	}
	c.state.weekTicket = t
	w := trend.Analyze(c.Today(), logs)
	c.state.Week = &w
	c.view.RenderTrend(w)
}

// BeginSave reads the section's fields into the model and returns the full
// log to send. The model keeps these values whatever the outcome, so a
// failed save can be retried.
func (c *Controller) BeginSave(section Section) (Ticket, model.DailyLog) {
	switch section {
	case SectionTravel:
		c.state.Log.Travel = form.ReadTravel(c.view, c.state.Log.Travel)
	case SectionEnergy:
		c.state.Log.Energy = form.ReadEnergy(c.view, c.state.Log.Energy)
	case SectionDiet:
		c.state.Log.Diet = form.ReadDiet(c.view, c.state.Log.Diet)
	}
	return c.state.next(), c.state.Log
}

// FinishSave applies a save response. On failure it raises exactly one
// alert and leaves the score on screen. It reports whether the caller should
// now fetch stats.
func (c *Controller) FinishSave(t Ticket, score model.CO2Score, err error) bool {
	if err != nil {
		log.Printf("footprint: save log: %v", err)
		c.view.Alert(SaveErrorMessage)
		return false
	}
	c.state.Editing = false
	clear(c.state.Dirty)
	c.state.Loaded = true
	if t > c.state.scoreTicket {
		c.applyScore(t, score)
	}
	return true
}

// ReturnToDashboard shows the dashboard screen after a save.
func (c *Controller) ReturnToDashboard() {
	c.state.Screen = ScreenDashboard
	c.view.ShowScreen(ScreenDashboard)
	c.view.HighlightNav(ScreenDashboard)
}

func (c *Controller) applyScore(t Ticket, score model.CO2Score) {
	c.state.scoreTicket = t
	c.state.Score = score
	c.view.RenderDashboard(presenter.Render(score))
	c.earn(presenter.EarnedBadges(score.Total, c.state.Stats))
}

func (c *Controller) earn(ids []presenter.BadgeID) {
	added := c.state.Badges.Earn(ids...)
	if len(added) == 0 {
		return
	}
	if c.badges != nil {
		if _, err := c.badges.Earn(added...); err != nil {
			log.Printf("footprint: storing badges: %v", err)
		}
	}
	c.view.RenderBadges(c.state.Badges)
}

func logRead(what string, err error) {
	if errors.Is(err, syncclient.ErrNoData) {
		return
	}
	log.Printf("footprint: %s: %v", what, err)
}

// Activate loads today's log, stats and the weekly chart, in that order.
// Read failures leave the view as it was; they are joined into the returned
// error for callers that want to report them.
func (c *Controller) Activate(ctx context.Context) error {
	return errors.Join(
		c.RefreshToday(ctx),
		c.RefreshStats(ctx),
		c.RefreshWeekly(ctx),
	)
}

// ShowMainScreen navigates and runs the fetch the screen needs.
func (c *Controller) ShowMainScreen(ctx context.Context, screen, trigger Screen) error {
	return c.Refresh(ctx, c.Navigate(screen, trigger))
}

// Refresh runs one fetch synchronously.
func (c *Controller) Refresh(ctx context.Context, f Fetch) error {
	switch f {
	case FetchToday:
		return c.RefreshToday(ctx)
	case FetchStats:
		return c.RefreshStats(ctx)
	case FetchWeekly:
		return c.RefreshWeekly(ctx)
	}
	return nil
}

// RefreshToday fetches and applies today's log.
func (c *Controller) RefreshToday(ctx context.Context) error {
	t := c.BeginFetchToday()
	today, err := c.backend.FetchToday(ctx)
	c.FinishFetchToday(t, today, err)
	return err
}

// RefreshStats fetches and applies stats.
func (c *Controller) RefreshStats(ctx context.Context) error {
	t := c.BeginFetchStats()
	stats, err := c.backend.FetchStats(ctx)
	c.FinishFetchStats(t, stats, err)
	return err
}

// RefreshWeekly fetches and renders the weekly trend.
func (c *Controller) RefreshWeekly(ctx context.Context) error {
	t := c.BeginFetchWeekly()
	logs, err := c.backend.FetchWeekly(ctx)
	c.FinishFetchWeekly(t, logs, err)
	return err
}

// SaveTravel saves the travel section.
func (c *Controller) SaveTravel(ctx context.Context) error {
	return c.save(ctx, SectionTravel)
}

// SaveEnergy saves the energy section.
func (c *Controller) SaveEnergy(ctx context.Context) error {
	return c.save(ctx, SectionEnergy)
}

// SaveDiet saves the diet section.
func (c *Controller) SaveDiet(ctx context.Context) error {
	return c.save(ctx, SectionDiet)
}

// save renders the new score, then fetches and renders stats, then returns
// to the dashboard. Only the save error is returned.
func (c *Controller) save(ctx context.Context, section Section) error {
	t, entry := c.BeginSave(section)
	score, err := c.backend.SaveLog(ctx, entry)
	if c.FinishSave(t, score, err) {
		_ = c.RefreshStats(ctx)
	}
	c.ReturnToDashboard()
	return err
}
