package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/footprint/internal/config"
	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/syncclient"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// stubBackend answers synchronously and counts calls.
type stubBackend struct {
	today      *syncclient.Today
	score      model.CO2Score
	saveErr    error
	saved      []model.DailyLog
	stats      model.Stats
	weekly     []model.WeeklyLogEntry
	todayCalls int
	statsCalls int

	weeklyCalls int
}

func newStubBackend() *stubBackend {
	log := model.DefaultDailyLog()
	log.Travel = model.Travel{Mode: model.ModeBike, Distance: 4}
	return &stubBackend{
		today: &syncclient.Today{
			Log:   log,
			Score: model.CO2Score{Travel: 0, Energy: 1.5, Diet: 2, Total: 3.5},
		},
		score: model.CO2Score{Travel: 2.1, Energy: 1.5, Diet: 2, Total: 5.6},
		stats: model.Stats{Streak: 4, TotalDays: 9, AvgDaily: 6.1},
		weekly: []model.WeeklyLogEntry{
			{Date: "2026-10-15", CO2: model.CO2Score{Total: 4}},
		},
	}
}

func (b *stubBackend) FetchToday(context.Context) (*syncclient.Today, error) {
	b.todayCalls++
	return b.today, nil
}

func (b *stubBackend) SaveLog(_ context.Context, log model.DailyLog) (model.CO2Score, error) {
	b.saved = append(b.saved, log)
	return b.score, b.saveErr
}

func (b *stubBackend) FetchWeekly(context.Context) ([]model.WeeklyLogEntry, error) {
	b.weeklyCalls++
	return b.weekly, nil
}

func (b *stubBackend) FetchStats(context.Context) (model.Stats, error) {
	b.statsCalls++
	return b.stats, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
}

// startApp builds an App over b, sizes it and runs activation.
func startApp(t *testing.T, b dashboard.Backend) App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.TUI.ShowHelpOnStart = false
	cfg.Server.Email = "ana@example.com"

	a := NewApp(Options{Config: cfg, Backend: b, Now: fixedNow})
	a = send(t, a, tea.WindowSizeMsg{Width: 110, Height: 45})
	return send(t, a, activateMsg{})
}

// send delivers msg and then every backend response its command produces.
func send(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, cmd := a.Update(msg)
	a = m.(App)
	for _, next := range drain(cmd) {
		a = send(t, a, next)
	}
	return a
}

// drain runs cmd and keeps only the messages that carry backend responses.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	case todayMsg, statsMsg, weeklyMsg, saveMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestActivationPopulatesEverything(t *testing.T) {
	b := newStubBackend()
	a := startApp(t, b)

	if !a.loaded || a.pending != 0 {
		t.Fatalf("loaded = %v pending = %d, want true 0", a.loaded, a.pending)
	}
	if got, _ := a.view.Value(form.FieldTravelMode); got != model.ModeBike {
		t.Fatalf("travel mode field = %q, want bike", got)
	}
	if a.view.dash.Total != "3.5" {
		t.Fatalf("total = %q, want 3.5", a.view.dash.Total)
	}
	if a.view.stats == nil || a.view.stats.Streak != 4 {
		t.Fatalf("stats = %+v, want streak 4", a.view.stats)
	}
	if a.view.week == nil {
		t.Fatal("trend not rendered")
	}
	if !a.view.badges.Has(presenter.BadgeStreak3) || !a.view.badges.Has(presenter.BadgeLowFootprint) {
		t.Fatalf("badges = %v, want streak-3 and low-footprint", a.view.badges.IDs())
	}
	if a.view.header != "Thursday, October 15, 2026" {
		t.Fatalf("header = %q", a.view.header)
	}
}

func TestEditAndSaveTravel(t *testing.T) {
	b := newStubBackend()
	a := startApp(t, b)

	a = send(t, a, keys("2"))
	if a.view.screen != dashboard.ScreenTravel {
		t.Fatalf("screen = %s, want travel", a.view.screen)
	}

	a = send(t, a, keys("l")) // bike -> public
	a = send(t, a, keys("j"))
	a = send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.editor.editing {
		t.Fatal("enter on a number field should start editing")
	}
	a = send(t, a, tea.KeyMsg{Type: tea.KeyBackspace})
	a = send(t, a, keys("12.5"))
	a = send(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	statsBefore := b.statsCalls
	a = send(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(b.saved) != 1 {
		t.Fatalf("saves = %d, want 1", len(b.saved))
	}
	got := b.saved[0].Travel
	if got.Mode != model.ModePublic || got.Distance != 12.5 {
		t.Fatalf("saved travel = %+v, want public 12.5", got)
	}
	if b.statsCalls != statsBefore+1 {
		t.Fatalf("stats fetches after save = %d, want 1", b.statsCalls-statsBefore)
	}
	if a.view.dash.Total != "5.6" {
		t.Fatalf("total = %q, want 5.6", a.view.dash.Total)
	}
	if a.view.screen != dashboard.ScreenDashboard || a.view.nav != dashboard.ScreenDashboard {
		t.Fatalf("after save screen = %s nav = %s, want dashboard", a.view.screen, a.view.nav)
	}
	if a.ctrl.State().Editing {
		t.Fatal("editing flag should clear after a successful save")
	}
}

func TestSaveFailureAlertsOnce(t *testing.T) {
	b := newStubBackend()
	b.saveErr = errors.New("boom")
	a := startApp(t, b)

	a = send(t, a, keys("3"))
	statsBefore := b.statsCalls
	a = send(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})

	if a.view.alert != dashboard.SaveErrorMessage {
		t.Fatalf("alert = %q, want %q", a.view.alert, dashboard.SaveErrorMessage)
	}
	if b.statsCalls != statsBefore {
		t.Fatal("a failed save must not fetch stats")
	}
	if a.view.dash.Total != "3.5" {
		t.Fatalf("total = %q, want the previous 3.5", a.view.dash.Total)
	}
	if a.view.screen != dashboard.ScreenDashboard {
		t.Fatalf("screen = %s, want dashboard", a.view.screen)
	}
	if !strings.Contains(a.View(), dashboard.SaveErrorMessage) {
		t.Fatal("status bar should show the alert")
	}

	a = send(t, a, keys("?"))
	if a.view.alert != "" {
		t.Fatal("a key press should dismiss the alert")
	}
}

func TestDietNoMealToggle(t *testing.T) {
	a := startApp(t, newStubBackend())
	a = send(t, a, keys("4"))

	// Morning is expanded: header, no-meal checkbox, four counts.
	rows := a.currentRows()
	if rows[0].kind != rowCard || rows[1].kind != rowCheck {
		t.Fatalf("diet rows start with %v %v, want card then checkbox", rows[0].kind, rows[1].kind)
	}

	a = send(t, a, keys("j"))
	a = send(t, a, keys(" "))

	for _, n := range model.Nutrients {
		id := form.NutrientField(n, model.Morning)
		if v, _ := a.view.Value(id); v != "0" || !a.view.Disabled(id) {
			t.Fatalf("%s = %q disabled=%v, want 0 and disabled", id, v, a.view.Disabled(id))
		}
	}
	if !a.ctrl.State().Editing {
		t.Fatal("toggling no-meal marks the form as edited")
	}
}

func TestDietCardToggle(t *testing.T) {
	a := startApp(t, newStubBackend())
	a = send(t, a, keys("4"))
	before := len(a.currentRows())

	a = send(t, a, tea.KeyMsg{Type: tea.KeyEnter}) // collapse morning
	if a.view.expanded[model.Morning] {
		t.Fatal("morning should be collapsed")
	}
	if got := len(a.currentRows()); got != before-5 {
		t.Fatalf("rows = %d, want %d", got, before-5)
	}
}

func TestNavigationFetchesPerScreen(t *testing.T) {
	b := newStubBackend()
	a := startApp(t, b)

	a = send(t, a, keys("6"))
	if b.statsCalls != 2 {
		t.Fatalf("profile should fetch stats, calls = %d", b.statsCalls)
	}
	a = send(t, a, keys("5"))
	if b.weeklyCalls != 2 {
		t.Fatalf("trends should fetch weekly, calls = %d", b.weeklyCalls)
	}
	a = send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if b.todayCalls != 2 || a.view.screen != dashboard.ScreenDashboard {
		t.Fatalf("dashboard should fetch today, calls = %d screen = %s", b.todayCalls, a.view.screen)
	}
	a = send(t, a, keys("2"))
	if b.todayCalls != 2 || b.statsCalls != 2 || b.weeklyCalls != 2 {
		t.Fatal("travel screen fetches nothing")
	}
}

func TestTabCyclesScreens(t *testing.T) {
	a := startApp(t, newStubBackend())
	a = send(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	if a.view.screen != dashboard.ScreenProfile {
		t.Fatalf("shift+tab from dashboard = %s, want profile", a.view.screen)
	}
	a = send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.view.screen != dashboard.ScreenDashboard {
		t.Fatalf("tab from profile = %s, want dashboard", a.view.screen)
	}
}

func TestViewRendersEveryScreen(t *testing.T) {
	a := startApp(t, newStubBackend())
	for i, s := range dashboard.Screens {
		a = send(t, a, keys(string(rune('1'+i))))
		out := a.View()
		if got := lipgloss.Height(out); got != 45 {
			t.Errorf("%s: view height = %d, want 45", s, got)
		}
		if !strings.Contains(out, s.Title()) {
			t.Errorf("%s: nav bar missing", s)
		}
	}
}

func TestNarrowTerminal(t *testing.T) {
	a := startApp(t, newStubBackend())
	a = send(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("narrow terminal should show a warning")
	}
}

func TestHelpOverlay(t *testing.T) {
	a := startApp(t, newStubBackend())
	a = send(t, a, keys("?"))
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("? should open help")
	}
	a = send(t, a, keys("x"))
	if a.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestRowsForEnergy(t *testing.T) {
	rows := rowsFor(dashboard.ScreenEnergy, nil)
	var ids []string
	for _, r := range rows {
		if r.id != "" {
			ids = append(ids, r.id)
		}
	}
	want := []string{form.FieldEnergyLevel, form.FieldACHours, form.FieldWashingMachine, form.FieldLocation, form.FieldSeason}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Fatalf("energy rows = %v, want %v", ids, want)
	}
	if rows[len(rows)-1].kind != rowSave {
		t.Fatal("last row should be the save button")
	}
}

func TestRepliesFromPreviousSessionAreDropped(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	client, err := syncclient.NewClient("http://127.0.0.1:1", "first-session")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.TUI.ShowHelpOnStart = false
	cfg.Server.Email = "ana@example.com"

	b := newStubBackend()
	a := NewApp(Options{Config: cfg, Client: client, Backend: b, Now: fixedNow})
	a = send(t, a, tea.WindowSizeMsg{Width: 110, Height: 45})
	a = send(t, a, activateMsg{})

	// Stats requested by the first account, answered after the second signs in.
	ticket := a.ctrl.BeginFetchStats()
	a.pending++
	late := statsMsg{session: a.session, ticket: ticket, stats: model.Stats{Streak: 40}}

	m, _ := a.Update(logoutMsg{})
	a = m.(App)
	if a.pending != 0 {
		t.Fatalf("pending after sign out = %d, want 0", a.pending)
	}

	b.stats = model.Stats{Streak: 2, TotalDays: 2}
	a = send(t, a, loginMsg{email: "bo@example.com"})
	if a.pending != 0 {
		t.Fatalf("pending after sign in = %d, want 0", a.pending)
	}

	a = send(t, a, late)
	if a.pending != 0 {
		t.Fatalf("pending after late reply = %d, want 0", a.pending)
	}
	if a.view.stats == nil || a.view.stats.Streak != 2 {
		t.Fatalf("stats = %+v, want the second account's streak 2", a.view.stats)
	}
}
