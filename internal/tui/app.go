// Package tui provides the Bubble Tea dashboard for footprint.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/theirongolddev/footprint/internal/config"
	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/store"
	"github.com/theirongolddev/footprint/internal/syncclient"
	"github.com/theirongolddev/footprint/internal/tui/components"
	"github.com/theirongolddev/footprint/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Messages carrying backend responses back into Update. Each carries the
// ticket issued when the request started and the sign-in session it was
// issued in.
type (
	activateMsg struct{}

	todayMsg struct {
		session int
		ticket  dashboard.Ticket
		today   *syncclient.Today
		err     error
	}

	statsMsg struct {
		session   int
		ticket    dashboard.Ticket
		stats     model.Stats
		err       error
		afterSave bool
	}

	weeklyMsg struct {
		session int
		ticket  dashboard.Ticket
		logs    []model.WeeklyLogEntry
		err     error
	}

	saveMsg struct {
		session int
		ticket  dashboard.Ticket
		score   model.CO2Score
		err     error
	}
)

// Options configures NewApp.
type Options struct {
	Config config.Config

	// Client talks to the backend and holds the session. When its session
	// is empty the App starts with the sign-in form.
	Client *syncclient.Client

	// Backend overrides Client for data requests.
	Backend dashboard.Backend

	// Badges records earned badges; nil keeps them in memory only.
	Badges *store.Store

	Now func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	client  *syncclient.Client
	backend dashboard.Backend
	badges  *store.Store
	now     func() time.Time

	ctrl *dashboard.Controller
	view *screenView

	// session counts sign-ins; replies from an earlier one are dropped.
	session int

	width  int
	height int

	loaded   bool
	pending  int
	showHelp bool
	editor   editorState

	// Sign-in (huh form)
	loginForm *huh.Form
	loginVals *loginValues
	loginErr  string

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
	minContentHeight = 5
)

// navTabs mirrors dashboard.Screens with their shortcut keys.
var navTabs = func() []components.Tab {
	tabs := make([]components.Tab, len(dashboard.Screens))
	for i, s := range dashboard.Screens {
		tabs[i] = components.Tab{Name: s.Title(), Key: rune('1' + i)}
	}
	return tabs
}()

// NewApp creates the TUI model. With a signed-in client (or an explicit
// Backend) the dashboard is built immediately; otherwise the sign-in form
// is shown first.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := App{
		cfg:      opts.Config,
		client:   opts.Client,
		backend:  opts.Backend,
		badges:   opts.Badges,
		now:      now,
		spinner:  sp,
		showHelp: opts.Config.TUI.ShowHelpOnStart,
	}
	if a.backend == nil && a.client != nil {
		a.backend = a.client
	}

	if opts.Backend == nil && a.client != nil && a.client.SessionCookie() == "" {
		a.loginForm, a.loginVals = newLoginForm(opts.Config.Server.Email)
		return a
	}
	a.buildController()
	return a
}

// buildController creates the state, view and controller for the signed-in
// account.
func (a *App) buildController() {
	var opts []dashboard.Option
	earned := presenter.BadgeSet{}
	if a.badges != nil {
		account := a.badges.ForAccount(a.cfg.Server.Email)
		if set, err := account.Set(); err != nil {
			log.Printf("footprint: loading badges: %v", err)
		} else {
			earned = set
		}
		opts = append(opts, dashboard.WithBadgeStore(account))
	}
	opts = append(opts, dashboard.WithClock(a.now, config.Location(a.cfg)))

	a.session++
	a.pending = 0
	a.view = newScreenView()
	a.ctrl = dashboard.New(dashboard.NewState(earned), a.view, a.backend, opts...)
	a.editor = editorState{}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion, a.spinner.Tick}
	if a.loginForm != nil {
		cmds = append(cmds, a.loginForm.Init())
	} else {
		cmds = append(cmds, func() tea.Msg { return activateMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.loginForm != nil {
			a.loginForm = a.loginForm.WithWidth(min(msg.Width, 60)).WithHeight(msg.Height)
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case loginMsg:
		return a.finishLogin(msg)

	case logoutMsg:
		return a.finishLogout(msg)

	case activateMsg:
		return a.activate()

	case todayMsg:
		if msg.session != a.session {
			return a, nil
		}
		a.pending--
		a.loaded = true
		a.ctrl.FinishFetchToday(msg.ticket, msg.today, msg.err)
		return a.checkSession(msg.err)

	case statsMsg:
		if msg.session != a.session {
			return a, nil
		}
		a.pending--
		a.ctrl.FinishFetchStats(msg.ticket, msg.stats, msg.err)
		if msg.afterSave {
			a.ctrl.ReturnToDashboard()
			a.editor = editorState{}
		}
		return a.checkSession(msg.err)

	case weeklyMsg:
		if msg.session != a.session {
			return a, nil
		}
		a.pending--
		a.ctrl.FinishFetchWeekly(msg.ticket, msg.logs, msg.err)
		return a.checkSession(msg.err)

	case saveMsg:
		if msg.session != a.session {
			return a, nil
		}
		a.pending--
		if a.ctrl.FinishSave(msg.ticket, msg.score, msg.err) {
			t := a.ctrl.BeginFetchStats()
			a.pending++
			return a, statsCmd(a.backend, a.session, t, true)
		}
		a.ctrl.ReturnToDashboard()
		a.editor = editorState{}
		return a.checkSession(msg.err)
	}

	if a.loginForm != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateLoginForm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.editor.editing {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if i := a.tabAtX(msg.X); i >= 0 {
				return a.navigate(dashboard.Screens[i])
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	if a.editor.editing {
		var cmd tea.Cmd
		a.editor.input, cmd = a.editor.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Any key dismisses the last alert.
	a.view.alert = ""

	if a.editor.editing {
		a, cmd, _ := a.updateEditor(msg)
		return a, cmd
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if _, ok := saveSection(a.view.screen); ok {
		if next, cmd, handled := a.updateEditor(msg); handled {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a.refreshScreen()
	case "tab", "]":
		return a.navigate(a.screenAt(1))
	case "shift+tab", "[":
		return a.navigate(a.screenAt(-1))
	case "esc":
		if a.view.screen != dashboard.ScreenDashboard {
			return a.navigate(dashboard.ScreenDashboard)
		}
		return a, nil
	case "L":
		if a.client != nil {
			return a, logoutCmd(a.client)
		}
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if i := components.TabIdxByKey(navTabs, msg.Runes[0]); i >= 0 {
			return a.navigate(dashboard.Screens[i])
		}
	}
	return a, nil
}

// screenAt returns the screen offset by delta from the current one,
// wrapping around.
func (a App) screenAt(delta int) dashboard.Screen {
	idx := screenIndex(a.view.screen)
	n := len(dashboard.Screens)
	return dashboard.Screens[(idx+delta+n)%n]
}

func screenIndex(s dashboard.Screen) int {
	for i, sc := range dashboard.Screens {
		if sc == s {
			return i
		}
	}
	return 0
}

// navigate shows screen with its own nav item highlighted and starts the
// fetch the screen needs.
func (a App) navigate(screen dashboard.Screen) (tea.Model, tea.Cmd) {
	if screen != a.view.screen {
		a.editor = editorState{}
	}
	return a.fetch(a.ctrl.Navigate(screen, screen))
}

func (a App) refreshScreen() (tea.Model, tea.Cmd) {
	switch a.view.screen {
	case dashboard.ScreenTrends:
		return a.fetch(dashboard.FetchWeekly)
	case dashboard.ScreenProfile:
		return a.fetch(dashboard.FetchStats)
	case dashboard.ScreenDashboard:
		return a.fetch(dashboard.FetchToday)
	}
	return a, nil
}

func (a App) fetch(f dashboard.Fetch) (tea.Model, tea.Cmd) {
	switch f {
	case dashboard.FetchToday:
		a.pending++
		return a, todayCmd(a.backend, a.session, a.ctrl.BeginFetchToday())
	case dashboard.FetchStats:
		a.pending++
		return a, statsCmd(a.backend, a.session, a.ctrl.BeginFetchStats(), false)
	case dashboard.FetchWeekly:
		a.pending++
		return a, weeklyCmd(a.backend, a.session, a.ctrl.BeginFetchWeekly())
	}
	return a, nil
}

// activate loads today's log, stats and the weekly chart.
func (a App) activate() (tea.Model, tea.Cmd) {
	today := a.ctrl.BeginFetchToday()
	stats := a.ctrl.BeginFetchStats()
	weekly := a.ctrl.BeginFetchWeekly()
	a.pending += 3
	return a, tea.Batch(
		todayCmd(a.backend, a.session, today),
		statsCmd(a.backend, a.session, stats, false),
		weeklyCmd(a.backend, a.session, weekly),
	)
}

// checkSession returns to the sign-in form when the server no longer
// accepts the stored session.
func (a App) checkSession(err error) (tea.Model, tea.Cmd) {
	if !errors.Is(err, syncclient.ErrUnauthorized) || a.client == nil || a.loginForm != nil {
		return a, nil
	}
	a.loginErr = "Session expired. Sign in again."
	a.loginForm, a.loginVals = newLoginForm(a.cfg.Server.Email)
	if a.width > 0 {
		a.loginForm = a.loginForm.WithWidth(min(a.width, 60)).WithHeight(a.height)
	}
	return a, a.loginForm.Init()
}

// ─── Commands ───────────────────────────────────────────────────

func todayCmd(b dashboard.Backend, session int, t dashboard.Ticket) tea.Cmd {
	return func() tea.Msg {
		today, err := b.FetchToday(context.Background())
		return todayMsg{session: session, ticket: t, today: today, err: err}
	}
}

func statsCmd(b dashboard.Backend, session int, t dashboard.Ticket, afterSave bool) tea.Cmd {
	return func() tea.Msg {
		stats, err := b.FetchStats(context.Background())
		return statsMsg{session: session, ticket: t, stats: stats, err: err, afterSave: afterSave}
	}
}

func weeklyCmd(b dashboard.Backend, session int, t dashboard.Ticket) tea.Cmd {
	return func() tea.Msg {
		logs, err := b.FetchWeekly(context.Background())
		return weeklyMsg{session: session, ticket: t, logs: logs, err: err}
	}
}

func saveCmd(b dashboard.Backend, session int, t dashboard.Ticket, entry model.DailyLog) tea.Cmd {
	return func() tea.Msg {
		score, err := b.SaveLog(context.Background(), entry)
		return saveMsg{session: session, ticket: t, score: score, err: err}
	}
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.loginForm != nil {
		return a.viewLogin()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  footprint needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("🌿 footprint"))
	b.WriteString(subtitleStyle.Render(" · daily carbon tracker"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading today's log from " + a.serverHost()))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) serverHost() string {
	if a.client != nil {
		return a.client.BaseURL()
	}
	return a.cfg.Server.BaseURL
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Travel).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("🌿 Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1-6", "Jump to screen"},
			{"tab ⇧tab", "Next / Previous screen"},
			{"] [", "Next / Previous screen"},
			{"esc", "Back to dashboard"},
			{"click", "Select screen in the top bar"},
		}},
		{"Logging", []struct{ key, desc string }{
			{"j k", "Move between fields"},
			{"h l", "Change a choice"},
			{"enter", "Edit number / toggle / save"},
			{"+ -", "Adjust a number by one"},
			{"ctrl+s", "Save this section"},
		}},
		{"General", []struct{ key, desc string }{
			{"r", "Refresh this screen"},
			{"L", "Sign out"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(navTabs, screenIndex(a.view.nav), w)

	hints := "[1-6] screens  [?] help  [q] quit"
	if _, ok := saveSection(a.view.screen); ok {
		hints = "[j/k] move  [enter] edit  [ctrl+s] save  [?] help"
	}
	bar := components.StatusBar{
		Hints:   hints,
		Alert:   a.view.alert,
		Account: a.cfg.Server.Email,
	}
	if a.pending > 0 {
		bar.Busy = a.spinner.View()
	}
	statusBar := components.RenderStatusBar(w, bar)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.view.screen {
	case dashboard.ScreenDashboard:
		content = a.renderDashboard(cw)
	case dashboard.ScreenTravel, dashboard.ScreenEnergy, dashboard.ScreenDiet:
		content = a.renderLogScreen(cw)
	case dashboard.ScreenTrends:
		content = a.renderTrends(cw)
	case dashboard.ScreenProfile:
		content = a.renderProfile(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the screen index under column x of the nav bar, or -1.
func (a App) tabAtX(x int) int {
	return components.TabAtX(navTabs, x)
}
