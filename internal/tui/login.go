package tui

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/theirongolddev/footprint/internal/config"
	"github.com/theirongolddev/footprint/internal/syncclient"
	"github.com/theirongolddev/footprint/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	modeSignIn   = "signin"
	modeRegister = "register"
)

// loginValues holds the sign-in form's bound values. The form keeps pointers
// into it, so it lives on the heap next to the form.
type loginValues struct {
	mode     string
	name     string
	email    string
	password string
}

type (
	loginMsg struct {
		email string
		err   error
	}

	logoutMsg struct {
		err error
	}
)

func newLoginForm(email string) (*huh.Form, *loginValues) {
	vals := &loginValues{mode: modeSignIn, email: email}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to footprint").
				Description("Track the CO₂ of your day: travel, energy and diet.").
				Options(
					huh.NewOption("Sign in", modeSignIn),
					huh.NewOption("Create an account", modeRegister),
				).
				Value(&vals.mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&vals.name).
				Validate(required("name")),
		).WithHideFunc(func() bool { return vals.mode != modeRegister }),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&vals.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter an email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&vals.password).
				Validate(required("password")),
		),
	).WithTheme(huh.ThemeDracula())

	return form, vals
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func (a App) updateLoginForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.loginForm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.loginForm = f
	}

	switch a.loginForm.State {
	case huh.StateCompleted:
		vals := *a.loginVals
		a.loginErr = ""
		return a, loginCmd(a.client, vals)
	case huh.StateAborted:
		return a, tea.Quit
	}
	return a, cmd
}

// loginCmd registers first when asked to, then signs in.
func loginCmd(c *syncclient.Client, vals loginValues) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		email := strings.TrimSpace(vals.email)
		if vals.mode == modeRegister {
			if err := c.Register(ctx, strings.TrimSpace(vals.name), email, vals.password); err != nil {
				return loginMsg{email: email, err: err}
			}
		}
		return loginMsg{email: email, err: c.Login(ctx, email, vals.password)}
	}
}

func logoutCmd(c *syncclient.Client) tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: c.Logout(context.Background())}
	}
}

// finishLogin stores the new session and starts the dashboard, or shows the
// form again with the server's message.
func (a App) finishLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("footprint: sign in: %v", msg.err)
		a.loginErr = syncclient.ServerMessage(msg.err)
		a.loginForm, a.loginVals = newLoginForm(msg.email)
		if a.width > 0 {
			a.loginForm = a.loginForm.WithWidth(min(a.width, 60)).WithHeight(a.height)
		}
		return a, a.loginForm.Init()
	}

	a.cfg.Server.Email = msg.email
	a.cfg.Server.SessionCookie = a.client.SessionCookie()
	a.persistSession()

	a.loginForm = nil
	a.loginVals = nil
	a.loginErr = ""
	a.loaded = false
	a.buildController()
	return a.activate()
}

// finishLogout forgets the session and returns to the sign-in form.
func (a App) finishLogout(msg logoutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("footprint: sign out: %v", msg.err)
	}
	a.cfg.Server.SessionCookie = ""
	a.persistSession()

	// Requests still in flight belong to the account that signed out.
	a.session++
	a.pending = 0

	a.loginErr = ""
	a.loginForm, a.loginVals = newLoginForm(a.cfg.Server.Email)
	if a.width > 0 {
		a.loginForm = a.loginForm.WithWidth(min(a.width, 60)).WithHeight(a.height)
	}
	return a, a.loginForm.Init()
}

// persistSession writes the account fields to the config file, keeping
// whatever else the file holds.
func (a App) persistSession() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("footprint: loading config: %v", err)
		cfg = a.cfg
	}
	cfg.Server.Email = a.cfg.Server.Email
	cfg.Server.SessionCookie = a.cfg.Server.SessionCookie
	if err := config.Save(cfg); err != nil {
		log.Printf("footprint: saving session: %v", err)
	}
}

func (a App) viewLogin() string {
	t := theme.Active

	body := a.loginForm.View()
	if a.loginErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
		body = errStyle.Render("⚠ "+a.loginErr) + "\n\n" + body
	}
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("server: " + a.serverHost())

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(body + "\n" + hint)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
