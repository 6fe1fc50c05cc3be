package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/footprint/internal/config"
	"github.com/theirongolddev/footprint/internal/syncclient"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagEmail string
	flagName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&flagName, "name", "", "Display name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	email := firstNonEmpty(flagEmail, cfg.Server.Email)
	var password string

	form := huh.NewForm(huh.NewGroup(
		emailInput(&email),
		passwordInput(&password),
	)).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return err
	}

	return signIn(cfg, "", strings.TrimSpace(email), password)
}

func runRegister(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	name, email := flagName, flagEmail
	var password, confirm string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&name).
			Validate(notBlank("name")),
		emailInput(&email),
		passwordInput(&password),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm).
			Validate(func(s string) error {
				if s != password {
					return errors.New("passwords do not match")
				}
				return nil
			}),
	)).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return err
	}

	return signIn(cfg, strings.TrimSpace(name), strings.TrimSpace(email), password)
}

// signIn registers first when name is set, then logs in and stores the
// session in the config file.
func signIn(cfg config.Config, name, email, password string) error {
	cfg.Server.SessionCookie = ""
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	if name != "" {
		progress("  Creating account...\n")
		if err := client.Register(ctx, name, email, password); err != nil {
			return explain(err)
		}
	}
	progress("  Signing in...\n")
	if err := client.Login(ctx, email, password); err != nil {
		if errors.Is(err, syncclient.ErrRejected) {
			return explain(err)
		}
		return fmt.Errorf("signing in: %w", err)
	}

	if err := storeSession(email, client.SessionCookie()); err != nil {
		return err
	}
	fmt.Printf("\n  Signed in as %s.\n", email)
	fmt.Println("  Run `footprint` to open the dashboard.")
	fmt.Println()
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if cfg.Server.SessionCookie == "" {
		fmt.Println("\n  Not signed in.")
		fmt.Println()
		return nil
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext()
	defer cancel()
	if err := client.Logout(ctx); err != nil {
		progress("  Server sign-out failed: %v\n", err)
	}

	if err := storeSession(cfg.Server.Email, ""); err != nil {
		return err
	}
	fmt.Println("\n  Signed out.")
	fmt.Println()
	return nil
}

// storeSession writes the account fields into the config file, leaving the
// rest of the file as it was.
func storeSession(email, cookie string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Server.Email = email
	cfg.Server.SessionCookie = cookie
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func emailInput(v *string) *huh.Input {
	return huh.NewInput().
		Title("Email").
		Value(v).
		Validate(func(s string) error {
			if !strings.Contains(s, "@") {
				return errors.New("enter an email address")
			}
			return nil
		})
}

func passwordInput(v *string) *huh.Input {
	return huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(v).
		Validate(notBlank("password"))
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
