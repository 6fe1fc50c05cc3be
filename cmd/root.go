// Package cmd implements the footprint CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/footprint/internal/config"
	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/store"
	"github.com/theirongolddev/footprint/internal/syncclient"

	"github.com/spf13/cobra"
)

var (
	flagServer   string
	flagQuiet    bool
	flagTimezone string
)

const requestTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:          "footprint",
	Short:        "Daily carbon footprint tracker",
	Long:         "Log your travel, energy and diet, and watch your daily CO₂ footprint.",
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Backend URL (overrides config and "+config.EnvServerURL+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA timezone used for \"today\"")
}

// loadSettings is the shared config path used by all commands: .env, then
// the config file, then env vars and flags on top.
func loadSettings() (config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	cfg.Server.BaseURL = config.GetServerURL(cfg)
	cfg.Server.SessionCookie = config.GetSessionCookie(cfg)
	if flagServer != "" {
		cfg.Server.BaseURL = flagServer
	}
	if flagTimezone != "" {
		cfg.General.Timezone = flagTimezone
	}

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newClient(cfg config.Config) (*syncclient.Client, error) {
	return syncclient.NewClient(cfg.Server.BaseURL, cfg.Server.SessionCookie)
}

// requireSession loads settings and returns a client that holds a session.
func requireSession() (config.Config, *syncclient.Client, error) {
	cfg, err := loadSettings()
	if err != nil {
		return cfg, nil, err
	}
	if cfg.Server.SessionCookie == "" {
		return cfg, nil, errors.New("not signed in: run `footprint login` first")
	}
	client, err := newClient(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, client, nil
}

// newController builds a controller that renders into a cliView, persisting
// badges under the signed-in account. The returned close func releases the
// badge database.
func newController(cfg config.Config, client *syncclient.Client) (*dashboard.Controller, *cliView, func()) {
	view := newCLIView()
	earned := view.earned
	opts := []dashboard.Option{dashboard.WithClock(time.Now, config.Location(cfg))}
	closeFn := func() {}

	if st, err := store.Open(store.DefaultPath()); err != nil {
		progress("  Badge store unavailable: %v\n", err)
	} else {
		closeFn = func() { _ = st.Close() }
		account := st.ForAccount(cfg.Server.Email)
		if set, err := account.Set(); err == nil {
			earned = set
		}
		opts = append(opts, dashboard.WithBadgeStore(account))
	}

	ctrl := dashboard.New(dashboard.NewState(earned), view, client, opts...)
	return ctrl, view, closeFn
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// progress writes to stderr unless --quiet.
func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// explain turns client sentinels into actionable messages.
func explain(err error) error {
	switch {
	case errors.Is(err, syncclient.ErrUnauthorized):
		return errors.New("session expired: run `footprint login` again")
	case errors.Is(err, syncclient.ErrRejected):
		return errors.New(syncclient.ServerMessage(err))
	}
	return err
}
