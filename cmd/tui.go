package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/theirongolddev/footprint/internal/config"
	"github.com/theirongolddev/footprint/internal/store"
	"github.com/theirongolddev/footprint/internal/tui"
	"github.com/theirongolddev/footprint/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Bubble Tea owns the terminal, so log lines go to a file or nowhere.
	if os.Getenv(config.EnvDebug) != "" {
		f, err := tea.LogToFile("footprint-debug.log", "footprint")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var badges *store.Store
	if st, err := store.Open(store.DefaultPath()); err != nil {
		log.Printf("footprint: badge store unavailable: %v", err)
	} else {
		badges = st
		defer st.Close()
	}

	app := tui.NewApp(tui.Options{
		Config: cfg,
		Client: client,
		Badges: badges,
		Now:    time.Now,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
