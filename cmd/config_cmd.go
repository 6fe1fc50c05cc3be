package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/footprint/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    URL:     %s%s\n", cfg.Server.BaseURL, envNote(config.EnvServerURL))
	if cfg.Server.Email != "" {
		fmt.Printf("    Account: %s\n", cfg.Server.Email)
	}
	if cfg.Server.SessionCookie != "" {
		fmt.Printf("    Session: %s%s\n", maskSession(cfg.Server.SessionCookie), envNote(config.EnvSession))
	} else {
		fmt.Println("    Session: not signed in")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Timezone: %s\n", cfg.General.Timezone)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Help on start: %v\n", cfg.TUI.ShowHelpOnStart)
	fmt.Println()

	fmt.Println("  Run `footprint setup` to reconfigure.")
	return nil
}

func envNote(name string) string {
	if os.Getenv(name) != "" {
		return "  (from " + name + ")"
	}
	return ""
}

func maskSession(s string) string {
	if len(s) > 16 {
		return s[:8] + "..." + s[len(s)-4:]
	}
	if len(s) > 4 {
		return s[:4] + "..."
	}
	return "****"
}
