// Package config loads and saves footprint's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvServerURL = "FOOTPRINT_SERVER_URL"
	EnvSession   = "FOOTPRINT_SESSION"
	EnvDebug     = "FOOTPRINT_DEBUG"
)

// DefaultTheme is the theme of a fresh config.
const DefaultTheme = "forest"

// Themes lists the theme names appearance.theme accepts. The dashboard
// defines one palette per name.
var Themes = []string{DefaultTheme, "paper", "flexoki-dark", "terminal"}

// Config holds all footprint configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
}

// ServerConfig points at the tracking backend and holds the login session.
type ServerConfig struct {
	BaseURL       string `toml:"base_url" validate:"required,httpurl"`
	Email         string `toml:"email,omitempty" validate:"omitempty,email"`
	SessionCookie string `toml:"session_cookie,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// Timezone decides which calendar day is "today" for the weekly chart.
	Timezone string `toml:"timezone" validate:"required,timezone"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" validate:"required,theme"`
}

// TUIConfig holds dashboard preferences.
type TUIConfig struct {
	ShowHelpOnStart bool `toml:"show_help_on_start"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
		},
		General: GeneralConfig{
			Timezone: "UTC",
		},
		Appearance: AppearanceConfig{
			Theme: DefaultTheme,
		},
		TUI: TUIConfig{
			ShowHelpOnStart: true,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "footprint")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "footprint")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk. The file holds the session cookie, so it
// is created 0600.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// LoadEnv loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading .env: %w", err)
}

// GetServerURL returns the backend URL from env var or config, in that order.
func GetServerURL(cfg Config) string {
	if u := os.Getenv(EnvServerURL); u != "" {
		return u
	}
	return cfg.Server.BaseURL
}

// GetSessionCookie returns the session from env var or config, in that order.
func GetSessionCookie(cfg Config) string {
	if s := os.Getenv(EnvSession); s != "" {
		return s
	}
	return cfg.Server.SessionCookie
}

// Location loads the configured timezone, falling back to UTC.
func Location(cfg Config) *time.Location {
	if cfg.General.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(cfg.General.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			u, err := url.Parse(fl.Field().String())
			return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		})
		_ = validate.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			return slices.Contains(Themes, fl.Field().String())
		})
	})
	return validate
}

// Validate checks the config after env overrides are applied. All field
// problems are joined into one error.
func Validate(cfg Config) error {
	cfg.Server.BaseURL = GetServerURL(cfg)

	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("config: %s: invalid value %q (%s)", fe.Namespace(), fe.Value(), fe.Tag()))
	}
	return errors.Join(errs...)
}
