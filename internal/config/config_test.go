package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Fatal("Exists = true before any Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://footprint.example.com"
	cfg.Server.Email = "ana@example.com"
	cfg.Server.SessionCookie = "eyJ1c2VyX2lkIjoiMSJ9"
	cfg.General.Timezone = "Asia/Kolkata"
	cfg.Appearance.Theme = "paper"
	cfg.TUI.ShowHelpOnStart = false

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "footprint", "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "footprint", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"terminal\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "terminal" {
		t.Errorf("Theme = %q, want terminal", cfg.Appearance.Theme)
	}
	if cfg.General.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want default UTC", cfg.General.Timezone)
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.SessionCookie = "from-file"

	t.Setenv(EnvServerURL, "https://env.example.com")
	t.Setenv(EnvSession, "from-env")

	if got := GetServerURL(cfg); got != "https://env.example.com" {
		t.Errorf("GetServerURL = %q", got)
	}
	if got := GetSessionCookie(cfg); got != "from-env" {
		t.Errorf("GetSessionCookie = %q", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvServerURL+"=https://dotenv.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv(EnvServerURL, "")
	os.Unsetenv(EnvServerURL)

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := GetServerURL(DefaultConfig()); got != "https://dotenv.example.com" {
		t.Fatalf("GetServerURL = %q, want value from .env", got)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv without .env = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("Validate(defaults) = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "ftp://nope"
	cfg.General.Timezone = "Mars/Olympus"
	cfg.Appearance.Theme = "neon"
	cfg.Server.Email = "not-an-email"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate accepted a bad config")
	}
	for _, field := range []string{"BaseURL", "Timezone", "Theme", "Email"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	if Location(cfg) != time.UTC {
		t.Error("default location should be UTC")
	}
	cfg.General.Timezone = "Europe/Berlin"
	if got := Location(cfg).String(); got != "Europe/Berlin" {
		t.Errorf("Location = %s", got)
	}
	cfg.General.Timezone = "bogus"
	if Location(cfg) != time.UTC {
		t.Error("invalid timezone should fall back to UTC")
	}
}

func TestValidateAcceptsEveryTheme(t *testing.T) {
	for _, name := range Themes {
		cfg := DefaultConfig()
		cfg.Appearance.Theme = name
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate(theme %q) = %v", name, err)
		}
	}
}
