package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("OBSIDIAN_PATH", "")
	t.Setenv("TAP_VAULT", "")
	t.Setenv("TAP_LIMIT", "")
	t.Setenv("TAP_LOG_LEVEL", "")
	return cfgHome
}

func writeConfig(t *testing.T, cfgHome, content string) {
	t.Helper()
	dir := filepath.Join(cfgHome, "tap")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolate(t)

		cfg, err := Load(New(), "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Limit != DefaultLimit {
			t.Errorf("Limit = %d, want %d", cfg.Limit, DefaultLimit)
		}
		if cfg.LogLevel != DefaultLogLevel || cfg.Style != DefaultStyle {
			t.Errorf("LogLevel = %q, Style = %q", cfg.LogLevel, cfg.Style)
		}
		if filepath.Base(cfg.StateDir) != "tap" {
			t.Errorf("StateDir = %q, want .../tap", cfg.StateDir)
		}
		if cfg.Vault != "" {
			t.Errorf("Vault = %q, want empty", cfg.Vault)
		}
	})

	t.Run("vault from OBSIDIAN_PATH", func(t *testing.T) {
		isolate(t)
		t.Setenv("OBSIDIAN_PATH", "/notes/obsidian")

		cfg, err := Load(New(), "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Vault != "/notes/obsidian" {
			t.Errorf("Vault = %q", cfg.Vault)
		}
	})

	t.Run("TAP_VAULT wins over OBSIDIAN_PATH", func(t *testing.T) {
		isolate(t)
		t.Setenv("OBSIDIAN_PATH", "/notes/obsidian")
		t.Setenv("TAP_VAULT", "/notes/tap")

		cfg, _ := Load(New(), "")
		if cfg.Vault != "/notes/tap" {
			t.Errorf("Vault = %q, want /notes/tap", cfg.Vault)
		}
	})

	t.Run("config file", func(t *testing.T) {
		cfgHome := isolate(t)
		writeConfig(t, cfgHome, "vault: /from/file\nlimit: 9\nstyle: light\nfilter:\n  ignored_patterns:\n    - templates/**\n")

		cfg, err := Load(New(), "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Vault != "/from/file" || cfg.Limit != 9 || cfg.Style != "light" {
			t.Errorf("cfg = %+v", cfg)
		}
		if !reflect.DeepEqual(cfg.Filter.IgnoredPatterns, []string{"templates/**"}) {
			t.Errorf("IgnoredPatterns = %v", cfg.Filter.IgnoredPatterns)
		}
	})

	t.Run("environment wins over config file", func(t *testing.T) {
		cfgHome := isolate(t)
		writeConfig(t, cfgHome, "limit: 9\n")
		t.Setenv("TAP_LIMIT", "3")

		cfg, _ := Load(New(), "")
		if cfg.Limit != 3 {
			t.Errorf("Limit = %d, want 3", cfg.Limit)
		}
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		isolate(t)

		if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Load() with a missing explicit file should fail")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"negative limit", "limit: -1\n"},
			{"unknown log level", "log_level: loud\n"},
			{"empty style", "style: \"\"\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfgHome := isolate(t)
				writeConfig(t, cfgHome, tt.content)

				if _, err := Load(New(), ""); err == nil {
					t.Errorf("Load() with %q should fail validation", tt.content)
				}
			})
		}
	})
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelWarn},
	}
	for _, tt := range tests {
		c := &Config{LogLevel: tt.in}
		if got := c.Level(); got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
