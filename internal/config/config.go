// Package config loads tap's settings from flags, the environment, a .env
// file and an optional YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"github.com/taigrr/tap/internal/session"
	"github.com/taigrr/tap/internal/types"
)

// Keys understood by the config layer.
const (
	KeyVault    = "vault"
	KeyLimit    = "limit"
	KeyStateDir = "state_dir"
	KeyLogLevel = "log_level"
	KeyStyle    = "style"
	KeyFilter   = "filter"
)

const (
	DefaultLimit    = 5
	DefaultLogLevel = "warn"
	DefaultStyle    = "dracula"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config is the resolved configuration.
type Config struct {
	Vault    string                 `mapstructure:"vault"`
	Limit    int                    `mapstructure:"limit"`
	StateDir string                 `mapstructure:"state_dir"`
	LogLevel string                 `mapstructure:"log_level"`
	Style    string                 `mapstructure:"style"`
	Filter   types.PathFilterConfig `mapstructure:"filter"`
}

// Validate checks the resolved values. The vault path itself is checked when
// the index is built.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Limit, validation.Min(0)),
		validation.Field(&c.StateDir, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Style, validation.Required),
	)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return slog.LevelWarn
}

// Dir returns $XDG_CONFIG_HOME/tap, falling back to the OS config dir.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tap")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tap")
	}
	return ""
}

// New returns a viper instance with tap's defaults, environment bindings and
// config search path. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyLimit, DefaultLimit)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyStyle, DefaultStyle)
	if dir, err := session.DefaultDir(); err == nil {
		v.SetDefault(KeyStateDir, dir)
	}

	v.SetEnvPrefix("tap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyVault, "TAP_VAULT", "OBSIDIAN_PATH")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir := Dir(); dir != "" {
		v.AddConfigPath(dir)
	}
	return v
}

// Load reads the config file, if any, and returns the validated config. An
// explicit file that cannot be read is an error; a missing default file is
// not.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	} else {
		slog.Debug("config file loaded", slog.String("path", v.ConfigFileUsed()))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
