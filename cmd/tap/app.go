package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"github.com/taigrr/tap/internal/config"
	"github.com/taigrr/tap/internal/pathfilter"
	"github.com/taigrr/tap/internal/query"
	"github.com/taigrr/tap/internal/session"
	"github.com/taigrr/tap/internal/vault"
)

// app holds per-invocation state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	svc     *query.Service
}

func newApp() *app {
	return &app{v: config.New()}
}

// load resolves configuration and installs the logger.
func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))
	return nil
}

// service builds the vault index on first use.
func (a *app) service() (*query.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	if a.cfg == nil {
		if err := a.load(); err != nil {
			return nil, err
		}
	}

	idx, err := vault.Build(a.cfg.Vault, pathfilter.New(&a.cfg.Filter))
	if err != nil {
		return nil, err
	}
	slog.Debug("vault ready", slog.String("root", idx.Root()), slog.Int("notes", idx.Len()))

	a.svc = query.New(idx, session.New(a.cfg.StateDir))
	return a.svc, nil
}

func (a *app) close() error {
	if a.svc == nil {
		return nil
	}
	if err := a.svc.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
