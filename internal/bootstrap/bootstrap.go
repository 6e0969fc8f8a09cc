package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"othereditor/internal/adapters/editor"
	"othereditor/internal/adapters/filesystem"
	"othereditor/internal/adapters/obsidian"
	"othereditor/internal/adapters/platform"
	"othereditor/internal/adapters/settings"
	"othereditor/internal/adapters/sqlite"
	"othereditor/internal/application/plugin"
	"othereditor/internal/config"
	"othereditor/internal/logging"
	"othereditor/internal/ports"
)

// Runtime is a fully wired plugin together with the adapters behind it
type Runtime struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Vault    *obsidian.Vault
	Store    *settings.JSONStore
	History  *sqlite.History // nil when disabled or unavailable
	Plugin   *plugin.Plugin
	Actions  *plugin.ActionSet
	Notifier ports.Notifier
}

// Start builds the adapters for cfg and initializes the plugin. Logs go to
// logOutput, or stderr when nil.
func Start(ctx context.Context, cfg *config.Config, notifier ports.Notifier, logOutput io.Writer) (*Runtime, error) {
	logger := logging.New(cfg.LogLevel, logOutput)

	probe, err := platform.FromName(cfg.Platform)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Vault:    obsidian.NewVault(cfg.Vault),
		Store:    settings.NewJSONStore(cfg.SettingsPath),
		Notifier: notifier,
	}

	host := plugin.Host{
		Workspace: rt.Vault,
		Notifier:  notifier,
		Checker:   filesystem.NewChecker(),
		Launcher:  editor.NewLauncher(editor.WithLogger(logger), editor.WithWaitDelay(cfg.WaitDelay)),
		Platform:  probe,
		Logger:    logger,
		Mode:      cfg.LaunchMode,
	}

	if cfg.History {
		history, err := sqlite.Open(cfg.Vault)
		if err != nil {
			logger.WithError(err).Warn("launch history unavailable")
		} else {
			rt.History = history
			host.History = history
		}
	}

	rt.Plugin = plugin.New(host, rt.Store)
	rt.Actions, err = rt.Plugin.Init(ctx)
	if err != nil {
		rt.Plugin.Dispose()
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"vault":    rt.Vault.StorageBasePath(),
		"settings": rt.Store.Path(),
		"platform": probe.Current(),
		"mode":     cfg.LaunchMode,
	}).Debug("started")
	return rt, nil
}

// Close disposes the plugin
func (r *Runtime) Close() error {
	return r.Plugin.Dispose()
}
