package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"othereditor/internal/adapters/notify"
	"othereditor/internal/adapters/tui"
	"othereditor/internal/bootstrap"
	"othereditor/internal/config"
)

// LogFile is written under the config directory while the TUI owns the terminal
const LogFile = "othereditor.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.New())
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	notices := notify.NewCollector()
	rt, err := bootstrap.Start(context.Background(), cfg, notices, logFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			rt.Logger.WithError(err).Warn("failed to close")
		}
	}()

	app := tui.NewApp(rt.Plugin, rt.Vault, rt.Vault.StorageBasePath(), notices)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func openLogFile() (*os.File, error) {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
