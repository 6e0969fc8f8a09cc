package application

import (
	"context"
	"fmt"
	"sync"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// Settings owns the editor binary configuration. Callers get copies; every
// change is persisted immediately and the last write wins.
type Settings struct {
	store ports.SettingsStore

	mu  sync.RWMutex
	cfg domain.EditorBinaryConfig
}

// NewSettings creates a settings owner backed by store
func NewSettings(store ports.SettingsStore) *Settings {
	return &Settings{
		store: store,
		cfg:   domain.NewEditorBinaryConfig(),
	}
}

// Load reads the persisted document and merges it over the defaults
func (s *Settings) Load(ctx context.Context) error {
	partial, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	s.cfg = domain.NewEditorBinaryConfig().Merge(partial)
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current configuration
func (s *Settings) Snapshot() domain.EditorBinaryConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Set replaces one editor path and persists the whole configuration. The
// change only takes effect once it has been saved.
func (s *Settings) Set(ctx context.Context, id domain.EditorID, path string) (domain.EditorBinaryConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg.With(id, path)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.cfg = next
	return next.Clone(), nil
}
