package application

import (
	"context"
	"errors"
	"testing"

	"othereditor/internal/domain"
)

type memoryStore struct {
	loaded  domain.EditorBinaryConfig
	saved   []domain.EditorBinaryConfig
	loadErr error
	saveErr error
}

func (m *memoryStore) Load(_ context.Context) (domain.EditorBinaryConfig, error) {
	return m.loaded, m.loadErr
}

func (m *memoryStore) Save(_ context.Context, cfg domain.EditorBinaryConfig) error {
	m.saved = append(m.saved, cfg.Clone())
	return m.saveErr
}

func TestSettings_LoadMergesPartial(t *testing.T) {
	store := &memoryStore{loaded: domain.EditorBinaryConfig{domain.EditorVSCode: "/usr/local/bin/code"}}
	s := NewSettings(store)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	snap := s.Snapshot()
	if snap.Path(domain.EditorVSCode) != "/usr/local/bin/code" {
		t.Errorf("vscode path = %q", snap.Path(domain.EditorVSCode))
	}
	for _, id := range domain.Editors {
		if _, ok := snap[id]; !ok {
			t.Errorf("snapshot missing default entry for %s", id)
		}
	}
}

func TestSettings_SnapshotIsCopy(t *testing.T) {
	s := NewSettings(&memoryStore{})
	snap := s.Snapshot()
	snap[domain.EditorGVim] = "/tmp/gvim"

	if s.Snapshot().Path(domain.EditorGVim) != "" {
		t.Error("mutating a snapshot leaked into the owner")
	}
}

func TestSettings_SetPersistsEveryWrite(t *testing.T) {
	store := &memoryStore{}
	s := NewSettings(store)
	ctx := context.Background()

	if _, err := s.Set(ctx, domain.EditorVSCode, "/a/code"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := s.Set(ctx, domain.EditorVSCode, "/b/code"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if len(store.saved) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(store.saved))
	}
	if got := store.saved[1].Path(domain.EditorVSCode); got != "/b/code" {
		t.Errorf("last write = %q, want /b/code", got)
	}
	if got := s.Snapshot().Path(domain.EditorVSCode); got != "/b/code" {
		t.Errorf("snapshot = %q, want /b/code", got)
	}
}

func TestSettings_Errors(t *testing.T) {
	boom := errors.New("disk full")

	s := NewSettings(&memoryStore{loadErr: boom})
	if err := s.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Load error = %v, want %v", err, boom)
	}

	s = NewSettings(&memoryStore{saveErr: boom})
	if _, err := s.Set(context.Background(), domain.EditorGVim, "/usr/bin/gvim"); !errors.Is(err, boom) {
		t.Errorf("Set error = %v, want %v", err, boom)
	}
	if got := s.Snapshot().Path(domain.EditorGVim); got != "" {
		t.Errorf("unsaved path leaked into the snapshot: %q", got)
	}
}
