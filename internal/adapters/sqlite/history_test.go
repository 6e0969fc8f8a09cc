package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"othereditor/internal/domain"
)

func openTestHistory(t *testing.T, opts ...Option) *History {
	t.Helper()
	opts = append([]Option{WithDatabasePath(filepath.Join(t.TempDir(), "history.db"))}, opts...)
	h, err := Open("/vault", opts...)
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Errorf("failed to close history: %v", err)
		}
	})
	return h
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []domain.LaunchRecord{
		{StartedAt: base, Editor: domain.EditorGVim, FilePath: "a.md", Command: "gvim ./a.md", Kind: domain.OutcomeSuccess},
		{StartedAt: base.Add(time.Minute), Editor: domain.EditorVSCode, FilePath: "b.md", Command: "code ./b.md", Kind: domain.OutcomeSuccess, ExitCode: 3},
		{StartedAt: base.Add(2 * time.Minute), Editor: domain.EditorNvim, FilePath: "c.md", Command: "nvim-qt ./c.md", Kind: domain.OutcomeProcessError, ExitCode: -1, Error: "run nvim-qt: not found"},
	}
	for _, rec := range records {
		if err := h.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	newest := got[0]
	if newest.Editor != domain.EditorNvim || newest.FilePath != "c.md" {
		t.Errorf("newest = %+v", newest)
	}
	if newest.Kind != domain.OutcomeProcessError || newest.ExitCode != -1 || newest.Error != "run nvim-qt: not found" {
		t.Errorf("outcome not preserved: %+v", newest)
	}
	if !newest.StartedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("StartedAt = %v", newest.StartedAt)
	}
	if newest.ID == 0 {
		t.Error("expected ID to be assigned")
	}

	if got[1].ExitCode != 3 || got[1].Kind != domain.OutcomeSuccess {
		t.Errorf("second = %+v", got[1])
	}
}

func TestHistory_RecentZeroLimit(t *testing.T) {
	h := openTestHistory(t)
	got, err := h.Recent(context.Background(), 0)
	if err != nil || got != nil {
		t.Errorf("Recent(0) = %v, %v", got, err)
	}
}

func TestHistory_Prunes(t *testing.T) {
	h := openTestHistory(t, WithMaxRecords(3))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := range 5 {
		rec := domain.LaunchRecord{
			StartedAt: base.Add(time.Duration(i) * time.Second),
			Editor:    domain.EditorVSCode,
			FilePath:  fmt.Sprintf("%d.md", i),
			Command:   "code",
		}
		if err := h.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	n, err := h.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 records after pruning, got %d", n)
	}

	got, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if got[len(got)-1].FilePath != "2.md" {
		t.Errorf("expected oldest kept to be 2.md, got %s", got[len(got)-1].FilePath)
	}
}

func TestHistory_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	h, err := Open("/vault", WithDatabasePath(path))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := h.Record(ctx, domain.LaunchRecord{StartedAt: time.Now(), Editor: domain.EditorGVim, FilePath: "a.md"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	h, err = Open("/vault", WithDatabasePath(path))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer h.Close()

	n, err := h.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count() = %d, %v", n, err)
	}
}

func TestDatabasePath_UsesXDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got := databasePath("/vault")
	want := filepath.Join(dataHome, "othereditor", hashVaultPath("/vault")+".db")
	if got != want {
		t.Errorf("databasePath() = %q, want %q", got, want)
	}
	if hashVaultPath("/vault") == hashVaultPath("/other") {
		t.Error("expected distinct hashes per vault")
	}
}
