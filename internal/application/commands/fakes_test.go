package commands

import (
	"context"
	"sync"
	"time"

	"othereditor/internal/domain"
)

type fakeLauncher struct {
	mu          sync.Mutex
	invocations []domain.Invocation
	outcome     func(inv domain.Invocation) domain.LaunchOutcome
}

func (f *fakeLauncher) Launch(_ context.Context, inv domain.Invocation) <-chan domain.LaunchOutcome {
	f.mu.Lock()
	f.invocations = append(f.invocations, inv)
	f.mu.Unlock()

	out := make(chan domain.LaunchOutcome, 1)
	go func() {
		if f.outcome != nil {
			out <- f.outcome(inv)
		} else {
			out <- domain.Succeeded(0, "")
		}
		close(out)
	}()
	return out
}

func (f *fakeLauncher) calls() []domain.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Invocation(nil), f.invocations...)
}

type fakeChecker struct {
	err     error
	checked []string
}

func (f *fakeChecker) Check(_ context.Context, path string) error {
	f.checked = append(f.checked, path)
	return f.err
}

type notice struct {
	message  string
	duration time.Duration
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (f *fakeNotifier) Notify(message string, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{message, duration})
}

func (f *fakeNotifier) all() []notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notice(nil), f.notices...)
}

type fakeWorkspace struct {
	base   string
	active string
}

func (f fakeWorkspace) ActiveFilePath() (string, bool) {
	return f.active, f.active != ""
}

func (f fakeWorkspace) StorageBasePath() string {
	return f.base
}

type fixedPlatform domain.Platform

func (p fixedPlatform) Current() domain.Platform {
	return domain.Platform(p)
}

type fakeHistory struct {
	mu      sync.Mutex
	records []domain.LaunchRecord
}

func (f *fakeHistory) Record(_ context.Context, rec domain.LaunchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]domain.LaunchRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return append([]domain.LaunchRecord(nil), f.records[:limit]...), nil
}

func (f *fakeHistory) Close() error { return nil }

type testEnv struct {
	launcher *fakeLauncher
	checker  *fakeChecker
	notifier *fakeNotifier
	history  *fakeHistory
}

func newTestEnv() *testEnv {
	return &testEnv{
		launcher: &fakeLauncher{},
		checker:  &fakeChecker{},
		notifier: &fakeNotifier{},
		history:  &fakeHistory{},
	}
}

func (e *testEnv) deps(ws fakeWorkspace, platform domain.Platform, mode domain.LaunchMode) OpenDeps {
	return OpenDeps{
		Launcher:  e.launcher,
		Checker:   e.checker,
		Notifier:  e.notifier,
		Workspace: ws,
		Platform:  fixedPlatform(platform),
		History:   e.history,
		Logger:    discardLogger(),
		Mode:      mode,
	}
}
