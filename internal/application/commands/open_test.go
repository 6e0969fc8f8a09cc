package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"othereditor/internal/application"
	"othereditor/internal/domain"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const vscodeBin = "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code"

func macConfig() domain.EditorBinaryConfig {
	return domain.NewEditorBinaryConfig().With(domain.EditorVSCode, vscodeBin)
}

func TestOpenCommand_NoTargetFile(t *testing.T) {
	for _, platform := range []domain.Platform{domain.PlatformMacOS, domain.PlatformWindows, domain.PlatformOther} {
		t.Run(platform.String(), func(t *testing.T) {
			env := newTestEnv()
			deps := env.deps(fakeWorkspace{base: "/vault"}, platform, domain.LaunchModeExec)

			result, err := NewOpenCommand(deps, domain.EditorVSCode, macConfig(), "").Execute(context.Background())

			var valErr *application.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !errors.Is(err, application.ErrNoTargetFile) {
				t.Errorf("expected ErrNoTargetFile, got %v", err)
			}
			if result != nil {
				t.Error("expected no result")
			}

			notices := env.notifier.all()
			if len(notices) != 1 {
				t.Fatalf("expected exactly 1 notice, got %d", len(notices))
			}
			if notices[0].message != "No active file in workspace" || notices[0].duration != NoticeNoActiveFile {
				t.Errorf("unexpected notice: %+v", notices[0])
			}
			if n := len(env.launcher.calls()); n != 0 {
				t.Errorf("expected no launches, got %d", n)
			}
		})
	}
}

func TestOpenCommand_MacOSLaunchesConfiguredBinary(t *testing.T) {
	env := newTestEnv()
	ws := fakeWorkspace{base: "app://local/Users/test/My Vault?1690000000", active: "notes/a b.md"}
	deps := env.deps(ws, domain.PlatformMacOS, domain.LaunchModeShell)

	result, err := NewOpenCommand(deps, domain.EditorVSCode, macConfig(), "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if outcome := result.Wait(); !outcome.OK() {
		t.Fatalf("unexpected outcome: %v", outcome)
	}

	calls := env.launcher.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 launch, got %d", len(calls))
	}
	want := domain.Invocation{
		Command: vscodeBin,
		Args:    []string{"/Users/test/My Vault/notes/a b.md"},
	}
	if diff := cmp.Diff(want, calls[0]); diff != "" {
		t.Errorf("invocation mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{vscodeBin}, env.checker.checked); diff != "" {
		t.Errorf("existence check mismatch (-want +got):\n%s", diff)
	}
	if n := len(env.notifier.all()); n != 0 {
		t.Errorf("success must not be notified, got %d notices", n)
	}
}

func TestOpenCommand_MacOSBinaryMissingOnDisk(t *testing.T) {
	env := newTestEnv()
	env.checker.err = &fs.PathError{Op: "stat", Path: vscodeBin, Err: fs.ErrNotExist}
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformMacOS, domain.LaunchModeExec)

	_, err := NewOpenCommand(deps, domain.EditorVSCode, macConfig(), "").Execute(context.Background())

	var cfgErr *application.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !errors.Is(err, application.ErrBinaryNotFound) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped ErrBinaryNotFound and fs.ErrNotExist, got %v", err)
	}

	notices := env.notifier.all()
	if len(notices) != 1 {
		t.Fatalf("expected 1 notice, got %d", len(notices))
	}
	if want := "Bin path in settings may be wrong\nfile does not exist"; notices[0].message != want {
		t.Errorf("notice = %q, want %q", notices[0].message, want)
	}
	if n := len(env.launcher.calls()); n != 0 {
		t.Errorf("expected no launches, got %d", n)
	}
}

func TestOpenCommand_MacOSMissingPath(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformMacOS, domain.LaunchModeExec)

	_, err := NewOpenCommand(deps, domain.EditorGVim, macConfig(), "").Execute(context.Background())
	if !errors.Is(err, application.ErrMissingBinaryPath) {
		t.Fatalf("expected ErrMissingBinaryPath, got %v", err)
	}

	notices := env.notifier.all()
	if len(notices) != 1 || !strings.Contains(notices[0].message, "Please save absolute path to gVim") {
		t.Errorf("unexpected notices: %+v", notices)
	}
	if notices[0].duration != NoticeMissingPath {
		t.Errorf("duration = %v, want %v", notices[0].duration, NoticeMissingPath)
	}
	if len(env.checker.checked) != 0 {
		t.Error("existence check must not run without a configured path")
	}
	if n := len(env.launcher.calls()); n != 0 {
		t.Errorf("expected no launches, got %d", n)
	}
}

func TestOpenCommand_NonMacInvocation(t *testing.T) {
	tests := []struct {
		name     string
		platform domain.Platform
		mode     domain.LaunchMode
		want     domain.Invocation
		wantLine string
	}{
		{
			name:     "other exec mode",
			platform: domain.PlatformOther,
			mode:     domain.LaunchModeExec,
			want:     domain.Invocation{Command: "code", Args: []string{"./notes/a.md"}, Dir: "/vault"},
			wantLine: `cd "/vault" && code "./notes/a.md"`,
		},
		{
			name:     "other shell mode",
			platform: domain.PlatformOther,
			mode:     domain.LaunchModeShell,
			want:     domain.Invocation{Command: "sh", Args: []string{"-c", `cd "/vault" && code "./notes/a.md"`}},
		},
		{
			name:     "windows shell mode",
			platform: domain.PlatformWindows,
			mode:     domain.LaunchModeShell,
			want:     domain.Invocation{Command: "cmd", Args: []string{"/C", `cd /d "/vault" && code "./notes/a.md"`}},
		},
		{
			name:     "windows exec mode",
			platform: domain.PlatformWindows,
			mode:     domain.LaunchModeExec,
			want:     domain.Invocation{Command: "code", Args: []string{"./notes/a.md"}, Dir: "/vault"},
			wantLine: `cd /d "/vault" && code "./notes/a.md"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			deps := env.deps(fakeWorkspace{base: "/vault", active: "notes/a.md"}, tt.platform, tt.mode)

			// No configured paths: non-macOS platforms resolve through PATH
			result, err := NewOpenCommand(deps, domain.EditorVSCode, nil, "").Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			result.Wait()

			calls := env.launcher.calls()
			if len(calls) != 1 {
				t.Fatalf("expected 1 launch, got %d", len(calls))
			}
			if diff := cmp.Diff(tt.want, calls[0]); diff != "" {
				t.Errorf("invocation mismatch (-want +got):\n%s", diff)
			}
			if tt.wantLine != "" {
				if got := calls[0].ShellLine(tt.platform); got != tt.wantLine {
					t.Errorf("ShellLine() = %q, want %q", got, tt.wantLine)
				}
			}
			if len(env.checker.checked) != 0 {
				t.Error("existence check must only run on macOS")
			}
		})
	}
}

func TestOpenCommand_OverrideTakesPrecedence(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault", active: "active.md"}, domain.PlatformOther, domain.LaunchModeExec)

	result, err := NewOpenCommand(deps, domain.EditorGVim, nil, "/vault/picked/b.md").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	result.Wait()

	if result.Request.RelativeFilePath != "picked/b.md" {
		t.Errorf("RelativeFilePath = %q, want picked/b.md", result.Request.RelativeFilePath)
	}
	if got := env.launcher.calls()[0].Args; !cmp.Equal(got, []string{"./picked/b.md"}) {
		t.Errorf("Args = %v", got)
	}
}

func TestOpenCommand_OverrideOutsideVault(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault"}, domain.PlatformOther, domain.LaunchModeExec)

	_, err := NewOpenCommand(deps, domain.EditorGVim, nil, "/etc/passwd").Execute(context.Background())
	if !errors.Is(err, application.ErrOutsideVault) {
		t.Fatalf("expected ErrOutsideVault, got %v", err)
	}
	if n := len(env.launcher.calls()); n != 0 {
		t.Errorf("expected no launches, got %d", n)
	}
}

func TestOpenCommand_ProcessErrorIsNotified(t *testing.T) {
	env := newTestEnv()
	env.launcher.outcome = func(inv domain.Invocation) domain.LaunchOutcome {
		return domain.Failed(inv.Command, errors.New("executable file not found in $PATH"))
	}
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformOther, domain.LaunchModeExec)

	result, err := NewOpenCommand(deps, domain.EditorNvim, nil, "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	outcome := result.Wait()
	if outcome.Kind != domain.OutcomeProcessError {
		t.Fatalf("Kind = %v, want process error", outcome.Kind)
	}
	if !errors.Is(outcome.Err, application.ErrProcess) {
		t.Errorf("expected ErrProcess, got %v", outcome.Err)
	}

	notices := env.notifier.all()
	if len(notices) != 1 || notices[0].duration != NoticeProcessFailed {
		t.Fatalf("unexpected notices: %+v", notices)
	}
	if !strings.Contains(notices[0].message, "nvim") {
		t.Errorf("notice should name the editor: %q", notices[0].message)
	}
}

func TestOpenCommand_NonZeroExitIsSuccess(t *testing.T) {
	env := newTestEnv()
	env.launcher.outcome = func(domain.Invocation) domain.LaunchOutcome {
		return domain.Succeeded(3, "")
	}
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformOther, domain.LaunchModeExec)

	result, err := NewOpenCommand(deps, domain.EditorGVim, nil, "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	outcome := result.Wait()
	if !outcome.OK() || outcome.ExitCode != 3 {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
	if n := len(env.notifier.all()); n != 0 {
		t.Errorf("expected no notices, got %d", n)
	}
}

func TestOpenCommand_RecordsHistory(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformOther, domain.LaunchModeExec)

	result, err := NewOpenCommand(deps, domain.EditorGVim, nil, "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	result.Wait()

	_, _ = NewOpenCommand(deps, domain.EditorGVim, nil, "../escape.md").Execute(context.Background())

	records, _ := env.history.Recent(context.Background(), 10)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind != domain.OutcomeSuccess || records[0].FilePath != "a.md" || records[0].Command != "gvim ./a.md" {
		t.Errorf("unexpected success record: %+v", records[0])
	}
	if records[1].Kind != domain.OutcomeValidationError || records[1].Error == "" {
		t.Errorf("unexpected failure record: %+v", records[1])
	}
}

func TestOpenAll_IndependentConcurrentLaunches(t *testing.T) {
	const n = 25

	env := newTestEnv()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("notes/%02d.md", i)
	}
	// Exit code is derived from the file so every launch has a distinct outcome;
	// file 07 fails to start.
	env.launcher.outcome = func(inv domain.Invocation) domain.LaunchOutcome {
		var code int
		fmt.Sscanf(inv.Args[0], "./notes/%02d.md", &code)
		if code == 7 {
			return domain.Failed(inv.Command, errors.New("permission denied"))
		}
		return domain.Succeeded(code, "")
	}
	deps := env.deps(fakeWorkspace{base: "/vault"}, domain.PlatformOther, domain.LaunchModeExec)

	reports := OpenAll(context.Background(), deps, domain.EditorVSCode, nil, paths)
	outcomes := WaitAll(reports)

	if got := len(env.launcher.calls()); got != n {
		t.Fatalf("expected %d launches, got %d", n, got)
	}
	for i, r := range reports {
		if r.FilePath != paths[i] {
			t.Errorf("report %d is for %q, want %q", i, r.FilePath, paths[i])
		}
		if r.Err != nil {
			t.Errorf("report %d: unexpected error %v", i, r.Err)
			continue
		}
		if r.Result.Request.RelativeFilePath != paths[i] {
			t.Errorf("report %d request = %q", i, r.Result.Request.RelativeFilePath)
		}
		if i == 7 {
			if outcomes[i].Kind != domain.OutcomeProcessError {
				t.Errorf("outcome 7 = %v, want process error", outcomes[i])
			}
			continue
		}
		if !outcomes[i].OK() || outcomes[i].ExitCode != i {
			t.Errorf("outcome %d = %+v", i, outcomes[i])
		}
	}

	if got := len(env.notifier.all()); got != 1 {
		t.Errorf("expected 1 notice for the failed launch, got %d", got)
	}
}

func TestOpenAll_MixedFailures(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault"}, domain.PlatformOther, domain.LaunchModeExec)

	reports := OpenAll(context.Background(), deps, domain.EditorVSCode, nil, []string{"a.md", "", "../x.md", "b.md"})
	outcomes := WaitAll(reports)

	wantKinds := []domain.OutcomeKind{
		domain.OutcomeSuccess,
		domain.OutcomeValidationError,
		domain.OutcomeValidationError,
		domain.OutcomeSuccess,
	}
	for i, want := range wantKinds {
		if outcomes[i].Kind != want {
			t.Errorf("outcome %d = %v, want %v", i, outcomes[i].Kind, want)
		}
	}
	if got := len(env.launcher.calls()); got != 2 {
		t.Errorf("expected 2 launches, got %d", got)
	}
}

func TestOpenCommand_PlanHasNoSideEffects(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault", active: "notes/a.md"}, domain.PlatformWindows, domain.LaunchModeShell)

	inv, err := NewOpenCommand(deps, domain.EditorVSCode, domain.NewEditorBinaryConfig(), "").Plan(context.Background())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	want := domain.Invocation{Command: "cmd", Args: []string{"/C", `cd /d "/vault" && code "./notes/a.md"`}}
	if diff := cmp.Diff(want, inv); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
	if len(env.launcher.calls()) != 0 || len(env.notifier.all()) != 0 || len(env.history.records) != 0 {
		t.Error("expected Plan to launch, notify and record nothing")
	}
}

func TestOpenCommand_PlanReportsConfigurationError(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformMacOS, domain.LaunchModeExec)

	_, err := NewOpenCommand(deps, domain.EditorGVim, domain.NewEditorBinaryConfig(), "").Plan(context.Background())
	if !errors.Is(err, application.ErrMissingBinaryPath) {
		t.Errorf("expected ErrMissingBinaryPath, got %v", err)
	}
	if len(env.notifier.all()) != 0 {
		t.Error("expected no notices from Plan")
	}
}

func TestOpenCommand_MacOSExpandsHomeForCheckAndLaunch(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformMacOS, domain.LaunchModeExec)
	cfg := domain.NewEditorBinaryConfig().With(domain.EditorVSCode, "~/code")

	result, err := NewOpenCommand(deps, domain.EditorVSCode, cfg, "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	result.Wait()

	want := filepath.Join(home, "code")
	if diff := cmp.Diff([]string{want}, env.checker.checked); diff != "" {
		t.Errorf("existence check mismatch (-want +got):\n%s", diff)
	}
	calls := env.launcher.calls()
	if len(calls) != 1 || calls[0].Command != want {
		t.Errorf("expected %s to be started, got %+v", want, calls)
	}
}

func TestOpenCommand_MacOSHomeBinaryMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	env := newTestEnv()
	env.checker.err = &fs.PathError{Op: "stat", Path: "code", Err: fs.ErrNotExist}
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformMacOS, domain.LaunchModeExec)
	cfg := domain.NewEditorBinaryConfig().With(domain.EditorVSCode, "~/code")

	_, err := NewOpenCommand(deps, domain.EditorVSCode, cfg, "").Execute(context.Background())

	var cfgErr *application.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if n := len(env.launcher.calls()); n != 0 {
		t.Errorf("expected no launches, got %d", n)
	}
}

func TestOpenCommand_BaseWithoutPath(t *testing.T) {
	for _, base := range []string{"app://local", "", "   ", "relative/vault"} {
		t.Run(base, func(t *testing.T) {
			env := newTestEnv()
			deps := env.deps(fakeWorkspace{base: base, active: "a.md"}, domain.PlatformOther, domain.LaunchModeExec)

			_, err := NewOpenCommand(deps, domain.EditorVSCode, nil, "notes/../a.md").Execute(context.Background())

			var valErr *application.ValidationError
			if !errors.As(err, &valErr) || valErr.Field != "basePath" {
				t.Fatalf("expected basePath ValidationError, got %v", err)
			}
			if !errors.Is(err, application.ErrNoBasePath) {
				t.Errorf("expected ErrNoBasePath, got %v", err)
			}
			if n := len(env.launcher.calls()); n != 0 {
				t.Errorf("expected no launches, got %d", n)
			}
		})
	}
}

func TestOpenAll_BlankPathDoesNotOpenActiveFile(t *testing.T) {
	env := newTestEnv()
	deps := env.deps(fakeWorkspace{base: "/vault", active: "active.md"}, domain.PlatformOther, domain.LaunchModeExec)

	reports := OpenAll(context.Background(), deps, domain.EditorVSCode, nil, []string{"", " ", "b.md"})
	WaitAll(reports)

	for _, r := range reports[:2] {
		if !errors.Is(r.Err, application.ErrNoTargetFile) {
			t.Errorf("%q: expected ErrNoTargetFile, got %v", r.FilePath, r.Err)
		}
	}
	if reports[2].Err != nil {
		t.Errorf("b.md: %v", reports[2].Err)
	}

	calls := env.launcher.calls()
	if len(calls) != 1 || calls[0].Args[0] != "./b.md" {
		t.Errorf("expected only b.md to be launched, got %+v", calls)
	}
}

func TestOpenResult_EveryWaiterSeesTheOutcome(t *testing.T) {
	env := newTestEnv()
	env.launcher.outcome = func(domain.Invocation) domain.LaunchOutcome {
		return domain.Failed("code", errors.New("exec: not found"))
	}
	deps := env.deps(fakeWorkspace{base: "/vault", active: "a.md"}, domain.PlatformOther, domain.LaunchModeExec)

	result, err := NewOpenCommand(deps, domain.EditorVSCode, nil, "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	first := result.Wait()
	second := result.Wait()
	third := <-result.Done()
	for i, outcome := range []domain.LaunchOutcome{first, second, third} {
		if outcome.OK() || outcome.Kind != domain.OutcomeProcessError {
			t.Errorf("wait %d: expected process error, got %v", i+1, outcome)
		}
	}
}
