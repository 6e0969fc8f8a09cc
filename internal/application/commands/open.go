package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"othereditor/internal/application"
	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// Notice durations, matching what users of the plugin are used to
const (
	NoticeNoActiveFile  = 6 * time.Second
	NoticeMissingPath   = 7 * time.Second
	NoticeWrongBinPath  = 5 * time.Second
	NoticeProcessFailed = 5 * time.Second
)

// OpenDeps are the collaborators an OpenCommand needs
type OpenDeps struct {
	Launcher  ports.ProcessLauncher
	Checker   ports.PathChecker
	Notifier  ports.Notifier
	Workspace ports.Workspace
	Platform  ports.PlatformProbe
	History   ports.LaunchHistory // optional
	Logger    logrus.FieldLogger  // optional
	Mode      domain.LaunchMode
}

// OpenResult describes a launch that has been started. Any number of
// callers may wait on it; all of them see the same outcome.
type OpenResult struct {
	Request    domain.LaunchRequest
	Platform   domain.Platform
	Invocation domain.Invocation
	Message    string

	resolved chan struct{}
	outcome  domain.LaunchOutcome
}

func newOpenResult() *OpenResult {
	return &OpenResult{resolved: make(chan struct{})}
}

// resolve stores the outcome and releases every waiter; it is called once
func (r *OpenResult) resolve(outcome domain.LaunchOutcome) {
	r.outcome = outcome
	close(r.resolved)
}

// Done receives the launch outcome once it has been reported. Every call
// returns a new channel delivering the outcome exactly once.
func (r *OpenResult) Done() <-chan domain.LaunchOutcome {
	ch := make(chan domain.LaunchOutcome, 1)
	go func() {
		ch <- r.Wait()
		close(ch)
	}()
	return ch
}

// Wait blocks until the launched process has exited or failed to start
func (r *OpenResult) Wait() domain.LaunchOutcome {
	<-r.resolved
	return r.outcome
}

// OpenCommand opens a vault file in an external editor
type OpenCommand struct {
	deps             OpenDeps
	Editor           domain.EditorID
	Config           domain.EditorBinaryConfig
	OverrideFilePath string
}

// NewOpenCommand creates a new OpenCommand. cfg is a snapshot; the command
// never writes to it.
func NewOpenCommand(deps OpenDeps, editor domain.EditorID, cfg domain.EditorBinaryConfig, overrideFilePath string) *OpenCommand {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &OpenCommand{
		deps:             deps,
		Editor:           editor,
		Config:           cfg,
		OverrideFilePath: overrideFilePath,
	}
}

// Validate determines the launch request: the override if given, otherwise
// the active file of the workspace
func (c *OpenCommand) Validate() (domain.LaunchRequest, error) {
	req := domain.LaunchRequest{Editor: c.Editor}

	base, err := domain.ResolveBasePath(c.deps.Workspace.StorageBasePath())
	if err != nil {
		return req, &application.ValidationError{
			Field:   "basePath",
			Message: "Vault path is not available",
			Err:     err,
		}
	}
	req.BasePath = base

	target := c.OverrideFilePath
	if target == "" {
		if active, ok := c.deps.Workspace.ActiveFilePath(); ok {
			target = active
		}
	}

	rel, err := domain.RelativeToBase(req.BasePath, target)
	if err != nil {
		if errors.Is(err, domain.ErrNoTargetFile) {
			return req, &application.ValidationError{
				Field:   "filePath",
				Message: "No active file in workspace",
				Err:     err,
			}
		}
		return req, &application.ValidationError{
			Field:   "filePath",
			Message: err.Error(),
			Err:     err,
		}
	}

	req.RelativeFilePath = rel
	return req, nil
}

// Execute runs Validate, Resolve, the existence check on macOS and finally
// starts the editor. Validation and configuration failures are notified and
// returned; process failures are notified once the launch resolves.
func (c *OpenCommand) Execute(ctx context.Context) (*OpenResult, error) {
	log := c.deps.Logger.WithField("editor", c.Editor)

	req, err := c.Validate()
	if err != nil {
		c.fail(ctx, req, err, NoticeNoActiveFile)
		return nil, err
	}
	log = log.WithField("file", req.RelativeFilePath)

	platform := c.deps.Platform.Current()
	bin, err := domain.Resolve(c.Editor, c.Config, platform)
	if err != nil {
		c.fail(ctx, req, err, NoticeMissingPath)
		return nil, err
	}

	inv, err := c.invocation(ctx, req, bin, platform)
	if err != nil {
		c.fail(ctx, req, err, NoticeWrongBinPath)
		return nil, err
	}

	log.WithField("command", inv.String()).Debug("launching editor")
	startedAt := time.Now()
	outcomes := c.deps.Launcher.Launch(ctx, inv)

	result := newOpenResult()
	result.Request = req
	result.Platform = platform
	result.Invocation = inv
	result.Message = fmt.Sprintf("Opening %s in %s", req.RelativeFilePath, c.Editor.DisplayName())

	go func() {
		outcome, ok := <-outcomes
		if !ok {
			outcome = domain.Failed(inv.Command, errors.New("launcher closed without an outcome"))
		}
		c.report(ctx, req, inv, outcome, startedAt)
		result.resolve(outcome)
	}()

	return result, nil
}

// Plan resolves the invocation Execute would start, without notifying,
// recording or launching anything
func (c *OpenCommand) Plan(ctx context.Context) (domain.Invocation, error) {
	req, err := c.Validate()
	if err != nil {
		return domain.Invocation{}, err
	}

	platform := c.deps.Platform.Current()
	bin, err := domain.Resolve(c.Editor, c.Config, platform)
	if err != nil {
		return domain.Invocation{}, err
	}
	return c.invocation(ctx, req, bin, platform)
}

// invocation builds the platform-specific invocation for a resolved binary
func (c *OpenCommand) invocation(ctx context.Context, req domain.LaunchRequest, bin domain.ResolvedBinary, platform domain.Platform) (domain.Invocation, error) {
	if platform == domain.PlatformMacOS {
		// the checked path and the started path must be the same file
		home, _ := os.UserHomeDir()
		bin.Command = domain.ExpandHome(bin.Command, home)

		target := domain.ComposePath(req.BasePath, req.RelativeFilePath)
		if err := c.deps.Checker.Check(ctx, bin.Command); err != nil {
			return domain.Invocation{}, &application.ConfigurationError{
				Editor: c.Editor,
				Reason: fmt.Sprintf("binary not found at %s", bin.Command),
				Hint:   "Bin path in settings may be wrong\n" + errorDetail(err),
				Err:    fmt.Errorf("%w: %w", domain.ErrBinaryNotFound, err),
			}
		}
		return domain.BuildInvocation(bin.Command, []string{target}), nil
	}

	inv := domain.BuildInvocation(bin.Command, []string{"./" + req.RelativeFilePath}).InDir(req.BasePath)
	if c.deps.Mode == domain.LaunchModeShell {
		return domain.ShellInvocation(platform, inv.ShellLine(platform)), nil
	}
	return inv, nil
}

// fail notifies and records an error that ended the invocation before launch
func (c *OpenCommand) fail(ctx context.Context, req domain.LaunchRequest, err error, duration time.Duration) {
	message := err.Error()
	var valErr *application.ValidationError
	var cfgErr *application.ConfigurationError
	switch {
	case errors.As(err, &valErr):
		message = valErr.Message
	case errors.As(err, &cfgErr):
		message = cfgErr.Hint
	}

	c.deps.Logger.WithError(err).WithField("editor", c.Editor).Warn("open aborted")
	c.notify(message, duration)
	c.record(ctx, req, domain.Invocation{}, domain.OutcomeFromError(err), time.Now())
}

// report surfaces a launch outcome. Success is only logged.
func (c *OpenCommand) report(ctx context.Context, req domain.LaunchRequest, inv domain.Invocation, outcome domain.LaunchOutcome, startedAt time.Time) {
	log := c.deps.Logger.WithFields(logrus.Fields{
		"editor":  c.Editor,
		"file":    req.RelativeFilePath,
		"command": inv.String(),
	})

	if outcome.OK() {
		log.WithFields(logrus.Fields{
			"exit_code": outcome.ExitCode,
			"signal":    outcome.Signal,
		}).Info("editor exited")
	} else {
		log.WithError(outcome.Err).Error("editor launch failed")
		c.notify(fmt.Sprintf("Failed to open %s in %s\n%v", req.RelativeFilePath, c.Editor.DisplayName(), outcome.Err), NoticeProcessFailed)
	}

	c.record(ctx, req, inv, outcome, startedAt)
}

func (c *OpenCommand) notify(message string, duration time.Duration) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(message, duration)
	}
}

func (c *OpenCommand) record(ctx context.Context, req domain.LaunchRequest, inv domain.Invocation, outcome domain.LaunchOutcome, startedAt time.Time) {
	if c.deps.History == nil {
		return
	}
	rec := domain.NewLaunchRecord(req, inv, outcome, startedAt)
	if err := c.deps.History.Record(context.WithoutCancel(ctx), rec); err != nil {
		c.deps.Logger.WithError(err).Warn("failed to record launch")
	}
}

// errorDetail strips the operation and path from filesystem errors, leaving
// e.g. "no such file or directory"
func errorDetail(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
