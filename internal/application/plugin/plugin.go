package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"othereditor/internal/application"
	"othereditor/internal/application/commands"
	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// ContextMenuEditor is the editor bound to the file context menu
const ContextMenuEditor = domain.EditorVSCode

// ContextMenuTitle is the label of the file context menu item
const ContextMenuTitle = "Open in other editor"

// ContextMenuMissingPath is shown once per click when the context menu editor
// has no binary path on macOS
const ContextMenuMissingPath = "Please save vscode editor path in settings."

// NoticeContextMenuMissingPath is how long ContextMenuMissingPath stays up
const NoticeContextMenuMissingPath = 5 * time.Second

// Host bundles the collaborators the host application provides
type Host struct {
	Workspace ports.Workspace
	Notifier  ports.Notifier
	Checker   ports.PathChecker
	Launcher  ports.ProcessLauncher
	Platform  ports.PlatformProbe
	History   ports.LaunchHistory // optional
	Logger    logrus.FieldLogger  // optional
	Mode      domain.LaunchMode
}

// Action is a named host command
type Action struct {
	ID     string
	Name   string
	Editor domain.EditorID

	run func(ctx context.Context) (*commands.OpenResult, error)
}

// Run opens the active file in the action's editor
func (a Action) Run(ctx context.Context) (*commands.OpenResult, error) {
	return a.run(ctx)
}

// MenuItem is a file context menu contribution
type MenuItem struct {
	Title  string
	Editor domain.EditorID

	run func(ctx context.Context, paths []string) []commands.OpenReport
}

// Run opens every selected path, one launch per path
func (m MenuItem) Run(ctx context.Context, paths []string) []commands.OpenReport {
	return m.run(ctx, paths)
}

// ActionSet is everything the plugin registers with the host
type ActionSet struct {
	Actions     []Action
	ContextMenu MenuItem
}

// Lookup finds an action by ID
func (s *ActionSet) Lookup(id string) (Action, bool) {
	for _, a := range s.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Plugin wires the open commands to a host
type Plugin struct {
	host     Host
	settings *application.Settings

	mu       sync.RWMutex
	disposed bool
}

// New creates a plugin for host, persisting settings through store
func New(host Host, store ports.SettingsStore) *Plugin {
	if host.Logger == nil {
		host.Logger = logrus.StandardLogger()
	}
	return &Plugin{
		host:     host,
		settings: application.NewSettings(store),
	}
}

// Init loads the persisted settings and returns the actions to register
func (p *Plugin) Init(ctx context.Context) (*ActionSet, error) {
	if err := p.settings.Load(ctx); err != nil {
		return nil, err
	}

	set := &ActionSet{}
	for _, id := range domain.Editors {
		set.Actions = append(set.Actions, Action{
			ID:     id.ActionID(),
			Name:   fmt.Sprintf("Open current active file in %s", id.DisplayName()),
			Editor: id,
			run: func(ctx context.Context) (*commands.OpenResult, error) {
				return p.Open(ctx, id, "")
			},
		})
	}

	set.ContextMenu = MenuItem{
		Title:  ContextMenuTitle,
		Editor: ContextMenuEditor,
		run:    p.openFromMenu,
	}

	p.host.Logger.WithField("actions", len(set.Actions)).Debug("plugin initialized")
	return set, nil
}

// Dispose releases the launch history. Actions run after Dispose fail with
// application.ErrDisposed.
func (p *Plugin) Dispose() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disposed {
		return nil
	}
	p.disposed = true

	if p.host.History != nil {
		return p.host.History.Close()
	}
	return nil
}

// Settings returns the settings owner
func (p *Plugin) Settings() *application.Settings {
	return p.settings
}

// Platform returns the platform launch conventions are chosen for
func (p *Plugin) Platform() domain.Platform {
	return p.host.Platform.Current()
}

// History returns the launch history, nil when disabled
func (p *Plugin) History() ports.LaunchHistory {
	return p.host.History
}

// Open opens overrideFilePath, or the active file when empty, in editor
func (p *Plugin) Open(ctx context.Context, editor domain.EditorID, overrideFilePath string) (*commands.OpenResult, error) {
	if err := p.checkActive(); err != nil {
		return nil, err
	}
	cmd := commands.NewOpenCommand(p.deps(), editor, p.settings.Snapshot(), overrideFilePath)
	return cmd.Execute(ctx)
}

// Plan returns the invocation Open would start, without starting it
func (p *Plugin) Plan(ctx context.Context, editor domain.EditorID, overrideFilePath string) (domain.Invocation, error) {
	if err := p.checkActive(); err != nil {
		return domain.Invocation{}, err
	}
	cmd := commands.NewOpenCommand(p.deps(), editor, p.settings.Snapshot(), overrideFilePath)
	return cmd.Plan(ctx)
}

// OpenAll opens each path in editor independently
func (p *Plugin) OpenAll(ctx context.Context, editor domain.EditorID, paths []string) []commands.OpenReport {
	if err := p.checkActive(); err != nil {
		reports := make([]commands.OpenReport, len(paths))
		for i, path := range paths {
			reports[i] = commands.OpenReport{FilePath: path, Err: err}
		}
		return reports
	}
	return commands.OpenAll(ctx, p.deps(), editor, p.settings.Snapshot(), paths)
}

// openFromMenu opens the selected paths in the context menu editor. On macOS
// an unconfigured editor is reported with a single notice for the whole
// selection.
func (p *Plugin) openFromMenu(ctx context.Context, paths []string) []commands.OpenReport {
	if p.checkActive() == nil && p.Platform() == domain.PlatformMacOS && p.settings.Snapshot().Path(ContextMenuEditor) == "" {
		if p.host.Notifier != nil {
			p.host.Notifier.Notify(ContextMenuMissingPath, NoticeContextMenuMissingPath)
		}
		err := &application.ConfigurationError{
			Editor: ContextMenuEditor,
			Reason: application.ErrMissingBinaryPath.Error(),
			Hint:   ContextMenuMissingPath,
			Err:    application.ErrMissingBinaryPath,
		}
		reports := make([]commands.OpenReport, len(paths))
		for i, path := range paths {
			reports[i] = commands.OpenReport{FilePath: path, Err: err}
		}
		return reports
	}
	return p.OpenAll(ctx, ContextMenuEditor, paths)
}

func (p *Plugin) checkActive() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.disposed {
		return application.ErrDisposed
	}
	return nil
}

func (p *Plugin) deps() commands.OpenDeps {
	return commands.OpenDeps{
		Launcher:  p.host.Launcher,
		Checker:   p.host.Checker,
		Notifier:  p.host.Notifier,
		Workspace: p.host.Workspace,
		Platform:  p.host.Platform,
		History:   p.host.History,
		Logger:    p.host.Logger,
		Mode:      p.host.Mode,
	}
}
