package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"othereditor/internal/adapters/notify"
	"othereditor/internal/adapters/tui/styles"
	"othereditor/internal/adapters/tui/views"
	"othereditor/internal/application/commands"
	"othereditor/internal/application/plugin"
	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSettings
	ViewHistory
	ViewHelp
)

// App is the main TUI application model
type App struct {
	plugin  *plugin.Plugin
	notices *notify.Collector

	state    ViewState
	browser  *views.BrowserModel
	settings *views.SettingsModel
	history  *views.HistoryModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. notices must be the notifier the
// plugin was built with.
func NewApp(p *plugin.Plugin, files ports.VaultBrowser, basePath string, notices *notify.Collector) *App {
	return &App{
		plugin:   p,
		notices:  notices,
		state:    ViewBrowser,
		browser:  views.NewBrowserModel(files, basePath, plugin.ContextMenuEditor),
		settings: views.NewSettingsModel(p.Platform()),
		history:  views.NewHistoryModel(),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

type openedMsg struct {
	reports []commands.OpenReport
}

type launchDoneMsg struct {
	file    string
	editor  domain.EditorID
	outcome domain.LaunchOutcome
}

type noticeExpiredMsg struct{}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.settings.SetSize(msg.Width, msg.Height)
		a.history.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSettingsMsg:
		a.state = ViewSettings
		a.settings.Load(a.plugin.Settings().Snapshot())
		return a, a.settings.Init()

	case views.SwitchToHistoryMsg:
		a.state = ViewHistory
		a.loadHistory()
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SaveSettingsMsg:
		return a, a.saveSettings(msg.Paths)

	case views.OpenFilesMsg:
		return a, a.open(msg.Editor, msg.Paths)

	case openedMsg:
		return a, a.handleOpened(msg.reports)

	case launchDoneMsg:
		if msg.outcome.OK() {
			a.browser.SetMessage(fmt.Sprintf("%s: %s %s", msg.file, msg.editor.DisplayName(), msg.outcome), false)
		}
		return a, a.expireNotice()

	case noticeExpiredMsg:
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSettings:
		_, cmd = a.settings.Update(msg)
	case ViewHistory:
		_, cmd = a.history.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// open starts one launch per path; every launch then waits for its outcome
func (a *App) open(editor domain.EditorID, paths []string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if len(paths) == 1 {
			result, err := a.plugin.Open(ctx, editor, paths[0])
			return openedMsg{reports: []commands.OpenReport{{FilePath: paths[0], Result: result, Err: err}}}
		}
		return openedMsg{reports: a.plugin.OpenAll(ctx, editor, paths)}
	}
}

func (a *App) handleOpened(reports []commands.OpenReport) tea.Cmd {
	var cmds []tea.Cmd
	started := 0
	for _, r := range reports {
		if r.Err != nil {
			continue
		}
		started++
		cmds = append(cmds, waitLaunch(r.FilePath, r.Result))
	}

	switch {
	case started == 1 && len(reports) == 1:
		a.browser.SetMessage(reports[0].Result.Message, false)
	case started > 0:
		a.browser.SetMessage(fmt.Sprintf("Opening %d of %d files", started, len(reports)), false)
	default:
		a.browser.ClearMessage()
	}

	cmds = append(cmds, a.expireNotice())
	return tea.Batch(cmds...)
}

func waitLaunch(file string, result *commands.OpenResult) tea.Cmd {
	return func() tea.Msg {
		return launchDoneMsg{file: file, editor: result.Request.Editor, outcome: result.Wait()}
	}
}

// expireNotice redraws once the latest notice has run out
func (a *App) expireNotice() tea.Cmd {
	n, ok := a.notices.Latest()
	if !ok || n.Duration <= 0 {
		return nil
	}
	remaining := time.Until(n.At.Add(n.Duration))
	return tea.Tick(remaining, func(time.Time) tea.Msg { return noticeExpiredMsg{} })
}

func (a *App) saveSettings(paths map[domain.EditorID]string) tea.Cmd {
	ctx := context.Background()
	current := a.plugin.Settings().Snapshot()

	saved := 0
	for _, id := range domain.Editors {
		path, ok := paths[id]
		if !ok || path == current.Path(id) {
			continue
		}
		if _, err := commands.NewSetEditorPathCommand(a.plugin.Settings(), id.String(), path).Execute(ctx); err != nil {
			a.settings.SetFieldError(id, err.Error())
			return nil
		}
		saved++
	}

	a.state = ViewBrowser
	if saved == 0 {
		a.browser.SetMessage("Settings unchanged", false)
	} else {
		a.browser.SetMessage(fmt.Sprintf("Saved %d editor path(s)", saved), false)
	}
	return nil
}

func (a *App) loadHistory() {
	records, err := commands.NewRecentLaunchesCommand(a.plugin.History(), commands.DefaultHistoryLimit).Execute(context.Background())
	if err != nil {
		a.history.SetMessage(err.Error(), true)
		a.history.SetRecords(nil)
		return
	}
	a.history.ClearMessage()
	a.history.SetRecords(records)
}

// View renders the current view with the latest notice underneath
func (a *App) View() string {
	var view string
	switch a.state {
	case ViewSettings:
		view = a.settings.View()
	case ViewHistory:
		view = a.history.View()
	case ViewHelp:
		view = a.help.View()
	default:
		view = a.browser.View()
	}

	if n, ok := a.notices.Latest(); ok {
		view += "\n" + styles.App.Render(styles.Notice.Render(n.Message))
	}
	return view
}
