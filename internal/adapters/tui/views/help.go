package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"othereditor/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

var helpSections = []helpSection{
	{"Navigation", []key.Binding{BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.NextPage, BrowserKeys.PrevPage, BrowserKeys.Filter}},
	{"Open", []key.Binding{BrowserKeys.Open, BrowserKeys.Select, BrowserKeys.GVim, BrowserKeys.VSCode, BrowserKeys.Nvim, BrowserKeys.Copy}},
	{"General", []key.Binding{BrowserKeys.Settings, BrowserKeys.History, BrowserKeys.Reload, BrowserKeys.Help, BrowserKeys.Quit}},
}

// HelpModel lists the browser key bindings
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg { return SwitchToBrowserMsg{} }
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Help"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Open vault files in gVim, VS Code or nvim-qt"))
	b.WriteString("\n\n")

	for _, section := range helpSections {
		b.WriteString(styles.InputLabel.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %s%s\n", styles.HelpKey.Render(fmt.Sprintf("%-14s", h.Key)), styles.HelpDesc.Render(h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.InputLabel.Render("macOS"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Editors are started from the absolute paths saved under settings,\n  e.g. /Applications/MacVim.app/Contents/bin/gvim"))
	b.WriteString("\n\n")

	b.WriteString(hint(HelpKeys.Close.Help().Key, HelpKeys.Close.Help().Desc))
	return styles.App.Render(b.String())
}
