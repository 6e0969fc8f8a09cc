package views

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"othereditor/internal/adapters/tui/styles"
	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Select   key.Binding
	Open     key.Binding
	GVim     key.Binding
	VSCode   key.Binding
	Nvim     key.Binding
	Copy     key.Binding
	Filter   key.Binding
	Reload   key.Binding
	Settings key.Binding
	History  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "previous page"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select for enter"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open in other editor"),
	),
	GVim: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "open in gVim"),
	),
	VSCode: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "open in VScode"),
	),
	Nvim: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "open in nvim"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
	),
	History: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "history"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// OpenFilesMsg asks the app to open files in an editor
type OpenFilesMsg struct {
	Editor domain.EditorID
	Paths  []string // vault-relative
}

type filesLoadedMsg struct {
	files []string
}

type errMsg struct {
	err error
}

// copyFunc writes to the system clipboard; replaced in tests
var copyFunc = clipboard.WriteAll

// BrowserModel lists the vault's files
type BrowserModel struct {
	ViewState

	files      ports.VaultBrowser
	basePath   string
	menuEditor domain.EditorID
	all        []string
	visible    []string
	selected   map[string]bool
	paginator  *Paginator
	filter     textinput.Model
	filtering  bool
	loaded     bool
}

// NewBrowserModel creates a browser over files. Enter opens in menuEditor.
func NewBrowserModel(files ports.VaultBrowser, basePath string, menuEditor domain.EditorID) *BrowserModel {
	filter := textinput.New()
	filter.Placeholder = "filter files"
	filter.Prompt = "/ "

	return &BrowserModel{
		files:      files,
		basePath:   basePath,
		menuEditor: menuEditor,
		selected:   make(map[string]bool),
		paginator:  NewPaginator(15),
		filter:     filter,
	}
}

// Init loads the file list
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadFiles
}

func (m *BrowserModel) loadFiles() tea.Msg {
	files, err := m.files.ListFiles()
	if err != nil {
		return errMsg{err}
	}
	return filesLoadedMsg{files}
}

// Reload reloads the file list from disk
func (m *BrowserModel) Reload() tea.Cmd {
	m.loaded = false
	return m.loadFiles
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filesLoadedMsg:
		m.all = msg.files
		m.loaded = true
		for path := range m.selected {
			if !slices.Contains(m.all, path) {
				delete(m.selected, path)
			}
		}
		m.applyFilter()
		return m, nil

	case errMsg:
		m.loaded = true
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filter.SetValue("")
		m.filtering = false
		m.filter.Blur()
		m.applyFilter()
		return nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.paginator.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.paginator.CursorDown()

	case key.Matches(msg, BrowserKeys.NextPage):
		m.paginator.NextPage()

	case key.Matches(msg, BrowserKeys.PrevPage):
		m.paginator.PrevPage()

	case key.Matches(msg, BrowserKeys.Select):
		if path, ok := m.Current(); ok {
			if m.selected[path] {
				delete(m.selected, path)
			} else {
				m.selected[path] = true
			}
			m.paginator.CursorDown()
		}

	case key.Matches(msg, BrowserKeys.Open):
		return m.open(m.menuEditor, true)

	case key.Matches(msg, BrowserKeys.GVim):
		return m.open(domain.EditorGVim, false)

	case key.Matches(msg, BrowserKeys.VSCode):
		return m.open(domain.EditorVSCode, false)

	case key.Matches(msg, BrowserKeys.Nvim):
		return m.open(domain.EditorNvim, false)

	case key.Matches(msg, BrowserKeys.Copy):
		if path, ok := m.Current(); ok {
			abs := domain.ComposePath(m.basePath, path)
			if err := copyFunc(abs); err != nil {
				m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			} else {
				m.SetMessage("Copied "+abs, false)
			}
		}

	case key.Matches(msg, BrowserKeys.Filter):
		m.filtering = true
		return m.filter.Focus()

	case key.Matches(msg, BrowserKeys.Reload):
		return m.Reload()

	case key.Matches(msg, BrowserKeys.Settings):
		return func() tea.Msg { return SwitchToSettingsMsg{} }

	case key.Matches(msg, BrowserKeys.History):
		return func() tea.Msg { return SwitchToHistoryMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return nil
}

// open emits an OpenFilesMsg for the cursor file. withSelection opens the
// selected files instead when there is a selection.
func (m *BrowserModel) open(editor domain.EditorID, withSelection bool) tea.Cmd {
	var paths []string
	if withSelection {
		paths = m.Selected()
	}
	if len(paths) == 0 {
		if path, ok := m.Current(); ok {
			paths = []string{path}
		}
	}
	if len(paths) == 0 {
		return nil
	}

	if withSelection {
		m.selected = make(map[string]bool)
	}
	return func() tea.Msg {
		return OpenFilesMsg{Editor: editor, Paths: paths}
	}
}

// Current returns the file under the cursor
func (m *BrowserModel) Current() (string, bool) {
	i := m.paginator.Cursor()
	if i >= 0 && i < len(m.visible) {
		return m.visible[i], true
	}
	return "", false
}

// Selected returns the selected files in list order
func (m *BrowserModel) Selected() []string {
	var out []string
	for path := range m.selected {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func (m *BrowserModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.all
	} else {
		m.visible = nil
		for _, f := range m.all {
			if strings.Contains(strings.ToLower(f), query) {
				m.visible = append(m.visible, f)
			}
		}
	}
	m.paginator.SetTotal(len(m.visible))
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, subtitle, filter, footer and padding
	m.paginator.SetPageSize(height - 12)
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Open in other editor"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.basePath))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString("Loading...\n")
	case len(m.visible) == 0:
		b.WriteString(styles.MutedText.Render("No files"))
		b.WriteString("\n")
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderFile(m.visible[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
		if m.paginator.TotalPages() > 1 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
			b.WriteString("\n")
		}
	}

	if n := len(m.selected); n > 0 {
		b.WriteString(styles.Success.Render(fmt.Sprintf("%d selected, enter opens them in %s", n, m.menuEditor.DisplayName())))
		b.WriteString("\n")
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderFile(path string, cursor bool) string {
	marker := styles.Unmarked
	if m.selected[path] {
		marker = styles.Marked
	}

	dir, name := "", path
	if i := strings.LastIndex(path, "/"); i != -1 {
		dir, name = path[:i+1], path[i+1:]
	}

	if cursor {
		return styles.TreeBranch.Render(marker) + styles.NodeSelected.Render(path)
	}
	return styles.TreeBranch.Render(marker) + styles.FileDir.Render(dir) + styles.FileName.Render(name)
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"enter", "open"},
		{"g/c/n", "gVim/VScode/nvim"},
		{"space", "select"},
		{"y", "copy path"},
		{"/", "filter"},
		{"s", "settings"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
