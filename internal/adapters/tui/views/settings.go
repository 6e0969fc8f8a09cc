package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"othereditor/internal/adapters/tui/styles"
	"othereditor/internal/domain"
)

// SaveSettingsMsg carries the edited binary paths, one per editor
type SaveSettingsMsg struct {
	Paths map[domain.EditorID]string
}

// SettingsModel edits the binary path of every editor
type SettingsModel struct {
	ViewState

	form     *InputForm
	platform domain.Platform
}

// NewSettingsModel creates the settings form
func NewSettingsModel(platform domain.Platform) *SettingsModel {
	fields := make([]InputField, 0, len(domain.Editors))
	for _, id := range domain.Editors {
		label := fmt.Sprintf("%s (%s)", id.DisplayName(), id.SettingKey())
		fields = append(fields, NewInputField(label, "/absolute/path/to/"+id.String(), 0))
	}
	return &SettingsModel{
		form:     NewInputForm(fields...),
		platform: platform,
	}
}

// Load fills the form from cfg and focuses the first field
func (m *SettingsModel) Load(cfg domain.EditorBinaryConfig) {
	for i, id := range domain.Editors {
		m.form.SetValue(i, cfg.Path(id))
	}
	m.form.SetFocus(0)
	m.ClearMessage()
}

// SetFieldError shows err under the field of editor id
func (m *SettingsModel) SetFieldError(id domain.EditorID, err string) {
	for i, e := range domain.Editors {
		if e == id {
			m.form.SetError(i, err)
			return
		}
	}
}

// Init returns the blink command
func (m *SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the settings view
func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, m.form.Keys.Submit):
			paths := make(map[domain.EditorID]string, len(domain.Editors))
			for i, id := range domain.Editors {
				paths[id] = m.form.Value(i)
			}
			return m, func() tea.Msg { return SaveSettingsMsg{Paths: paths} }
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the settings form
func (m *SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Editor binaries"))
	b.WriteString("\n")
	if m.platform == domain.PlatformMacOS {
		b.WriteString(styles.Subtitle.Render("Absolute paths are required on macOS"))
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("On %s editors are found through PATH; paths are only used on macOS", m.platform)))
	}
	b.WriteString("\n\n")

	for i := range m.form.Fields {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n\n")
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	b.WriteString(m.form.RenderHelp("save"))
	return styles.App.Render(b.String())
}
