package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"othereditor/internal/adapters/tui/styles"
	"othereditor/internal/domain"
)

// HistoryModel shows the most recent launches
type HistoryModel struct {
	ViewState

	records []domain.LaunchRecord
}

// NewHistoryModel creates an empty history view
func NewHistoryModel() *HistoryModel {
	return &HistoryModel{}
}

// SetRecords replaces the shown launches
func (m *HistoryModel) SetRecords(records []domain.LaunchRecord) {
	m.records = records
}

// Init initializes the history view
func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

// Update closes the view on any close key
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "H":
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
	}
	return m, nil
}

// View renders the launches, newest first
func (m *HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Recent launches"))
	b.WriteString("\n\n")

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString(msg)
	} else if len(m.records) == 0 {
		b.WriteString(styles.MutedText.Render("No launches recorded."))
		b.WriteString("\n")
	}

	for _, rec := range m.records {
		line := rec.Summary()
		if rec.Kind == domain.OutcomeSuccess {
			b.WriteString(styles.NodeItem.Render(line))
		} else {
			b.WriteString(styles.ErrorMsg.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" to close"))
	return styles.App.Render(b.String())
}
