package views

import "othereditor/internal/adapters/tui/styles"

// ViewState is embedded by every view model: its size and the status line
// shown under the view.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line; isErr renders it as an error
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage empties the status line
func (s *ViewState) ClearMessage() {
	s.SetMessage("", false)
}

// RenderMessage renders the status line followed by a newline, or nothing
func (s *ViewState) RenderMessage() string {
	switch {
	case s.Message == "":
		return ""
	case s.MessageErr:
		return styles.ErrorMsg.Render(s.Message) + "\n"
	default:
		return styles.Success.Render(s.Message) + "\n"
	}
}

// View switching messages, handled by the app
type (
	SwitchToBrowserMsg  struct{}
	SwitchToSettingsMsg struct{}
	SwitchToHistoryMsg  struct{}
	SwitchToHelpMsg     struct{}
)
