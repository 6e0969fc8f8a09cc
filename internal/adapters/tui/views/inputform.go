package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"othereditor/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit   key.Binding
	Cancel   key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
}

// DefaultInputFormKeys are the bindings every form starts with
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous field"),
	),
}

// InputField is one labelled text input. It remembers the value it was
// loaded with so edits can be told apart from untouched fields.
type InputField struct {
	Label string
	Input textinput.Model
	Err   string

	loaded string
}

// InputForm is a column of input fields with one focused at a time
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	f := &InputForm{Fields: fields, Keys: DefaultInputFormKeys}
	f.SetFocus(0)
	return f
}

// NewInputField creates a field; charLimit 0 keeps the textinput default
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on tab keys and sends everything else to the focused
// input. It reports whether the message was a focus move.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch {
		case key.Matches(keyMsg, f.Keys.Tab):
			f.NextField()
			return true, nil
		case key.Matches(keyMsg, f.Keys.ShiftTab):
			f.PrevField()
			return true, nil
		}
	}

	field := f.field(f.FocusedField)
	if field == nil {
		return false, nil
	}
	var cmd tea.Cmd
	field.Input, cmd = field.Input.Update(msg)
	if isKey {
		// editing a field dismisses its error
		field.Err = ""
	}
	return false, cmd
}

// NextField focuses the next field, wrapping around
func (f *InputForm) NextField() {
	f.SetFocus(f.FocusedField + 1)
}

// PrevField focuses the previous field, wrapping around
func (f *InputForm) PrevField() {
	f.SetFocus(f.FocusedField - 1)
}

// SetFocus focuses field index, taken modulo the field count
func (f *InputForm) SetFocus(index int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	if current := f.field(f.FocusedField); current != nil {
		current.Input.Blur()
	}
	f.FocusedField = (index%n + n) % n
	f.Fields[f.FocusedField].Input.Focus()
}

// Value returns the trimmed value of field index
func (f *InputForm) Value(index int) string {
	if field := f.field(index); field != nil {
		return strings.TrimSpace(field.Input.Value())
	}
	return ""
}

// SetValue loads value into field index and clears its error
func (f *InputForm) SetValue(index int, value string) {
	if field := f.field(index); field != nil {
		field.Input.SetValue(value)
		field.loaded = strings.TrimSpace(value)
		field.Err = ""
	}
}

// Changed reports whether field index differs from its loaded value
func (f *InputForm) Changed(index int) bool {
	field := f.field(index)
	return field != nil && f.Value(index) != field.loaded
}

// SetError shows err under field index and focuses it
func (f *InputForm) SetError(index int, err string) {
	if field := f.field(index); field != nil {
		field.Err = err
		f.SetFocus(index)
	}
}

// RenderField renders the label, the input box and any error
func (f *InputForm) RenderField(index int) string {
	field := f.field(index)
	if field == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(field.Label))
	if f.Changed(index) {
		b.WriteString(styles.InputChanged.Render(" (modified)"))
	}
	b.WriteString("\n")

	box := styles.InputField
	if index == f.FocusedField {
		box = styles.InputFocused
	}
	b.WriteString(box.Render(field.Input.View()))

	if field.Err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render(field.Err))
	}
	return b.String()
}

// RenderHelp renders the key hints; submitText describes enter
func (f *InputForm) RenderHelp(submitText string) string {
	var parts []string
	if len(f.Fields) > 1 {
		parts = append(parts, hint(f.Keys.Tab.Help().Key, "next"), hint(f.Keys.ShiftTab.Help().Key, "previous"))
	}
	parts = append(parts, hint("enter", submitText), hint("esc", "cancel"))
	return strings.Join(parts, styles.HelpSeparator.String())
}

func (f *InputForm) field(index int) *InputField {
	if index < 0 || index >= len(f.Fields) {
		return nil
	}
	return &f.Fields[index]
}

func hint(k, desc string) string {
	return styles.HelpKey.Render(k) + " " + styles.HelpDesc.Render(desc)
}
