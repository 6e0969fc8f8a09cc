package commands

import (
	"context"
	"fmt"
	"strings"

	"othereditor/internal/application"
	"othereditor/internal/domain"
)

// SetEditorPathResult contains the result of saving an editor path
type SetEditorPathResult struct {
	Editor  domain.EditorID
	Config  domain.EditorBinaryConfig
	Message string
}

// SetEditorPathCommand saves the binary path of one editor. An empty path
// clears the entry.
type SetEditorPathCommand struct {
	settings *application.Settings
	Editor   string
	Path     string
}

// NewSetEditorPathCommand creates a new SetEditorPathCommand
func NewSetEditorPathCommand(settings *application.Settings, editor, path string) *SetEditorPathCommand {
	return &SetEditorPathCommand{
		settings: settings,
		Editor:   editor,
		Path:     path,
	}
}

// Validate checks the editor name and that a non-empty path is absolute
func (c *SetEditorPathCommand) Validate() (domain.EditorID, error) {
	id, err := application.ValidateEditor("editorID", c.Editor)
	if err != nil {
		return "", err
	}

	path := strings.TrimSpace(c.Path)
	if path != "" && !strings.HasPrefix(path, "/") && !isWindowsAbs(path) {
		return "", &application.ValidationError{
			Field:   "binPath",
			Message: fmt.Sprintf("expected an absolute path, got: %s", path),
		}
	}
	return id, nil
}

// Execute runs the set editor path command
func (c *SetEditorPathCommand) Execute(ctx context.Context) (*SetEditorPathResult, error) {
	id, err := c.Validate()
	if err != nil {
		return nil, err
	}

	cfg, err := c.settings.Set(ctx, id, c.Path)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Saved %s: %s", id.SettingKey(), cfg.Path(id))
	if cfg.Path(id) == "" {
		msg = fmt.Sprintf("Cleared %s", id.SettingKey())
	}
	return &SetEditorPathResult{Editor: id, Config: cfg, Message: msg}, nil
}

// isWindowsAbs matches "C:\..." and "C:/..."
func isWindowsAbs(p string) bool {
	return len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}

// EditorStatus describes one editor's configuration on a platform
type EditorStatus struct {
	Editor     domain.EditorID
	Name       string
	SettingKey string
	Path       string
	Command    string // what would be invoked, empty when unresolvable
	Problem    string // remediation hint when unresolvable
}

// ListEditorsCommand reports how every editor resolves on a platform
type ListEditorsCommand struct {
	settings *application.Settings
	Platform domain.Platform
}

// NewListEditorsCommand creates a new ListEditorsCommand
func NewListEditorsCommand(settings *application.Settings, platform domain.Platform) *ListEditorsCommand {
	return &ListEditorsCommand{settings: settings, Platform: platform}
}

// Execute runs the list editors command
func (c *ListEditorsCommand) Execute(_ context.Context) ([]EditorStatus, error) {
	cfg := c.settings.Snapshot()

	statuses := make([]EditorStatus, 0, len(domain.Editors))
	for _, id := range domain.Editors {
		st := EditorStatus{
			Editor:     id,
			Name:       id.DisplayName(),
			SettingKey: id.SettingKey(),
			Path:       cfg.Path(id),
		}
		bin, err := domain.Resolve(id, cfg, c.Platform)
		if err != nil {
			if cfgErr, ok := err.(*application.ConfigurationError); ok {
				st.Problem = cfgErr.Hint
			} else {
				st.Problem = err.Error()
			}
		} else {
			st.Command = bin.Command
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
