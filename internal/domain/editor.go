package domain

import (
	"fmt"
	"strings"
)

// EditorID names a supported external editor. The value doubles as the
// command name used when the editor is resolved through PATH.
type EditorID string

const (
	EditorGVim   EditorID = "gvim"
	EditorVSCode EditorID = "code"
	EditorNvim   EditorID = "nvim-qt"
)

// Editors lists every supported editor in display order
var Editors = []EditorID{EditorGVim, EditorVSCode, EditorNvim}

// editorInfo holds the static metadata for an editor
type editorInfo struct {
	DisplayName string // e.g., "VScode"
	SettingKey  string // key in the persisted settings document
	Aliases     []string
}

var editorTable = map[EditorID]editorInfo{
	EditorGVim: {
		DisplayName: "gVim",
		SettingKey:  "gvim_path",
		Aliases:     []string{"gvim", "vim"},
	},
	EditorVSCode: {
		DisplayName: "VScode",
		SettingKey:  "vscode_path",
		Aliases:     []string{"code", "vscode", "vs-code"},
	},
	EditorNvim: {
		DisplayName: "nvim",
		SettingKey:  "nvim_path",
		Aliases:     []string{"nvim-qt", "nvim", "neovim"},
	},
}

// String returns the identifier as a string
func (e EditorID) String() string {
	return string(e)
}

// Valid reports whether e is one of the supported editors
func (e EditorID) Valid() bool {
	_, ok := editorTable[e]
	return ok
}

// DisplayName returns the human-readable editor name
func (e EditorID) DisplayName() string {
	if info, ok := editorTable[e]; ok {
		return info.DisplayName
	}
	return string(e)
}

// SettingKey returns the settings key holding the editor's binary path
func (e EditorID) SettingKey() string {
	return editorTable[e].SettingKey
}

// Command returns the bare command name used for PATH lookup
func (e EditorID) Command() string {
	return string(e)
}

// ActionID returns the host action identifier for opening the active file
func (e EditorID) ActionID() string {
	name := string(e)
	if e == EditorVSCode {
		name = "vscode"
	}
	return "open-in-other-editor-" + name
}

// ParseEditorID maps free text (an alias, command name or settings key) to an EditorID
func ParseEditorID(s string) (EditorID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, id := range Editors {
		info := editorTable[id]
		if s == info.SettingKey {
			return id, nil
		}
		for _, alias := range info.Aliases {
			if s == alias {
				return id, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEditor, s)
}

// EditorForSettingKey returns the editor owning a settings key
func EditorForSettingKey(key string) (EditorID, bool) {
	for _, id := range Editors {
		if editorTable[id].SettingKey == key {
			return id, true
		}
	}
	return "", false
}
