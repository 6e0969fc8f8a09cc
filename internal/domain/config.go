package domain

import "strings"

// EditorBinaryConfig maps each editor to the absolute path of its binary.
// An empty entry means the editor is unconfigured.
type EditorBinaryConfig map[EditorID]string

// NewEditorBinaryConfig returns a config with every editor present and unconfigured
func NewEditorBinaryConfig() EditorBinaryConfig {
	cfg := make(EditorBinaryConfig, len(Editors))
	for _, id := range Editors {
		cfg[id] = ""
	}
	return cfg
}

// Path returns the trimmed configured path for an editor
func (c EditorBinaryConfig) Path(id EditorID) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c[id])
}

// Clone returns an independent copy of the config
func (c EditorBinaryConfig) Clone() EditorBinaryConfig {
	out := NewEditorBinaryConfig()
	for k, v := range c {
		out[k] = v
	}
	return out
}

// With returns a copy of the config with one entry replaced
func (c EditorBinaryConfig) With(id EditorID, path string) EditorBinaryConfig {
	out := c.Clone()
	out[id] = strings.TrimSpace(path)
	return out
}

// Merge overlays the non-empty entries of a partial config onto a copy of c
func (c EditorBinaryConfig) Merge(partial EditorBinaryConfig) EditorBinaryConfig {
	out := c.Clone()
	for k, v := range partial {
		if !k.Valid() {
			continue
		}
		out[k] = v
	}
	return out
}
