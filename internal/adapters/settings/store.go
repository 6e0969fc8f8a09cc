package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// PluginDir is where the host keeps the plugin's data.json, relative to the vault
const PluginDir = ".obsidian/plugins/open-in-other-editor"

// DataFile is the settings document name
const DataFile = "data.json"

// JSONStore implements ports.SettingsStore on a flat JSON document keyed by
// editor setting key, e.g. {"vscode_path": "/usr/local/bin/code"}
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// Ensure JSONStore implements SettingsStore
var _ ports.SettingsStore = (*JSONStore)(nil)

// NewJSONStore creates a store backed by the document at path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// DefaultPath returns the data.json location for a vault
func DefaultPath(vaultPath string) string {
	return filepath.Join(vaultPath, filepath.FromSlash(PluginDir), DataFile)
}

// Path returns the document location
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the document. A missing document yields an empty config; keys
// that are not editor settings or not strings are ignored.
func (s *JSONStore) Load(ctx context.Context) (domain.EditorBinaryConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	cfg := make(domain.EditorBinaryConfig)
	for key, raw := range doc {
		id, ok := domain.EditorForSettingKey(key)
		if !ok {
			continue
		}
		var path string
		if err := json.Unmarshal(raw, &path); err != nil {
			continue
		}
		cfg[id] = strings.TrimSpace(path)
	}
	return cfg, nil
}

// Save writes every editor key of cfg into the document, keeping keys it
// does not own
func (s *JSONStore) Save(ctx context.Context, cfg domain.EditorBinaryConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for _, id := range domain.Editors {
		raw, err := json.Marshal(cfg.Path(id))
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", id.SettingKey(), err)
		}
		doc[id.SettingKey()] = raw
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

func (s *JSONStore) read() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}
	return doc, nil
}
