package obsidian

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// WorkspaceFile is where Obsidian keeps the layout of open panes
const WorkspaceFile = ".obsidian/workspace.json"

// Vault implements ports.Workspace and ports.VaultBrowser for a vault directory
type Vault struct {
	basePath  string
	vaultName string

	mu     sync.RWMutex
	active string // explicit selection, wins over workspace.json
}

// Ensure Vault implements the host ports
var (
	_ ports.Workspace    = (*Vault)(nil)
	_ ports.VaultBrowser = (*Vault)(nil)
)

// NewVault creates a vault rooted at basePath. The path may be a resource
// URL as reported by the Obsidian app.
func NewVault(basePath string) *Vault {
	basePath = domain.NormalizeBasePath(basePath)
	return &Vault{
		basePath:  basePath,
		vaultName: filepath.Base(basePath),
	}
}

// Name returns the vault name, the last element of its path
func (v *Vault) Name() string {
	return v.vaultName
}

// StorageBasePath returns the vault root
func (v *Vault) StorageBasePath() string {
	return v.basePath
}

// SetActiveFile selects the active file; an empty path clears the selection
func (v *Vault) SetActiveFile(rel string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = rel
}

// ActiveFilePath returns the selected file, or the file of the active pane
// recorded in the workspace file
func (v *Vault) ActiveFilePath() (string, bool) {
	v.mu.RLock()
	active := v.active
	v.mu.RUnlock()
	if active != "" {
		return active, true
	}

	file, err := v.workspaceActiveFile()
	if err != nil || file == "" {
		return "", false
	}
	return file, true
}

// workspaceState holds the parts of workspace.json we read
type workspaceState struct {
	Main          json.RawMessage `json:"main"`
	Active        string          `json:"active"`
	LastOpenFiles []string        `json:"lastOpenFiles"`
}

// paneNode is a split, tab group or leaf in the pane tree
type paneNode struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Children []paneNode `json:"children"`
	State    struct {
		State struct {
			File string `json:"file"`
		} `json:"state"`
	} `json:"state"`
}

func (v *Vault) workspaceActiveFile() (string, error) {
	data, err := os.ReadFile(filepath.Join(v.basePath, filepath.FromSlash(WorkspaceFile)))
	if err != nil {
		return "", err
	}

	var ws workspaceState
	if err := json.Unmarshal(data, &ws); err != nil {
		return "", fmt.Errorf("failed to parse workspace: %w", err)
	}

	if ws.Active != "" && len(ws.Main) > 0 {
		var root paneNode
		if err := json.Unmarshal(ws.Main, &root); err == nil {
			if leaf := findPane(&root, ws.Active); leaf != nil && leaf.State.State.File != "" {
				return leaf.State.State.File, nil
			}
		}
	}

	if len(ws.LastOpenFiles) > 0 {
		return ws.LastOpenFiles[0], nil
	}
	return "", nil
}

func findPane(node *paneNode, id string) *paneNode {
	if node.ID == id {
		return node
	}
	for i := range node.Children {
		if found := findPane(&node.Children[i], id); found != nil {
			return found
		}
	}
	return nil
}

// ListFiles returns every regular file in the vault as a slash-separated
// relative path, skipping hidden files and directories such as .obsidian
func (v *Vault) ListFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(v.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}

		name := d.Name()
		if path != v.basePath && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(v.basePath, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
