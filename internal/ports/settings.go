package ports

import (
	"context"

	"othereditor/internal/domain"
)

// SettingsStore persists the editor binary configuration
type SettingsStore interface {
	// Load returns the persisted entries; missing keys are simply absent
	Load(ctx context.Context) (domain.EditorBinaryConfig, error)

	// Save overwrites the persisted configuration
	Save(ctx context.Context, cfg domain.EditorBinaryConfig) error
}
