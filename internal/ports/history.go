package ports

import (
	"context"

	"othereditor/internal/domain"
)

// LaunchHistory records every launch outcome
type LaunchHistory interface {
	Record(ctx context.Context, rec domain.LaunchRecord) error
	Recent(ctx context.Context, limit int) ([]domain.LaunchRecord, error)
	Close() error
}
