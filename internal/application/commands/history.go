package commands

import (
	"context"
	"fmt"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// DefaultHistoryLimit is used when no positive limit is given
const DefaultHistoryLimit = 20

// RecentLaunchesCommand lists the most recent launches
type RecentLaunchesCommand struct {
	history ports.LaunchHistory
	Limit   int
}

// NewRecentLaunchesCommand creates a new RecentLaunchesCommand
func NewRecentLaunchesCommand(history ports.LaunchHistory, limit int) *RecentLaunchesCommand {
	return &RecentLaunchesCommand{history: history, Limit: limit}
}

// Execute runs the recent launches command
func (c *RecentLaunchesCommand) Execute(ctx context.Context) ([]domain.LaunchRecord, error) {
	if c.history == nil {
		return nil, fmt.Errorf("launch history is disabled")
	}

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := c.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch history: %w", err)
	}
	return records, nil
}
