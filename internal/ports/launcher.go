package ports

import (
	"context"

	"othereditor/internal/domain"
)

// ProcessLauncher spawns external processes
type ProcessLauncher interface {
	// Launch starts the invocation and returns a channel that receives exactly
	// one outcome: a ProcessError if the process could not be started, or a
	// Success once it exits. The context only guards the spawn; a started
	// process is never cancelled.
	Launch(ctx context.Context, inv domain.Invocation) <-chan domain.LaunchOutcome
}

// PathChecker verifies that configured binaries exist
type PathChecker interface {
	// Check returns nil if path exists, otherwise the underlying error
	Check(ctx context.Context, path string) error
}

// PlatformProbe reports the platform whose launch conventions apply
type PlatformProbe interface {
	Current() domain.Platform
}
