package filesystem

import (
	"context"
	"fmt"
	"os"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// Checker implements ports.PathChecker using os.Stat
type Checker struct{}

// Ensure Checker implements PathChecker
var _ ports.PathChecker = (*Checker)(nil)

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Check returns the os.Stat error for path unchanged, so callers can inspect
// the *fs.PathError. Directories, including .app bundles, are rejected: the
// configured path must name the executable inside the bundle. path is checked
// as given; "~" must already be expanded, as it would be for the launch.
func (c *Checker) Check(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return domain.ExpandHome(path, home)
}
