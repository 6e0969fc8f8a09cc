package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for launch failures
var (
	ErrUnknownEditor     = errors.New("unknown editor")
	ErrNoTargetFile      = errors.New("no target file")
	ErrOutsideVault      = errors.New("file is outside the vault")
	ErrNoBasePath        = errors.New("vault has no filesystem path")
	ErrMissingBinaryPath = errors.New("missing path")
	ErrBinaryNotFound    = errors.New("binary not found")
	ErrProcess           = errors.New("process error")
)

// ValidationError means no usable target file could be determined
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConfigurationError means the editor binary is unconfigured or unusable.
// Hint is the remediation text shown to the user.
type ConfigurationError struct {
	Editor EditorID
	Reason string
	Hint   string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Editor, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ProcessError wraps a spawn or process-level I/O failure
type ProcessError struct {
	Command string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("run %s: %v", e.Command, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrProcess
}
