package application

import (
	"errors"

	"othereditor/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNoTargetFile      = domain.ErrNoTargetFile
	ErrOutsideVault      = domain.ErrOutsideVault
	ErrNoBasePath        = domain.ErrNoBasePath
	ErrUnknownEditor     = domain.ErrUnknownEditor
	ErrMissingBinaryPath = domain.ErrMissingBinaryPath
	ErrBinaryNotFound    = domain.ErrBinaryNotFound
	ErrProcess           = domain.ErrProcess
	ErrDisposed          = errors.New("plugin disposed")
)

// Re-export error types for use by adapters
type (
	ValidationError    = domain.ValidationError
	ConfigurationError = domain.ConfigurationError
	ProcessError       = domain.ProcessError
)
