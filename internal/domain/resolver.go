package domain

import "fmt"

// ResolvedBinary is the command chosen for an editor on a platform.
// Absolute is set when Command is a configured filesystem path.
type ResolvedBinary struct {
	Editor   EditorID
	Command  string
	Absolute bool
}

// Resolve picks the command used to launch an editor.
//
// On macOS GUI editors are rarely on the shell PATH, so the configured
// absolute path is mandatory; its existence is checked later, at launch time.
// Everywhere else the bare command name is returned and resolved through PATH.
func Resolve(id EditorID, cfg EditorBinaryConfig, platform Platform) (ResolvedBinary, error) {
	if !id.Valid() {
		return ResolvedBinary{}, &ConfigurationError{
			Editor: id,
			Reason: "unsupported editor",
			Hint:   fmt.Sprintf("Unsupported editor: %s", id),
			Err:    ErrUnknownEditor,
		}
	}

	if platform != PlatformMacOS {
		return ResolvedBinary{Editor: id, Command: id.Command()}, nil
	}

	path := cfg.Path(id)
	if path == "" {
		return ResolvedBinary{}, &ConfigurationError{
			Editor: id,
			Reason: ErrMissingBinaryPath.Error(),
			Hint:   fmt.Sprintf("Please save absolute path to %s into settings", id.DisplayName()),
			Err:    ErrMissingBinaryPath,
		}
	}

	return ResolvedBinary{Editor: id, Command: path, Absolute: true}, nil
}
