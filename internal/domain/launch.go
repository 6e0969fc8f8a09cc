package domain

import (
	"fmt"
	"time"
)

// LaunchRequest describes one request to open a vault file in an editor
type LaunchRequest struct {
	Editor           EditorID
	BasePath         string // absolute storage root
	RelativeFilePath string // may be empty
}

// LaunchRecord is one entry in the launch history
type LaunchRecord struct {
	ID        int64
	StartedAt time.Time
	Editor    EditorID
	FilePath  string // vault-relative
	Command   string // rendered invocation
	Kind      OutcomeKind
	ExitCode  int
	Signal    string
	Error     string
}

// NewLaunchRecord captures an outcome for the history
func NewLaunchRecord(req LaunchRequest, inv Invocation, outcome LaunchOutcome, startedAt time.Time) LaunchRecord {
	rec := LaunchRecord{
		StartedAt: startedAt,
		Editor:    req.Editor,
		FilePath:  req.RelativeFilePath,
		Command:   inv.String(),
		Kind:      outcome.Kind,
		ExitCode:  outcome.ExitCode,
		Signal:    outcome.Signal,
	}
	if outcome.Err != nil {
		rec.Error = outcome.Err.Error()
	}
	return rec
}

// Summary renders the record on a single line
func (r LaunchRecord) Summary() string {
	line := fmt.Sprintf("%s  %-8s %-19s %s  exit=%d",
		r.StartedAt.Local().Format(time.DateTime), r.Editor, r.Kind, r.FilePath, r.ExitCode)
	if r.Signal != "" {
		line += " signal=" + r.Signal
	}
	if r.Error != "" {
		line += "  " + r.Error
	}
	return line
}
