package commands

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"othereditor/internal/application"
	"othereditor/internal/domain"
)

// OpenReport is the per-file result of OpenAll
type OpenReport struct {
	FilePath string
	Result   *OpenResult // nil when Err is set
	Err      error
}

// OpenAll opens every path in the same editor. Each path gets its own
// OpenCommand and launch; a failure for one path does not affect the others.
// Blank paths fail validation.
// Reports are returned in input order once every launch has been started.
func OpenAll(ctx context.Context, deps OpenDeps, editor domain.EditorID, cfg domain.EditorBinaryConfig, paths []string) []OpenReport {
	reports := make([]OpenReport, len(paths))

	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			// a blank entry must not fall back to the active file
			if strings.TrimSpace(p) == "" {
				err := &application.ValidationError{Field: "filePath", Message: "No file selected", Err: domain.ErrNoTargetFile}
				if deps.Notifier != nil {
					deps.Notifier.Notify(err.Message, NoticeNoActiveFile)
				}
				reports[i] = OpenReport{FilePath: p, Err: err}
				return nil
			}
			cmd := NewOpenCommand(deps, editor, cfg.Clone(), p)
			result, err := cmd.Execute(ctx)
			reports[i] = OpenReport{FilePath: p, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// WaitAll blocks until every started launch in reports has resolved and
// returns the outcomes in the same order. Reports that failed before launch
// yield an outcome classified from their error.
func WaitAll(reports []OpenReport) []domain.LaunchOutcome {
	outcomes := make([]domain.LaunchOutcome, len(reports))
	for i, r := range reports {
		if r.Err != nil || r.Result == nil {
			outcomes[i] = domain.OutcomeFromError(r.Err)
			continue
		}
		outcomes[i] = r.Result.Wait()
	}
	return outcomes
}
