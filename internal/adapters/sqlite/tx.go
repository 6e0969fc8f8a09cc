package sqlite

import (
	"context"
	"database/sql"

	"othereditor/internal/domain"
)

// historyTx groups the writes of one Record call
type historyTx struct {
	tx *sql.Tx
}

func (h *History) beginTx(ctx context.Context) (*historyTx, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &historyTx{tx: tx}, nil
}

// insert adds a launch
func (t *historyTx) insert(rec domain.LaunchRecord) error {
	_, err := t.tx.Exec(`
		INSERT INTO launches (started_at, editor, file_path, command, kind, exit_code, signal, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.StartedAt.UnixMilli(), rec.Editor.String(), rec.FilePath, rec.Command,
		rec.Kind.String(), rec.ExitCode, rec.Signal, rec.Error)
	return err
}

// prune deletes everything but the newest keep launches
func (t *historyTx) prune(keep int) error {
	_, err := t.tx.Exec(`
		DELETE FROM launches WHERE id NOT IN (
			SELECT id FROM launches ORDER BY started_at DESC, id DESC LIMIT ?
		)
	`, keep)
	return err
}

// Commit commits the transaction
func (t *historyTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *historyTx) Rollback() error {
	return t.tx.Rollback()
}
