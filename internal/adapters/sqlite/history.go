package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

const schemaVersion = "1"

// DefaultMaxRecords is how many launches are kept per vault
const DefaultMaxRecords = 500

// History implements ports.LaunchHistory using SQLite
type History struct {
	db         *sql.DB
	vaultPath  string
	dbPath     string
	maxRecords int
}

// Ensure History implements LaunchHistory
var _ ports.LaunchHistory = (*History)(nil)

// Option configures a History
type Option func(*History)

// WithDatabasePath stores the history at path instead of the XDG data directory
func WithDatabasePath(path string) Option {
	return func(h *History) {
		h.dbPath = path
	}
}

// WithMaxRecords bounds the number of kept launches; zero keeps everything
func WithMaxRecords(n int) Option {
	return func(h *History) {
		h.maxRecords = n
	}
}

// Open opens or creates the launch history for the given vault path
func Open(vaultPath string, opts ...Option) (*History, error) {
	// Expand ~ in path
	if len(vaultPath) > 0 && vaultPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		vaultPath = filepath.Join(home, vaultPath[1:])
	}

	h := &History{
		vaultPath:  vaultPath,
		maxRecords: DefaultMaxRecords,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.dbPath == "" {
		h.dbPath = databasePath(vaultPath)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(h.dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	// WAL lets a TUI and an MCP server share one history
	db, err := sql.Open("sqlite3", "file:"+h.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	h.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS launches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			editor TEXT NOT NULL,
			file_path TEXT NOT NULL,
			command TEXT NOT NULL,
			kind TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			signal TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_launches_started ON launches(started_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := h.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return h, nil
}

// Path returns the database file location
func (h *History) Path() string {
	return h.dbPath
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// databasePath returns the path for the SQLite database
func databasePath(vaultPath string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// Hash vault path for unique DB name
	hash := hashVaultPath(vaultPath)

	return filepath.Join(dataHome, "othereditor", hash+".db")
}

// hashVaultPath returns a short hash of the vault path
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

func (h *History) updateMeta() error {
	_, err := h.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('vault_path_hash', ?);
	`, schemaVersion, hashVaultPath(h.vaultPath))
	return err
}

// Record stores one launch and prunes the oldest entries beyond the limit
func (h *History) Record(ctx context.Context, rec domain.LaunchRecord) error {
	tx, err := h.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := tx.insert(rec); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record launch: %w", err)
	}
	if h.maxRecords > 0 {
		if err := tx.prune(h.maxRecords); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to prune history: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit launches, newest first
func (h *History) Recent(ctx context.Context, limit int) ([]domain.LaunchRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, started_at, editor, file_path, command, kind, exit_code, signal, error
		FROM launches ORDER BY started_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.LaunchRecord
	for rows.Next() {
		var (
			rec       domain.LaunchRecord
			startedAt int64
			editor    string
			kind      string
		)
		if err := rows.Scan(&rec.ID, &startedAt, &editor, &rec.FilePath, &rec.Command, &kind, &rec.ExitCode, &rec.Signal, &rec.Error); err != nil {
			return nil, err
		}
		rec.StartedAt = time.UnixMilli(startedAt)
		rec.Editor = domain.EditorID(editor)
		rec.Kind = parseKind(kind)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the number of stored launches
func (h *History) Count(ctx context.Context) (int, error) {
	var n int
	err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM launches`).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

func parseKind(s string) domain.OutcomeKind {
	for _, k := range []domain.OutcomeKind{
		domain.OutcomeSuccess,
		domain.OutcomeProcessError,
		domain.OutcomeConfigurationError,
		domain.OutcomeValidationError,
	} {
		if k.String() == s {
			return k
		}
	}
	return domain.OutcomeProcessError
}
