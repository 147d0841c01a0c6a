package migration

import (
	"context"

	"watchlens/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createImportsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create imports table")
	}

	if err := r.createWatchRecordsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create watch_records table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createImportsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS imports (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		file_size BIGINT,
		file_path TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		error_message TEXT,
		record_count INTEGER,
		duplicate_count INTEGER,
		imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createWatchRecordsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS watch_records (
		id TEXT PRIMARY KEY,
		import_id TEXT REFERENCES imports(id),
		position INTEGER NOT NULL,
		watched_at TIMESTAMPTZ,
		raw_timestamp TEXT NOT NULL,
		video_id TEXT,
		video_title TEXT,
		video_url TEXT,
		channel_title TEXT,
		channel_url TEXT,
		channel_id TEXT,
		product TEXT NOT NULL,
		topics JSONB,
		year INTEGER,
		month INTEGER,
		week INTEGER,
		day_of_week INTEGER,
		hour INTEGER,
		yoy_key TEXT
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_watch_records_watched_at ON watch_records(watched_at)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_records_channel ON watch_records(channel_title)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_records_yoy_key ON watch_records(yoy_key)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_status ON imports(status)`,
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
