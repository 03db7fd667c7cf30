package migration

import (
	"context"
	"fmt"

	"meterrecon/internal/errors"

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
		version: "1.1.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order. Every statement
// is idempotent so the runner is safe to execute on every startup.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create recon_runs table")
	}

	if err := r.addRunsColumns(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add recon_runs columns")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recon_runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			file1_name TEXT NOT NULL DEFAULT '',
			file2_name TEXT NOT NULL DEFAULT '',
			row_count INTEGER NOT NULL DEFAULT 0,
			meter_count INTEGER NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

// addRunsColumns back-fills columns added after the table first shipped, for
// installations that created recon_runs under an earlier version.
func (r *MigrationRunner) addRunsColumns(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'recon_runs' AND column_name = 'meter_count'
			) THEN
				ALTER TABLE recon_runs ADD COLUMN meter_count INTEGER NOT NULL DEFAULT 0;
			END IF;

			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'recon_runs' AND column_name = 'summary'
			) THEN
				ALTER TABLE recon_runs ADD COLUMN summary TEXT NOT NULL DEFAULT '';
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_recon_runs_created_at ON recon_runs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_recon_runs_mode ON recon_runs(mode)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			fmt.Printf("Warning: failed to create index: %v\n", err)
		}
	}

	return nil
}
