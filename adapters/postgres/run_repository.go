package postgres

import (
	"context"
	"fmt"
	"time"

	"meterrecon/domain/core"
	"meterrecon/domain/recon"
	"meterrecon/ports"

	"github.com/jmoiron/sqlx"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run history repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// Create inserts a run record into the database
func (r *runRepository) Create(ctx context.Context, rec *recon.RunRecord) error {
	query := `INSERT INTO recon_runs (
		id, mode, file1_name, file2_name, row_count, meter_count, summary, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID.String(), string(rec.Mode), rec.File1Name, rec.File2Name,
		rec.RowCount, rec.MeterCount, rec.Summary, rec.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create run record: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent run records, newest first
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]*recon.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, mode, file1_name, file2_name, row_count, meter_count, summary, created_at
	FROM recon_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	defer rows.Close()

	var records []*recon.RunRecord
	for rows.Next() {
		var rec recon.RunRecord
		var id string
		var mode string
		var createdAt time.Time
		if err := rows.Scan(&id, &mode, &rec.File1Name, &rec.File2Name,
			&rec.RowCount, &rec.MeterCount, &rec.Summary, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		rec.ID = core.RunID(id)
		rec.Mode = recon.Mode(mode)
		rec.CreatedAt = core.NewTimestamp(createdAt)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run records: %w", err)
	}
	return records, nil
}
