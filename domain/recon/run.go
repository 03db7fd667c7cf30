package recon

import "meterrecon/domain/core"

// Mode names a reconciliation operation.
type Mode string

const (
	ModeDiff  Mode = "diff"
	ModeMerge Mode = "merge"
)

// RunRecord captures one completed reconciliation request for the run
// history: which files were processed, how large the result was, and a short
// human-readable summary.
type RunRecord struct {
	ID         core.RunID     `db:"id" json:"id"`
	Mode       Mode           `db:"mode" json:"mode"`
	File1Name  string         `db:"file1_name" json:"file1_name"`
	File2Name  string         `db:"file2_name" json:"file2_name"`
	RowCount   int            `db:"row_count" json:"row_count"`
	MeterCount int            `db:"meter_count" json:"meter_count"`
	Summary    string         `db:"summary" json:"summary"`
	CreatedAt  core.Timestamp `db:"created_at" json:"created_at"`
}

// NewRunRecord builds a run record with a fresh ID and timestamp.
func NewRunRecord(mode Mode, file1, file2 string) *RunRecord {
	return &RunRecord{
		ID:        core.RunID(core.NewID()),
		Mode:      mode,
		File1Name: file1,
		File2Name: file2,
		CreatedAt: core.Now(),
	}
}
