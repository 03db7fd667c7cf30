package reconcile

import (
	"testing"

	"meterrecon/domain/recon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffReportGridWithoutRange(t *testing.T) {
	rows := []recon.DiffRow{{MeterID: "M1", Value1: 10, Value2: 15, Diff: 5}}
	grid := DiffReportGrid(rows, "")

	require.Len(t, grid, 2)
	assert.Equal(t, diffHeader, grid[0])
	assert.Equal(t, []recon.Cell{"M1", "", 10.0, 15.0, 5.0}, grid[1])
}

func TestDiffReportGridWithRange(t *testing.T) {
	grid := DiffReportGrid(nil, "01/03/2024 to 20/03/2024")

	require.Len(t, grid, 4)
	assert.Equal(t, []recon.Cell{"Date Range:"}, grid[0])
	assert.Equal(t, []recon.Cell{"01/03/2024 to 20/03/2024"}, grid[1])
	assert.Empty(t, grid[2], "spacer row between banner and header")
	assert.Equal(t, diffHeader, grid[3])
}

func TestMergeReportGrid(t *testing.T) {
	headers := []string{"Meter No.", "Reading"}
	rows := []recon.Row{
		{"Meter No.": "M1", "Reading": "10", recon.UsagePointField: "UP-1"},
		{"Meter No.": "M2", "Reading": "20", recon.UsagePointField: recon.NotFound},
	}
	grid := MergeReportGrid(headers, rows)

	require.Len(t, grid, 3)
	assert.Equal(t, []recon.Cell{"Meter No.", "Reading", recon.UsagePointField}, grid[0])
	assert.Equal(t, []recon.Cell{"M1", "10", "UP-1"}, grid[1])
	assert.Equal(t, []recon.Cell{"M2", "20", recon.NotFound}, grid[2])
}

// A readings file that already carries a usage-point column must not get a
// duplicate appended.
func TestMergeReportGridExistingUsageColumn(t *testing.T) {
	headers := []string{"Meter No.", recon.UsagePointField}
	grid := MergeReportGrid(headers, nil)

	require.Len(t, grid, 1)
	assert.Equal(t, []recon.Cell{"Meter No.", recon.UsagePointField}, grid[0])
}
