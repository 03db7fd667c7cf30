package reconcile

import "meterrecon/domain/recon"

// diffHeader is the fixed column layout of the diff report.
var diffHeader = []recon.Cell{
	"meter_id",
	"usage_point_no",
	"value_file1",
	"value_file2",
	"diff_file2_minus_file1",
}

// DiffReportGrid renders diff rows into an output grid. When at least one
// input file yielded a parseable date the grid opens with a two-row date
// range banner and a blank spacer row.
func DiffReportGrid(rows []recon.DiffRow, displayRange string) recon.Grid {
	grid := make(recon.Grid, 0, len(rows)+4)
	if displayRange != "" {
		grid = append(grid,
			[]recon.Cell{"Date Range:"},
			[]recon.Cell{displayRange},
			[]recon.Cell{},
		)
	}
	grid = append(grid, diffHeader)
	for _, r := range rows {
		grid = append(grid, []recon.Cell{r.MeterID, r.UsagePoint, r.Value1, r.Value2, r.Diff})
	}
	return grid
}

// MergeReportGrid renders joined rows with the readings file's original
// column order plus the appended usage-point field.
func MergeReportGrid(headers []string, rows []recon.Row) recon.Grid {
	cols := make([]string, 0, len(headers)+1)
	appended := false
	for _, h := range headers {
		cols = append(cols, h)
		if h == recon.UsagePointField {
			appended = true
		}
	}
	if !appended {
		cols = append(cols, recon.UsagePointField)
	}

	grid := make(recon.Grid, 0, len(rows)+1)
	headerCells := make([]recon.Cell, len(cols))
	for i, c := range cols {
		headerCells[i] = c
	}
	grid = append(grid, headerCells)

	for _, row := range rows {
		line := make([]recon.Cell, len(cols))
		for i, c := range cols {
			line[i] = row[c]
		}
		grid = append(grid, line)
	}
	return grid
}
