// Package reconcile implements the two reconciliation engines: per-meter
// aggregation with deltas (diff mode) and the usage-point join (merge mode),
// plus the report grids rendered from their results.
package reconcile

import (
	"sort"
	"strings"
	"time"

	"meterrecon/domain/recon"
	"meterrecon/internal/coerce"
	"meterrecon/internal/schema"
)

// Fold processes one detected table into a per-meter aggregate. A row
// contributes only when its meter identifier is non-empty after trimming and
// its value cell coerces to a number; otherwise the whole row is skipped,
// including its date and usage-point cells. Usage-point labels are
// last-write-wins per meter across the file.
func Fold(table *recon.Table) *recon.FileAggregate {
	agg := recon.NewFileAggregate()
	if table == nil {
		return agg
	}
	m := table.Mapping
	for _, row := range table.Rows {
		meter := strings.TrimSpace(schema.CellText(row[m.Meter]))
		if meter == "" {
			continue
		}
		value, ok := coerce.Number(row[m.Value])
		if !ok {
			continue
		}
		total := agg.Totals[meter]
		total.Total += value
		if m.HasDate() {
			if d, parsed := coerce.Date(row[m.Date]); parsed {
				agg.Dates = append(agg.Dates, d)
			}
		}
		if m.HasUsagePoint() {
			if usage := strings.TrimSpace(schema.CellText(row[m.UsagePoint])); usage != "" {
				total.UsagePoint = usage
			}
		}
		agg.Totals[meter] = total
	}
	return agg
}

// Diff unions the meter sets of two file aggregates into report rows sorted
// lexicographically by meter identifier. The usage-point label prefers file
// 2's value, falls back to file 1's, else stays empty. A meter absent from a
// file counts as zero there.
func Diff(file1, file2 *recon.FileAggregate) []recon.DiffRow {
	meters := make([]string, 0, len(file1.Totals)+len(file2.Totals))
	seen := make(map[string]bool, len(file1.Totals)+len(file2.Totals))
	for id := range file1.Totals {
		if !seen[id] {
			seen[id] = true
			meters = append(meters, id)
		}
	}
	for id := range file2.Totals {
		if !seen[id] {
			seen[id] = true
			meters = append(meters, id)
		}
	}
	sort.Strings(meters)

	rows := make([]recon.DiffRow, 0, len(meters))
	for _, id := range meters {
		t1 := file1.Totals[id]
		t2 := file2.Totals[id]
		usage := t2.UsagePoint
		if usage == "" {
			usage = t1.UsagePoint
		}
		rows = append(rows, recon.DiffRow{
			MeterID:    id,
			UsagePoint: usage,
			Value1:     t1.Total,
			Value2:     t2.Total,
			Diff:       t2.Total - t1.Total,
		})
	}
	return rows
}

// displayDateLayout matches the day-first convention the date parser uses.
const displayDateLayout = "02/01/2006"

// DateRange formats one file's observed dates: empty when none were parsed,
// the single day when min equals max, otherwise "min to max".
func DateRange(dates []time.Time) string {
	if len(dates) == 0 {
		return ""
	}
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	min := sorted[0]
	max := sorted[len(sorted)-1]
	if min.Equal(max) {
		return min.Format(displayDateLayout)
	}
	return min.Format(displayDateLayout) + " to " + max.Format(displayDateLayout)
}

// CombinedRange joins the two per-file ranges for the report header. When
// only one file yielded dates that range stands alone.
func CombinedRange(range1, range2 string) string {
	switch {
	case range1 != "" && range2 != "":
		return range1 + " to " + range2
	case range1 != "":
		return range1
	default:
		return range2
	}
}

// TransportRange is the ASCII-safe variant of CombinedRange carried in
// response metadata, where the display separator could collide with non-ASCII
// locale characters in the formatted dates.
func TransportRange(range1, range2 string) string {
	switch {
	case range1 != "" && range2 != "":
		return range1 + " -> " + range2
	case range1 != "":
		return range1
	default:
		return range2
	}
}
