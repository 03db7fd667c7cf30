package schema

import (
	"strings"

	"meterrecon/domain/recon"
)

// Source is the raw material detection works from: the keyed-row projection
// produced by the container adapter plus the underlying raw grid for the
// positional fallback.
type Source struct {
	Headers []string
	Rows    []recon.Row
	Grid    recon.Grid
}

// Detector resolves the column schema of one input table. Two strategies are
// tried in order: keyed-row classification, then a positional grid scan. The
// first to succeed wins; when both fail the file is undetectable and the
// caller decides whether that is fatal.
//
// Trace receives diagnostic events about intermediate detection state. It is
// a no-op by default; the service layer wires it to the debug logger.
type Detector struct {
	ScanLimit int
	Trace     func(format string, args ...interface{})
}

// NewDetector returns a detector with default scan limit and silent trace.
func NewDetector() *Detector {
	return &Detector{
		ScanLimit: DefaultScanLimit,
		Trace:     func(string, ...interface{}) {},
	}
}

// Detect runs the strategy chain against a source. The returned table carries
// the resolved mapping and keyed data rows; ok is false when neither strategy
// could resolve the mandatory meter and value columns.
func (d *Detector) Detect(src Source) (*recon.Table, bool) {
	if table, ok := d.detectKeyed(src.Headers, src.Rows); ok {
		d.Trace("[Detect] keyed strategy resolved mapping %+v", table.Mapping)
		return table, true
	}
	if table, ok := d.detectPositional(src.Grid); ok {
		d.Trace("[Detect] positional strategy resolved mapping %+v", table.Mapping)
		return table, true
	}
	d.Trace("[Detect] no strategy succeeded, headers=%v", src.Headers)
	return nil, false
}

// detectKeyed is Strategy A: classify the existing row keys. Placeholder keys
// generated for blank header cells are filtered first. Each key claims at most
// one role, evaluated in priority order with first-writer-wins per role.
func (d *Detector) detectKeyed(headers []string, rows []recon.Row) (*recon.Table, bool) {
	if len(headers) == 0 {
		return nil, false
	}
	assigned := make(map[recon.Role]string, len(recon.Roles))
	for _, key := range headers {
		if recon.IsPlaceholderKey(key) || strings.TrimSpace(key) == "" {
			continue
		}
		for _, role := range recon.Roles {
			if _, taken := assigned[role]; taken {
				continue
			}
			if Matches(role, key) {
				assigned[role] = key
				break
			}
		}
	}
	mapping := recon.Mapping{
		Meter:      assigned[recon.RoleMeter],
		Value:      assigned[recon.RoleValue],
		Date:       assigned[recon.RoleDate],
		UsagePoint: assigned[recon.RoleUsagePoint],
	}
	if mapping.Meter == "" || mapping.Value == "" {
		return nil, false
	}
	return &recon.Table{Mapping: mapping, Headers: headers, Rows: rows}, true
}

// Synthetic keys used by the positional strategy for its keyed-row view.
const (
	keyMeter      = "meter_id"
	keyValue      = "value"
	keyDate       = "date"
	keyUsagePoint = "usage_point"
)

// detectPositional is Strategy B: locate the header row in the raw grid and
// synthesize keyed rows from the discovered column indices for every row
// after it.
func (d *Detector) detectPositional(grid recon.Grid) (*recon.Table, bool) {
	loc, ok := LocateHeaderRowN(grid, d.scanLimit())
	if !ok {
		return nil, false
	}
	mapping := recon.Mapping{Meter: keyMeter, Value: keyValue}
	if _, found := loc.Column(recon.RoleDate); found {
		mapping.Date = keyDate
	}
	if _, found := loc.Column(recon.RoleUsagePoint); found {
		mapping.UsagePoint = keyUsagePoint
	}

	headers := make([]string, 0, len(grid[loc.Row]))
	for _, cell := range grid[loc.Row] {
		headers = append(headers, strings.TrimSpace(CellText(cell)))
	}

	rows := make([]recon.Row, 0, len(grid)-loc.Row-1)
	for r := loc.Row + 1; r < len(grid); r++ {
		row := make(recon.Row, len(loc.Columns))
		for role, col := range loc.Columns {
			var key string
			switch role {
			case recon.RoleMeter:
				key = keyMeter
			case recon.RoleValue:
				key = keyValue
			case recon.RoleDate:
				key = keyDate
			case recon.RoleUsagePoint:
				key = keyUsagePoint
			}
			row[key] = cellAt(grid[r], col)
		}
		rows = append(rows, row)
	}
	return &recon.Table{Mapping: mapping, Headers: headers, Rows: rows}, true
}

func (d *Detector) scanLimit() int {
	if d.ScanLimit > 0 {
		return d.ScanLimit
	}
	return DefaultScanLimit
}

// cellAt tolerates ragged rows: a missing trailing cell reads as nil.
func cellAt(row []recon.Cell, col int) recon.Cell {
	if col < 0 || col >= len(row) {
		return nil
	}
	return row[col]
}

// usagePointTokens drive the merge-mode search for the usage-point column in
// the mapping file, tried in order against squished headers.
var usagePointTokens = []string{"usagepointno", "usagepoint", "location", "site", "address"}

// joinTokens drive the merge-mode search for the join identifier column.
var joinTokens = []string{"meterserial", "serialnumber", "meterno", "meternumber", "meterid", "meter", "deviceid"}

// FindUsagePointColumn returns the header naming the usage-point/location
// column of a mapping file. There is no safe default for this column, so the
// caller treats a miss as a hard error.
func FindUsagePointColumn(headers []string) (string, bool) {
	for _, tok := range usagePointTokens {
		for _, h := range headers {
			if strings.Contains(Squish(h), tok) {
				return h, true
			}
		}
	}
	for _, h := range headers {
		if recon.IsPlaceholderKey(h) {
			continue
		}
		if IsUsagePointColumn(h) {
			return h, true
		}
	}
	return "", false
}

// FindJoinColumn returns the header naming the join identifier column.
// Layered fallback: token search, then any header containing "no"/"id"/
// "number", then the first column. A wrong pick degrades to NOT FOUND rows
// rather than a hard failure, so this never errors.
func FindJoinColumn(headers []string) string {
	for _, tok := range joinTokens {
		for _, h := range headers {
			if strings.Contains(Squish(h), tok) {
				return h
			}
		}
	}
	for _, h := range headers {
		sq := Squish(h)
		if strings.Contains(sq, "no") || strings.Contains(sq, "id") || strings.Contains(sq, "number") {
			return h
		}
	}
	if len(headers) > 0 {
		return headers[0]
	}
	return ""
}
