package recon

import (
	"fmt"
	"regexp"
	"time"
)

// Cell is an untyped scalar at one workbook grid position. The container
// adapter emits display strings for every populated cell (numeric cells
// included) and nil for empty/missing ones; report grids additionally carry
// float64 values on their way out. Coercion accepts both shapes.
type Cell = interface{}

// Grid is a raw sheet: rows by columns of cells. Rows are not guaranteed to be
// padded to equal length; missing trailing cells are treated as nil.
type Grid [][]Cell

// Row is a keyed record mapping a header (or role) key to a raw cell value.
type Row map[string]Cell

// Role names the semantic purpose assigned to a detected column.
type Role string

const (
	RoleMeter      Role = "meter"
	RoleValue      Role = "value"
	RoleDate       Role = "date"
	RoleUsagePoint Role = "usage_point"
)

// Roles lists all roles in classification priority order. A header may satisfy
// several role predicates; the first role to claim a column wins.
var Roles = []Role{RoleMeter, RoleValue, RoleDate, RoleUsagePoint}

// Mapping records which row key holds each role after schema detection.
// Meter and Value are mandatory; Date and UsagePoint are empty when absent.
type Mapping struct {
	Meter      string `json:"meter"`
	Value      string `json:"value"`
	Date       string `json:"date,omitempty"`
	UsagePoint string `json:"usage_point,omitempty"`
}

// HasDate reports whether a date column was resolved.
func (m Mapping) HasDate() bool { return m.Date != "" }

// HasUsagePoint reports whether a usage-point column was resolved.
func (m Mapping) HasUsagePoint() bool { return m.UsagePoint != "" }

// Table is the detected, normalized view of one input file: the resolved
// column mapping plus keyed data rows in original file order. Headers preserves
// the column order of the header row for report rendering.
type Table struct {
	Mapping Mapping
	Headers []string
	Rows    []Row
}

// MeterTotal is the per-meter fold state for one file.
type MeterTotal struct {
	Total      float64
	UsagePoint string
}

// FileAggregate is the result of folding one file in diff mode: running totals
// keyed by trimmed meter identifier (case-sensitive) plus every successfully
// parsed date observed in the file.
type FileAggregate struct {
	Totals map[string]MeterTotal
	Dates  []time.Time
}

// NewFileAggregate returns an empty aggregate ready for folding.
func NewFileAggregate() *FileAggregate {
	return &FileAggregate{Totals: make(map[string]MeterTotal)}
}

// DiffRow is one meter line of the diff report.
type DiffRow struct {
	MeterID    string  `json:"meter_id"`
	UsagePoint string  `json:"usage_point"`
	Value1     float64 `json:"value_file1"`
	Value2     float64 `json:"value_file2"`
	Diff       float64 `json:"diff_file2_minus_file1"`
}

// NotFound is the literal appended to a merge-output row whose meter identifier
// has no entry in the mapping file. It is part of the persisted output contract
// consumed downstream, a data value rather than an error.
const NotFound = "NOT FOUND"

// UsagePointField is the fixed label of the column appended to every merge
// output row.
const UsagePointField = "Usage Point No."

var placeholderKeyRe = regexp.MustCompile(`^column_\d+$`)

// PlaceholderKey is the synthetic key the container adapter assigns to a
// column whose header cell is blank. Detection must never classify these.
func PlaceholderKey(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// IsPlaceholderKey reports whether a row key was auto-generated for a blank
// header cell.
func IsPlaceholderKey(key string) bool {
	return placeholderKeyRe.MatchString(key)
}
