package reconcile

import (
	"strings"

	"meterrecon/domain/recon"
	"meterrecon/internal/schema"
)

// BuildLookup folds a mapping table into a case-insensitive lookup from
// trimmed meter identifier to usage-point label. Rows missing either side are
// skipped; for duplicate keys the last row wins.
func BuildLookup(rows []recon.Row, joinKey, usageKey string) map[string]string {
	lookup := make(map[string]string, len(rows))
	for _, row := range rows {
		key := strings.TrimSpace(schema.CellText(row[joinKey]))
		usage := strings.TrimSpace(schema.CellText(row[usageKey]))
		if key == "" || usage == "" {
			continue
		}
		lookup[strings.ToLower(key)] = usage
	}
	return lookup
}

// Join appends the resolved usage-point label to every readings row, in input
// order. Rows whose join key is blank are dropped silently; rows with no
// lookup hit carry the NOT FOUND sentinel. Original fields are preserved
// untouched.
func Join(readings []recon.Row, joinKey string, lookup map[string]string) []recon.Row {
	out := make([]recon.Row, 0, len(readings))
	for _, row := range readings {
		key := strings.TrimSpace(schema.CellText(row[joinKey]))
		if key == "" {
			continue
		}
		merged := make(recon.Row, len(row)+1)
		for k, v := range row {
			merged[k] = v
		}
		if label, ok := lookup[strings.ToLower(key)]; ok {
			merged[recon.UsagePointField] = label
		} else {
			merged[recon.UsagePointField] = recon.NotFound
		}
		out = append(out, merged)
	}
	return out
}
