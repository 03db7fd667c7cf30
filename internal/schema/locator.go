package schema

import (
	"strings"

	"meterrecon/domain/recon"
)

// DefaultScanLimit bounds how many leading rows a grid scan inspects while
// hunting for the header row. Real exports bury the header under banner and
// title rows, but never this deep.
const DefaultScanLimit = 50

// HeaderLocation is the outcome of a successful grid scan: the header row
// index and the column index resolved for each role found in that row.
type HeaderLocation struct {
	Row     int
	Columns map[recon.Role]int
}

// Column returns the column index for a role and whether it was found.
func (l HeaderLocation) Column(role recon.Role) (int, bool) {
	idx, ok := l.Columns[role]
	return idx, ok
}

// LocateHeaderRow scans the first DefaultScanLimit rows of a raw grid for the
// row most likely to be the true header row.
func LocateHeaderRow(grid recon.Grid) (HeaderLocation, bool) {
	return LocateHeaderRowN(grid, DefaultScanLimit)
}

// LocateHeaderRowN is LocateHeaderRow with an explicit row scan limit. For
// each candidate row, cells are tested left-to-right against every role
// predicate and the first column reaching each role is recorded. A row
// qualifies once both the meter and value columns resolve within it; date and
// usage-point columns are best-effort extras.
func LocateHeaderRowN(grid recon.Grid, limit int) (HeaderLocation, bool) {
	if limit <= 0 || limit > len(grid) {
		limit = len(grid)
	}
	for r := 0; r < limit; r++ {
		cols := make(map[recon.Role]int, len(recon.Roles))
		for c, cell := range grid[r] {
			text := CellText(cell)
			if strings.TrimSpace(text) == "" {
				continue
			}
			for _, role := range recon.Roles {
				if _, seen := cols[role]; seen {
					continue
				}
				if Matches(role, text) {
					cols[role] = c
					break
				}
			}
		}
		_, hasMeter := cols[recon.RoleMeter]
		_, hasValue := cols[recon.RoleValue]
		if hasMeter && hasValue {
			return HeaderLocation{Row: r, Columns: cols}, true
		}
	}
	return HeaderLocation{}, false
}

// headerKeywords mark a keyed-row header candidate as domain-relevant.
var headerKeywords = []string{"meter", "date", "energy", "usage", "point", "asset"}

// placeholderLabels are generic captions that banner rows and container
// defaults produce; a row containing one is never the real header.
var placeholderLabels = map[string]bool{
	"device":        true,
	"column":        true,
	"field":         true,
	"daily profile": true,
}

// PickHeaderRow inspects up to the first three rows of a grid and returns the
// index of the row most plausibly holding real column names: more than two
// non-empty cells and at least one domain keyword, with placeholder-labelled
// rows rejected outright. Falls back to row 0 when nothing qualifies.
func PickHeaderRow(grid recon.Grid) int {
	limit := 3
	if len(grid) < limit {
		limit = len(grid)
	}
	for r := 0; r < limit; r++ {
		nonEmpty := 0
		keyword := false
		placeholder := false
		for _, cell := range grid[r] {
			text := Normalize(CellText(cell))
			if text == "" {
				continue
			}
			nonEmpty++
			if placeholderLabels[text] {
				placeholder = true
				break
			}
			if !keyword {
				for _, kw := range headerKeywords {
					if strings.Contains(text, kw) {
						keyword = true
						break
					}
				}
			}
		}
		if placeholder {
			continue
		}
		if nonEmpty > 2 && keyword {
			return r
		}
	}
	return 0
}
