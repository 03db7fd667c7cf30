package schema

import (
	"regexp"
	"strings"

	"meterrecon/domain/recon"
)

// Alias tables are the primary source of truth for column classification.
// Keys are in loose-normalized form; squished variants are derived at init so
// punctuation and spacing flavors of the same alias match for free. When a
// tenant export shows up with a new header spelling, it belongs here, not in
// the heuristics below.
var (
	meterAliases = aliasSet(
		"meter",
		"meter id",
		"meter_id",
		"meter no",
		"meter no.",
		"meter number",
		"meter serial",
		"meter serial no",
		"meter serial number",
		"mtr no",
		"device id",
	)

	valueAliases = aliasSet(
		"value",
		"reading",
		"reading value",
		"meter reading",
		"consumption",
		"energy",
		"kwh",
		"kw h",
		"active energy import",
		"active energy import (kwh)",
	)

	dateAliases = aliasSet(
		"date",
		"day",
		"datetime",
		"timestamp",
		"time stamp",
		"reading date",
		"read date",
		"التاريخ",
		"تاريخ",
		"اليوم",
		"يوم",
		"تاريخ القراءة",
	)

	usagePointAliases = aliasSet(
		"usage point",
		"usage point no",
		"usage point no.",
		"usage point number",
		"usage_point",
		"location",
		"site",
		"address",
		"premise",
	)
)

var (
	meterSquished      = squishSet(meterAliases)
	valueSquished      = squishSet(valueAliases)
	dateSquished       = squishSet(dateAliases)
	usagePointSquished = squishSet(usagePointAliases)
)

// activeEnergyRe is the value-column fallback for utility exports that label
// the reading column with the register name rather than a unit.
var activeEnergyRe = regexp.MustCompile(`(?i)active\s*energy\s*import`)

func aliasSet(aliases ...string) map[string]bool {
	set := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		set[Normalize(a)] = true
	}
	return set
}

func squishSet(loose map[string]bool) map[string]bool {
	set := make(map[string]bool, len(loose))
	for a := range loose {
		set[Squish(a)] = true
	}
	return set
}

// IsMeterColumn reports whether headerText plausibly names the meter
// identifier column. Tiers: loose alias, squished alias, then a deliberately
// broad substring fallback. The fallback over-matches (any header containing
// "meter") and that is accepted behavior.
func IsMeterColumn(headerText string) bool {
	if meterAliases[Normalize(headerText)] {
		return true
	}
	sq := Squish(headerText)
	if meterSquished[sq] {
		return true
	}
	return strings.Contains(sq, "meter")
}

// IsValueColumn reports whether headerText plausibly names the reading value
// column.
func IsValueColumn(headerText string) bool {
	if valueAliases[Normalize(headerText)] {
		return true
	}
	sq := Squish(headerText)
	if valueSquished[sq] {
		return true
	}
	return activeEnergyRe.MatchString(headerText) || sq == "kwh" || strings.Contains(sq, "value")
}

// IsDateColumn reports whether headerText plausibly names the reading date
// column. The alias table carries both English and Arabic day/date terms.
func IsDateColumn(headerText string) bool {
	if dateAliases[Normalize(headerText)] {
		return true
	}
	sq := Squish(headerText)
	if dateSquished[sq] {
		return true
	}
	return strings.Contains(sq, "date") || strings.Contains(sq, "time")
}

// IsUsagePointColumn reports whether headerText plausibly names the usage
// point / location column.
func IsUsagePointColumn(headerText string) bool {
	if usagePointAliases[Normalize(headerText)] {
		return true
	}
	sq := Squish(headerText)
	if usagePointSquished[sq] {
		return true
	}
	return strings.Contains(sq, "usage") || strings.Contains(sq, "location")
}

// Matches evaluates the predicate for a single role. Predicates are
// independent: one header may match several roles, and the caller resolves
// conflicts by role priority with first-writer-wins per role.
func Matches(role recon.Role, headerText string) bool {
	switch role {
	case recon.RoleMeter:
		return IsMeterColumn(headerText)
	case recon.RoleValue:
		return IsValueColumn(headerText)
	case recon.RoleDate:
		return IsDateColumn(headerText)
	case recon.RoleUsagePoint:
		return IsUsagePointColumn(headerText)
	}
	return false
}
