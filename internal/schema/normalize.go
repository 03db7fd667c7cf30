package schema

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining diacritical marks after NFD decomposition.
// Scripts without Latin-range diacritics (Arabic and friends) pass through.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the loose matchable form of a raw header string: trimmed,
// case-folded, diacritics stripped. Spaces and underscores are kept so the
// result can be looked up directly in the alias tables.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	return s
}

// Squish reduces a header to its lowercase alphanumeric core: every separator
// and punctuation rune is dropped, so "Meter No." and "meter_no" collapse to
// the same token. Letters and digits of any script are preserved.
func Squish(raw string) string {
	s := Normalize(raw)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CellText converts a raw cell value to its string form for classification.
func CellText(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
