// Package coerce parses raw spreadsheet cell values into numbers and dates,
// tolerating the encodings real meter exports show up with: native numeric
// cells, comma-decimal strings, Excel date serials, and several date string
// layouts. Every function reports failure with a false ok value; callers must
// treat failure as "unparseable", never as zero.
package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Number converts a raw cell to a float64 reading value. Native numerics are
// accepted directly unless non-finite. Strings are trimmed; a comma with no
// period present is treated as a decimal separator; every rune outside
// [0-9.-] is then stripped before parsing.
func Number(cell interface{}) (float64, bool) {
	switch v := cell.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case float32:
		return Number(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return numberFromString(v)
	default:
		return 0, false
	}
}

func numberFromString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Plausible Excel serial-date window, exclusive bounds. 25000 is mid-1968,
// 50000 is late 2036; readings outside that window are not calendar dates.
const (
	serialMin = 25000
	serialMax = 50000
)

// excelEpoch is the workbook date-serial epoch (the 1900 date system).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// genericLayouts are tried first for date strings longer than six characters.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

var (
	dayMonthYearRe  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	yearMonthDayRe  = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
	dayMonthYear2Re = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2})$`)
)

// Date converts a raw cell to a calendar date (midnight UTC). Numeric cells
// inside the plausible serial window decode against the workbook epoch.
// Strings try the generic layouts first, then the explicit patterns in order:
// DD/MM/YYYY, YYYY/MM/DD, DD/MM/YY (two-digit year means 2000+YY), each with
// slash or hyphen separators; a string that is itself a number inside the
// serial window decodes like a numeric cell.
//
// DD/MM is deliberately tried before any MM/DD reading; pattern order, not
// locale, resolves the ambiguity. US-style inputs like "03/15/2024" fail the
// month range check instead of being reinterpreted.
func Date(cell interface{}) (time.Time, bool) {
	switch v := cell.(type) {
	case nil:
		return time.Time{}, false
	case float64:
		return serialDate(v)
	case int:
		return serialDate(float64(v))
	case string:
		return dateFromString(v)
	default:
		return time.Time{}, false
	}
}

func serialDate(v float64) (time.Time, bool) {
	if v <= serialMin || v >= serialMax {
		return time.Time{}, false
	}
	return excelEpoch.AddDate(0, 0, int(v)), true
}

func dateFromString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 6 {
		for _, layout := range genericLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return midnight(t), true
			}
		}
	}
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		return calendarDate(m[3], m[2], m[1])
	}
	if m := yearMonthDayRe.FindStringSubmatch(s); m != nil {
		return calendarDate(m[1], m[2], m[3])
	}
	if m := dayMonthYear2Re.FindStringSubmatch(s); m != nil {
		return calendarDate("20"+m[3], m[2], m[1])
	}
	// Workbook readers surface General-formatted cells as display strings, so
	// a date serial arrives here as e.g. "45000" rather than a float64.
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(v)
	}
	return time.Time{}, false
}

func calendarDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if d < 1 || d > 31 || mo < 1 || mo > 12 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
