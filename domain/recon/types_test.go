package recon

import "testing"

func TestPlaceholderKey(t *testing.T) {
	if got := PlaceholderKey(0); got != "column_1" {
		t.Errorf("PlaceholderKey(0) = %q, want column_1", got)
	}
	if got := PlaceholderKey(11); got != "column_12" {
		t.Errorf("PlaceholderKey(11) = %q, want column_12", got)
	}
}

func TestIsPlaceholderKey(t *testing.T) {
	cases := map[string]bool{
		"column_1":   true,
		"column_42":  true,
		"column_":    false,
		"column_1a":  false,
		"Meter No.":  false,
		"acolumn_1":  false,
	}
	for key, want := range cases {
		if got := IsPlaceholderKey(key); got != want {
			t.Errorf("IsPlaceholderKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestMappingFlags(t *testing.T) {
	m := Mapping{Meter: "meter_id", Value: "value"}
	if m.HasDate() || m.HasUsagePoint() {
		t.Error("empty optional roles must report absent")
	}
	m.Date = "date"
	m.UsagePoint = "usage_point"
	if !m.HasDate() || !m.HasUsagePoint() {
		t.Error("populated optional roles must report present")
	}
}
