package recon

import "testing"

func TestNewRunRecord(t *testing.T) {
	rec := NewRunRecord(ModeDiff, "a.xlsx", "b.xlsx")

	if rec.ID == "" {
		t.Error("run record must carry a fresh ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("run record must carry a creation timestamp")
	}
	if rec.Mode != ModeDiff || rec.File1Name != "a.xlsx" || rec.File2Name != "b.xlsx" {
		t.Errorf("unexpected record fields: %+v", rec)
	}

	other := NewRunRecord(ModeMerge, "a.xlsx", "b.xlsx")
	if rec.ID == other.ID {
		t.Error("run IDs must be unique")
	}
}
