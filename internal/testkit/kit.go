// Package testkit builds synthetic meter-reading workbooks and grids for
// tests, so handler and service tests can exercise real container bytes
// without fixture files.
package testkit

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders rows into xlsx bytes on a single sheet. Rows may be
// ragged; nil cells are skipped.
func BuildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	for r, row := range rows {
		cells := make([]interface{}, len(row))
		copy(cells, row)
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", r+1), &cells); err != nil {
			t.Fatalf("failed to write workbook row %d: %v", r+1, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

// ReadingsRows returns a plausible readings sheet: header row 0 with the
// given meter/value pairs below it.
func ReadingsRows(pairs ...[2]interface{}) [][]interface{} {
	rows := [][]interface{}{{"Meter No.", "Active Energy Import (kWh)", "Date"}}
	for _, p := range pairs {
		rows = append(rows, []interface{}{p[0], p[1], "15/03/2024"})
	}
	return rows
}

// BannerReadingsRows returns a readings sheet with two banner rows above the
// header, exercising the positional header-row scan.
func BannerReadingsRows(pairs ...[2]interface{}) [][]interface{} {
	rows := [][]interface{}{
		{"Monthly Export"},
		{"Generated 01/04/2024"},
	}
	return append(rows, ReadingsRows(pairs...)...)
}

// MappingRows returns a usage-point mapping sheet keyed by meter serial.
func MappingRows(entries map[string]string) [][]interface{} {
	rows := [][]interface{}{{"Meter Serial Number", "Usage Point No.", "Address"}}
	for serial, usage := range entries {
		rows = append(rows, []interface{}{serial, usage, "1 Test Street"})
	}
	return rows
}
