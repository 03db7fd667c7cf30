package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strings"
	"time"

	"meterrecon/domain/recon"
	"meterrecon/internal/schema"

	"github.com/xuri/excelize/v2"
)

// xlsx containers are zip archives; anything else is treated as CSV.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// Decode parses workbook bytes into a Workbook. XLSX payloads are read from
// their first sheet; non-zip payloads fall back to CSV parsing so plain
// exports work through the same path.
func Decode(data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty workbook payload")
	}
	if bytes.HasPrefix(data, zipMagic) {
		return decodeXLSX(data)
	}
	return decodeCSV(data)
}

func decodeXLSX(data []byte) (*Workbook, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	readTime := time.Since(startTime)
	log.Printf("[Workbook] sheet %q read in %.2fms (%d rows)", sheet, float64(readTime.Nanoseconds())/1e6, len(raw))

	return buildWorkbook(sheet, raw), nil
}

func decodeCSV(data []byte) (*Workbook, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV payload: %w", err)
	}
	log.Printf("[Workbook] CSV payload read (%d rows)", len(raw))
	return buildWorkbook("csv", raw), nil
}

// buildWorkbook converts raw string rows into the grid plus the keyed-row
// projection. The header row is picked by the keyed-row policy (banner rows
// in the first three rows are skipped); data rows before it are not part of
// the projection but stay visible in the grid for the positional fallback.
func buildWorkbook(sheet string, raw [][]string) *Workbook {
	grid := make(recon.Grid, len(raw))
	for i, row := range raw {
		cells := make([]recon.Cell, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		grid[i] = cells
	}

	wb := &Workbook{SheetName: sheet, Grid: grid}
	if len(raw) == 0 {
		return wb
	}

	wb.HeaderRow = schema.PickHeaderRow(grid)
	headerCells := raw[wb.HeaderRow]
	wb.Headers = make([]string, len(headerCells))
	for i, h := range headerCells {
		name := strings.TrimSpace(h)
		if name == "" {
			name = recon.PlaceholderKey(i)
		}
		wb.Headers[i] = name
	}

	for r := wb.HeaderRow + 1; r < len(raw); r++ {
		row := make(recon.Row, len(wb.Headers))
		for j, cell := range raw[r] {
			if j < len(wb.Headers) {
				row[wb.Headers[j]] = strings.TrimSpace(cell)
			}
		}
		wb.Rows = append(wb.Rows, row)
	}
	return wb
}

// Source adapts the workbook into the detector's input shape.
func (w *Workbook) Source() schema.Source {
	return schema.Source{Headers: w.Headers, Rows: w.Rows, Grid: w.Grid}
}

// SampleRow returns the first keyed data row for diagnostic payloads, or nil
// when the file has no data rows.
func (w *Workbook) SampleRow() recon.Row {
	if len(w.Rows) == 0 {
		return nil
	}
	return w.Rows[0]
}
