package excel

import (
	"bytes"
	"fmt"

	"meterrecon/domain/recon"

	"github.com/xuri/excelize/v2"
)

// Encode renders an output grid into xlsx bytes on a single sheet.
func Encode(grid recon.Grid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	for r, row := range grid {
		if len(row) == 0 {
			continue
		}
		cells := make([]interface{}, len(row))
		copy(cells, row)
		addr, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", r+1, err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
