package excel

import "meterrecon/domain/recon"

// Workbook is the decoded view of one uploaded spreadsheet: the raw cell grid
// of the first sheet plus a keyed-row projection built from the picked header
// row. Blank header cells receive synthetic placeholder keys so detection can
// filter them.
type Workbook struct {
	SheetName string
	Grid      recon.Grid
	HeaderRow int
	Headers   []string
	Rows      []recon.Row
}
