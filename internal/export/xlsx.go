package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/tabula-extract/internal/tabula"
)

// DefaultSheet is used when XLSX is called with an empty sheet name.
const DefaultSheet = "Tables"

const (
	minColWidth = 8
	maxColWidth = 60
)

// XLSX returns a workbook (as bytes) holding t on one sheet: a header row of
// column names followed by the table rows. Cells are written as strings.
func XLSX(t *tabula.Table, sheet string) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("xlsx: nil table")
	}
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile starts with "Sheet1"; rename it rather than leaving an empty sheet.
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	widths := make([]int, t.NumCols())
	for i, name := range t.ColumnNames() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
		widths[i] = utf8.RuneCountInString(name)
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx cell %s: %w", cell, err)
			}
			if n := utf8.RuneCountInString(v); c < len(widths) && n > widths[c] {
				widths[c] = n
			}
		}
	}

	// Widen columns to their content
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, float64(clamp(w+2, minColWidth, maxColWidth)))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
