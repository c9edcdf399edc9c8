package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractExcel extracts text from .xlsx bytes: sheets in workbook order,
// rows top to bottom, non-empty cells joined by tab, rows joined by newline
// with no sheet-boundary markers. Numeric and date cells come back in their
// formatted string form. Absent cells are dropped entirely, never rendered
// as empty tab fields.
func extractExcel(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", &MalformedError{Format: "xlsx", Err: err}
	}
	defer f.Close()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", &MalformedError{Format: "xlsx", Err: fmt.Errorf("get rows for sheet %q: %w", sheet, err)}
		}
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				if cell == "" {
					continue
				}
				cells = append(cells, cell)
			}
			lines = append(lines, strings.Join(cells, "\t"))
		}
	}
	return strings.Join(lines, "\n"), nil
}
