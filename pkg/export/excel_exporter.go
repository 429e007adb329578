package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders sheets into a single xlsx workbook.
type ExcelExporter struct{}

// NewExcelExporter builds an xlsx exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Render produces workbook bytes with one tab per sheet. A sheet with no
// rows still gets its header row.
func (e *ExcelExporter) Render(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one sheet")
	}

	file := excelize.NewFile()
	defer file.Close()

	for i, sheet := range sheets {
		name := sanitizeSheetName(sheet.Name, i)
		if i == 0 {
			if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := file.NewSheet(name); err != nil {
				return nil, fmt.Errorf("add sheet %s: %w", name, err)
			}
		}

		for col, header := range sheet.Data.Headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, fmt.Errorf("header cell: %w", err)
			}
			if err := file.SetCellValue(name, cell, header); err != nil {
				return nil, fmt.Errorf("write header: %w", err)
			}
		}
		for rowIdx, row := range sheet.Data.Rows {
			for col, header := range sheet.Data.Headers {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				if err != nil {
					return nil, fmt.Errorf("body cell: %w", err)
				}
				if err := file.SetCellValue(name, cell, row[header]); err != nil {
					return nil, fmt.Errorf("write cell: %w", err)
				}
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeSheetName keeps tab names within the 31 character xlsx limit and
// strips characters the format forbids.
func sanitizeSheetName(name string, index int) string {
	replacer := strings.NewReplacer("[", "", "]", "", "*", "", "?", "", ":", "-", "/", "-", "\\", "-")
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		name = fmt.Sprintf("Hoja%d", index+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
