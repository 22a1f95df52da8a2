package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) Extensions() []string { return []string{".xlsx"} }

// Read returns the rows of the selected sheet, or the first sheet.
func (xlsxReader) Read(r io.Reader, opt Options) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmpty
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet '%s' not found; available sheets: %v", sheet, f.GetSheetList())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}
