package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of an xlsx workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// Sheet is one worksheet: a bold header row followed by data rows
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// WriteWorkbook renders the sheets into a single workbook and writes it to w.
// At least one sheet is required; names must be unique and at most 31 characters.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
				return fmt.Errorf("export: rename sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("export: create sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	if len(s.Headers) > 0 {
		header := make([]interface{}, len(s.Headers))
		for i, h := range s.Headers {
			header[i] = h
		}
		if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
			return fmt.Errorf("export: header of %q: %w", s.Name, err)
		}
		last, err := excelize.CoordinatesToCellName(len(s.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("export: header style of %q: %w", s.Name, err)
		}
		lastCol, err := excelize.ColumnNumberToName(len(s.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, "A", lastCol, 18); err != nil {
			return err
		}
	}

	start := 1
	if len(s.Headers) > 0 {
		start = 2
	}
	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, start+i)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(s.Name, cell, &r); err != nil {
			return fmt.Errorf("export: row %d of %q: %w", i+1, s.Name, err)
		}
	}
	return nil
}
