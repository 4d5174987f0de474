package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gppd-stats/domain/kpi"

	"github.com/xuri/excelize/v2"
)

// textColumns are never converted to numbers, even when a value looks numeric.
var textColumns = map[string]bool{
	"gppd_idnr":    true,
	"country_long": true,
	"name":         true,
	"primary_fuel": true,
	"fuel_type":    true,
	"verdict":      true,
}

// WriteWorkbook writes one sheet per table into a single workbook at path.
func WriteWorkbook(path string, tables []kpi.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, t kpi.Table) error {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}
	for r, row := range t.Rows {
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = cellValue(t.Header, i, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(header []string, i int, v string) any {
	if v == "" || (i < len(header) && textColumns[header[i]]) {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}
