package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is used when no sheet is specified.
const DefaultSheetName = "Sheet1"

// ReadXLSX loads a table from a sheet of an Excel workbook. An empty sheet
// name selects the active sheet. Header order becomes column order and cells
// arrive as the display strings excelize produces.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open '%s': %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
		if sheet == "" {
			sheet = f.GetSheetName(0)
		}
		if sheet == "" {
			return nil, fmt.Errorf("dataset: '%s' contains no sheets", path)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read sheet '%s' of '%s': %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: sheet '%s' of '%s' has no header row", sheet, path)
	}

	headers := rows[0]
	table := New(headers...)
	for _, cells := range rows[1:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		table.Append(row)
	}
	return table, nil
}

// WriteXLSX saves a table to a sheet of a new Excel workbook.
func WriteXLSX(t *Table, path, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: failed to create directory for '%s': %w", path, err)
		}
	}

	f := excelize.NewFile()
	if sheet != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheet); err != nil {
			return fmt.Errorf("dataset: failed to name sheet '%s': %w", sheet, err)
		}
	}

	columns := t.Columns()
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("dataset: failed to write header to '%s': %w", path, err)
	}

	for i := 0; i < t.Len(); i++ {
		cells := make([]any, len(columns))
		for j, column := range columns {
			cells[j] = t.Value(i, column)
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("dataset: failed to locate row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return fmt.Errorf("dataset: failed to write row %d to '%s': %w", i, path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("dataset: failed to save '%s': %w", path, err)
	}
	return nil
}
