package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCSV loads a table from a CSV file. The first row is the header; header
// order becomes column order and every cell stays a string.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open '%s': %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read '%s': %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("dataset: '%s' has no header row", path)
	}

	headers := make([]string, len(all[0]))
	for i, h := range all[0] {
		headers[i] = strings.TrimSpace(h)
	}
	table := New(headers...)

	for _, record := range all[1:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		table.Append(row)
	}
	return table, nil
}

// WriteCSV saves a table as CSV, creating parent directories as needed.
func WriteCSV(t *Table, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: failed to create directory for '%s': %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: failed to create '%s': %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	columns := t.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("dataset: failed to write header to '%s': %w", path, err)
	}
	for i := 0; i < t.Len(); i++ {
		record := make([]string, len(columns))
		for j, column := range columns {
			record[j] = formatCell(t.Value(i, column))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("dataset: failed to write row %d to '%s': %w", i, path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("dataset: failed to flush '%s': %w", path, err)
	}
	return nil
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
