package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// nullTokens are the literal cell values treated as nulls at load time.
// An empty cell stays an empty string so the empty-strings detector can
// flag it separately.
var nullTokens = map[string]bool{
	"NA":   true,
	"N/A":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"NULL": true,
	"NaN":  true,
	"nan":  true,
	"None": true,
}

// LoadCSV reads a CSV file with a header row into a Dataset
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads CSV data with a header row into a Dataset
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	values := make([][]string, len(header))
	nulls := make([][]bool, len(header))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		for i := range header {
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			if nullTokens[cell] || i >= len(record) {
				values[i] = append(values[i], "")
				nulls[i] = append(nulls[i], true)
			} else {
				values[i] = append(values[i], cell)
				nulls[i] = append(nulls[i], false)
			}
		}
	}

	columns := make([]*Column, len(header))
	for i, name := range header {
		col, err := NewColumnWithNulls(name, values[i], nulls[i])
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	return New(columns...)
}

// SaveCSV writes a dataset to a CSV file with a header row. Nulls are
// written as empty cells.
func SaveCSV(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSV(d, f)
}

// WriteCSV writes a dataset as CSV
func WriteCSV(d *Dataset, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cols := d.Columns()
	record := make([]string, len(cols))
	for i := 0; i < d.RowCount(); i++ {
		for ci, col := range cols {
			if col.IsNull(i) {
				record[ci] = ""
			} else {
				record[ci] = col.Value(i)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
