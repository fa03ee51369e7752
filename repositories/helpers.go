package repositories

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// readTable reads a CSV file into a header slice and row slices. A missing
// or empty file yields an empty table rather than an error; the stores
// create their files at open time.
func readTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows from older file revisions
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

// writeTable rewrites the whole file via a temp file and rename, so a
// crash mid-write never leaves a truncated store behind.
func writeTable(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write header to %s: %w", tmpName, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write rows to %s: %w", tmpName, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// columnIndex maps canonical column names to their position in the file
// header. Unknown extra columns are simply absent from the map; missing
// canonical columns report -1 so callers fall back to the zero value.
func columnIndex(header []string, columns []string) map[string]int {
	positions := make(map[string]int, len(columns))
	for _, col := range columns {
		positions[col] = -1
	}
	for i, name := range header {
		if _, wanted := positions[name]; wanted {
			positions[name] = i
		}
	}
	return positions
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ensureColumns backfills any canonical columns missing from an existing
// file. Runs once at store open, not on every read.
func ensureColumns(path string, columns []string) error {
	header, rows, err := readTable(path)
	if err != nil {
		return err
	}
	if header == nil {
		return writeTable(path, columns, nil)
	}

	missing := false
	idx := columnIndex(header, columns)
	for _, col := range columns {
		if idx[col] == -1 {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	newHeader := append([]string(nil), header...)
	for _, col := range columns {
		if idx[col] == -1 {
			newHeader = append(newHeader, col)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		p := make([]string, len(newHeader))
		copy(p, row)
		padded[i] = p
	}
	return writeTable(path, newHeader, padded)
}
