package coinledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Columnar CSV primitives shared by both ledgers. Rows are exposed as
// header-keyed maps, one value per header column.

// readHeader returns the header row of a ledger file.
func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %q has no header: %v", ErrSchema, path, err)
	}
	return header, nil
}

// forEachRow streams the data rows of a ledger to fn, each keyed by the
// header columns. A row whose field count disagrees with the header is a
// schema violation.
func forEachRow(path string, fn func(row map[string]string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%w: %q has no header: %v", ErrSchema, path, err)
	}
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrSchema, path, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// appendRow writes one data row as a single buffered operation, the only
// write path that bypasses the atomic rewrite.
func appendRow(path string, header []string, row map[string]string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, len(header))
	for i, col := range header {
		record[i] = row[col]
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// lineCount counts the data rows of a ledger, header excluded, by scanning
// raw bytes for newlines.
func lineCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	buf := make([]byte, 1024*1024)
	for {
		n, err := f.Read(buf)
		lines += bytes.Count(buf[:n], []byte{'\n'})
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return lines - 1, nil
}

// formatValue renders a ledger value without trailing zeros.
func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// parseValue parses a ledger cell; failures are schema violations.
func parseValue(cell, column string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q holds %q, not a number", ErrSchema, column, cell)
	}
	return v, nil
}
