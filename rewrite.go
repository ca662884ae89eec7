package coinledger

import (
	"encoding/csv"
	"os"
)

// Atomic rewrite primitive. Every schema migration, historical recompute and
// value conversion routes through here; only sample appends bypass it.
//
// The new content is generated into tmp.csv inside the data directory, then
// the original is removed and the temp file renamed into place. A failure
// while generating leaves the original untouched; a crash after the rename
// leaves the new file in place. No partially written ledger is ever live.

// rowWriter writes the rows of a ledger being rebuilt.
type rowWriter struct {
	w      *csv.Writer
	header []string
}

// writeRow emits one row in header order. Columns absent from the map are
// written empty.
func (rw *rowWriter) writeRow(row map[string]string) error {
	record := make([]string, len(rw.header))
	for i, col := range rw.header {
		record[i] = row[col]
	}
	return rw.w.Write(record)
}

// rewrite rebuilds the ledger at path with the given header, letting produce
// generate the rows. The original file stays readable until produce returns,
// so produce may stream rows from it.
func (s *Store) rewrite(path string, header []string, produce func(*rowWriter) error) error {
	tmp := s.path(tmpFile)
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	err = w.Write(header)
	if err == nil {
		err = produce(&rowWriter{w: w, header: header})
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Remove(path); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// transform rewrites the ledger feeding every existing row through fn.
func (s *Store) transform(path string, header []string, fn func(row map[string]string) (map[string]string, error)) error {
	return s.rewrite(path, header, func(rw *rowWriter) error {
		return forEachRow(path, func(row map[string]string) error {
			out, err := fn(row)
			if err != nil {
				return err
			}
			return rw.writeRow(out)
		})
	})
}
