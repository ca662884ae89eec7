package coinledger

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes both ledgers into one spreadsheet, a sheet per ledger,
// with timestamps as text and values as numbers.
func (s *Store) ExportXLSX(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := excelize.NewFile()
	defer f.Close()

	ledgers := []struct{ sheet, file string }{
		{"prices", pricesFile},
		{"bundle_prices", bundlePricesFile},
	}
	for i, l := range ledgers {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", l.sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(l.sheet); err != nil {
			return err
		}
		if err := exportSheet(f, l.sheet, s.path(l.file)); err != nil {
			return fmt.Errorf("cannot export %s: %w", l.file, err)
		}
	}
	return f.SaveAs(path)
}

func exportSheet(f *excelize.File, sheet, path string) error {
	header, err := readHeader(path)
	if err != nil {
		return err
	}
	for c, col := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	r := 2
	return forEachRow(path, func(row map[string]string) error {
		for c, col := range header {
			cell, err := excelize.CoordinatesToCellName(c+1, r)
			if err != nil {
				return err
			}
			if col == timestampColumn {
				err = f.SetCellValue(sheet, cell, row[col])
			} else if row[col] == "" {
				continue
			} else {
				var v float64
				if v, err = parseValue(row[col], col); err == nil {
					err = f.SetCellValue(sheet, cell, v)
				}
			}
			if err != nil {
				return err
			}
		}
		r++
		return nil
	})
}
