package coinledger

import (
	"fmt"
	"time"
)

// Price ledger: an append-only columnar time series in prices.csv whose
// column set follows the identifier registry.

// Sample is one timestamped set of prices keyed by asset id. A price of
// exactly 0 means "no data at that time", not a real zero price.
type Sample struct {
	Timestamp time.Time
	Prices    map[string]float64
}

// Series holds ordered value sequences per column plus the shared timestamp
// sequence. Zero-valued samples are excluded from the value sequences, so
// columns may be shorter than the timestamp sequence.
type Series struct {
	Timestamps []time.Time
	Values     map[string][]float64
}

// Statistics summarizes the non-zero price history of one column.
type Statistics struct {
	Min  float64
	Max  float64
	Mean float64
}

// statsMinSentinel initializes the running minimum before scanning. An asset
// with no non-zero samples reports min and mean of 0.
const statsMinSentinel = 1e8

// AppendPriceSample validates the sample against the header (the current
// registry order when nil) and appends one row.
func (s *Store) AppendPriceSample(sample Sample, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendPriceSample(sample, header)
}

func (s *Store) appendPriceSample(sample Sample, header []string) error {
	if header == nil {
		ids, err := s.loadAssetIDs()
		if err != nil {
			return err
		}
		header = priceHeader(ids)
	}
	row := map[string]string{timestampColumn: formatTimestamp(sample.Timestamp)}
	for _, col := range header[1:] {
		price, ok := sample.Prices[col]
		if !ok {
			return fmt.Errorf("%w: sample has no price for %q", ErrValidation, col)
		}
		row[col] = formatValue(price)
	}
	return appendRow(s.path(pricesFile), header, row)
}

// RecordSample appends a price sample and its derived bundle valuations in
// one critical section. This is the poller's write path; ids is the tracked
// schema as the poller sees it, or nil for the current registry order.
func (s *Store) RecordSample(sample Sample, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var header []string
	if ids != nil {
		header = priceHeader(ids)
	}
	if err := s.appendPriceSample(sample, header); err != nil {
		return err
	}
	return s.appendBundleSample(sample)
}

// Prices loads the full-resolution price history of the given assets, or of
// every tracked asset when none are named.
func (s *Store) Prices(ids ...string) (*Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		var err error
		if ids, err = s.loadAssetIDs(); err != nil {
			return nil, err
		}
	}
	return readSeries(s.path(pricesFile), ids, 1)
}

// Statistics scans the price history and reports min, max and mean of the
// non-zero samples of the given assets, or of every tracked asset when none
// are named.
func (s *Store) Statistics(ids ...string) (map[string]Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		var err error
		if ids, err = s.loadAssetIDs(); err != nil {
			return nil, err
		}
	}

	stats := make(map[string]Statistics, len(ids))
	sums := make(map[string]float64, len(ids))
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		stats[id] = Statistics{Min: statsMinSentinel, Max: 0}
	}

	err := forEachRow(s.path(pricesFile), func(row map[string]string) error {
		for _, id := range ids {
			cell, ok := row[id]
			if !ok {
				return fmt.Errorf("%w: no column %q in price ledger", ErrSchema, id)
			}
			v, err := parseValue(cell, id)
			if err != nil {
				return err
			}
			if v == 0 {
				continue
			}
			sums[id] += v
			counts[id]++
			st := stats[id]
			if v > st.Max {
				st.Max = v
			}
			if v < st.Min {
				st.Min = v
			}
			stats[id] = st
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		st := stats[id]
		if counts[id] == 0 {
			st.Min = 0
			st.Mean = 0
		} else {
			st.Mean = sums[id] / float64(counts[id])
		}
		stats[id] = st
	}
	return stats, nil
}

// PlotRatio returns the row stride used when loading series for plotting:
// 1 below 2000 rows, floor(n/1000) at or above. It keeps a plotted series
// bounded regardless of history length.
func (s *Store) PlotRatio() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plotRatio()
}

func (s *Store) plotRatio() (int, error) {
	n, err := lineCount(s.path(pricesFile))
	if err != nil {
		return 0, err
	}
	if n >= 2000 {
		return n / 1000, nil
	}
	return 1, nil
}

// PlotPrices loads the price history of the given assets downsampled to
// every PlotRatio()-th row, with the same zero-exclusion rule as Prices.
func (s *Store) PlotPrices(ids ...string) (*Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		var err error
		if ids, err = s.loadAssetIDs(); err != nil {
			return nil, err
		}
	}
	ratio, err := s.plotRatio()
	if err != nil {
		return nil, err
	}
	return readSeries(s.path(pricesFile), ids, ratio)
}

// Convert rescales every stored price and bundle valuation by factor, used
// when the quoted fiat currency changes. Timestamps and column order are
// untouched.
func (s *Store) Convert(factor float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.loadAssetIDs()
	if err != nil {
		return err
	}
	if err := s.convertLedger(s.path(pricesFile), priceHeader(ids), factor); err != nil {
		return err
	}

	bs, err := s.loadBundles()
	if err != nil {
		return err
	}
	return s.convertLedger(s.path(bundlePricesFile), bundleHeader(bs), factor)
}

func (s *Store) convertLedger(path string, header []string, factor float64) error {
	return s.transform(path, header, func(row map[string]string) (map[string]string, error) {
		for col, cell := range row {
			if col == timestampColumn {
				continue
			}
			v, err := parseValue(cell, col)
			if err != nil {
				return nil, err
			}
			row[col] = formatValue(v * factor)
		}
		return row, nil
	})
}

// readSeries streams a ledger keeping every ratio-th row, excluding
// zero-valued cells from the per-column sequences.
func readSeries(path string, columns []string, ratio int) (*Series, error) {
	series := &Series{Values: make(map[string][]float64, len(columns))}
	for _, col := range columns {
		series.Values[col] = []float64{}
	}

	line := 0
	err := forEachRow(path, func(row map[string]string) error {
		keep := line%ratio == 0
		line++
		if !keep {
			return nil
		}
		ts, err := parseTimestamp(row[timestampColumn])
		if err != nil {
			return fmt.Errorf("%w: bad timestamp %q", ErrSchema, row[timestampColumn])
		}
		series.Timestamps = append(series.Timestamps, ts)
		for _, col := range columns {
			cell, ok := row[col]
			if !ok {
				return fmt.Errorf("%w: no column %q in %q", ErrSchema, col, path)
			}
			v, err := parseValue(cell, col)
			if err != nil {
				return err
			}
			if v > 0 {
				series.Values[col] = append(series.Values[col], v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return series, nil
}
