package coinledger

// Bundle ledger: an append-only columnar time series in bundle_prices.csv
// whose column set follows the bundle registry and whose values are derived
// from the price ledger.

// bundleHeader is the current bundle ledger schema: timestamp plus the
// registry order.
func bundleHeader(bs *Bundles) []string {
	return append([]string{timestampColumn}, bs.ids...)
}

// appendBundleSample derives one bundle ledger row from a price sample:
// for every registered bundle, Σ weight·price over its current members,
// sharing the sample's timestamp. Called with the store lock held.
func (s *Store) appendBundleSample(sample Sample) error {
	bs, err := s.loadBundles()
	if err != nil {
		return err
	}
	header := bundleHeader(bs)
	row := map[string]string{timestampColumn: formatTimestamp(sample.Timestamp)}
	for _, id := range bs.ids {
		row[id] = formatValue(bs.m[id].Valuation(sample.Prices))
	}
	return appendRow(s.path(bundlePricesFile), header, row)
}

// recomputeBundleColumn rewrites the bundle ledger, recomputing one bundle's
// column over the full price history. Price rows and bundle rows are paired
// positionally; when the bundle ledger is shorter, the missing rows are
// synthesized from the price row's timestamp alone. All other columns are
// left untouched.
func (s *Store) recomputeBundleColumn(bundleID string, b *Bundle, bs *Bundles) error {
	path := s.path(bundlePricesFile)

	var existing []map[string]string
	err := forEachRow(path, func(row map[string]string) error {
		existing = append(existing, row)
		return nil
	})
	if err != nil {
		return err
	}

	header := bundleHeader(bs)
	return s.rewrite(path, header, func(rw *rowWriter) error {
		i := 0
		return forEachRow(s.path(pricesFile), func(priceRow map[string]string) error {
			var row map[string]string
			if i < len(existing) {
				row = existing[i]
			} else {
				row = map[string]string{timestampColumn: priceRow[timestampColumn]}
			}
			i++

			var total float64
			for _, asset := range b.assets {
				price, err := parseValue(priceRow[asset], asset)
				if err != nil {
					return err
				}
				total += b.weights[asset] * price
			}
			row[bundleID] = formatValue(total)
			return rw.writeRow(row)
		})
	})
}

// dropBundleColumn removes a bundle's column from the ledger header and
// every row. bs is the registry with the bundle already removed.
func (s *Store) dropBundleColumn(bundleID string, bs *Bundles) error {
	return s.transform(s.path(bundlePricesFile), bundleHeader(bs), func(row map[string]string) (map[string]string, error) {
		delete(row, bundleID)
		return row, nil
	})
}

// PlotBundlePrices loads bundle valuation history for plotting, with the
// same downsampling and zero-exclusion rules as PlotPrices. The ratio is
// computed from the price ledger row count, as the two ledgers share one
// time axis.
func (s *Store) PlotBundlePrices(ids ...string) (*Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(ids) == 0 {
		bs, err := s.loadBundles()
		if err != nil {
			return nil, err
		}
		ids = bs.IDs()
	}
	ratio, err := s.plotRatio()
	if err != nil {
		return nil, err
	}
	return readSeries(s.path(bundlePricesFile), ids, ratio)
}
