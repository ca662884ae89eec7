package coinledger

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Identifier registry: the ordered set of tracked asset ids, persisted as a
// JSON array in ids.json. Its order is the source of truth for the price
// ledger column order.

// AssetIDs returns the tracked asset ids, re-read from disk on every call.
func (s *Store) AssetIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadAssetIDs()
}

// HasAssets reports whether every given id is currently tracked.
func (s *Store) HasAssets(ids ...string) (bool, error) {
	tracked, err := s.AssetIDs()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if !slices.Contains(tracked, id) {
			return false, nil
		}
	}
	return true, nil
}

func (s *Store) loadAssetIDs() ([]string, error) {
	data, err := s.readFile(idsFile)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", idsFile, err)
	}
	return ids, nil
}

func (s *Store) saveAssetIDs(ids []string) error {
	data, err := json.MarshalIndent(ids, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(idsFile), data, 0644)
}

// priceHeader is the current price ledger schema: timestamp plus the
// registry order.
func priceHeader(ids []string) []string {
	return append([]string{timestampColumn}, ids...)
}

// AddAsset starts tracking a new asset: the price ledger gains a column of
// zeroes over its whole history, then the id is recorded in the registry.
func (s *Store) AddAsset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.loadAssetIDs()
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return fmt.Errorf("%w: asset %q", ErrDuplicate, id)
	}

	header := append(priceHeader(ids), id)
	err = s.transform(s.path(pricesFile), header, func(row map[string]string) (map[string]string, error) {
		row[id] = "0"
		return row, nil
	})
	if err != nil {
		return err
	}
	return s.saveAssetIDs(append(ids, id))
}

// RemoveAsset stops tracking an asset, dropping its column from the price
// ledger. It is rejected while any bundle still references the id.
func (s *Store) RemoveAsset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.loadAssetIDs()
	if err != nil {
		return err
	}
	i := slices.Index(ids, id)
	if i < 0 {
		return fmt.Errorf("%w: asset %q", ErrNotFound, id)
	}

	bundles, err := s.loadBundles()
	if err != nil {
		return err
	}
	if bundles.references(id) {
		return fmt.Errorf("%w: asset %q", ErrReferenced, id)
	}

	remaining := slices.Delete(slices.Clone(ids), i, i+1)
	err = s.transform(s.path(pricesFile), priceHeader(remaining), func(row map[string]string) (map[string]string, error) {
		delete(row, id)
		return row, nil
	})
	if err != nil {
		return err
	}
	return s.saveAssetIDs(remaining)
}
