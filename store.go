package coinledger

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Data files kept inside the store directory.
const (
	idsFile          = "ids.json"
	bundlesFile      = "bundles.json"
	pricesFile       = "prices.csv"
	bundlePricesFile = "bundle_prices.csv"
	settingsFile     = "settings.json"

	// tmpFile is the scratch file used by the atomic rewrite.
	tmpFile = "tmp.csv"
)

// timestampColumn is the first column of every ledger.
const timestampColumn = "timestamp"

// timestampLayout is the ISO-8601-ish format used in ledger rows,
// e.g. "2022-03-29 14:58:22.365454".
const timestampLayout = "2006-01-02 15:04:05.999999"

func formatTimestamp(t time.Time) string { return t.Format(timestampLayout) }

func parseTimestamp(s string) (time.Time, error) { return time.Parse(timestampLayout, s) }

// Store is the root handle over a data directory holding the two registries
// (ids.json, bundles.json), the two ledgers (prices.csv, bundle_prices.csv)
// and the user settings.
//
// Registries are re-read from disk on every access so that edits made
// outside the running process are always picked up; nothing is cached.
//
// The mutex serializes every mutating file operation, including the whole of
// a poller tick, so that a foreground schema migration can never interleave
// with a background append.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore returns a store over the given data directory. Call Init before
// first use.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// Init creates the data directory and writes the default state of every data
// file that does not exist yet. Existing files are left alone.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("cannot create data directory %q: %w", s.dir, err)
	}

	settings, err := json.MarshalIndent(defaultSettings(), "", "    ")
	if err != nil {
		return err
	}

	defaults := []struct {
		name  string
		state string
	}{
		{idsFile, "[]"},
		{bundlesFile, "{}"},
		{pricesFile, timestampColumn + "\n"},
		{bundlePricesFile, timestampColumn + "\n"},
		{settingsFile, string(settings)},
	}
	for _, d := range defaults {
		path := s.path(d.name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot stat %q: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(d.state), 0644); err != nil {
			return fmt.Errorf("cannot create %q: %w", path, err)
		}
	}
	return nil
}

// readFile reads a registry or settings file in full.
func (s *Store) readFile(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("data file %q missing (run Init first): %w", name, fs.ErrNotExist)
		}
		return nil, err
	}
	return data, nil
}
