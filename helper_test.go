package coinledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newTestStore creates an initialized store over a throwaway directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return s
}

// seedExampleData fills the store with a small known history: two tracked
// assets, two price rows (ethereum has no data in the first one), and one
// bundle holding 10 bitcoin.
func seedExampleData(t *testing.T, s *Store) {
	t.Helper()
	writeDataFile(t, s, "ids.json", `["bitcoin", "ethereum"]`)
	writeDataFile(t, s, "prices.csv", "timestamp,bitcoin,ethereum\n"+
		"2022-03-29 14:58:22.365454,47891,0\n"+
		"2022-03-29 14:59:22.365454,47892,3542\n")
	writeDataFile(t, s, "bundles.json", `{"test": {"bitcoin": 10}}`)
	writeDataFile(t, s, "bundle_prices.csv", "timestamp,test\n"+
		"2022-03-29 14:58:22.365454,478910\n"+
		"2022-03-29 14:59:22.365454,478920\n")
}

func writeDataFile(t *testing.T, s *Store, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.Dir(), name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s failed: %v", name, err)
	}
}

func readDataFile(t *testing.T, s *Store, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil {
		t.Fatalf("reading %s failed: %v", name, err)
	}
	return string(data)
}

// ts parses a ledger timestamp for expectations.
func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := parseTimestamp(s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return v
}
