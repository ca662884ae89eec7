package coinledger

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPrices_ExcludesZeroSamples(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	series, err := s.Prices()
	if err != nil {
		t.Fatalf("Prices() failed: %v", err)
	}

	if len(series.Timestamps) != 2 {
		t.Fatalf("got %d timestamps, want 2", len(series.Timestamps))
	}
	if want := ts(t, "2022-03-29 14:58:22.365454"); !series.Timestamps[0].Equal(want) {
		t.Errorf("Timestamps[0] = %v, want %v", series.Timestamps[0], want)
	}

	btc := series.Values["bitcoin"]
	if len(btc) != 2 || btc[0] != 47891 || btc[1] != 47892 {
		t.Errorf("bitcoin series = %v, want [47891 47892]", btc)
	}
	// The zero sample means "no data", it is dropped, not plotted as 0.
	eth := series.Values["ethereum"]
	if len(eth) != 1 || eth[0] != 3542 {
		t.Errorf("ethereum series = %v, want [3542]", eth)
	}
}

func TestStatistics(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	stats, err := s.Statistics()
	if err != nil {
		t.Fatalf("Statistics() failed: %v", err)
	}

	btc := stats["bitcoin"]
	if btc.Min != 47891 || btc.Max != 47892 || btc.Mean != 47891.5 {
		t.Errorf("bitcoin stats = %+v, want {47891 47892 47891.5}", btc)
	}
	// Only the single non-zero sample counts.
	eth := stats["ethereum"]
	if eth.Min != 3542 || eth.Max != 3542 || eth.Mean != 3542 {
		t.Errorf("ethereum stats = %+v, want {3542 3542 3542}", eth)
	}
}

func TestStatistics_AllZeroColumn(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)
	writeDataFile(t, s, "prices.csv", "timestamp,bitcoin,ethereum\n"+
		"2022-03-29 14:58:22.365454,47891,0\n"+
		"2022-03-29 14:59:22.365454,47892,0\n")

	stats, err := s.Statistics("ethereum")
	if err != nil {
		t.Fatalf("Statistics() failed: %v", err)
	}
	if got := stats["ethereum"]; got.Min != 0 || got.Max != 0 || got.Mean != 0 {
		t.Errorf("all-zero column stats = %+v, want zeroes", got)
	}
}

func TestStatistics_UnknownColumn(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	if _, err := s.Statistics("dogecoin"); !errors.Is(err, ErrSchema) {
		t.Errorf("Statistics(dogecoin) = %v, want ErrSchema", err)
	}
}

func TestAppendPriceSample(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	sample := Sample{
		Timestamp: ts(t, "2022-03-29 15:00:22.365454"),
		Prices:    map[string]float64{"bitcoin": 47893.5, "ethereum": 3543},
	}
	if err := s.AppendPriceSample(sample, nil); err != nil {
		t.Fatalf("AppendPriceSample() failed: %v", err)
	}

	got := readDataFile(t, s, "prices.csv")
	if !strings.HasSuffix(got, "2022-03-29 15:00:22.365454,47893.5,3543\n") {
		t.Errorf("prices.csv does not end with the appended row: %q", got)
	}
}

func TestAppendPriceSample_MissingPrice(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	sample := Sample{
		Timestamp: ts(t, "2022-03-29 15:00:22.365454"),
		Prices:    map[string]float64{"bitcoin": 47893},
	}
	if err := s.AppendPriceSample(sample, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("AppendPriceSample() without ethereum = %v, want ErrValidation", err)
	}
}

func TestRecordSample(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	sample := Sample{
		Timestamp: ts(t, "2022-03-29 15:00:22.365454"),
		Prices:    map[string]float64{"bitcoin": 48000, "ethereum": 3600},
	}
	if err := s.RecordSample(sample, nil); err != nil {
		t.Fatalf("RecordSample() failed: %v", err)
	}

	prices := readDataFile(t, s, "prices.csv")
	if !strings.HasSuffix(prices, "2022-03-29 15:00:22.365454,48000,3600\n") {
		t.Errorf("prices.csv missing the recorded row: %q", prices)
	}
	// The derived bundle row shares the timestamp: 10 bitcoin.
	bundles := readDataFile(t, s, "bundle_prices.csv")
	if !strings.HasSuffix(bundles, "2022-03-29 15:00:22.365454,480000\n") {
		t.Errorf("bundle_prices.csv missing the derived row: %q", bundles)
	}
}

func TestConvert(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	if err := s.Convert(2); err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}

	wantPrices := "timestamp,bitcoin,ethereum\n" +
		"2022-03-29 14:58:22.365454,95782,0\n" +
		"2022-03-29 14:59:22.365454,95784,7084\n"
	if got := readDataFile(t, s, "prices.csv"); got != wantPrices {
		t.Errorf("prices.csv after Convert(2) = %q, want %q", got, wantPrices)
	}
	wantBundles := "timestamp,test\n" +
		"2022-03-29 14:58:22.365454,957820\n" +
		"2022-03-29 14:59:22.365454,957840\n"
	if got := readDataFile(t, s, "bundle_prices.csv"); got != wantBundles {
		t.Errorf("bundle_prices.csv after Convert(2) = %q, want %q", got, wantBundles)
	}

	// Converting back restores the original history.
	if err := s.Convert(0.5); err != nil {
		t.Fatalf("Convert(0.5) failed: %v", err)
	}
	wantPrices = "timestamp,bitcoin,ethereum\n" +
		"2022-03-29 14:58:22.365454,47891,0\n" +
		"2022-03-29 14:59:22.365454,47892,3542\n"
	if got := readDataFile(t, s, "prices.csv"); got != wantPrices {
		t.Errorf("prices.csv after converting back = %q, want %q", got, wantPrices)
	}
}

func TestPlotRatio(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)

	growLedger(t, s, 1999)
	if ratio, err := s.PlotRatio(); err != nil || ratio != 1 {
		t.Errorf("PlotRatio() at 1999 rows = %d, %v, want 1", ratio, err)
	}
	growLedger(t, s, 2000)
	if ratio, err := s.PlotRatio(); err != nil || ratio != 2 {
		t.Errorf("PlotRatio() at 2000 rows = %d, %v, want 2", ratio, err)
	}
	growLedger(t, s, 5500)
	if ratio, err := s.PlotRatio(); err != nil || ratio != 5 {
		t.Errorf("PlotRatio() at 5500 rows = %d, %v, want 5", ratio, err)
	}
}

func TestPlotPrices_Downsamples(t *testing.T) {
	s := newTestStore(t)
	seedExampleData(t, s)
	growLedger(t, s, 2000)

	series, err := s.PlotPrices("bitcoin")
	if err != nil {
		t.Fatalf("PlotPrices() failed: %v", err)
	}
	// Ratio 2 keeps every other row.
	if len(series.Timestamps) != 1000 {
		t.Errorf("got %d plotted timestamps, want 1000", len(series.Timestamps))
	}
	if len(series.Values["bitcoin"]) != 1000 {
		t.Errorf("got %d plotted values, want 1000", len(series.Values["bitcoin"]))
	}
}

// growLedger rewrites the price ledger with n synthetic rows.
func growLedger(t *testing.T, s *Store, n int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("timestamp,bitcoin,ethereum\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "2022-03-29 14:58:22.365454,%d,1\n", 40000+i)
	}
	writeDataFile(t, s, "prices.csv", b.String())
}
