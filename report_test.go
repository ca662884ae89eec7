package coinledger

import (
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// headings parses a markdown report and returns its heading texts, proving
// the report is well-formed markdown.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var out []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			out = append(out, string(h.Lines().Value(source)))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking the markdown failed: %v", err)
	}
	return out
}

func TestStatisticsMarkdown(t *testing.T) {
	stats := map[string]Statistics{
		"bitcoin":  {Min: 47891, Max: 47892, Mean: 47891.5},
		"ethereum": {Min: 3542, Max: 3542, Mean: 3542},
	}
	md := StatisticsMarkdown(stats, []string{"bitcoin", "ethereum"}, "usd")

	hs := headings(t, md)
	if len(hs) != 1 || hs[0] != "Asset Statistics (USD)" {
		t.Errorf("headings = %v", hs)
	}
	if !strings.Contains(md, "| bitcoin | $47,891.00 | $47,892.00 | $47,891.50 |") {
		t.Errorf("missing bitcoin row in:\n%s", md)
	}
	// The row order follows the requested order, not map iteration.
	if strings.Index(md, "bitcoin") > strings.Index(md, "ethereum") {
		t.Errorf("rows out of order in:\n%s", md)
	}
}

func TestBundlesMarkdown(t *testing.T) {
	bs := NewBundles()
	bs.create("test")
	bs.Get("test").add("bitcoin", 10)
	bs.create("empty")

	md := BundlesMarkdown(bs)
	if hs := headings(t, md); len(hs) != 1 || hs[0] != "Bundles" {
		t.Errorf("headings = %v", hs)
	}
	if !strings.Contains(md, "| test | bitcoin | 10 |") {
		t.Errorf("missing membership row in:\n%s", md)
	}
	if !strings.Contains(md, "| empty | _empty_ | |") {
		t.Errorf("missing empty bundle row in:\n%s", md)
	}

	if md := BundlesMarkdown(NewBundles()); !strings.Contains(md, "No bundles") {
		t.Errorf("empty registry report:\n%s", md)
	}
}

func TestAssetsMarkdown(t *testing.T) {
	md := AssetsMarkdown([]string{"bitcoin", "ethereum"})
	if hs := headings(t, md); len(hs) != 1 || hs[0] != "Tracked Assets" {
		t.Errorf("headings = %v", hs)
	}
	if !strings.Contains(md, "* bitcoin\n* ethereum\n") {
		t.Errorf("missing asset list in:\n%s", md)
	}
}

func TestStatusMarkdown(t *testing.T) {
	st := PollerStatus{State: Running, Interval: time.Minute, Currency: "usd", Errors: 1}
	md := StatusMarkdown(st)
	if !strings.Contains(md, "**RUNNING**") {
		t.Errorf("missing state in:\n%s", md)
	}
	// No successful update yet.
	if !strings.Contains(md, "waiting update") {
		t.Errorf("missing waiting marker in:\n%s", md)
	}

	st.LastUpdate = time.Date(2022, time.March, 29, 14, 58, 22, 0, time.UTC)
	md = StatusMarkdown(st)
	if !strings.Contains(md, "14:58:22") {
		t.Errorf("missing last update time in:\n%s", md)
	}
}

func TestSettingsMarkdown(t *testing.T) {
	md := SettingsMarkdown(defaultSettings())
	if hs := headings(t, md); len(hs) != 1 || hs[0] != "Settings" {
		t.Errorf("headings = %v", hs)
	}
	if !strings.Contains(md, "| vs_currency | usd |") || !strings.Contains(md, "| same_limits_threshold | 1.5 |") {
		t.Errorf("missing settings rows in:\n%s", md)
	}
}
