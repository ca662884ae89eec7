package coinledger

import (
	"fmt"
	"strings"
	"time"
)

// Markdown reports consumed by the CLI, which renders them to the terminal.

// StatisticsMarkdown renders per-asset price statistics as a markdown table,
// in the given column order.
func StatisticsMarkdown(stats map[string]Statistics, order []string, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Asset Statistics (%s)\n\n", strings.ToUpper(currency))
	b.WriteString("| Asset | Min | Max | Mean |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, id := range order {
		st := stats[id]
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			id, M(st.Min, currency), M(st.Max, currency), M(st.Mean, currency))
	}
	return b.String()
}

// BundlesMarkdown renders the bundle registry with its memberships.
func BundlesMarkdown(bs *Bundles) string {
	var b strings.Builder
	b.WriteString("# Bundles\n\n")
	if len(bs.ids) == 0 {
		b.WriteString("No bundles created yet.\n")
		return b.String()
	}
	b.WriteString("| Bundle | Asset | Weight |\n")
	b.WriteString("|---|---|---:|\n")
	for _, id := range bs.ids {
		bundle := bs.m[id]
		if bundle.Len() == 0 {
			fmt.Fprintf(&b, "| %s | _empty_ | |\n", id)
			continue
		}
		for _, asset := range bundle.assets {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", id, asset, formatValue(bundle.weights[asset]))
		}
	}
	return b.String()
}

// AssetsMarkdown renders the identifier registry as a list.
func AssetsMarkdown(ids []string) string {
	var b strings.Builder
	b.WriteString("# Tracked Assets\n\n")
	if len(ids) == 0 {
		b.WriteString("No assets tracked yet.\n")
		return b.String()
	}
	for _, id := range ids {
		fmt.Fprintf(&b, "* %s\n", id)
	}
	return b.String()
}

// StatusMarkdown renders a poller status snapshot.
func StatusMarkdown(st PollerStatus) string {
	last := "waiting update"
	if !st.LastUpdate.IsZero() {
		last = st.LastUpdate.Format(time.TimeOnly)
	}
	var b strings.Builder
	b.WriteString("# Background Updater\n\n")
	fmt.Fprintf(&b, "* Status: **%s**\n", st.State)
	fmt.Fprintf(&b, "* Last update: %s\n", last)
	fmt.Fprintf(&b, "* Update interval: %s\n", st.Interval)
	fmt.Fprintf(&b, "* Currency: %s\n", strings.ToUpper(st.Currency))
	fmt.Fprintf(&b, "* Failed updates: %d\n", st.Errors)
	return b.String()
}

// SettingsMarkdown renders the current user settings.
func SettingsMarkdown(v Settings) string {
	var b strings.Builder
	b.WriteString("# Settings\n\n")
	b.WriteString("| Setting | Value |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| use_time | %v |\n", v.UseTime)
	fmt.Fprintf(&b, "| vs_currency | %s |\n", v.Currency)
	fmt.Fprintf(&b, "| same_limits_threshold | %s |\n", formatValue(v.SameLimitsThreshold))
	return b.String()
}
