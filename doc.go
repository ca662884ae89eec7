// Package coinledger persists periodically sampled asset prices and derived
// bundle valuations in flat columnar files, and drives their growth with a
// background polling task.
//
// The data directory holds four data files: an identifier registry
// (ids.json, the ordered set of tracked asset ids and the source of truth
// for the price ledger schema), a bundle registry (bundles.json, named
// weighted baskets of assets), and two append-only CSV ledgers (prices.csv
// with raw prices, bundle_prices.csv with basket valuations derived from
// them). Registries are re-read on every access so external edits are
// always picked up.
//
// Schema migrations (tracking or dropping an asset, recomputing a bundle's
// valuation history, rescaling after a currency change) rewrite a whole
// ledger through an atomic write-to-temp-then-replace primitive, so a
// partially written ledger is never observable. Sample appends are the only
// writes that bypass it.
//
// The Poller fetches current quotes at a fixed interval and appends them to
// both ledgers. It exposes a pause/resume/stop surface to the foreground;
// safety does not depend on it, as every mutating file operation, the
// poller's tick included, runs inside the store's critical section.
//
// This package is the foundational logic for the `cld` command-line tool.
package coinledger
