package coinledger

import "errors"

// Sentinel errors for the whole module. Callers match them with errors.Is;
// every operation wraps them with enough context to name the offending id.
var (
	// ErrNotFound reports a missing asset, bundle or bundle membership.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports an id that already exists, or an asset already in a bundle.
	ErrDuplicate = errors.New("already exists")
	// ErrReferenced blocks asset removal while a bundle still contains it.
	ErrReferenced = errors.New("still referenced by a bundle")
	// ErrValidation reports an incomplete sample or an invalid value.
	ErrValidation = errors.New("invalid value")
	// ErrQuote reports a failed quote fetch. It is recoverable: the poller
	// counts it against its retry budget instead of propagating it.
	ErrQuote = errors.New("quote fetch failed")
	// ErrSchema reports a ledger whose rows or header no longer match the
	// registries. It should never occur and is not recoverable.
	ErrSchema = errors.New("ledger schema mismatch")
)
