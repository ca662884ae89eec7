package coinledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Bundle registry: named weighted baskets of assets, persisted as a JSON
// object in bundles.json. Insertion order is significant on both levels (it
// drives the bundle ledger column order) and must survive a load/save cycle
// byte for byte, so both containers keep an explicit key order next to their
// index map, the way the securities database does.

// Bundle is a weighted basket of assets. Weights are non-negative; every
// member must exist in the identifier registry.
type Bundle struct {
	assets  []string
	weights map[string]float64
}

// Len returns the number of members.
func (b *Bundle) Len() int { return len(b.assets) }

// Assets returns the member ids in insertion order.
func (b *Bundle) Assets() []string { return slices.Clone(b.assets) }

// Weight returns the weight of a member asset.
func (b *Bundle) Weight(asset string) (float64, bool) {
	w, ok := b.weights[asset]
	return w, ok
}

func (b *Bundle) add(asset string, weight float64) {
	if b.weights == nil {
		b.weights = make(map[string]float64)
	}
	if _, ok := b.weights[asset]; !ok {
		b.assets = append(b.assets, asset)
	}
	b.weights[asset] = weight
}

func (b *Bundle) remove(asset string) {
	if i := slices.Index(b.assets, asset); i >= 0 {
		b.assets = slices.Delete(b.assets, i, i+1)
	}
	delete(b.weights, asset)
}

// Valuation computes Σ weight·price over the bundle members. Assets missing
// from prices count as zero.
func (b *Bundle) Valuation(prices map[string]float64) float64 {
	var total float64
	for _, asset := range b.assets {
		total += b.weights[asset] * prices[asset]
	}
	return total
}

// MarshalJSON emits the members as an object in insertion order.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, asset := range b.assets {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(asset)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(b.weights[asset])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the members preserving their order in the document.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	b.assets = nil
	b.weights = make(map[string]float64)
	for dec.More() {
		asset, err := stringToken(dec)
		if err != nil {
			return err
		}
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := tok.(json.Number)
		if !ok {
			return fmt.Errorf("bundle weight for %q is not a number", asset)
		}
		weight, err := num.Float64()
		if err != nil {
			return err
		}
		b.add(asset, weight)
	}
	return expectDelim(dec, '}')
}

// Bundles is the bundle registry: bundle id → Bundle, insertion ordered.
type Bundles struct {
	ids []string
	m   map[string]*Bundle
}

// NewBundles returns an empty registry.
func NewBundles() *Bundles {
	return &Bundles{m: make(map[string]*Bundle)}
}

// IDs returns the bundle ids in insertion order.
func (bs *Bundles) IDs() []string { return slices.Clone(bs.ids) }

// Has reports whether the bundle exists.
func (bs *Bundles) Has(id string) bool {
	_, ok := bs.m[id]
	return ok
}

// Get returns the bundle with this id, or nil if unknown.
func (bs *Bundles) Get(id string) *Bundle { return bs.m[id] }

// references reports whether any bundle contains the asset.
func (bs *Bundles) references(asset string) bool {
	for _, id := range bs.ids {
		if _, ok := bs.m[id].weights[asset]; ok {
			return true
		}
	}
	return false
}

func (bs *Bundles) create(id string) {
	bs.ids = append(bs.ids, id)
	bs.m[id] = &Bundle{weights: make(map[string]float64)}
}

func (bs *Bundles) delete(id string) *Bundle {
	b := bs.m[id]
	if i := slices.Index(bs.ids, id); i >= 0 {
		bs.ids = slices.Delete(bs.ids, i, i+1)
	}
	delete(bs.m, id)
	return b
}

// MarshalJSON emits the registry as an object in insertion order.
func (bs *Bundles) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range bs.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := bs.m[id].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the registry preserving document order.
func (bs *Bundles) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	bs.ids = nil
	bs.m = make(map[string]*Bundle)
	for dec.More() {
		id, err := stringToken(dec)
		if err != nil {
			return err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		b := &Bundle{}
		if err := b.UnmarshalJSON(raw); err != nil {
			return err
		}
		bs.ids = append(bs.ids, id)
		bs.m[id] = b
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected a string key, got %v", tok)
	}
	return s, nil
}

// Bundles returns the bundle registry, re-read from disk on every call.
func (s *Store) Bundles() (*Bundles, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadBundles()
}

// HasBundles reports whether every given id names an existing bundle.
func (s *Store) HasBundles(ids ...string) (bool, error) {
	bs, err := s.Bundles()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if !bs.Has(id) {
			return false, nil
		}
	}
	return true, nil
}

func (s *Store) loadBundles() (*Bundles, error) {
	data, err := s.readFile(bundlesFile)
	if err != nil {
		return nil, err
	}
	bs := NewBundles()
	if err := json.Unmarshal(data, bs); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", bundlesFile, err)
	}
	return bs, nil
}

func (s *Store) saveBundles(bs *Bundles) error {
	data, err := json.MarshalIndent(bs, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(bundlesFile), data, 0644)
}

// CreateBundle registers a new, empty bundle. The bundle ledger is not
// touched: an empty bundle has no column.
func (s *Store) CreateBundle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, err := s.loadBundles()
	if err != nil {
		return err
	}
	if bs.Has(id) {
		return fmt.Errorf("%w: bundle %q", ErrDuplicate, id)
	}
	bs.create(id)
	return s.saveBundles(bs)
}

// DeleteBundle removes the bundle and, when it ever had a member, drops its
// column from the bundle ledger.
func (s *Store) DeleteBundle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, err := s.loadBundles()
	if err != nil {
		return err
	}
	if !bs.Has(id) {
		return fmt.Errorf("%w: bundle %q", ErrNotFound, id)
	}
	b := bs.delete(id)
	if err := s.saveBundles(bs); err != nil {
		return err
	}
	if b.Len() == 0 {
		return nil
	}
	return s.dropBundleColumn(id, bs)
}

// BundleAdd adds an asset with the given weight to a bundle and recomputes
// the bundle's valuation over the full price history. The cost is O(history
// length), on purpose: the ledger must reflect current membership
// retroactively.
func (s *Store) BundleAdd(bundleID, assetID string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if weight < 0 {
		return fmt.Errorf("%w: weight %v is negative", ErrValidation, weight)
	}
	ids, err := s.loadAssetIDs()
	if err != nil {
		return err
	}
	if !slices.Contains(ids, assetID) {
		return fmt.Errorf("%w: asset %q", ErrNotFound, assetID)
	}

	bs, err := s.loadBundles()
	if err != nil {
		return err
	}
	b := bs.Get(bundleID)
	if b == nil {
		return fmt.Errorf("%w: bundle %q", ErrNotFound, bundleID)
	}
	if _, ok := b.weights[assetID]; ok {
		return fmt.Errorf("%w: asset %q in bundle %q", ErrDuplicate, assetID, bundleID)
	}

	b.add(assetID, weight)
	if err := s.saveBundles(bs); err != nil {
		return err
	}
	return s.recomputeBundleColumn(bundleID, b, bs)
}

// BundleRemove removes an asset from a bundle and recomputes the bundle's
// valuation over the full price history.
func (s *Store) BundleRemove(bundleID, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bs, err := s.loadBundles()
	if err != nil {
		return err
	}
	b := bs.Get(bundleID)
	if b == nil {
		return fmt.Errorf("%w: bundle %q", ErrNotFound, bundleID)
	}
	if _, ok := b.weights[assetID]; !ok {
		return fmt.Errorf("%w: asset %q in bundle %q", ErrNotFound, assetID, bundleID)
	}

	b.remove(assetID)
	if err := s.saveBundles(bs); err != nil {
		return err
	}
	return s.recomputeBundleColumn(bundleID, b, bs)
}
