package hypothesis

import "strings"

// Set is a mutable ordered collection of hypotheses, deduplicated by
// (kind, payload key), with an auxiliary cache guarded by a validity flag.
//
// The cache contract: adding an exponent-pair hypothesis clears the
// validity flag, so a cached convex hull is only trusted while the pair
// set is untouched since it was stored. The flag is set again only by
// MarkCacheValid, after the consumer has refreshed its cached value.
type Set struct {
	items []*Hypothesis
	keys  map[Kind]map[string]struct{}

	cache      map[string]any
	cacheValid bool
}

// NewSet creates a set containing the given hypotheses.
func NewSet(hs ...*Hypothesis) *Set {
	s := &Set{
		keys:  make(map[Kind]map[string]struct{}),
		cache: make(map[string]any),
	}
	s.Add(hs...)
	return s
}

// Add inserts hypotheses, skipping any whose (kind, payload key) is
// already present, and returns how many were actually inserted. Inserting
// an exponent-pair hypothesis invalidates the auxiliary cache.
func (s *Set) Add(hs ...*Hypothesis) int {
	added := 0
	for _, h := range hs {
		if h == nil {
			continue
		}
		byKey, ok := s.keys[h.Kind]
		if !ok {
			byKey = make(map[string]struct{})
			s.keys[h.Kind] = byKey
		}
		key := ""
		if h.Payload != nil {
			key = h.Payload.Key()
		}
		if _, dup := byKey[key]; dup {
			continue
		}
		byKey[key] = struct{}{}
		s.items = append(s.items, h)
		added++
		if h.Kind == KindExponentPair {
			s.cacheValid = false
		}
	}
	return added
}

// ListKind returns the hypotheses of the given kind in insertion order.
func (s *Set) ListKind(k Kind) []*Hypothesis {
	var out []*Hypothesis
	for _, h := range s.items {
		if h.Kind == k {
			out = append(out, h)
		}
	}
	return out
}

// FindByKeyword returns the first hypothesis whose name contains the
// keyword (case-insensitive), or nil if none matches.
func (s *Set) FindByKeyword(keyword string) *Hypothesis {
	kw := strings.ToLower(keyword)
	for _, h := range s.items {
		if strings.Contains(strings.ToLower(h.Name), kw) {
			return h
		}
	}
	return nil
}

// All returns the hypotheses in insertion order. The returned slice is a
// copy; the hypotheses themselves are shared.
func (s *Set) All() []*Hypothesis {
	return append([]*Hypothesis(nil), s.items...)
}

// Len returns the number of hypotheses in the set.
func (s *Set) Len() int { return len(s.items) }

// Copy returns a shallow copy: an independent container over the same
// hypotheses, with a fresh, invalid cache. Mutating the copy (including
// its cache) never affects the original, which is what lets a proof
// search work on a caller's set without altering it.
func (s *Set) Copy() *Set {
	cp := &Set{
		items: append([]*Hypothesis(nil), s.items...),
		keys:  make(map[Kind]map[string]struct{}, len(s.keys)),
		cache: make(map[string]any),
	}
	for kind, byKey := range s.keys {
		m := make(map[string]struct{}, len(byKey))
		for k := range byKey {
			m[k] = struct{}{}
		}
		cp.keys[kind] = m
	}
	return cp
}

// CacheGet returns the cached value stored under key, if any. Callers
// must check CacheValid before trusting the value.
func (s *Set) CacheGet(key string) (any, bool) {
	v, ok := s.cache[key]
	return v, ok
}

// CachePut stores a value in the auxiliary cache. It does not change the
// validity flag; call MarkCacheValid once the cache reflects the set.
func (s *Set) CachePut(key string, v any) {
	s.cache[key] = v
}

// CacheValid reports whether the auxiliary cache is still in sync with
// the exponent pairs in the set.
func (s *Set) CacheValid() bool { return s.cacheValid }

// MarkCacheValid declares the auxiliary cache up to date.
func (s *Set) MarkCacheValid() { s.cacheValid = true }
