package exponent

import (
	"github.com/expmath/vdcorput/internal/geometry"
	"github.com/expmath/vdcorput/internal/hypothesis"
)

// ExpandOptions controls the closure engine.
type ExpandOptions struct {
	// Depth is the number of expansion rounds.
	Depth int
	// Prune reduces the working set to its convex hull vertices after
	// each round. This assumes an interior point can never become a hull
	// vertex under further transform application, which holds for the
	// classical transforms but is not proven for arbitrary future ones.
	Prune bool
}

// DefaultExpandOptions returns depth 5 with pruning enabled.
func DefaultExpandOptions() ExpandOptions {
	return ExpandOptions{Depth: 5, Prune: true}
}

// pairTable is a working set of exponent-pair hypotheses keyed by exact
// (k, l), with insertion-ordered keys so every snapshot and the final
// output are reproducible across runs.
type pairTable struct {
	keys  []string
	byKey map[string]*hypothesis.Hypothesis
}

func newPairTable(pairs []*hypothesis.Hypothesis) *pairTable {
	t := &pairTable{byKey: make(map[string]*hypothesis.Hypothesis, len(pairs))}
	for _, h := range pairs {
		t.insert(h)
	}
	return t
}

func (t *pairTable) insert(h *hypothesis.Hypothesis) bool {
	key := h.Payload.(*Pair).Key()
	if _, ok := t.byKey[key]; ok {
		return false
	}
	t.byKey[key] = h
	t.keys = append(t.keys, key)
	return true
}

func (t *pairTable) list() []*hypothesis.Hypothesis {
	out := make([]*hypothesis.Hypothesis, len(t.keys))
	for i, k := range t.keys {
		out[i] = t.byKey[k]
	}
	return out
}

// Expand closes the set's exponent pairs under its registered transforms.
// Each round applies every transform to a snapshot of the keys taken when
// that transform's turn starts, so transforms later in a round see pairs
// produced earlier in the same round. Transforms run in set insertion
// order and keys in table insertion order. Returns the final distinct-key
// pair hypotheses; the input set is not modified.
func Expand(set *hypothesis.Set, opts ExpandOptions) []*hypothesis.Hypothesis {
	pairs := set.ListKind(hypothesis.KindExponentPair)
	transforms := set.ListKind(hypothesis.KindPairTransform)

	table := newPairTable(pairs)
	for round := 0; round < opts.Depth; round++ {
		for _, th := range transforms {
			tr := th.Payload.(*Transform)
			snapshot := append([]string(nil), table.keys...)
			for _, key := range snapshot {
				table.insert(tr.Apply(table.byKey[key]))
			}
		}

		if opts.Prune && len(table.keys) >= 3 {
			table = pruneToHull(table)
		}
	}
	return table.list()
}

// pruneToHull discards pairs interior to the convex hull of the table.
func pruneToHull(t *pairTable) *pairTable {
	hs := t.list()
	points := make([]geometry.Point, len(hs))
	for i, h := range hs {
		p := h.Payload.(*Pair)
		points[i] = geometry.Point{X: p.K, Y: p.L}
	}
	verts := geometry.ConvexHull(points)
	kept := make([]*hypothesis.Hypothesis, len(verts))
	for i, v := range verts {
		kept[i] = hs[v]
	}
	return newPairTable(kept)
}
