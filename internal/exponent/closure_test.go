package exponent

import (
	"testing"

	"github.com/expmath/vdcorput/internal/hypothesis"
)

func transformSet(pairs ...*hypothesis.Hypothesis) *hypothesis.Set {
	set := hypothesis.NewSet(
		TransformHypothesis(VanDerCorputA(), hypothesis.Literature("van der Corput", 1921)),
		TransformHypothesis(VanDerCorputB(), hypothesis.Literature("van der Corput", 1922)),
	)
	set.Add(pairs...)
	return set
}

func keysOf(hs []*hypothesis.Hypothesis) map[string]bool {
	out := make(map[string]bool, len(hs))
	for _, h := range hs {
		out[h.Payload.(*Pair).Key()] = true
	}
	return out
}

func TestExpand_DepthZero(t *testing.T) {
	set := transformSet(TrivialPair())
	got := Expand(set, ExpandOptions{Depth: 0, Prune: true})
	if len(got) != 1 || got[0].Payload.(*Pair).Key() != "0,1" {
		t.Fatalf("depth 0 should return the input pairs unchanged, got %v", got)
	}
}

func TestExpand_ClassicalChain(t *testing.T) {
	set := transformSet(TrivialPair())

	// One round: A fixes (0, 1), B yields (1/2, 1/2).
	round1 := keysOf(Expand(set, ExpandOptions{Depth: 1, Prune: true}))
	if len(round1) != 2 || !round1["0,1"] || !round1["1/2,1/2"] {
		t.Fatalf("depth 1 keys = %v", round1)
	}

	// Two rounds: A(1/2, 1/2) = (1/6, 2/3) appears.
	round2 := keysOf(Expand(set, ExpandOptions{Depth: 2, Prune: true}))
	for _, want := range []string{"0,1", "1/2,1/2", "1/6,2/3"} {
		if !round2[want] {
			t.Errorf("depth 2 missing %s: %v", want, round2)
		}
	}
}

func TestExpand_Deterministic(t *testing.T) {
	opts := ExpandOptions{Depth: 3, Prune: true}
	first := Expand(transformSet(TrivialPair()), opts)
	second := Expand(transformSet(TrivialPair()), opts)
	if len(first) != len(second) {
		t.Fatalf("runs disagree on size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a := first[i].Payload.(*Pair)
		b := second[i].Payload.(*Pair)
		if a.Key() != b.Key() {
			t.Fatalf("runs disagree at %d: %s vs %s", i, a, b)
		}
	}
}

func TestExpand_DoesNotMutateInput(t *testing.T) {
	set := transformSet(TrivialPair())
	before := set.Len()
	Expand(set, ExpandOptions{Depth: 3, Prune: true})
	if set.Len() != before {
		t.Errorf("Expand mutated its input: Len %d -> %d", before, set.Len())
	}
}

func TestExpand_PruneKeepsHull(t *testing.T) {
	opts := DefaultExpandOptions()
	pruned := Expand(transformSet(TrivialPair()), opts)

	opts.Prune = false
	full := Expand(transformSet(TrivialPair()), opts)

	if len(pruned) > len(full) {
		t.Fatalf("pruned result larger than unpruned: %d > %d", len(pruned), len(full))
	}

	// Pruning discards interior pairs only, so the hulls coincide.
	prunedHull := keysOf(HullVertices(hypothesis.NewSet(pruned...)))
	fullHull := keysOf(HullVertices(hypothesis.NewSet(full...)))
	if len(prunedHull) != len(fullHull) {
		t.Fatalf("hull sizes differ: %d vs %d", len(prunedHull), len(fullHull))
	}
	for k := range fullHull {
		if !prunedHull[k] {
			t.Errorf("hull vertex %s lost by pruning", k)
		}
	}
}
