// Package exponent implements the exponent-pair derivation engine for the
// van der Corput method: closure of known pairs under registered
// transforms, conversion of beta bounds into pairs via tangent-line
// duality, and convexity-based proof search.
//
// Exponent pairs here follow the convention that allows epsilon losses in
// the exponential-sum bound, so membership in the convex hull of known
// pairs decides provability.
package exponent

import (
	"fmt"
	"math/big"

	"github.com/expmath/vdcorput/internal/hypothesis"
)

// Pair is an exponent pair (k, l) with exact rational components.
type Pair struct {
	K, L *big.Rat
}

// NewPair returns a pair over copies of k and l.
func NewPair(k, l *big.Rat) *Pair {
	return &Pair{K: new(big.Rat).Set(k), L: new(big.Rat).Set(l)}
}

// Key is the exact deduplication key "k,l" in lowest terms.
func (p *Pair) Key() string {
	return p.K.RatString() + "," + p.L.RatString()
}

// Equal reports exact value equality on (k, l).
func (p *Pair) Equal(q *Pair) bool {
	return p.K.Cmp(q.K) == 0 && p.L.Cmp(q.L) == 0
}

func (p *Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.K.RatString(), p.L.RatString())
}

// PairKey returns the deduplication key for coordinates without
// constructing a Pair.
func PairKey(k, l *big.Rat) string {
	return k.RatString() + "," + l.RatString()
}

// LiteraturePair cites an exponent pair from a published result.
func LiteraturePair(k, l *big.Rat, ref hypothesis.Reference) *hypothesis.Hypothesis {
	return hypothesis.New(
		fmt.Sprintf("%s exponent pair", ref.Author()),
		hypothesis.KindExponentPair,
		NewPair(k, l),
		fmt.Sprintf("See [%s, %s]", ref.Author(), ref.Year()),
		ref,
	)
}

// DerivedPair constructs a derived exponent-pair hypothesis whose year is
// the latest among its dependencies' references.
func DerivedPair(k, l *big.Rat, proof string, deps []*hypothesis.Hypothesis) *hypothesis.Hypothesis {
	refs := make([]hypothesis.Reference, len(deps))
	for i, d := range deps {
		refs[i] = d.Ref
	}
	pair := NewPair(k, l)
	h := hypothesis.New(
		fmt.Sprintf("Derived exponent pair %s", pair),
		hypothesis.KindExponentPair,
		pair,
		proof,
		hypothesis.Derived(hypothesis.MaxYear(refs)),
	)
	h.Dependencies = append([]*hypothesis.Hypothesis(nil), deps...)
	return h
}

// TrivialPair is the exponent pair (0, 1) from the triangle inequality.
func TrivialPair() *hypothesis.Hypothesis {
	return hypothesis.New(
		"Trivial exponent pair (0, 1)",
		hypothesis.KindExponentPair,
		NewPair(big.NewRat(0, 1), big.NewRat(1, 1)),
		"Triangle inequality",
		hypothesis.Trivial(),
	)
}

// ConjecturedPair is the exponent pair conjecture placeholder (0, 0).
func ConjecturedPair() *hypothesis.Hypothesis {
	return hypothesis.New(
		"Exponent pair conjecture",
		hypothesis.KindExponentPair,
		NewPair(big.NewRat(0, 1), big.NewRat(0, 1)),
		"Conjecture",
		hypothesis.Conjectured(),
	)
}
