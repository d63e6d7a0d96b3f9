package exponent

import (
	"fmt"
	"math/big"

	"github.com/expmath/vdcorput/internal/hypothesis"
)

// Transform names and the keyword the duality converter uses to locate
// the B transform in a hypothesis set.
const (
	TransformAName = "van der Corput A transform"
	TransformBName = "van der Corput B transform"
)

// PairFunc maps one exponent pair to another. It must be pure and
// deterministic: equal inputs yield equal (k, l) keys.
type PairFunc func(k, l *big.Rat) (*big.Rat, *big.Rat)

// Transform is a named, referentially transparent map from exponent-pair
// hypotheses to exponent-pair hypotheses. The transform family is open:
// registering a new transform hypothesis requires no engine change.
type Transform struct {
	name string
	fn   PairFunc
}

// NewTransform returns a transform with the given unique name.
func NewTransform(name string, fn PairFunc) *Transform {
	return &Transform{name: name, fn: fn}
}

// Key is the transform's unique name.
func (t *Transform) Key() string { return t.name }

// Name returns the transform's name.
func (t *Transform) Name() string { return t.name }

func (t *Transform) String() string { return t.name }

// Apply maps an exponent-pair hypothesis through the transform, producing
// a derived hypothesis depending on the source pair.
func (t *Transform) Apply(h *hypothesis.Hypothesis) *hypothesis.Hypothesis {
	p := h.Payload.(*Pair)
	k, l := t.fn(p.K, p.L)
	return DerivedPair(k, l,
		fmt.Sprintf("Applying %s to %s", t.name, p),
		[]*hypothesis.Hypothesis{h},
	)
}

// TransformHypothesis registers a transform in a knowledge base.
func TransformHypothesis(t *Transform, ref hypothesis.Reference) *hypothesis.Hypothesis {
	return hypothesis.New(
		t.name,
		hypothesis.KindPairTransform,
		t,
		fmt.Sprintf("See [%s, %s]", ref.Author(), ref.Year()),
		ref,
	)
}

// VanDerCorputA is the A (Weyl differencing) transform:
// (k, l) -> (k/(2k+2), (k+l+1)/(2k+2)).
func VanDerCorputA() *Transform {
	return NewTransform(TransformAName, func(k, l *big.Rat) (*big.Rat, *big.Rat) {
		// 2k + 2
		den := new(big.Rat).Add(k, big.NewRat(1, 1))
		den.Mul(den, big.NewRat(2, 1))
		nk := new(big.Rat).Quo(k, den)
		num := new(big.Rat).Add(k, l)
		num.Add(num, big.NewRat(1, 1))
		nl := num.Quo(num, den)
		return nk, nl
	})
}

// VanDerCorputB is the B (Poisson summation) transform:
// (k, l) -> (l - 1/2, k + 1/2). Applying it twice is the identity.
func VanDerCorputB() *Transform {
	return NewTransform(TransformBName, func(k, l *big.Rat) (*big.Rat, *big.Rat) {
		half := big.NewRat(1, 2)
		nk := new(big.Rat).Sub(l, half)
		nl := new(big.Rat).Add(k, half)
		return nk, nl
	})
}
