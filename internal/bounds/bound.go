// Package bounds provides piecewise affine upper bounds on the auxiliary
// function beta over sub-intervals of [0, 1/2], the payload consumed by
// the beta-duality converter.
package bounds

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/expmath/vdcorput/internal/hypothesis"
)

// Bound is one affine piece of a bound: beta(alpha) <= M*alpha + C for
// alpha in [X0, X1]. Coordinates and coefficients are exact rationals.
type Bound struct {
	X0, X1 *big.Rat
	M, C   *big.Rat
}

// New validates the domain and returns a bound over copies of its
// arguments.
func New(x0, x1, m, c *big.Rat) (*Bound, error) {
	if x0.Cmp(x1) >= 0 {
		return nil, fmt.Errorf("bound domain [%s, %s] is empty", x0.RatString(), x1.RatString())
	}
	return &Bound{
		X0: new(big.Rat).Set(x0),
		X1: new(big.Rat).Set(x1),
		M:  new(big.Rat).Set(m),
		C:  new(big.Rat).Set(c),
	}, nil
}

// At evaluates the bound at x. Outside [X0, X1] it returns an error
// unless extend is true, in which case the affine formula is
// extrapolated. Boundary points are always in domain.
func (b *Bound) At(x *big.Rat, extend bool) (*big.Rat, error) {
	if !extend && (x.Cmp(b.X0) < 0 || x.Cmp(b.X1) > 0) {
		return nil, fmt.Errorf("x = %s outside bound domain [%s, %s]",
			x.RatString(), b.X0.RatString(), b.X1.RatString())
	}
	v := new(big.Rat).Mul(b.M, x)
	return v.Add(v, b.C), nil
}

// Key is the exact deduplication key over domain and coefficients.
func (b *Bound) Key() string {
	return fmt.Sprintf("[%s,%s]:%s,%s", b.X0.RatString(), b.X1.RatString(), b.M.RatString(), b.C.RatString())
}

func (b *Bound) String() string {
	return fmt.Sprintf("beta(x) <= %s*x + %s on [%s, %s]",
		b.M.RatString(), b.C.RatString(), b.X0.RatString(), b.X1.RatString())
}

// LiteratureBound wraps a bound in a hypothesis citing a published result.
func LiteratureBound(b *Bound, ref hypothesis.Reference) *hypothesis.Hypothesis {
	return hypothesis.New(
		fmt.Sprintf("%s bound on beta", ref.Author()),
		hypothesis.KindBetaBound,
		b,
		fmt.Sprintf("See [%s, %s]", ref.Author(), ref.Year()),
		ref,
	)
}

// BestPieces returns the beta-bound hypotheses in the set ordered by
// domain start (then end). Resolving overlapping bounds to a pointwise
// best cover is the concern of the bound-computation layer; callers here
// are expected to supply a non-overlapping cover.
func BestPieces(set *hypothesis.Set) []*hypothesis.Hypothesis {
	hs := set.ListKind(hypothesis.KindBetaBound)
	sort.SliceStable(hs, func(i, j int) bool {
		a := hs[i].Payload.(*Bound)
		b := hs[j].Payload.(*Bound)
		if c := a.X0.Cmp(b.X0); c != 0 {
			return c < 0
		}
		return a.X1.Cmp(b.X1) < 0
	})
	return hs
}
