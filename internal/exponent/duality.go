package exponent

import (
	"fmt"
	"math/big"

	"github.com/expmath/vdcorput/internal/bounds"
	"github.com/expmath/vdcorput/internal/geometry"
	"github.com/expmath/vdcorput/internal/hypothesis"
)

// FromBetaBounds derives exponent pairs from the set's beta-bound
// hypotheses via the tangent-line duality: a supporting line
// beta = m*alpha + c of the convex region under the bounds corresponds to
// the exponent pair (c, m+c).
//
// The bounds must cover [0, 1/2]; otherwise no pairs can be derived and
// the result is empty. Since the duality only sees alpha in [0, 1/2],
// every resulting pair is also mirrored through the registered B
// transform when one is present (looked up by keyword); without one the
// mirroring is skipped silently.
//
// The returned list is the full set of now-known exponent-pair
// hypotheses: existing ones reused by reference, new ones freshly minted,
// plus the B-transform mirrors. The input set is not modified.
func FromBetaBounds(set *hypothesis.Set) []*hypothesis.Hypothesis {
	half := big.NewRat(1, 2)
	zero := big.NewRat(0, 1)

	pieces := bounds.BestPieces(set)
	if len(pieces) == 0 {
		return nil
	}
	first := pieces[0].Payload.(*bounds.Bound)
	last := pieces[len(pieces)-1].Payload.(*bounds.Bound)
	if first.X0.Cmp(zero) > 0 || last.X1.Cmp(half) < 0 {
		// The bound does not yet cover [0, 1/2].
		return nil
	}

	// Two anchor points, then both boundary points of every piece.
	// Boundary evaluation cannot fail: endpoints are always in domain.
	points := []geometry.Point{
		{X: zero, Y: zero},
		{X: half, Y: zero},
	}
	for _, h := range pieces {
		b := h.Payload.(*bounds.Bound)
		y0, _ := b.At(b.X0, true)
		y1, _ := b.At(b.X1, true)
		points = append(points,
			geometry.Point{X: b.X0, Y: y0},
			geometry.Point{X: b.X1, Y: y1},
		)
	}

	hull := geometry.ConvexHull(points)

	// Every bound whose boundary point touches any hull vertex is a
	// dependency of every derived pair. Deliberately an
	// over-approximation: narrowing to a per-pair minimal subset would
	// change what each proof claims to depend on.
	touched := make(map[int]struct{})
	for _, v := range hull {
		if v < 2 {
			continue // anchor points carry no bound
		}
		p := points[v]
		for i, h := range pieces {
			b := h.Payload.(*bounds.Bound)
			if b.X0.Cmp(p.X) == 0 || b.X1.Cmp(p.X) == 0 {
				if y, _ := b.At(p.X, true); y.Cmp(p.Y) == 0 {
					touched[i] = struct{}{}
				}
			}
		}
	}
	deps := make([]*hypothesis.Hypothesis, 0, len(touched))
	for i, h := range pieces {
		if _, ok := touched[i]; ok {
			deps = append(deps, h)
		}
	}

	known := set.ListKind(hypothesis.KindExponentPair)
	byKey := make(map[string]*hypothesis.Hypothesis, len(known))
	for _, h := range known {
		byKey[h.Payload.(*Pair).Key()] = h
	}
	all := append([]*hypothesis.Hypothesis(nil), known...)

	var mirror *Transform
	if bh := set.FindByKeyword(TransformBName); bh != nil {
		mirror = bh.Payload.(*Transform)
	}

	n := len(hull)
	for i := 0; i < n; i++ {
		p1 := points[hull[i]]
		p2 := points[hull[(i+1)%n]]
		// Edges along beta=0, alpha=0 or alpha=1/2 carry no
		// exponent-pair information.
		if (p1.Y.Sign() == 0 && p2.Y.Sign() == 0) ||
			(p1.X.Sign() == 0 && p2.X.Sign() == 0) ||
			(p1.X.Cmp(half) == 0 && p2.X.Cmp(half) == 0) {
			continue
		}

		dx := new(big.Rat).Sub(p2.X, p1.X)
		m := new(big.Rat).Sub(p2.Y, p1.Y)
		m.Quo(m, dx)
		c := new(big.Rat).Mul(p1.Y, p2.X)
		c.Sub(c, new(big.Rat).Mul(p1.X, p2.Y))
		c.Quo(c, dx)

		// Tangent line beta = m*alpha + c gives the pair (c, m+c).
		k := c
		l := new(big.Rat).Add(m, c)

		h, ok := byKey[PairKey(k, l)]
		if !ok {
			h = DerivedPair(k, l,
				fmt.Sprintf("Follows from combining %d bounds on beta", len(deps)),
				deps,
			)
			byKey[PairKey(k, l)] = h
			all = append(all, h)
		}

		if mirror == nil {
			continue
		}
		mh := mirror.Apply(h)
		mp := mh.Payload.(*Pair)
		if _, dup := byKey[mp.Key()]; !dup {
			byKey[mp.Key()] = mh
			all = append(all, mh)
		}
	}
	return all
}
