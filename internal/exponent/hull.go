package exponent

import (
	"github.com/expmath/vdcorput/internal/geometry"
	"github.com/expmath/vdcorput/internal/hypothesis"
)

// hullCacheKey is where the computed hull lives in the set's auxiliary
// cache.
const hullCacheKey = "convex_hull"

// HullVertices returns the convex hull of the set's exponent pairs as
// hypotheses, memoized in the set's auxiliary cache. The cached value is
// reused while the set's cache flag is valid; inserting new exponent
// pairs clears the flag, so a stale hull is never returned as long as
// every insertion goes through Set.Add. With fewer than 3 pairs no hull
// is computed and the full pair list stands in for it.
func HullVertices(set *hypothesis.Set) []*hypothesis.Hypothesis {
	if set.CacheValid() {
		if v, ok := set.CacheGet(hullCacheKey); ok {
			return v.([]*hypothesis.Hypothesis)
		}
	}

	pairs := set.ListKind(hypothesis.KindExponentPair)
	var verts []*hypothesis.Hypothesis
	if len(pairs) < 3 {
		verts = pairs
	} else {
		points := make([]geometry.Point, len(pairs))
		for i, h := range pairs {
			p := h.Payload.(*Pair)
			points[i] = geometry.Point{X: p.K, Y: p.L}
		}
		hull := geometry.ConvexHull(points)
		verts = make([]*hypothesis.Hypothesis, len(hull))
		for i, idx := range hull {
			verts[i] = pairs[idx]
		}
	}

	set.CachePut(hullCacheKey, verts)
	set.MarkCacheValid()
	return verts
}
