// Package geometry provides exact-rational 2-D convex hulls and
// boundary-inclusive polytope containment. All computation is in
// math/big.Rat arithmetic, so hull vertices carry exact coordinates and
// can be compared against rational keys without any floating-point
// reconciliation.
package geometry

import (
	"math/big"
	"sort"
)

// Point is a point in the plane with exact rational coordinates.
type Point struct {
	X, Y *big.Rat
}

// NewPoint returns a point over copies of x and y.
func NewPoint(x, y *big.Rat) Point {
	return Point{X: new(big.Rat).Set(x), Y: new(big.Rat).Set(y)}
}

// Equal reports exact coordinate equality.
func (p Point) Equal(q Point) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// cross returns the sign of the cross product (b-a) x (c-a): positive for
// a left turn, negative for a right turn, zero for collinear points.
func cross(a, b, c Point) int {
	abx := new(big.Rat).Sub(b.X, a.X)
	aby := new(big.Rat).Sub(b.Y, a.Y)
	acx := new(big.Rat).Sub(c.X, a.X)
	acy := new(big.Rat).Sub(c.Y, a.Y)
	lhs := new(big.Rat).Mul(abx, acy)
	rhs := new(big.Rat).Mul(aby, acx)
	return lhs.Cmp(rhs)
}

// ConvexHull returns the indices into points of the convex hull vertices
// in counter-clockwise order, starting from the lexicographically
// smallest point. Collinear points interior to an edge are excluded.
// With fewer than 3 distinct points the distinct points are returned in
// lexicographic order.
func ConvexHull(points []Point) []int {
	idx := make([]int, 0, len(points))
	seen := make(map[string]struct{}, len(points))
	for i, p := range points {
		key := p.X.RatString() + "," + p.Y.RatString()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool {
		pa, pb := points[idx[a]], points[idx[b]]
		if c := pa.X.Cmp(pb.X); c != 0 {
			return c < 0
		}
		return pa.Y.Cmp(pb.Y) < 0
	})
	if len(idx) < 3 {
		return idx
	}

	// Andrew's monotone chain: lower hull then upper hull.
	var lower []int
	for _, i := range idx {
		for len(lower) >= 2 && cross(points[lower[len(lower)-2]], points[lower[len(lower)-1]], points[i]) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, i)
	}
	var upper []int
	for j := len(idx) - 1; j >= 0; j-- {
		i := idx[j]
		for len(upper) >= 2 && cross(points[upper[len(upper)-2]], points[upper[len(upper)-1]], points[i]) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, i)
	}
	// Last point of each chain is the first point of the other.
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		// All points collinear; the two chain endpoints remain.
		return hull
	}
	return hull
}
