package geometry

import "math/big"

// Polytope is a convex region given by its vertices in a consistent
// cyclic order (as produced by ConvexHull). Degenerate polytopes of one
// or two vertices represent a point or a segment.
type Polytope struct {
	verts []Point
}

// NewPolytope builds a polytope from vertices already in convex cyclic
// order. The slice is copied.
func NewPolytope(verts []Point) *Polytope {
	return &Polytope{verts: append([]Point(nil), verts...)}
}

// FromPoints builds the convex hull polytope of an arbitrary point set.
func FromPoints(points []Point) *Polytope {
	hull := ConvexHull(points)
	verts := make([]Point, len(hull))
	for i, idx := range hull {
		verts[i] = points[idx]
	}
	return &Polytope{verts: verts}
}

// Vertices returns the polytope's vertices in cyclic order. The slice is
// shared; callers must not modify it.
func (p *Polytope) Vertices() []Point {
	return p.verts
}

// Contains reports whether q lies in the polytope, boundary inclusive.
func (p *Polytope) Contains(q Point) bool {
	switch len(p.verts) {
	case 0:
		return false
	case 1:
		return p.verts[0].Equal(q)
	case 2:
		return onSegment(p.verts[0], p.verts[1], q)
	}
	if p.degenerate() {
		// Vertices all on one line; containment is segment membership
		// between the extreme vertices.
		lo, hi := p.verts[0], p.verts[0]
		for _, v := range p.verts[1:] {
			if lessXY(v, lo) {
				lo = v
			}
			if lessXY(hi, v) {
				hi = v
			}
		}
		return onSegment(lo, hi, q)
	}
	pos, neg := false, false
	n := len(p.verts)
	for i := 0; i < n; i++ {
		c := cross(p.verts[i], p.verts[(i+1)%n], q)
		if c > 0 {
			pos = true
		} else if c < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

func (p *Polytope) degenerate() bool {
	n := len(p.verts)
	for i := 2; i < n; i++ {
		if cross(p.verts[0], p.verts[1], p.verts[i]) != 0 {
			return false
		}
	}
	return true
}

func lessXY(a, b Point) bool {
	if c := a.X.Cmp(b.X); c != 0 {
		return c < 0
	}
	return a.Y.Cmp(b.Y) < 0
}

// onSegment reports whether q lies on the closed segment ab.
func onSegment(a, b Point, q Point) bool {
	if cross(a, b, q) != 0 {
		return false
	}
	return between(a.X, b.X, q.X) && between(a.Y, b.Y, q.Y)
}

// between reports lo <= v <= hi with lo/hi in either order.
func between(a, b, v *big.Rat) bool {
	lo, hi := a, b
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	return lo.Cmp(v) <= 0 && v.Cmp(hi) <= 0
}
