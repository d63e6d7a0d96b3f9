package exponent

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/expmath/vdcorput/internal/geometry"
	"github.com/expmath/vdcorput/internal/hypothesis"
	"go.uber.org/zap"
)

// Strategy selects how FindBestProof optimizes.
type Strategy string

const (
	// StrategyDate returns the historically earliest valid proof.
	StrategyDate Strategy = "date"
	// StrategyComplexity minimizes the summed proof complexity of the
	// cited hypotheses.
	StrategyComplexity Strategy = "complexity"
	// StrategyNone performs no optimization. It has no determinate
	// output and is reported as unsupported rather than guessed at.
	StrategyNone Strategy = "none"
)

var (
	// ErrNilSet is returned when a nil hypothesis set is passed where
	// one is required.
	ErrNilSet = errors.New("hypothesis set must not be nil")
	// ErrStrategyNotSupported is returned for StrategyNone.
	ErrStrategyNotSupported = errors.New("proof search without optimization is not supported")
	// ErrUnknownStrategy is returned for unrecognized strategy values.
	ErrUnknownStrategy = errors.New("unknown proof optimization strategy")
)

// Prover searches for proofs that a target (k, l) is an exponent pair
// implied by a set of hypotheses. A successful search returns a derived
// hypothesis; an unprovable target returns (nil, nil), the explicit
// "no result", so callers can try other strategies.
type Prover struct {
	opts   ExpandOptions
	logger *zap.Logger
}

// ProverOption configures a Prover.
type ProverOption func(*Prover)

// WithLogger sets a logger for search progress; default is no logging.
func WithLogger(l *zap.Logger) ProverOption {
	return func(p *Prover) { p.logger = l }
}

// WithExpandOptions overrides the closure-engine options used during
// proof search.
func WithExpandOptions(opts ExpandOptions) ProverOption {
	return func(p *Prover) { p.opts = opts }
}

// NewProver returns a prover with default closure options.
func NewProver(opts ...ProverOption) *Prover {
	p := &Prover{opts: DefaultExpandOptions(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FindProof attempts to prove that (k, l) is an exponent pair. The
// caller's set is never mutated: the search works on a shallow copy,
// which it augments with beta-duality pairs and the transform closure
// before testing convex-hull containment.
//
// With optimize true the proof cites the containing vertex triangle with
// the lowest summed complexity (first found under a fixed enumeration
// order on ties); otherwise it cites every hull vertex.
func (p *Prover) FindProof(k, l *big.Rat, set *hypothesis.Set, optimize bool) (*hypothesis.Hypothesis, error) {
	if set == nil {
		return nil, ErrNilSet
	}
	cpy := set.Copy()
	cpy.Add(FromBetaBounds(cpy)...)
	cpy.Add(Expand(cpy, p.opts)...)
	if len(cpy.ListKind(hypothesis.KindExponentPair)) == 0 {
		return nil, nil
	}

	verts := HullVertices(cpy)
	points := make([]geometry.Point, len(verts))
	for i, v := range verts {
		pr := v.Payload.(*Pair)
		points[i] = geometry.Point{X: pr.K, Y: pr.L}
	}
	target := geometry.Point{X: k, Y: l}
	hull := geometry.NewPolytope(points)
	if !hull.Contains(target) {
		p.logger.Debug("target outside provable region",
			zap.String("k", k.RatString()), zap.String("l", l.RatString()),
			zap.Int("hull_vertices", len(verts)))
		return nil, nil
	}

	cited := verts
	if optimize && len(verts) >= 3 {
		if tri := bestTriangle(points, verts, target); tri != nil {
			cited = tri
		}
	}
	return DerivedPair(k, l, convexityProof(cited), cited), nil
}

// bestTriangle returns the 3 hull vertices of the containing triangle
// with minimal summed proof complexity, enumerated in lexicographic index
// order so ties resolve deterministically. Returns nil if no triangle
// contains the target (possible only for degenerate hulls).
func bestTriangle(points []geometry.Point, verts []*hypothesis.Hypothesis, target geometry.Point) []*hypothesis.Hypothesis {
	lowest := 0
	var best []*hypothesis.Hypothesis
	n := len(verts)
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for m := j + 1; m < n; m++ {
				tri := geometry.NewPolytope([]geometry.Point{points[i], points[j], points[m]})
				if !tri.Contains(target) {
					continue
				}
				comp := verts[i].Complexity() + verts[j].Complexity() + verts[m].Complexity()
				if best == nil || comp < lowest {
					lowest = comp
					best = []*hypothesis.Hypothesis{verts[i], verts[j], verts[m]}
				}
			}
		}
	}
	return best
}

func convexityProof(cited []*hypothesis.Hypothesis) string {
	names := make([]string, len(cited))
	for i, v := range cited {
		names[i] = v.Payload.(*Pair).String()
	}
	return "Follows from convexity and the exponent pairs " + strings.Join(names, ", ")
}

// FindBestProof proves (k, l) using the selected optimization strategy.
// StrategyDate walks publication years from earliest to latest and
// returns the first year whose knowledge suffices, so the proof's own
// derived year never postdates any cited dependency. StrategyComplexity
// delegates to FindProof with optimization: the triangle minimization
// already approximates global complexity minimization, which is treated
// as intractable. StrategyNone is an explicit unsupported error, and an
// unrecognized strategy is a contract violation.
func (p *Prover) FindBestProof(k, l *big.Rat, set *hypothesis.Set, strategy Strategy) (*hypothesis.Hypothesis, error) {
	if set == nil {
		return nil, ErrNilSet
	}
	switch strategy {
	case StrategyDate:
		return p.findEarliestProof(k, l, set)
	case StrategyComplexity:
		return p.FindProof(k, l, set, true)
	case StrategyNone:
		return nil, ErrStrategyNotSupported
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func (p *Prover) findEarliestProof(k, l *big.Rat, set *hypothesis.Set) (*hypothesis.Hypothesis, error) {
	all := set.All()
	fromYear, toYear := 0, 0
	anyDated := false
	for _, h := range all {
		y := h.Ref.Year()
		if !y.Known() {
			continue
		}
		if !anyDated || y.Value() < fromYear {
			fromYear = y.Value()
		}
		if !anyDated || y.Value() > toYear {
			toYear = y.Value()
		}
		anyDated = true
	}
	if !anyDated {
		// Every hypothesis is undated and thus always available; the
		// year walk collapses to a single search over the full set.
		return p.FindProof(k, l, set, true)
	}

	prevCount := 0
	for year := fromYear; year <= toYear; year++ {
		filtered := hypothesis.NewSet()
		for _, h := range all {
			y := h.Ref.Year()
			if !y.Known() || y.Value() <= year {
				filtered.Add(h)
			}
		}
		if filtered.Len() == prevCount {
			continue // nothing new this year
		}
		prevCount = filtered.Len()

		p.logger.Debug("searching for proof with knowledge cutoff",
			zap.Int("year", year), zap.Int("hypotheses", filtered.Len()))
		res, err := p.FindProof(k, l, filtered, true)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, nil
}
