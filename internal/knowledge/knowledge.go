// Package knowledge seeds the built-in knowledge base: the trivial
// exponent pair, the classical van der Corput transforms, and exponent
// pairs from the literature.
package knowledge

import (
	"math/big"

	"github.com/expmath/vdcorput/internal/exponent"
	"github.com/expmath/vdcorput/internal/hypothesis"
)

// literaturePairs are exponent pairs established directly in the
// literature, beyond what the closure of the trivial pair yields.
var literaturePairs = []struct {
	k, l   string
	author string
	year   int
}{
	{"1/6", "2/3", "van der Corput", 1922},
	{"9/56", "37/56", "Huxley--Watt", 1988},
	{"89/560", "369/560", "Watt", 1989},
	{"32/205", "269/410", "Huxley", 2005},
	{"13/84", "55/84", "Bourgain", 2017},
}

// DefaultSet returns a fresh knowledge base containing the trivial pair,
// the A and B transforms, and the literature pairs. The exponent pair
// conjecture is deliberately not included; add Conjecture() explicitly to
// explore conditional results.
func DefaultSet() *hypothesis.Set {
	set := hypothesis.NewSet(
		exponent.TrivialPair(),
		exponent.TransformHypothesis(exponent.VanDerCorputA(), hypothesis.Literature("van der Corput", 1921)),
		exponent.TransformHypothesis(exponent.VanDerCorputB(), hypothesis.Literature("van der Corput", 1922)),
	)
	for _, p := range literaturePairs {
		k, _ := new(big.Rat).SetString(p.k)
		l, _ := new(big.Rat).SetString(p.l)
		set.Add(exponent.LiteraturePair(k, l, hypothesis.Literature(p.author, p.year)))
	}
	return set
}

// Conjecture returns the exponent pair conjecture placeholder (0, 0).
func Conjecture() *hypothesis.Hypothesis {
	return exponent.ConjecturedPair()
}
