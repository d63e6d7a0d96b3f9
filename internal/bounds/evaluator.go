package bounds

import (
	"fmt"
	"math/big"
)

// DefaultPrecisionBits is the working precision for fixing non-rational
// coefficients, roughly 1000 decimal digits.
const DefaultPrecisionBits = 3324

// Evaluator converts coefficient strings from knowledge files into exact
// rationals. Rational and terminating-decimal forms convert exactly;
// anything else is rounded once at the configured binary precision, so
// the same input always fixes to the same rational for the life of the
// process. Construct one evaluator before loading any bounds and do not
// vary the precision afterwards; mixing precisions would make equal
// inputs produce unequal keys.
type Evaluator struct {
	prec uint
}

// NewEvaluator returns an evaluator at the given binary precision;
// zero selects DefaultPrecisionBits.
func NewEvaluator(precBits uint) *Evaluator {
	if precBits == 0 {
		precBits = DefaultPrecisionBits
	}
	return &Evaluator{prec: precBits}
}

// Precision returns the evaluator's binary precision.
func (e *Evaluator) Precision() uint { return e.prec }

// Fix parses s into an exact rational. Forms like "13/84", "0.25" and
// "-3" parse exactly; scientific notation such as "1.4142e0" is parsed
// as a big.Float at the configured precision and then rationalized.
func (e *Evaluator) Fix(s string) (*big.Rat, error) {
	if r, ok := new(big.Rat).SetString(s); ok {
		return r, nil
	}
	f, _, err := big.ParseFloat(s, 10, e.prec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("cannot parse coefficient %q: %w", s, err)
	}
	r, _ := f.Rat(nil)
	if r == nil {
		return nil, fmt.Errorf("coefficient %q is not finite", s)
	}
	return r, nil
}
