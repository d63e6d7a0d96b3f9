package utils

import (
	"fmt"
	"math/big"
)

// ParseRat parses an exact rational from a string such as "13/84",
// "0.25" or "-3". Unlike big.Rat.SetString it rejects trailing garbage
// with a useful error.
func ParseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid rational %q", s)
	}
	return r, nil
}
