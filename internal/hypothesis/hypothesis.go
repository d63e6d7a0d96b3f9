// Package hypothesis defines the knowledge-base records manipulated by the
// derivation engine: hypotheses with provenance, references with optional
// publication years, and mutable hypothesis sets with a cache that is
// invalidated on insertion.
package hypothesis

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is the type tag of a hypothesis payload.
type Kind string

const (
	KindExponentPair  Kind = "exponent-pair"
	KindPairTransform Kind = "exponent-pair-transform"
	KindBetaBound     Kind = "beta-bound"
)

// Payload is the mathematical content of a hypothesis. Key returns the
// exact deduplication key: two hypotheses of the same kind with equal keys
// are duplicates even when their provenance differs.
type Payload interface {
	Key() string
}

// Hypothesis is an immutable provenance-carrying statement: a payload
// together with a display name, a proof narrative, a bibliographic
// reference, and the hypotheses it was derived from.
type Hypothesis struct {
	ID           string
	Name         string
	Kind         Kind
	Payload      Payload
	Proof        string
	Ref          Reference
	Dependencies []*Hypothesis
}

// New creates a hypothesis with a fresh ID and no dependencies.
func New(name string, kind Kind, payload Payload, proof string, ref Reference) *Hypothesis {
	return &Hypothesis{
		ID:      uuid.NewString(),
		Name:    name,
		Kind:    kind,
		Payload: payload,
		Proof:   proof,
		Ref:     ref,
	}
}

// Complexity is the size of the hypothesis's dependency tree: 1 for the
// hypothesis itself plus the complexity of everything it depends on.
// Shared dependencies are counted once per occurrence, so a proof citing
// heavyweight results scores worse than one citing primitives.
func (h *Hypothesis) Complexity() int {
	c := 1
	for _, d := range h.Dependencies {
		c += d.Complexity()
	}
	return c
}

func (h *Hypothesis) String() string {
	return fmt.Sprintf("%s: %v", h.Name, h.Payload)
}
