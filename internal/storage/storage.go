// Package storage defines persistence for the hypothesis knowledge base.
package storage

import (
	"context"

	"github.com/expmath/vdcorput/internal/hypothesis"
)

// Store persists exponent-pair and beta-bound hypotheses together with
// their dependency edges. Transform hypotheses are code-registered
// functions and are not persisted; callers merge them back in after
// loading.
type Store interface {
	// SaveSet replaces the stored knowledge base with the set's
	// persistable hypotheses.
	SaveSet(ctx context.Context, set *hypothesis.Set) error
	// LoadSet reconstructs the stored knowledge base.
	LoadSet(ctx context.Context) (*hypothesis.Set, error)
	// CountHypotheses returns the number of stored hypotheses.
	CountHypotheses(ctx context.Context) (int64, error)

	Close() error
}
