// Package compare defines the pairwise comparator capability used by the
// ordering pipeline.
//
// A comparator answers "which of these two names should come first, and how
// strongly". The backing implementation may be a remote model ([Remote]), a
// fixed table ([Static]), or any other source; the pipeline only sees the
// [Comparator] interface.
//
// # Scores
//
// RawCompare returns two non-negative win weights: how strongly a beats b,
// and how strongly b beats a. These weights feed the pairwise win matrix of
// the rank estimator. Compare collapses them into a single signed scalar
// (negative means a before b) for direct comparison use.
//
// Comparator failures are terminal for the caller: a sort that cannot
// compare a pair produces no order at all rather than a partial one.
package compare

import (
	"context"

	"attrsort/pkg/token"
)

// Comparator scores ordered pairs of tokens.
//
// Implementations must be safe for concurrent use.
type Comparator interface {
	// Compare returns a signed preference scalar for the pair. Negative
	// means a should come before b, positive the reverse, zero no
	// preference.
	Compare(ctx context.Context, a, b token.Token) (float64, error)

	// RawCompare returns the directional win weights for the pair: the
	// strength with which a beats b, and the strength with which b beats a.
	RawCompare(ctx context.Context, a, b token.Token) (ab, ba float64, err error)
}

// =============================================================================
// Static Comparator
// =============================================================================

// Static is a comparator backed by a fixed strength table. Tokens absent
// from the table score zero against everything. It is primarily useful in
// tests and offline runs where no model endpoint is available.
type Static struct {
	// Strength maps tokens to a fixed weight. A higher strength wins
	// against a lower one with weight equal to the winner's strength.
	Strength map[token.Token]float64
}

// NewStatic creates a Static comparator over the given strength table.
func NewStatic(strength map[token.Token]float64) *Static {
	return &Static{Strength: strength}
}

// Compare returns the signed strength difference b−a, so that the stronger
// token sorts first.
func (s *Static) Compare(ctx context.Context, a, b token.Token) (float64, error) {
	ab, ba, err := s.RawCompare(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return ba - ab, nil
}

// RawCompare reports each token's table strength as its win weight over the
// other.
func (s *Static) RawCompare(_ context.Context, a, b token.Token) (float64, float64, error) {
	return s.Strength[a], s.Strength[b], nil
}
