package order

import (
	"context"

	"attrsort/pkg/compare"
	"attrsort/pkg/fas"
	"attrsort/pkg/token"
)

// Tournament ranks names by treating every pairwise comparator outcome as a
// weighted edge and linearizing the resulting graph, cycles included, with
// the greedy feedback-arc-set sort. Unlike Runner.Sort it applies no hints;
// the comparator's preferences are the only signal.
//
// Tokens the comparator is entirely indifferent about (zero weight both
// ways against every peer) keep their original relative order at the end.
func Tournament(ctx context.Context, c compare.Comparator, names []string) ([]token.Token, error) {
	tokens := dedupe(token.NormalizeAll(names))

	var edges []fas.Edge
	for i := range tokens {
		for j := i + 1; j < len(tokens); j++ {
			ab, ba, err := c.RawCompare(ctx, tokens[i], tokens[j])
			if err != nil {
				return nil, err
			}
			if ab > 0 {
				edges = append(edges, fas.Edge{From: tokens[i], To: tokens[j], Weight: ab})
			}
			if ba > 0 {
				edges = append(edges, fas.Edge{From: tokens[j], To: tokens[i], Weight: ba})
			}
		}
	}

	sorted, err := fas.Sort(edges)
	if err != nil {
		return nil, err
	}

	// The edge list only covers tokens with at least one non-zero
	// preference; append the rest in input order.
	placed := make(map[token.Token]bool, len(sorted))
	for _, t := range sorted {
		placed[t] = true
	}
	for _, t := range tokens {
		if !placed[t] {
			sorted = append(sorted, t)
		}
	}
	return sorted, nil
}

func dedupe(tokens []token.Token) []token.Token {
	seen := make(map[token.Token]bool, len(tokens))
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
