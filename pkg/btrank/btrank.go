// Package btrank estimates Bradley–Terry strengths from pairwise win
// observations.
//
// Given a square matrix w where w[i][j] holds the observed strength of
// preference for item i over item j, Estimate returns one latent strength
// per item; a higher strength means the item is preferred earlier. Items
// with no observed wins or losses come out as NaN, which downstream sorts
// must treat as "no preference".
package btrank

import "math"

// DefaultMaxIter caps the fixed-point iteration when the caller passes a
// non-positive limit.
const DefaultMaxIter = 10

// convergence threshold on successive geometric means.
const epsilon = 1e-3

// Estimate runs the Bradley–Terry fixed-point iteration on the win matrix.
// Updates are applied in place in index order, so later items within one
// pass already see earlier items' updated strengths (Gauss–Seidel style,
// which converges faster than a synchronous sweep). After each pass the
// vector is renormalized by its geometric mean; iteration stops once the
// geometric mean moves less than 1e-3, or after maxIter passes.
//
// The diagonal of w is ignored. A zero numerator over a zero denominator
// yields NaN, and NaN propagates through the renormalization; callers keep
// NaN-bearing items in their original relative order.
func Estimate(w [][]float64, maxIter int) []float64 {
	n := len(w)
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	p := make([]float64, n)
	for i := range p {
		p[i] = 1
	}

	lastMean := math.NaN()
	for iter := 0; iter < maxIter; iter++ {
		for i := 0; i < n; i++ {
			var num, den float64
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				num += w[i][j] * p[j] / (p[i] + p[j])
				den += w[j][i] / (p[i] + p[j])
			}
			p[i] = num / den
		}

		mean := geometricMean(p)
		for i := range p {
			p[i] /= mean
		}
		if math.Abs(mean-lastMean) < epsilon {
			break
		}
		lastMean = mean
	}
	return p
}

func geometricMean(p []float64) float64 {
	prod := 1.0
	for _, v := range p {
		prod *= v
	}
	return math.Pow(prod, 1/float64(len(p)))
}
