package domain

import (
	"fmt"
	"math"
)

// Cosine computes cosine similarity between two equal-length vectors.
// A zero-magnitude vector on either side yields 0, not NaN. A length
// mismatch is an embedder contract violation and fails fast.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine: len %d vs %d: %w", len(a), len(b), ErrVectorDimMismatch)
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// RoundScore rounds a similarity score to 4 decimal places, the precision
// exposed to clients and used by the ranking stages.
func RoundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}
