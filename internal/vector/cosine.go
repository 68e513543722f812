// Package vector provides the similarity math used by semantic retrieval.
package vector

import "math"

// Cosine returns the cosine similarity between two vectors.
// It returns 0.0 rather than an error when either vector has zero norm
// or when the inputs are empty; vectors of different lengths are compared
// over their shared prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
