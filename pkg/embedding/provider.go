package embedding

import (
	"context"
	"math"
)

// Provider defines the interface for generating text embeddings.
// Implementations must return one vector per input text, in input order.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// NormalizeVector normalizes a vector to unit length (magnitude = 1).
// Required for accurate cosine similarity calculation.
func NormalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
