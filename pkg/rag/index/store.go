package index

import (
	"sort"
)

// ScoredChunk pairs a chunk with its similarity to the query.
type ScoredChunk struct {
	Text  string
	Score float32
}

// MemoryStore is an ephemeral vector store scoped to one source's chunks.
// Each retrieval task builds its own, so no locking is needed.
type MemoryStore struct {
	chunks  []string
	vectors [][]float32
}

// NewMemoryStore pairs chunks with their embeddings. Vectors are assumed
// normalized to unit length, so cosine similarity reduces to a dot product.
func NewMemoryStore(chunks []string, vectors [][]float32) *MemoryStore {
	return &MemoryStore{
		chunks:  chunks,
		vectors: vectors,
	}
}

// SimilaritySearch returns the k chunks most similar to the query vector,
// highest score first.
func (s *MemoryStore) SimilaritySearch(query []float32, k int) []ScoredChunk {
	scored := make([]ScoredChunk, 0, len(s.chunks))
	for i, chunk := range s.chunks {
		scored = append(scored, ScoredChunk{
			Text:  chunk,
			Score: dot(query, s.vectors[i]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
