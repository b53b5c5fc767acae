package index

import (
	"context"
	"fmt"

	"ai-websearch-be/pkg/embedding"
)

const (
	// MinContentLength rejects pages too short to carry useful signal.
	MinContentLength = 250

	// ChunkSize keeps each excerpt focused and per-source embedding cost
	// low enough to run all sources concurrently within the fetch deadline.
	ChunkSize = 200
)

// Excerpt is the top-ranked chunk extracted from one source.
type Excerpt struct {
	Link string `json:"link"`
	Text string `json:"text"`
}

// Indexer chunks extracted text, embeds it alongside the query, and picks
// the single chunk nearest the query.
type Indexer struct {
	embedder embedding.Provider
}

func NewIndexer(embedder embedding.Provider) *Indexer {
	return &Indexer{embedder: embedder}
}

// Index returns the best-matching excerpt for one source, or (nil, nil) when
// the text is too short — a soft reject, not an error.
func (ix *Indexer) Index(ctx context.Context, text, query, link string) (*Excerpt, error) {
	if len(text) < MinContentLength {
		return nil, nil
	}

	chunks := Split(text, ChunkSize)
	if len(chunks) == 0 {
		return nil, nil
	}

	// One embedding call covers the chunks and the query
	vectors, err := ix.embedder.Embed(ctx, append(chunks, query))
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks)+1 {
		return nil, fmt.Errorf("expected %d vectors, got %d", len(chunks)+1, len(vectors))
	}

	store := NewMemoryStore(chunks, vectors[:len(chunks)])
	top := store.SimilaritySearch(vectors[len(chunks)], 1)
	if len(top) == 0 {
		return nil, nil
	}

	return &Excerpt{Link: link, Text: top[0].Text}, nil
}
