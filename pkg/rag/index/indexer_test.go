package index

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// markerEmbedder maps texts containing the marker word near the query and
// everything else away from it.
type markerEmbedder struct {
	marker string
	err    error
	calls  int
}

func (m *markerEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if strings.Contains(text, m.marker) {
			vectors[i] = []float32{1, 0}
		} else {
			vectors[i] = []float32{0, 1}
		}
	}
	return vectors, nil
}

func TestIndexRejectsShortContent(t *testing.T) {
	embedder := &markerEmbedder{marker: "zebra"}
	ix := NewIndexer(embedder)

	excerpt, err := ix.Index(context.Background(), "too short to index", "query", "https://a.example")

	require.NoError(t, err)
	assert.Nil(t, excerpt)
	assert.Zero(t, embedder.calls, "short content should not reach the embedder")
}

func TestIndexPicksChunkNearestQuery(t *testing.T) {
	filler := strings.Repeat("plain words about nothing in particular ", 4)
	text := filler + "\n\n" + "this chunk mentions zebra migration patterns" + "\n\n" + filler

	embedder := &markerEmbedder{marker: "zebra"}
	ix := NewIndexer(embedder)

	excerpt, err := ix.Index(context.Background(), text, "zebra facts", "https://a.example")

	require.NoError(t, err)
	require.NotNil(t, excerpt)
	assert.Equal(t, "https://a.example", excerpt.Link)
	assert.Contains(t, excerpt.Text, "zebra")
	assert.Equal(t, 1, embedder.calls, "chunks and query should share one embedding call")
}

func TestIndexPropagatesEmbedError(t *testing.T) {
	embedder := &markerEmbedder{err: errors.New("quota exceeded")}
	ix := NewIndexer(embedder)

	text := strings.Repeat("long enough content to pass the minimum length gate ", 6)
	_, err := ix.Index(context.Background(), text, "query", "https://a.example")

	require.Error(t, err)
}

type miscountEmbedder struct{}

func (miscountEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return [][]float32{{1, 0}}, nil
}

func TestIndexRejectsVectorCountMismatch(t *testing.T) {
	ix := NewIndexer(miscountEmbedder{})

	text := strings.Repeat("long enough content to pass the minimum length gate ", 6)
	_, err := ix.Index(context.Background(), text, "query", "https://a.example")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vectors")
}
