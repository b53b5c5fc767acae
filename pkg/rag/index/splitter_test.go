package index

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		want      []string
	}{
		{
			name:      "empty text",
			text:      "",
			chunkSize: 10,
			want:      nil,
		},
		{
			name:      "text within chunk size stays whole",
			text:      "short text",
			chunkSize: 50,
			want:      []string{"short text"},
		},
		{
			name:      "splits on paragraph boundary first",
			text:      "first paragraph here\n\nsecond paragraph here",
			chunkSize: 25,
			want:      []string{"first paragraph here", "second paragraph here"},
		},
		{
			name:      "merges small parts into one chunk",
			text:      "one\n\ntwo\n\nthree",
			chunkSize: 50,
			want:      []string{"one\n\ntwo\n\nthree"},
		},
		{
			name:      "falls through to sentence boundary",
			text:      "A first sentence. A second sentence. A third one here.",
			chunkSize: 25,
			want:      []string{"A first sentence", "A second sentence", "A third one here."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.chunkSize)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitNeverExceedsChunkSize(t *testing.T) {
	texts := []string{
		strings.Repeat("word ", 200),
		strings.Repeat("a", 1000),
		"para one with some words\n\n" + strings.Repeat("long sentence body ", 30) + ".\n\nshort tail",
	}

	for _, text := range texts {
		for _, chunk := range Split(text, 200) {
			assert.LessOrEqual(t, len(chunk), 200)
			assert.NotEmpty(t, strings.TrimSpace(chunk))
		}
	}
}

func TestSplitHardCutPreservesRunes(t *testing.T) {
	text := strings.Repeat("世界", 300)
	chunks := Split(text, 100)

	require.NotEmpty(t, chunks)
	var rebuilt strings.Builder
	for _, chunk := range chunks {
		assert.True(t, strings.HasPrefix(chunk, "世") || strings.HasPrefix(chunk, "界"))
		rebuilt.WriteString(chunk)
	}
	assert.Equal(t, text, rebuilt.String())
}
