package sources

import (
	"context"
	"errors"
	"testing"

	"ai-websearch-be/pkg/llm"
	"ai-websearch-be/pkg/search/brave"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	chatResponse string
	chatErr      error
	lastMessages []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.lastMessages = history
	return f.chatResponse, f.chatErr
}

func (f *fakeLLM) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, opts ...llm.Option) error {
	return errors.New("not implemented")
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type fakeSearch struct {
	results   []brave.Result
	err       error
	lastQuery string
}

func (f *fakeSearch) Search(ctx context.Context, query string) ([]brave.Result, error) {
	f.lastQuery = query
	return f.results, f.err
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		results []brave.Result
		want    []CandidateSource
	}{
		{
			name:    "empty input",
			results: nil,
			want:    []CandidateSource{},
		},
		{
			name: "drops missing title and link",
			results: []brave.Result{
				{Title: "", URL: "https://a.example/1"},
				{Title: "No Link", URL: ""},
				{Title: "Kept", URL: "https://a.example/2"},
			},
			want: []CandidateSource{
				{Title: "Kept", Link: "https://a.example/2"},
			},
		},
		{
			name: "drops provider self-links",
			results: []brave.Result{
				{Title: "Self", URL: "https://search.brave.com/search?q=x"},
				{Title: "Kept", URL: "https://a.example/1"},
			},
			want: []CandidateSource{
				{Title: "Kept", Link: "https://a.example/1"},
			},
		},
		{
			name: "dedupes by link",
			results: []brave.Result{
				{Title: "First", URL: "https://a.example/1"},
				{Title: "Duplicate", URL: "https://a.example/1"},
			},
			want: []CandidateSource{
				{Title: "First", Link: "https://a.example/1"},
			},
		},
		{
			name: "caps at four keeping provider order",
			results: []brave.Result{
				{Title: "One", URL: "https://a.example/1"},
				{Title: "Self", URL: "https://brave.com/about"},
				{Title: "Two", URL: "https://a.example/2"},
				{Title: "Three", URL: "https://a.example/3"},
				{Title: "Four", URL: "https://a.example/4"},
				{Title: "Five", URL: "https://a.example/5"},
			},
			want: []CandidateSource{
				{Title: "One", Link: "https://a.example/1"},
				{Title: "Two", Link: "https://a.example/2"},
				{Title: "Three", Link: "https://a.example/3"},
				{Title: "Four", Link: "https://a.example/4"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.results)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetrieveRephraseFailureIsFatal(t *testing.T) {
	llmProvider := &fakeLLM{chatErr: errors.New("model unavailable")}
	searchProvider := &fakeSearch{}

	r := NewRetriever(llmProvider, searchProvider)
	_, err := r.Retrieve(context.Background(), "what is go")

	require.Error(t, err)
	assert.Empty(t, searchProvider.lastQuery, "search should not run after a failed rephrase")
}

func TestRetrieveSearchFailureIsFatal(t *testing.T) {
	llmProvider := &fakeLLM{chatResponse: "golang language"}
	searchProvider := &fakeSearch{err: errors.New("search down")}

	r := NewRetriever(llmProvider, searchProvider)
	_, err := r.Retrieve(context.Background(), "what is go")

	require.Error(t, err)
}

func TestRetrieveSubmitsRephrasedQuery(t *testing.T) {
	llmProvider := &fakeLLM{chatResponse: "golang language"}
	searchProvider := &fakeSearch{results: []brave.Result{
		{Title: "Go", URL: "https://go.dev"},
	}}

	r := NewRetriever(llmProvider, searchProvider)
	candidates, err := r.Retrieve(context.Background(), "what is go")

	require.NoError(t, err)
	assert.Equal(t, "golang language", searchProvider.lastQuery)
	require.Len(t, candidates, 1)
	assert.Equal(t, CandidateSource{Title: "Go", Link: "https://go.dev"}, candidates[0])
}

func TestRetrieveZeroUsableHitsIsNotFatal(t *testing.T) {
	llmProvider := &fakeLLM{chatResponse: "golang language"}
	searchProvider := &fakeSearch{results: []brave.Result{
		{Title: "Self", URL: "https://brave.com/search"},
	}}

	r := NewRetriever(llmProvider, searchProvider)
	candidates, err := r.Retrieve(context.Background(), "what is go")

	require.NoError(t, err)
	assert.Empty(t, candidates)
}
