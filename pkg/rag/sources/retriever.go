package sources

import (
	"context"
	"fmt"
	"strings"

	"ai-websearch-be/pkg/llm"
	"ai-websearch-be/pkg/search/brave"
)

// MaxCandidates caps how many sources enter the retrieval fan-out.
const MaxCandidates = 4

const rephraseSystemPrompt = "You are a rephraser and always respond with a rephrased version of the input that is given to a search engine API. Always be succint and use the same words as the input."

// CandidateSource identifies one externally retrievable document.
type CandidateSource struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Retriever turns a user query into a short list of candidate sources.
type Retriever struct {
	llmProvider    llm.LLMProvider
	searchProvider brave.Provider
}

func NewRetriever(llmProvider llm.LLMProvider, searchProvider brave.Provider) *Retriever {
	return &Retriever{
		llmProvider:    llmProvider,
		searchProvider: searchProvider,
	}
}

// Retrieve rephrases the query for search, submits it, and normalizes the
// hits. A rephrase or search failure is fatal; zero usable hits is not.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]CandidateSource, error) {
	rephrased, err := r.Rephrase(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("rephrase query: %w", err)
	}

	results, err := r.searchProvider.Search(ctx, rephrased)
	if err != nil {
		return nil, fmt.Errorf("search sources: %w", err)
	}

	return Normalize(results), nil
}

// Rephrase restates the query in search-engine-friendly form.
func (r *Retriever) Rephrase(ctx context.Context, query string) (string, error) {
	return r.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: rephraseSystemPrompt},
		{Role: "user", Content: query},
	})
}

// Normalize drops hits missing a title or link, drops self-referential
// search-provider links, and truncates to the first MaxCandidates entries.
// Provider ordering is treated as relevance ordering and preserved.
func Normalize(results []brave.Result) []CandidateSource {
	candidates := make([]CandidateSource, 0, MaxCandidates)
	seen := make(map[string]bool)

	for _, res := range results {
		if res.Title == "" || res.URL == "" {
			continue
		}
		if strings.Contains(res.URL, brave.ProviderDomain) {
			continue
		}
		if seen[res.URL] {
			continue
		}
		seen[res.URL] = true

		candidates = append(candidates, CandidateSource{
			Title: res.Title,
			Link:  res.URL,
		})
		if len(candidates) == MaxCandidates {
			break
		}
	}

	return candidates
}
