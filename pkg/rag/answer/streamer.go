package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-websearch-be/pkg/llm"
	"ai-websearch-be/pkg/rag/index"
)

const answerSystemPrompt = "You are a answer generator, you will receive top results of similarity search, they are optional to use depending how well they help answer the query."

// Streamer feeds the query and aggregated excerpts to the generation
// capability and surfaces the growing answer per token increment.
type Streamer struct {
	llmProvider llm.LLMProvider
}

func NewStreamer(llmProvider llm.LLMProvider) *Streamer {
	return &Streamer{llmProvider: llmProvider}
}

// BuildPrompt serializes the excerpts next to the query. Excerpts are framed
// as optional context, not ground truth.
func BuildPrompt(query string, excerpts []index.Excerpt) string {
	serialized, err := json.Marshal(excerpts)
	if err != nil {
		serialized = []byte("[]")
	}
	return fmt.Sprintf("Query: %s, Top Results: %s", query, string(serialized))
}

// Stream requests token-incremental generation and calls onGrowth with the
// accumulated answer prefix after each increment. An interrupted stream is
// not a failure: whatever accumulated is returned as the final answer.
func (s *Streamer) Stream(ctx context.Context, query string, excerpts []index.Excerpt, onGrowth func(accumulated string)) (string, error) {
	var accumulated strings.Builder

	err := s.llmProvider.ChatStream(ctx, []llm.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: BuildPrompt(query, excerpts)},
	}, func(delta string) error {
		accumulated.WriteString(delta)
		onGrowth(accumulated.String())
		return nil
	})

	if err != nil && accumulated.Len() == 0 {
		return "", fmt.Errorf("answer stream: %w", err)
	}

	// Partial answers are acceptable; surface what we have
	return accumulated.String(), nil
}
