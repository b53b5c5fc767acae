package followup

import (
	"context"
	"fmt"

	"ai-websearch-be/pkg/llm"
)

const followupSystemPromptFmt = `You are a follow up answer generator and always respond with 4 follow up questions based on this input "%s" in JSON format. i.e. { "follow_up": ["QUESTION_GOES_HERE", "QUESTION_GOES_HERE", "QUESTION_GOES_HERE"] }`

// Generator requests a fixed-size set of follow-up questions in a structured
// JSON shape. The capability's output is returned as opaque text; no schema
// validation or repair happens here, the consumer tolerates malformed output.
type Generator struct {
	llmProvider llm.LLMProvider
}

func NewGenerator(llmProvider llm.LLMProvider) *Generator {
	return &Generator{llmProvider: llmProvider}
}

// Generate makes a single non-streaming request for exactly 4 questions.
func (g *Generator) Generate(ctx context.Context, input string) (string, error) {
	return g.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: fmt.Sprintf(followupSystemPromptFmt, input)},
		{Role: "user", Content: fmt.Sprintf(`Generate a 4 follow up questions based on this input ""%s"" `, input)},
	})
}
