package followup

import (
	"context"
	"errors"
	"testing"

	"ai-websearch-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedChat struct {
	response     string
	err          error
	lastMessages []llm.Message
}

func (c *cannedChat) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	c.lastMessages = history
	return c.response, c.err
}

func (c *cannedChat) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, opts ...llm.Option) error {
	return errors.New("not implemented")
}

func (c *cannedChat) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestGeneratePassesOutputThroughOpaque(t *testing.T) {
	// Malformed output is returned as-is; callers tolerate it
	provider := &cannedChat{response: `not even json`}
	g := NewGenerator(provider)

	out, err := g.Generate(context.Background(), "what is go")

	require.NoError(t, err)
	assert.Equal(t, "not even json", out)
}

func TestGenerateEmbedsInputInPrompt(t *testing.T) {
	provider := &cannedChat{response: `{"follow_up":["a","b","c","d"]}`}
	g := NewGenerator(provider)

	_, err := g.Generate(context.Background(), "rust vs go")

	require.NoError(t, err)
	require.Len(t, provider.lastMessages, 2)
	assert.Equal(t, "system", provider.lastMessages[0].Role)
	assert.Contains(t, provider.lastMessages[0].Content, "rust vs go")
	assert.Contains(t, provider.lastMessages[1].Content, "rust vs go")
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	provider := &cannedChat{err: errors.New("model unavailable")}
	g := NewGenerator(provider)

	_, err := g.Generate(context.Background(), "q")
	require.Error(t, err)
}
