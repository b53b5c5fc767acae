package answer

import (
	"context"
	"errors"
	"testing"

	"ai-websearch-be/pkg/llm"
	"ai-websearch-be/pkg/rag/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedStream struct {
	deltas       []string
	streamErr    error
	lastMessages []llm.Message
}

func (s *scriptedStream) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", errors.New("not implemented")
}

func (s *scriptedStream) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, opts ...llm.Option) error {
	s.lastMessages = history
	for _, delta := range s.deltas {
		if err := handler(delta); err != nil {
			return err
		}
	}
	return s.streamErr
}

func (s *scriptedStream) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "", errors.New("not implemented")
}

func TestStreamAccumulatesGrowingPrefix(t *testing.T) {
	provider := &scriptedStream{deltas: []string{"Go is ", "a compiled ", "language."}}
	s := NewStreamer(provider)

	var growth []string
	final, err := s.Stream(context.Background(), "what is go", nil, func(accumulated string) {
		growth = append(growth, accumulated)
	})

	require.NoError(t, err)
	assert.Equal(t, "Go is a compiled language.", final)
	assert.Equal(t, []string{"Go is ", "Go is a compiled ", "Go is a compiled language."}, growth)
}

func TestStreamInterruptionKeepsPartialAnswer(t *testing.T) {
	provider := &scriptedStream{
		deltas:    []string{"Partial ", "answer"},
		streamErr: errors.New("connection reset"),
	}
	s := NewStreamer(provider)

	final, err := s.Stream(context.Background(), "q", nil, func(string) {})

	require.NoError(t, err)
	assert.Equal(t, "Partial answer", final)
}

func TestStreamFailureBeforeAnyTokenIsAnError(t *testing.T) {
	provider := &scriptedStream{streamErr: errors.New("model unavailable")}
	s := NewStreamer(provider)

	_, err := s.Stream(context.Background(), "q", nil, func(string) {})
	require.Error(t, err)
}

func TestBuildPromptSerializesExcerpts(t *testing.T) {
	excerpts := []index.Excerpt{
		{Link: "https://a.example", Text: "excerpt one"},
	}

	prompt := BuildPrompt("what is go", excerpts)

	assert.Contains(t, prompt, "Query: what is go")
	assert.Contains(t, prompt, `"link":"https://a.example"`)
	assert.Contains(t, prompt, `"text":"excerpt one"`)
}

func TestStreamSendsExcerptsToProvider(t *testing.T) {
	provider := &scriptedStream{deltas: []string{"ok"}}
	s := NewStreamer(provider)

	excerpts := []index.Excerpt{{Link: "https://a.example", Text: "snippet"}}
	_, err := s.Stream(context.Background(), "q", excerpts, func(string) {})

	require.NoError(t, err)
	require.Len(t, provider.lastMessages, 2)
	assert.Equal(t, "system", provider.lastMessages[0].Role)
	assert.Contains(t, provider.lastMessages[1].Content, "snippet")
}
