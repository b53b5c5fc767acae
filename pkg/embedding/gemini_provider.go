package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiEmbeddingModel = "text-embedding-004"

type GeminiProvider struct {
	ApiKey string
	Client *http.Client
}

func NewGeminiProvider(apiKey string) Provider {
	return &GeminiProvider{
		ApiKey: apiKey,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type geminiBatchEmbedRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiBatchEmbedResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

// Embed calls the batch embedding endpoint so a full chunk set costs one
// round trip. Vectors come back normalized to unit length.
func (p *GeminiProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	requests := make([]geminiEmbedRequest, len(texts))
	for i, text := range texts {
		requests[i] = geminiEmbedRequest{
			Model:   "models/" + geminiEmbeddingModel,
			Content: geminiContent{Parts: []geminiContentPart{{Text: text}}},
		}
	}

	payloadJson, err := json.Marshal(geminiBatchEmbedRequest{Requests: requests})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:batchEmbedContents",
		geminiEmbeddingModel,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(resBytes))
	}

	var batchRes geminiBatchEmbedResponse
	if err := json.Unmarshal(resBytes, &batchRes); err != nil {
		return nil, err
	}

	if len(batchRes.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", len(batchRes.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(batchRes.Embeddings))
	for i, emb := range batchRes.Embeddings {
		vectors[i] = NormalizeVector(emb.Values)
	}

	return vectors, nil
}
