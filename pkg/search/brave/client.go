package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// ProviderDomain is the search provider's own domain. Result links pointing
// back at it are self-referential noise and get filtered upstream.
const ProviderDomain = "brave.com"

// Result is one web search hit.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Provider is the web search capability consumed by the source retriever.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

type Client struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
}

var _ Provider = &Client{}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:   apiKey,
		Endpoint: defaultEndpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type braveSearchResponse struct {
	Web struct {
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"results"`
	} `json:"web"`
}

func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s?q=%s", c.Endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave search request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave search error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp braveSearchResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		// Malformed provider output yields an empty result list, not a failure
		return nil, nil
	}

	results := make([]Result, 0, len(searchResp.Web.Results))
	for _, r := range searchResp.Web.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL})
	}

	return results, nil
}
