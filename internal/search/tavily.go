// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/deep-research/pkg/types"
)

// tavilyAPIBase is the Tavily search endpoint. Declared as a var so tests
// can substitute an httptest server.
var tavilyAPIBase = "https://api.tavily.com/search"

// TavilyBackend queries the Tavily search API. Requires an API key.
type TavilyBackend struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (b *TavilyBackend) Name() string { return "tavily" }

// tavilyRequest is the Tavily search request body.
type tavilyRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// tavilyResponse is the Tavily search response body.
type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

// tavilyResult is a single Tavily search result.
type tavilyResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Search queries Tavily and returns up to max results.
func (b *TavilyBackend) Search(ctx context.Context, query string, max int) ([]types.Source, error) {
	payload, err := json.Marshal(tavilyRequest{
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  max,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIBase, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var tResp tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var sources []types.Source
	for _, r := range tResp.Results {
		if r.URL == "" {
			continue
		}
		sources = append(sources, types.Source{Title: r.Title, URL: r.URL, Snippet: r.Content})
		if len(sources) >= max {
			break
		}
	}
	return sources, nil
}
