// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai calls the hosted completion endpoint. The pipeline treats the
// model as an opaque capability: one method that takes a prompt and returns
// text, which callers decode into their stage's typed record.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/deep-research/internal/httputil"
	"github.com/pdiddy/deep-research/pkg/types"
)

// apiURL is the Claude Messages API endpoint. Package-level var for test substitution.
var apiURL = "https://api.anthropic.com/v1/messages"

const (
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 4096
)

// Client calls the Claude Messages API.
type Client struct {
	cfg        types.AIConfig
	httpClient *http.Client
}

// NewClient builds a Client from config. The API key must be present; its
// absence is a startup error, not a per-call one.
func NewClient(cfg types.AIConfig, httpClient *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is not configured")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("AI model is not configured")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// messagesRequest is the request body for the Claude Messages API.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

// message is a single message in the API conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the response body from the Claude Messages API.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// contentBlock is a content block in the API response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends one system prompt + user message and returns the first text
// block of the response. Rate-limit responses are retried via
// httputil.DoWithRetry; every other failure propagates to the caller.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		System:    system,
		Messages: []message{
			{Role: "user", Content: user},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, string(body))
	}

	var mResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mResp); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}

	for _, block := range mResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("no text content in completion response")
}
