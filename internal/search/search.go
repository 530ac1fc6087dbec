// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a public web search engine and returns titled,
// URL-ed snippets. Each backend (DuckDuckGo, Tavily) implements the Backend
// interface per the Strategy pattern, so the pipeline and its tests can swap
// engines freely.
package search

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/deep-research/pkg/types"
)

const defaultMaxResults = 5

// Backend searches a single web search engine.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, max int) ([]types.Source, error)
}

// Client wraps a Backend with rate limiting. Successive searches within one
// research turn share the limiter, which keeps a turn's burst of discovery
// plus per-angle queries below the engine's tolerance.
type Client struct {
	backend Backend
	limiter *rate.Limiter
}

// New builds a Client for the configured backend. Unknown backends are an
// error; an empty Backend field selects DuckDuckGo, which needs no API key.
func New(cfg types.SearchConfig) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var backend Backend
	switch cfg.Backend {
	case types.BackendDuckDuckGo, "":
		backend = &DuckDuckGoBackend{Client: httpClient, UserAgent: cfg.UserAgent}
	case types.BackendTavily:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("tavily backend requires an API key")
		}
		backend = &TavilyBackend{Client: httpClient, APIKey: cfg.APIKey}
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Backend)
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &Client{backend: backend, limiter: limiter}, nil
}

// Wrap builds a Client around an existing Backend. Used by tests and by the
// server to inject counting or recording backends.
func Wrap(backend Backend) *Client {
	return &Client{backend: backend}
}

// Name returns the underlying backend identifier.
func (c *Client) Name() string { return c.backend.Name() }

// Search runs one query against the backend, waiting on the rate limiter
// first. Zero results is not an error at this layer; the pipeline decides
// what an empty result set means for its stage.
func (c *Client) Search(ctx context.Context, query string, max int) ([]types.Source, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if max <= 0 {
		max = defaultMaxResults
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	sources, err := c.backend.Search(ctx, query, max)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", c.backend.Name(), err)
	}
	return sources, nil
}
