// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch pulls readable text content from source pages so deep dives
// can extract findings from more than a search snippet. Fetch failures are
// soft: callers fall back to the snippet they already have.
package fetch

import (
	"fmt"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/pdiddy/deep-research/pkg/types"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 5000
)

// Fetcher extracts page text for a URL. The research pipeline consumes this
// interface so tests can stub page content.
type Fetcher interface {
	Page(url string) (string, error)
}

// ReadabilityFetcher extracts the main article text with go-readability.
type ReadabilityFetcher struct {
	cfg types.FetchConfig
}

// NewReadabilityFetcher applies defaults and returns a fetcher.
func NewReadabilityFetcher(cfg types.FetchConfig) *ReadabilityFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxContentBytes <= 0 {
		cfg.MaxContentBytes = defaultMaxBytes
	}
	return &ReadabilityFetcher{cfg: cfg}
}

// Page fetches url and returns its readable text content, capped at
// MaxContentBytes.
func (f *ReadabilityFetcher) Page(url string) (string, error) {
	article, err := readability.FromURL(url, f.cfg.Timeout)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	text := article.TextContent
	if len(text) > f.cfg.MaxContentBytes {
		text = text[:f.cfg.MaxContentBytes]
	}
	return text, nil
}
