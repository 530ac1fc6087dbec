// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// duckduckgoAPIBase is the DuckDuckGo HTML endpoint. Declared as a var so
// tests can substitute an httptest server.
var duckduckgoAPIBase = "https://html.duckduckgo.com/html/"

// DuckDuckGoBackend queries the DuckDuckGo HTML endpoint. No API key is
// required, which makes it the default backend.
type DuckDuckGoBackend struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *DuckDuckGoBackend) Name() string { return "duckduckgo" }

// resultPattern matches one result block: the result link anchor followed by
// the snippet anchor. The HTML endpoint is stable enough for a demo client;
// structural drift surfaces as zero results rather than a parse error.
var resultPattern = regexp.MustCompile(
	`(?s)<a[^>]+class="result__a"[^>]+href="([^"]+)"[^>]*>(.*?)</a>.*?class="result__snippet"[^>]*>(.*?)</a>`)

// tagPattern strips residual markup (DuckDuckGo bolds query terms with <b>).
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Search queries DuckDuckGo and returns up to max results.
func (b *DuckDuckGoBackend) Search(ctx context.Context, query string, max int) ([]types.Source, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, duckduckgoAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)

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
		return nil, fmt.Errorf("duckduckgo returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var sources []types.Source
	for _, m := range resultPattern.FindAllStringSubmatch(string(body), -1) {
		u := resolveRedirect(html.UnescapeString(m[1]))
		title := cleanText(m[2])
		snippet := cleanText(m[3])
		if u == "" || title == "" {
			continue
		}
		sources = append(sources, types.Source{Title: title, URL: u, Snippet: snippet})
		if len(sources) >= max {
			break
		}
	}
	return sources, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" {
		// Scheme-relative redirect link with no uddg param; nothing usable.
		if strings.HasPrefix(href, "//") {
			return "https:" + href
		}
		return ""
	}
	return href
}

// cleanText strips markup and decodes HTML entities from a result fragment.
func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
