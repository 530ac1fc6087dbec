// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

const ddgFixture = `<html><body>
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.nvidia.com%2F&amp;rut=abc">NVIDIA <b>Corporation</b></a>
  </h2>
  <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.nvidia.com%2F">World leader in <b>AI</b> computing.</a>
</div>
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="https://example.com/direct">Direct Link Result</a>
  </h2>
  <a class="result__snippet" href="https://example.com/direct">A result with a plain href.</a>
</div>
</body></html>`

func TestDuckDuckGoParsesResults(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(ddgFixture))
	}))
	defer ts.Close()

	old := duckduckgoAPIBase
	duckduckgoAPIBase = ts.URL
	defer func() { duckduckgoAPIBase = old }()

	b := &DuckDuckGoBackend{Client: ts.Client(), UserAgent: "test/0.1"}
	sources, err := b.Search(context.Background(), "NVDA semiconductors", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "NVDA semiconductors" {
		t.Errorf("query = %q, want %q", gotQuery, "NVDA semiconductors")
	}
	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}

	if sources[0].Title != "NVIDIA Corporation" {
		t.Errorf("title = %q, markup should be stripped", sources[0].Title)
	}
	if sources[0].URL != "https://www.nvidia.com/" {
		t.Errorf("url = %q, redirect should be unwrapped", sources[0].URL)
	}
	if sources[0].Snippet != "World leader in AI computing." {
		t.Errorf("snippet = %q", sources[0].Snippet)
	}
	if sources[1].URL != "https://example.com/direct" {
		t.Errorf("direct url = %q", sources[1].URL)
	}
}

func TestDuckDuckGoRespectsMax(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(ddgFixture))
	}))
	defer ts.Close()

	old := duckduckgoAPIBase
	duckduckgoAPIBase = ts.URL
	defer func() { duckduckgoAPIBase = old }()

	b := &DuckDuckGoBackend{Client: ts.Client()}
	sources, err := b.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sources) != 1 {
		t.Errorf("len(sources) = %d, want 1", len(sources))
	}
}

func TestDuckDuckGoHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	old := duckduckgoAPIBase
	duckduckgoAPIBase = ts.URL
	defer func() { duckduckgoAPIBase = old }()

	b := &DuckDuckGoBackend{Client: ts.Client()}
	if _, err := b.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error for HTTP 503")
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"uddg redirect", "//duckduckgo.com/l/?uddg=" + url.QueryEscape("https://example.com/page?a=1"), "https://example.com/page?a=1"},
		{"direct https", "https://example.com/x", "https://example.com/x"},
		{"scheme-relative non-redirect", "//example.com/x", "https://example.com/x"},
		{"garbage", "%%%", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRedirect(tt.href); got != tt.want {
				t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
