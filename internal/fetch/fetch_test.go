// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/deep-research/pkg/types"
)

func articleServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><head><title>Test Article</title></head>
<body><article><h1>Test Article</h1>%s</article></body></html>`, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestPageExtractsArticleText(t *testing.T) {
	var paras strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&paras, "<p>Data center revenue grew sharply in the quarter, paragraph %d.</p>", i)
	}
	ts := articleServer(t, paras.String())

	f := NewReadabilityFetcher(types.FetchConfig{})
	text, err := f.Page(ts.URL)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(text, "Data center revenue grew sharply") {
		t.Errorf("extracted text missing article content: %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Error("extracted text should not contain markup")
	}
}

func TestPageCapsContentLength(t *testing.T) {
	var paras strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&paras, "<p>A long filler paragraph about quarterly results, number %d.</p>", i)
	}
	ts := articleServer(t, paras.String())

	f := NewReadabilityFetcher(types.FetchConfig{MaxContentBytes: 200})
	text, err := f.Page(ts.URL)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(text) > 200 {
		t.Errorf("len(text) = %d, want <= 200", len(text))
	}
}

func TestPageFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	f := NewReadabilityFetcher(types.FetchConfig{})
	if _, err := f.Page(url); err == nil {
		t.Fatal("expected error for unreachable page")
	}
}
