// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTavilyParsesResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tvly-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req tavilyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Query != "NVDA earnings" {
			t.Errorf("query = %q", req.Query)
		}
		if req.MaxResults != 3 {
			t.Errorf("max_results = %d, want 3", req.MaxResults)
		}

		json.NewEncoder(w).Encode(tavilyResponse{
			Results: []tavilyResult{
				{Title: "Q3 results", URL: "https://ir.example.com/q3", Content: "Revenue up 20%."},
				{Title: "missing url is skipped", URL: "", Content: "x"},
				{Title: "Analyst view", URL: "https://news.example.com/a", Content: "Guidance raised."},
			},
		})
	}))
	defer ts.Close()

	old := tavilyAPIBase
	tavilyAPIBase = ts.URL
	defer func() { tavilyAPIBase = old }()

	b := &TavilyBackend{Client: ts.Client(), APIKey: "tvly-key"}
	sources, err := b.Search(context.Background(), "NVDA earnings", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2 (result without URL skipped)", len(sources))
	}
	if sources[0].Title != "Q3 results" || sources[0].Snippet != "Revenue up 20%." {
		t.Errorf("sources[0] = %+v", sources[0])
	}
}

func TestTavilyHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid key"}`))
	}))
	defer ts.Close()

	old := tavilyAPIBase
	tavilyAPIBase = ts.URL
	defer func() { tavilyAPIBase = old }()

	b := &TavilyBackend{Client: ts.Client(), APIKey: "bad"}
	if _, err := b.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error for HTTP 401")
	}
}
