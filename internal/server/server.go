// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the research pipeline over HTTP: a JSON research
// endpoint, a websocket progress feed, and an embedded single-page chat
// widget. Each request runs one full pipeline turn; the server holds no
// conversation state between requests.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/deep-research/internal/archive"
	"github.com/pdiddy/deep-research/internal/render"
	"github.com/pdiddy/deep-research/internal/research"
	"github.com/pdiddy/deep-research/pkg/types"
)

//go:embed static
var staticFiles embed.FS

// Runner abstracts the research pipeline so handler tests can substitute a
// stub. *research.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, query string, progress func(research.Event)) (*types.Report, types.Classification, error)
}

// Server routes HTTP traffic to the pipeline. The archive store may be nil;
// finished reports are then not persisted.
type Server struct {
	cfg    types.ServerConfig
	runner Runner
	store  *archive.Store
	hub    *Hub
	log    *logrus.Logger
}

// New builds a Server around runner. store may be nil.
func New(cfg types.ServerConfig, runner Runner, store *archive.Store, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		cfg:    cfg,
		runner: runner,
		store:  store,
		hub:    NewHub(log),
		log:    log,
	}
}

// Routes returns the handler tree: the chat widget at /, the research API,
// a health probe, and the websocket progress feed.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/api/research", s.handleResearch)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/ws", s.hub.Handle)
	return mux
}

// ListenAndServe blocks serving on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.cfg.Addr).Info("starting server")
	return http.ListenAndServe(s.cfg.Addr, s.Routes())
}

type researchRequest struct {
	Query string `json:"query"`
}

type researchResponse struct {
	Success  bool          `json:"success"`
	Markdown string        `json:"markdown,omitempty"`
	Report   *types.Report `json:"report,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// handleResearch runs one research turn for POST {"query": ...}. Progress
// events stream out over the websocket feed while the request blocks; the
// final response carries the rendered Markdown and the structured report.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, researchResponse{Error: "method not allowed"})
		return
	}

	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, researchResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, researchResponse{Error: "query field is required"})
		return
	}

	s.log.WithField("query", req.Query).Info("research request")

	report, classification, err := s.runner.Run(r.Context(), req.Query, func(e research.Event) {
		s.hub.Broadcast(e)
	})
	if err != nil {
		s.log.WithError(err).Error("research turn failed")
		writeJSON(w, http.StatusInternalServerError, researchResponse{Error: err.Error()})
		return
	}

	if s.store != nil {
		if _, err := s.store.Save(r.Context(), req.Query, classification, report); err != nil {
			// Archiving is best effort; the report still goes back to the client.
			s.log.WithError(err).Warn("failed to archive report")
		}
	}

	writeJSON(w, http.StatusOK, researchResponse{
		Success:  true,
		Markdown: render.Markdown(report),
		Report:   report,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
