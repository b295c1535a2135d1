// Package server exposes the importer over HTTP: board text in, an import
// tally out, plus health and listing endpoints.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avolkov/footpred/internal/importer"
	"github.com/avolkov/footpred/internal/pkg/storage"
)

// maxListedIssues caps errors and warnings echoed back per response so a
// pathological paste cannot balloon the payload.
const maxListedIssues = 50

type Server struct {
	importer *importer.Importer
	store    storage.Store
}

func New(imp *importer.Importer, store storage.Store) *Server {
	return &Server{importer: imp, store: store}
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string, readHeaderTimeout time.Duration) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ping", handlePing)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/import", s.handleImport)
	mux.HandleFunc("/matches", s.handleMatches)

	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 10 * time.Second
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Import server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// handlePing handles /ping endpoint
func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

// handleHealth handles /health endpoint
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

type importResponse struct {
	Created  int      `json:"created"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Message  string   `json:"message"`
}

// handleImport accepts board text either as the raw request body or as the
// "text" form field and runs a best-effort import.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text := r.FormValue("text")
	if text == "" {
		body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		text = string(body)
	}
	if text == "" {
		http.Error(w, "empty import text", http.StatusBadRequest)
		return
	}

	res := s.importer.Import(r.Context(), text)

	resp := importResponse{
		Created:  res.Created,
		Errors:   truncateIssues(res.Errors),
		Warnings: truncateIssues(res.Warnings),
	}
	if res.Created > 0 {
		resp.Message = "import completed"
	} else {
		resp.Message = "no new matches imported"
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleMatches returns recently imported matches, newest kickoff first.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	matches, err := s.store.ListMatches(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list matches", "error", err)
		http.Error(w, "failed to list matches", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(matches),
		"matches": matches,
	})
}

func truncateIssues(issues []string) []string {
	if issues == nil {
		return []string{}
	}
	if len(issues) > maxListedIssues {
		return issues[:maxListedIssues]
	}
	return issues
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
