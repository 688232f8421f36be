package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/patternbook/catalog"
)

// Server serves catalog queries over HTTP.
type Server struct {
	provider *Provider
	metrics  *Metrics
	logger   *slog.Logger
	httpSrv  *http.Server
}

// entryResponse is the JSON shape of a catalog entry.
type entryResponse struct {
	ID       string           `json:"id"`
	Category string           `json:"category"`
	Title    string           `json:"title"`
	Summary  string           `json:"summary"`
	Related  []string         `json:"related,omitempty"`
	Example  *exampleResponse `json:"example,omitempty"`
}

type exampleResponse struct {
	Language string `json:"language"`
	Before   string `json:"before,omitempty"`
	After    string `json:"after,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a server bound to addr serving the provider's catalog.
func New(addr string, provider *Provider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		provider: provider,
		metrics:  NewMetrics(),
		logger:   logger,
	}
	s.refreshCatalogMetrics()

	mux := http.NewServeMux()
	mux.Handle("GET /api/entries", s.instrument("/api/entries", s.handleEntries))
	mux.Handle("GET /api/entries/{id}", s.instrument("/api/entries/{id}", s.handleEntry))
	mux.Handle("GET /api/entries/{id}/related", s.instrument("/api/entries/{id}/related", s.handleRelated))
	mux.Handle("GET /api/search", s.instrument("/api/search", s.handleSearch))
	mux.Handle("GET /healthz", s.instrument("/healthz", s.handleHealthz))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", slog.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// SwapCatalog installs a new catalog snapshot and updates the size gauge.
func (s *Server) SwapCatalog(c *catalog.Catalog) {
	s.provider.Swap(c)
	s.refreshCatalogMetrics()
}

func (s *Server) refreshCatalogMetrics() {
	c := s.provider.Catalog()
	if c == nil || !c.Ready() {
		return
	}

	patterns := 0
	if seq, err := c.ByCategory(catalog.CategoryPattern); err == nil {
		for range seq {
			patterns++
		}
	}
	smells := 0
	if seq, err := c.ByCategory(catalog.CategorySmell); err == nil {
		for range seq {
			smells++
		}
	}
	s.metrics.SetCatalogSize(patterns, smells)
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request counting and latency tracking.
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		h(rec, r)

		s.metrics.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	c := s.provider.Catalog()

	var (
		seq iter.Seq[*catalog.Entry]
		err error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		cat := catalog.Category(category)
		if !cat.Valid() {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", category))
			return
		}
		seq, err = c.ByCategory(cat)
	} else {
		seq, err = c.All()
	}
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}

	s.writeEntryList(w, seq)
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.provider.Catalog().FindByID(r.PathValue("id"))
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	related, err := s.provider.Catalog().Related(r.PathValue("id"))
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}

	out := make([]entryResponse, 0, len(related))
	for _, entry := range related {
		out = append(out, toEntryResponse(entry))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	seq, err := s.provider.Catalog().Search(q)
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}
	s.writeEntryList(w, seq)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	c := s.provider.Catalog()
	if c == nil || !c.Ready() {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"entries": c.Len(),
	})
}

func (s *Server) writeEntryList(w http.ResponseWriter, seq iter.Seq[*catalog.Entry]) {
	out := make([]entryResponse, 0)
	for entry := range seq {
		out = append(out, toEntryResponse(entry))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrCatalogLoading):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("request failed", slog.String("error", err.Error()))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", slog.String("error", err.Error()))
	}
}

func toEntryResponse(e *catalog.Entry) entryResponse {
	resp := entryResponse{
		ID:       e.ID,
		Category: string(e.Category),
		Title:    e.Title,
		Summary:  e.Summary,
		Related:  e.Related,
	}
	if !e.Example.Empty() {
		resp.Example = &exampleResponse{
			Language: e.Example.Language,
			Before:   e.Example.Before,
			After:    e.Example.After,
		}
	}
	return resp
}
