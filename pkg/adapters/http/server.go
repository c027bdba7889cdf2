package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/glint"
	"github.com/aretw0/glint/internal/logging"
	"github.com/aretw0/glint/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store defines the session operations exposed over HTTP.
type Store interface {
	Get(ctx context.Context, sid string) (domain.Record, error)
	Set(ctx context.Context, sid string, rec domain.Record) error
	Destroy(ctx context.Context, sid string) error
	Regenerate(ctx context.Context, sid string) (string, error)
	List(ctx context.Context) ([]string, error)
}

// DefaultMaxBodySize bounds PUT /sessions/{id} request bodies.
const DefaultMaxBodySize int64 = 1 << 20

// Server serves the session admin API.
type Server struct {
	Store       Store
	logger      *slog.Logger
	gatherer    prometheus.Gatherer
	maxBodySize int64
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer exposes the gatherer's metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithMaxBodySize bounds the size of session records accepted by PUT.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		s.maxBodySize = n
	}
}

// NewHandler creates a new HTTP handler for the store.
func NewHandler(store Store, opts ...Option) http.Handler {
	server := &Server{
		Store:       store,
		logger:      logging.NewNop(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.ListSessions)
		r.Get("/{id}", server.GetSession)
		r.Put("/{id}", server.PutSession)
		r.Delete("/{id}", server.DeleteSession)
		r.Post("/{id}/regenerate", server.RegenerateSession)
	})
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "glint-http",
		"version": strings.TrimSpace(glint.Version),
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrListUnsupported) {
			http.Error(w, err.Error(), http.StatusNotImplemented)
			return
		}
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("List failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "id")
	rec, err := s.Store.Get(r.Context(), sid)
	if err != nil {
		http.Error(w, fmt.Sprintf("Get error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Get failed", "session_id", sid, "error", err)
		return
	}
	if rec == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// PutSession handles the PUT /sessions/{id} request.
// The response is the record as persisted, TTL field included.
func (s *Server) PutSession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "id")

	var rec domain.Record
	body := http.MaxBytesReader(w, r.Body, s.maxBodySize)
	if err := json.NewDecoder(body).Decode(&rec); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutSession: Invalid request body", "error", err)
		return
	}
	if rec == nil {
		rec = domain.Record{}
	}

	if err := s.Store.Set(r.Context(), sid, rec); err != nil {
		http.Error(w, fmt.Sprintf("Set error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Set failed", "session_id", sid, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "id")
	if err := s.Store.Destroy(r.Context(), sid); err != nil {
		http.Error(w, fmt.Sprintf("Destroy error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Destroy failed", "session_id", sid, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegenerateSession handles the POST /sessions/{id}/regenerate request.
func (s *Server) RegenerateSession(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "id")
	newSID, err := s.Store.Regenerate(r.Context(), sid)
	if err != nil {
		http.Error(w, fmt.Sprintf("Regenerate error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Regenerate failed", "session_id", sid, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"id": newSID})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
