// Package server hosts the action registry over HTTP for assistant runtimes
// that dispatch remotely instead of linking the module in.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/assistkit/gh-skill/internal/action"
	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/github"
)

// Server exposes the registry at /v1/actions with health and metrics
// endpoints alongside.
type Server struct {
	registry *action.Registry
	logger   *log.Logger
	metrics  *Metrics
}

// New builds a server around an action registry.
func New(registry *action.Registry, logger *log.Logger, metrics *Metrics) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Server{registry: registry, logger: logger, metrics: metrics}
}

// invokeRequest is the POST body for an action invocation. Credentials are
// per-request so one server can act for several identities.
type invokeRequest struct {
	Credentials credentials.Credentials `json:"credentials"`
	Params      json.RawMessage         `json:"params"`
}

type invokeResponse struct {
	Action string `json:"action"`
	Result any    `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.invocationID)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Route("/v1/actions", func(r chi.Router) {
		r.Get("/", s.handleManifest)
		r.Post("/{name}", s.handleInvoke)
	})
	return r
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// invocationID tags every request with a unique ID for log correlation.
func (s *Server) invocationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Invocation-Id", id)
		ctx := log.WithContext(r.Context(), s.logger.With("invocation", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleManifest serves the action definitions so hosts can discover names,
// kinds, and parameter schemas.
func (s *Server) handleManifest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"actions": s.registry.Definitions(),
	})
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	logger := log.FromContext(r.Context()).With("action", name)

	var req invokeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := s.registry.Invoke(r.Context(), name, req.Credentials, req.Params)
	elapsed := time.Since(start)

	if err != nil {
		status := statusFor(err)
		s.metrics.Observe(name, outcomeFor(status), elapsed)
		logger.Error("action failed", "status", status, "elapsed", elapsed, "err", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	s.metrics.Observe(name, "ok", elapsed)
	logger.Info("action completed", "elapsed", elapsed)
	writeJSON(w, http.StatusOK, invokeResponse{Action: name, Result: result})
}

// decodeBody decodes the request body, treating an absent or empty body as
// an invocation with no credentials and no params.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// statusFor maps the adapter error taxonomy onto HTTP statuses: unknown
// action 404, parameter validation 400, upstream rejection or transport
// failure 502, anything else 500.
func statusFor(err error) int {
	var unknown *action.UnknownActionError
	var invalid *action.ValidationError
	var upstream *github.UpstreamError
	var transport *url.Error
	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &upstream), errors.As(err, &transport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func outcomeFor(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusNotFound:
		return "rejected"
	case http.StatusBadGateway:
		return "upstream_error"
	default:
		return "error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
