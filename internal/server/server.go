// Package server exposes the console over HTTP: status and notification
// endpoints plus a websocket feed of live notification events.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/deckworks/agentdeck/internal/console"
	"github.com/deckworks/agentdeck/internal/core/config"
	"github.com/deckworks/agentdeck/internal/core/logging"
	"github.com/deckworks/agentdeck/internal/core/notify"
)

// Server serves the console API.
type Server struct {
	listen     string
	center     *notify.Center
	reporter   *console.Reporter
	status     *console.StatusService
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
	log        zerolog.Logger
}

// New wires a server over the given components. The hub is subscribed to the
// center so every lifecycle event reaches connected websocket clients.
func New(cfg config.ServerConfig, center *notify.Center, reporter *console.Reporter, status *console.StatusService) *Server {
	s := &Server{
		listen:   cfg.Listen,
		center:   center,
		reporter: reporter,
		status:   status,
		hub:      NewHub(),
		log:      logging.Component("server"),
	}

	center.Subscribe(s.hub.Broadcast)
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.handleListActive)
			r.Post("/", s.handleCreate)
			r.Delete("/{id}", s.handleDismiss)
			r.Get("/history", s.handleHistory)
		})
	})

	r.Get("/ws/notifications", s.hub.Handle)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Start begins listening on the configured address and blocks until the
// server is shut down.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info().Str("listen", s.listen).Msg("serving console API")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", s.listen, err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.status.Report())
}

func (s *Server) handleListActive(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.center.Active())
}

type createRequest struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	DurationMS *int   `json:"duration_ms,omitempty"`
}

type createResponse struct {
	ID    int64 `json:"id"`
	Muted bool  `json:"muted,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var opts []notify.ShowOption
	if req.DurationMS != nil {
		opts = append(opts, notify.WithDuration(time.Duration(*req.DurationMS)*time.Millisecond))
	}

	id := s.reporter.Show(notify.Kind(req.Kind), req.Title, req.Body, opts...)
	if id == 0 {
		// Title matched a mute pattern; nothing reached the center.
		s.writeJSON(w, http.StatusAccepted, createResponse{Muted: true})
		return
	}
	s.writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	// Hide is idempotent; unknown ids are a benign no-op.
	s.center.Hide(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.center.History(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list history")
		s.writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	if history == nil {
		history = []notify.Notification{}
	}
	s.writeJSON(w, http.StatusOK, history)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]string{"error": msg})
}
