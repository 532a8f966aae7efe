// Package server implements the Graphlens HTTP API.
//
// The API exposes one exploration session per client: the session owns the
// mutable visible set, and every mutation (expand, collapse, reset,
// show-all) runs as one synchronous transition under the session's lock, so
// there is exactly one caller path into the mutable state.
//
// Node ids appear in JSON bodies and query parameters rather than URL path
// segments - call-graph ids routinely contain dots and slashes.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphlens/pkg/explore"
	"github.com/matzehuels/graphlens/pkg/observability"
	"github.com/matzehuels/graphlens/pkg/pipeline"
	"github.com/matzehuels/graphlens/pkg/session"
)

// Server serves the exploration API for one loaded graph.
type Server struct {
	result   *pipeline.Result
	runner   *pipeline.Runner
	sessions session.Store
	logger   *log.Logger
	ttl      time.Duration

	mu   sync.Mutex
	live map[string]*liveSession
}

// liveSession pairs a stored session with its in-memory explorer.
// The mutex serializes all state transitions for this session.
type liveSession struct {
	mu          sync.Mutex
	explorer    *explore.Explorer
	resolver    *explore.Resolver
	interaction explore.Interaction
}

// Config configures the API server.
type Config struct {
	// Sessions is the session persistence backend.
	// Defaults to an in-memory store.
	Sessions session.Store

	// SessionTTL bounds session lifetime. Defaults to session.DefaultTTL.
	SessionTTL time.Duration

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// New creates a server for an already-built pipeline result.
func New(result *pipeline.Result, runner *pipeline.Runner, cfg Config) *Server {
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = session.DefaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		result:   result,
		runner:   runner,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
		ttl:      cfg.SessionTTL,
		live:     make(map[string]*liveSession),
	}
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)

		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Get("/graph", s.handleGraph)
			r.Get("/stats", s.handleStats)
			r.Get("/trace", s.handleTrace)
			r.Post("/expand", s.handleExpand)
			r.Post("/collapse", s.handleCollapse)
			r.Post("/reset", s.handleReset)
			r.Post("/showall", s.handleShowAll)
			r.Post("/select", s.handleSelect)
			r.Get("/export", s.handleExport)
		})

		r.Get("/nodes", s.handleNode)
		r.Get("/connections", s.handleConnections)
	})

	return r
}

// logRequests logs every request and feeds the HTTP observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

// acquire resolves a live session, rebuilding the explorer from the
// persisted snapshot after a restart. The returned session is locked; the
// caller must release it.
func (s *Server) acquire(ctx context.Context, sid string) (*liveSession, *session.Session, error) {
	stored, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, nil, err
	}
	if stored == nil {
		return nil, nil, session.ErrNotFound
	}

	s.mu.Lock()
	ls, ok := s.live[sid]
	if !ok {
		ls = &liveSession{
			explorer: explore.New(s.result.Model, s.result.Index, s.logger),
			resolver: explore.NewResolver(),
		}
		ls.explorer.Restore(stored.Visible)
		ls.interaction.Selected = stored.Selected
		s.live[sid] = ls
	}
	s.mu.Unlock()

	ls.mu.Lock()
	return ls, stored, nil
}

// persist writes the session snapshot back to the store.
func (s *Server) persist(ctx context.Context, stored *session.Session, ls *liveSession) {
	stored.Visible = ls.explorer.VisibleIDs()
	stored.Selected = ls.interaction.Selected
	stored.Touch(s.ttl)
	if err := s.sessions.Set(ctx, stored); err != nil {
		s.logger.Warn("persist session failed", "session", stored.ID, "err", err)
	}
}
