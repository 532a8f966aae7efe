package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/graphlens/pkg/errors"
	"github.com/matzehuels/graphlens/pkg/explore"
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/observability"
	"github.com/matzehuels/graphlens/pkg/pipeline"
	"github.com/matzehuels/graphlens/pkg/session"
)

// nodeRequest is the body of mutation and selection endpoints.
type nodeRequest struct {
	Node string `json:"node"`
}

// graphResponse is the common shape of endpoints that return the visible
// subgraph. Noop is set when a rejected operation left the state unchanged.
type graphResponse struct {
	Graph  graph.Graph              `json:"graph"`
	Added  []string                 `json:"added,omitempty"`
	States map[string]explore.State `json:"states,omitempty"`
	Stats  explore.Stats            `json:"stats"`
	Noop   bool                     `json:"noop,omitempty"`
}

type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code apperrors.Code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateSession starts a fresh exploration at the entrypoint set.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	e := explore.New(s.result.Model, s.result.Index, s.logger)
	sess := session.New(s.result.GraphHash, e.VisibleIDs(), s.ttl)

	if err := s.sessions.Set(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeInternal, "store session")
		return
	}

	s.mu.Lock()
	s.live[sess.ID] = &liveSession{explorer: e, resolver: explore.NewResolver()}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, struct {
		ID    string        `json:"id"`
		Graph graph.Graph   `json:"graph"`
		Stats explore.Stats `json:"stats"`
	}{sess.ID, e.VisibleGraph(), e.Stats()})
}

// withSession resolves the session from the URL, runs fn under the session
// lock, and persists the snapshot afterwards.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(ls *liveSession)) {
	sid := chi.URLParam(r, "sid")

	ls, stored, err := s.acquire(r.Context(), sid)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusNotFound, apperrors.ErrCodeSessionNotFound, "unknown session: "+sid)
		case errors.Is(err, session.ErrExpired):
			writeError(w, http.StatusGone, apperrors.ErrCodeSessionExpired, "session expired: "+sid)
		default:
			writeError(w, http.StatusInternalServerError, apperrors.ErrCodeInternal, err.Error())
		}
		return
	}
	defer ls.mu.Unlock()

	fn(ls)
	s.persist(r.Context(), stored, ls)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ls *liveSession) {
		writeJSON(w, http.StatusOK, graphResponse{
			Graph:  ls.explorer.VisibleGraph(),
			States: ls.resolver.Current(),
			Stats:  ls.explorer.Stats(),
		})
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ls *liveSession) {
		writeJSON(w, http.StatusOK, ls.explorer.Stats())
	})
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Node == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "body must carry a node id")
		return
	}

	s.withSession(w, r, func(ls *liveSession) {
		// Rejected operations are no-ops, not errors: report them with a
		// flag so speculative callers can tell nothing happened.
		noop := !ls.explorer.IsVisible(req.Node)
		added, sub := ls.explorer.Expand(req.Node)
		if !noop {
			observability.Explorer().OnExpand(r.Context(), req.Node, len(added), ls.explorer.Stats().Visible)
		}
		writeJSON(w, http.StatusOK, graphResponse{
			Graph: sub,
			Added: added,
			Stats: ls.explorer.Stats(),
			Noop:  noop,
		})
	})
}

func (s *Server) handleCollapse(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Node == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "body must carry a node id")
		return
	}

	s.withSession(w, r, func(ls *liveSession) {
		noop := s.result.Model.IsEntrypoint(req.Node) || !ls.explorer.IsVisible(req.Node)
		before := ls.explorer.Stats().Visible
		sub := ls.explorer.Collapse(req.Node)
		if !noop {
			observability.Explorer().OnCollapse(r.Context(), req.Node, before-ls.explorer.Stats().Visible, ls.explorer.Stats().Visible)
		}
		writeJSON(w, http.StatusOK, graphResponse{
			Graph: sub,
			Stats: ls.explorer.Stats(),
			Noop:  noop,
		})
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ls *liveSession) {
		sub := ls.explorer.Reset()
		ls.interaction = explore.Interaction{}
		states := ls.resolver.Apply(ls.explorer, ls.interaction)
		writeJSON(w, http.StatusOK, graphResponse{Graph: sub, States: states, Stats: ls.explorer.Stats()})
	})
}

func (s *Server) handleShowAll(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ls *liveSession) {
		sub := ls.explorer.ShowAll()
		states := ls.resolver.Apply(ls.explorer, ls.interaction)
		writeJSON(w, http.StatusOK, graphResponse{Graph: sub, States: states, Stats: ls.explorer.Stats()})
	})
}

// handleTrace traces the ?node= ancestry back to the entrypoints and
// activates the trace in the session's interaction context.
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("node")
	if id == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "query must carry a node id")
		return
	}
	if !s.result.Model.Has(id) {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeNodeNotFound, "unknown node: "+id)
		return
	}

	s.withSession(w, r, func(ls *liveSession) {
		start := time.Now()
		path := ls.explorer.TraceToEntrypoints(id)
		observability.Explorer().OnTrace(r.Context(), id, len(path), time.Since(start))

		traceSet := make(map[string]struct{}, len(path))
		for _, p := range path {
			traceSet[p] = struct{}{}
		}
		ls.interaction.Selected = id
		ls.interaction.Trace = traceSet
		states := ls.resolver.Apply(ls.explorer, ls.interaction)

		writeJSON(w, http.StatusOK, struct {
			Path   []string                 `json:"path"`
			States map[string]explore.State `json:"states"`
		}{path, states})
	})
}

// handleSelect sets or clears the selection. An empty node id clears the
// whole interaction context, resetting every state to default.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "invalid body")
		return
	}
	if req.Node != "" && !s.result.Model.Has(req.Node) {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeNodeNotFound, "unknown node: "+req.Node)
		return
	}

	s.withSession(w, r, func(ls *liveSession) {
		if req.Node == "" {
			ls.interaction = explore.Interaction{}
		} else {
			ls.interaction.Selected = req.Node
			ls.interaction.Trace = nil
		}
		states := ls.resolver.Apply(ls.explorer, ls.interaction)
		writeJSON(w, http.StatusOK, struct {
			States map[string]explore.State `json:"states"`
		}{states})
	})
}

// handleExport renders the visible subgraph as dot, svg, or json.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if !pipeline.ValidFormats[format] {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidFormat, "unsupported format: "+format)
		return
	}

	s.withSession(w, r, func(ls *liveSession) {
		states := ls.resolver.Current()
		artifact, _, err := s.runner.Export(r.Context(), &pipeline.Result{
			Model:     s.result.Model,
			Index:     s.result.Index,
			Explorer:  ls.explorer,
			GraphHash: s.result.GraphHash,
		}, format, states)
		if err != nil {
			writeError(w, http.StatusInternalServerError, apperrors.ErrCodeInternal, err.Error())
			return
		}

		switch format {
		case pipeline.FormatSVG:
			w.Header().Set("Content-Type", "image/svg+xml")
		case pipeline.FormatDOT:
			w.Header().Set("Content-Type", "text/vnd.graphviz")
		default:
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifact)
	})
}

// handleNode returns the raw node record for the inspector panel.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	n, ok := s.result.Model.Node(id)
	if !ok {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeNodeNotFound, "unknown node: "+id)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// handleConnections returns the full neighbor lists for the inspector panel.
func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if !s.result.Model.Has(id) {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeNodeNotFound, "unknown node: "+id)
		return
	}
	writeJSON(w, http.StatusOK, s.result.Index.ConnectionsOf(id))
}
