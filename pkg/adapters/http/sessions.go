package http

import (
	"fmt"
	"net/http"

	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/view"
	"github.com/go-chi/chi/v5"
)

type startRequest struct {
	SessionID string `json:"session_id"`
}

type scenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

type lensRequest struct {
	Lens domain.Lens `json:"lens"`
}

type clickRequest struct {
	NodeID string `json:"node_id"`
}

type tabRequest struct {
	Tab domain.Tab `json:"tab"`
}

type copyRequest struct {
	Target view.Target `json:"target"`
}

// readBody decodes the request body, answering 400 on malformed JSON.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decode(r, v); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, snap *view.Snapshot, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// StartSession handles POST /api/sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body startRequest
	if !s.readBody(w, r, &body) {
		return
	}
	snap, err := s.Controller.Start(r.Context(), body.SessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /api/sessions/{sid}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Controller.Get(r.Context(), chi.URLParam(r, "sid"))
	s.respond(w, r, snap, err)
}

// EndSession handles DELETE /api/sessions/{sid}.
func (s *Server) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Controller.End(r.Context(), chi.URLParam(r, "sid")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectScenario handles POST /api/sessions/{sid}/select.
func (s *Server) SelectScenario(w http.ResponseWriter, r *http.Request) {
	var body scenarioRequest
	if !s.readBody(w, r, &body) {
		return
	}
	snap, err := s.Controller.Select(r.Context(), chi.URLParam(r, "sid"), body.ScenarioID)
	s.respond(w, r, snap, err)
}

// LoadScenario handles POST /api/sessions/{sid}/load.
func (s *Server) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var body scenarioRequest
	if !s.readBody(w, r, &body) {
		return
	}
	snap, err := s.Controller.Load(r.Context(), chi.URLParam(r, "sid"), body.ScenarioID)
	s.respond(w, r, snap, err)
}

// SetLens handles POST /api/sessions/{sid}/lens.
func (s *Server) SetLens(w http.ResponseWriter, r *http.Request) {
	var body lensRequest
	if !s.readBody(w, r, &body) {
		return
	}
	snap, err := s.Controller.SetLens(r.Context(), chi.URLParam(r, "sid"), body.Lens)
	s.respond(w, r, snap, err)
}

// ClickNode handles POST /api/sessions/{sid}/click.
func (s *Server) ClickNode(w http.ResponseWriter, r *http.Request) {
	var body clickRequest
	if !s.readBody(w, r, &body) {
		return
	}
	snap, err := s.Controller.Click(r.Context(), chi.URLParam(r, "sid"), body.NodeID)
	s.respond(w, r, snap, err)
}

// SwitchTab handles POST /api/sessions/{sid}/tab.
func (s *Server) SwitchTab(w http.ResponseWriter, r *http.Request) {
	var body tabRequest
	if !s.readBody(w, r, &body) {
		return
	}
	snap, err := s.Controller.SwitchTab(r.Context(), chi.URLParam(r, "sid"), body.Tab)
	s.respond(w, r, snap, err)
}

// Copy handles POST /api/sessions/{sid}/copy. The browser writes the
// returned text to its own clipboard.
func (s *Server) Copy(w http.ResponseWriter, r *http.Request) {
	var body copyRequest
	if !s.readBody(w, r, &body) {
		return
	}
	res, err := s.Controller.Copy(r.Context(), chi.URLParam(r, "sid"), body.Target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}
