package http

import (
	"net/http"

	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/narrative"
	"github.com/go-chi/chi/v5"
)

// ScenarioInfo is the selector entry of a scenario.
type ScenarioInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
}

// Narrative is a generated text for a scenario.
type Narrative struct {
	ScenarioID string `json:"scenario_id"`
	Kind       string `json:"kind"`
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
}

// NodeInsight is the explanation of one node.
type NodeInsight struct {
	ScenarioID string           `json:"scenario_id"`
	Header     narrative.Header `json:"header"`
	Neighbors  narrative.Tally  `json:"neighbors"`
	Text       string           `json:"text"`
}

// Checklist is the investigation checklist of a scenario.
type Checklist struct {
	ScenarioID string   `json:"scenario_id"`
	Items      []string `json:"items"`
	Text       string   `json:"text"`
}

// ListScenarios handles GET /api/scenarios.
func (s *Server) ListScenarios(w http.ResponseWriter, r *http.Request) {
	all := s.Controller.Catalog().All()
	resp := make([]ScenarioInfo, 0, len(all))
	for _, sc := range all {
		resp = append(resp, ScenarioInfo{
			ID:          sc.ID,
			Name:        sc.Name,
			Description: sc.Description,
			Nodes:       len(sc.Nodes),
			Edges:       len(sc.Edges),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) scenario(w http.ResponseWriter, r *http.Request) (domain.Scenario, bool) {
	sc, err := s.Controller.Catalog().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return domain.Scenario{}, false
	}
	return sc, true
}

// GetScenario handles GET /api/scenarios/{id}.
func (s *Server) GetScenario(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}

// GetGraph handles GET /api/scenarios/{id}/graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, display.Build(sc))
}

// GetSummary handles GET /api/scenarios/{id}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	s.metrics.RecordNarrative("summary")
	s.writeJSON(w, http.StatusOK, Narrative{
		ScenarioID: sc.ID,
		Kind:       "summary",
		Title:      sc.Name,
		Text:       narrative.Summary(sc),
	})
}

// GetLens handles GET /api/scenarios/{id}/lens/{lens}.
func (s *Server) GetLens(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	lens := domain.Lens(chi.URLParam(r, "lens"))
	s.metrics.RecordNarrative("lens")
	s.writeJSON(w, http.StatusOK, Narrative{
		ScenarioID: sc.ID,
		Kind:       "lens",
		Title:      lens.Title(),
		Text:       narrative.Lens(sc, lens),
	})
}

// GetChecklist handles GET /api/scenarios/{id}/checklist.
func (s *Server) GetChecklist(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	items := sc.Checklist
	if items == nil {
		items = []string{}
	}
	s.metrics.RecordNarrative("checklist")
	s.writeJSON(w, http.StatusOK, Checklist{
		ScenarioID: sc.ID,
		Items:      items,
		Text:       narrative.Checklist(items),
	})
}

// ExplainNode handles GET /api/scenarios/{id}/nodes/{nodeID}.
func (s *Server) ExplainNode(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	node, err := s.Controller.Catalog().Node(sc.ID, chi.URLParam(r, "nodeID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g := display.Build(sc)
	s.metrics.RecordNarrative("node")
	s.writeJSON(w, http.StatusOK, NodeInsight{
		ScenarioID: sc.ID,
		Header:     narrative.NodeHeader(node),
		Neighbors:  narrative.Neighbors(node, g),
		Text:       narrative.ExplainNode(node, g),
	})
}
