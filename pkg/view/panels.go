package view

import (
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/narrative"
)

// ScenarioSource resolves scenario ids. *catalog.Store satisfies it.
type ScenarioSource interface {
	FindByID(id string) (domain.Scenario, bool)
}

// Panels is everything the details pane shows for a state.
// Lookups that miss leave the corresponding fields blank.
type Panels struct {
	Description  string            `json:"description"`
	ScenarioName string            `json:"scenario_name"`
	Summary      string            `json:"summary"`
	NodeHeader   *narrative.Header `json:"node_header,omitempty"`
	NodeText     string            `json:"node_text"`
	Lens         domain.Lens       `json:"lens"`
	LensTitle    string            `json:"lens_title"`
	LensText     string            `json:"lens_text"`
	Checklist    []string          `json:"checklist"`
	ActiveTab    domain.Tab        `json:"active_tab"`
}

// Render computes the panels of a state.
func Render(s *domain.ViewState, src ScenarioSource) Panels {
	if s == nil {
		return Panels{Checklist: []string{}}
	}

	p := Panels{
		Lens:      s.Lens,
		LensTitle: s.Lens.Title(),
		ActiveTab: s.ActiveTab,
		Checklist: []string{},
	}

	if selected, ok := src.FindByID(s.SelectedScenarioID); ok {
		p.Description = selected.Description
	}

	sc, ok := src.FindByID(s.ScenarioID)
	if !ok {
		return p
	}

	p.ScenarioName = sc.Name
	p.Summary = narrative.Summary(sc)
	p.LensText = narrative.Lens(sc, s.Lens)
	if len(sc.Checklist) > 0 {
		p.Checklist = append(p.Checklist, sc.Checklist...)
	}

	if node, ok := sc.Node(s.SelectedNodeID); ok {
		h := narrative.NodeHeader(node)
		p.NodeHeader = &h
		p.NodeText = s.NodeText
	}
	return p
}
