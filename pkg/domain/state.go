package domain

import "time"

// Tab identifies the active panel of the details pane.
type Tab string

const (
	TabSummary      Tab = "tabSummary"
	TabNode         Tab = "tabNode"
	TabScenarioLens Tab = "tabScenarioLens"
)

// Known reports whether the tab exists in the UI.
func (t Tab) Known() bool {
	switch t {
	case TabSummary, TabNode, TabScenarioLens:
		return true
	default:
		return false
	}
}

// ViewState is the explicit application state of one viewing session.
// It is replaced wholesale by the update functions in package view; nothing
// mutates it in place.
type ViewState struct {
	SessionID string `json:"session_id"`

	// SelectedScenarioID is the scenario picked in the selector. It only
	// drives the description text until the scenario is loaded.
	SelectedScenarioID string `json:"selected_scenario_id,omitempty"`

	// ScenarioID is the scenario currently rendered as a graph.
	ScenarioID string `json:"scenario_id,omitempty"`

	Lens      Lens `json:"lens"`
	ActiveTab Tab  `json:"active_tab"`

	// SelectedNodeID and NodeText hold the last clicked node and its
	// explanation, kept for the copy action.
	SelectedNodeID string `json:"selected_node_id,omitempty"`
	NodeText       string `json:"node_text,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries the encrypted form of the other fields when the
	// session store encrypts at rest. It is never set on a live state.
	Sealed string `json:"sealed,omitempty"`
}

// NewViewState creates a clean state with the default lens and summary tab.
func NewViewState(sessionID string) *ViewState {
	return &ViewState{
		SessionID: sessionID,
		Lens:      DefaultLens,
		ActiveTab: TabSummary,
	}
}

// Snapshot returns a copy of the state.
func (s *ViewState) Snapshot() *ViewState {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
