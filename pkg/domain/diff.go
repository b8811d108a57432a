package domain

// StateDiff represents the changes between two view states.
// It is serialized to JSON for partial updates on subscribed clients.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	SelectedScenarioID *string `json:"selected_scenario_id,omitempty"`
	ScenarioID         *string `json:"scenario_id,omitempty"`
	Lens               *Lens   `json:"lens,omitempty"`
	ActiveTab          *Tab    `json:"active_tab,omitempty"`
	SelectedNodeID     *string `json:"selected_node_id,omitempty"`
	NodeText           *string `json:"node_text,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, the diff carries every non-empty field of newState.
// It returns nil when nothing changed.
func Diff(oldState, newState *ViewState) *StateDiff {
	if newState == nil {
		return nil
	}
	if oldState == nil {
		oldState = &ViewState{}
	}

	diff := &StateDiff{SessionID: newState.SessionID}
	changed := false

	if oldState.SelectedScenarioID != newState.SelectedScenarioID {
		diff.SelectedScenarioID = &newState.SelectedScenarioID
		changed = true
	}
	if oldState.ScenarioID != newState.ScenarioID {
		diff.ScenarioID = &newState.ScenarioID
		changed = true
	}
	if oldState.Lens != newState.Lens {
		diff.Lens = &newState.Lens
		changed = true
	}
	if oldState.ActiveTab != newState.ActiveTab {
		diff.ActiveTab = &newState.ActiveTab
		changed = true
	}
	if oldState.SelectedNodeID != newState.SelectedNodeID {
		diff.SelectedNodeID = &newState.SelectedNodeID
		changed = true
	}
	if oldState.NodeText != newState.NodeText {
		diff.NodeText = &newState.NodeText
		changed = true
	}

	if !changed {
		return nil
	}
	return diff
}
