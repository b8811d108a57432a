package view

import (
	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/narrative"
)

func next(s *domain.ViewState) *domain.ViewState {
	if s == nil {
		return domain.NewViewState("")
	}
	return s.Snapshot()
}

// Select records the scenario picked in the selector. Only the description
// follows it; the rendered scenario changes on Load.
func Select(s *domain.ViewState, scenarioID string) *domain.ViewState {
	n := next(s)
	n.SelectedScenarioID = scenarioID
	return n
}

// Load makes sc the rendered scenario, clears the node selection and shows
// the summary tab.
func Load(s *domain.ViewState, sc domain.Scenario) *domain.ViewState {
	n := next(s)
	n.SelectedScenarioID = sc.ID
	n.ScenarioID = sc.ID
	n.SelectedNodeID = ""
	n.NodeText = ""
	n.ActiveTab = domain.TabSummary
	return n
}

// SetLens switches the lens and shows the lens tab. Unknown lenses are kept;
// they render an empty narrative.
func SetLens(s *domain.ViewState, lens domain.Lens) *domain.ViewState {
	n := next(s)
	n.Lens = lens
	n.ActiveTab = domain.TabScenarioLens
	return n
}

// ClickNode explains the clicked node and shows the node tab.
// A click on an id missing from g returns s unchanged.
func ClickNode(s *domain.ViewState, g *display.Graph, nodeID string) *domain.ViewState {
	if g == nil {
		return s
	}
	dn, ok := g.Node(nodeID)
	if !ok {
		return s
	}

	node := domain.Node{ID: dn.ID, Label: dn.Label, Type: dn.Type}
	n := next(s)
	n.SelectedNodeID = node.ID
	n.NodeText = narrative.ExplainNode(node, g)
	n.ActiveTab = domain.TabNode
	return n
}

// SwitchTab activates a tab. Unknown tabs return s unchanged.
func SwitchTab(s *domain.ViewState, tab domain.Tab) *domain.ViewState {
	if !tab.Known() {
		return s
	}
	n := next(s)
	n.ActiveTab = tab
	return n
}
