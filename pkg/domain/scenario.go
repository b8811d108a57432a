package domain

// Scenario is a synthetic fraud/abuse network example.
// Scenarios are immutable once loaded; callers must not modify the slices.
type Scenario struct {
	ID          string   `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Name        string   `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Description string   `json:"description" yaml:"description" mapstructure:"description"`
	Nodes       []Node   `json:"nodes" yaml:"nodes" mapstructure:"nodes" validate:"dive"`
	Edges       []Edge   `json:"edges" yaml:"edges" mapstructure:"edges" validate:"dive"`
	Checklist   []string `json:"checklist" yaml:"checklist" mapstructure:"checklist"`
}

// Node looks up a node by ID.
func (s Scenario) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// CountKind returns how many nodes of the scenario have the given kind.
func (s Scenario) CountKind(kind NodeKind) int {
	count := 0
	for _, n := range s.Nodes {
		if n.Kind() == kind {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the scenario.
func (s Scenario) Clone() Scenario {
	cp := s
	cp.Nodes = append([]Node(nil), s.Nodes...)
	cp.Edges = append([]Edge(nil), s.Edges...)
	cp.Checklist = append([]string(nil), s.Checklist...)
	return cp
}
