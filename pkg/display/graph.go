// Package display turns scenarios into renderer-ready graphs.
//
// The output mirrors the option objects of the browser network library:
// nodes carry color, shape and font, edges carry arrows, label and style.
// Layout and physics are left to the renderer.
package display

import (
	"fmt"

	"github.com/aretw0/ringlens/pkg/domain"
)

// Highlight is the color pair used when a node is selected.
type Highlight struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// NodeStyle groups the fill, border and highlight colors of a node.
type NodeStyle struct {
	Background string    `json:"background"`
	Border     string    `json:"border"`
	Highlight  Highlight `json:"highlight"`
}

// EdgeStyle holds the line colors of an edge.
type EdgeStyle struct {
	Color     string `json:"color"`
	Highlight string `json:"highlight"`
}

// Font is a label font.
type Font struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// Node is a decorated scenario node.
type Node struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Shape string    `json:"shape"`
	Size  int       `json:"size"`
	Color NodeStyle `json:"color"`
	Font  Font      `json:"font"`
	Type  string    `json:"type"`
	Pill  string    `json:"pill"`
}

// Kind returns the classified type of the node.
func (n Node) Kind() domain.NodeKind {
	return domain.KindOf(n.Type)
}

// Edge is a decorated scenario edge.
type Edge struct {
	ID     string    `json:"id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Arrows string    `json:"arrows"`
	Color  EdgeStyle `json:"color"`
	Width  float64   `json:"width"`
	Label  string    `json:"label"`
	Font   Font      `json:"font"`
	Type   string    `json:"type"`
}

// Graph is the display form of a scenario.
//
// Nodes and Edges keep the input order. The raw edges are retained for
// neighbor queries, and byID indexes Nodes for lookups on click.
type Graph struct {
	ScenarioID string `json:"scenario_id"`
	Nodes      []Node `json:"nodes"`
	Edges      []Edge `json:"edges"`

	raw  []domain.Edge
	byID map[string]int
}

// Build decorates every node and edge of the scenario. It is pure: the same
// scenario always yields an identical graph.
func Build(s domain.Scenario) *Graph {
	g := &Graph{
		ScenarioID: s.ID,
		Nodes:      make([]Node, 0, len(s.Nodes)),
		Edges:      make([]Edge, 0, len(s.Edges)),
		raw:        make([]domain.Edge, len(s.Edges)),
		byID:       make(map[string]int, len(s.Nodes)),
	}

	for _, n := range s.Nodes {
		kind := n.Kind()
		color := NodeColor(kind)
		g.Nodes = append(g.Nodes, Node{
			ID:    n.ID,
			Label: n.Label,
			Shape: NodeShape,
			Size:  NodeSize,
			Color: NodeStyle{
				Background: color,
				Border:     NodeBorderColor,
				Highlight:  Highlight{Background: color, Border: NodeHighlightColor},
			},
			Font: Font{Color: NodeFontColor, Size: NodeFontSize},
			Type: n.Type,
			Pill: Pill(kind),
		})
		// First occurrence wins; duplicates are rejected at load time.
		if _, exists := g.byID[n.ID]; !exists {
			g.byID[n.ID] = len(g.Nodes) - 1
		}
	}

	for i, e := range s.Edges {
		g.Edges = append(g.Edges, Edge{
			ID:     fmt.Sprintf("e%d", i),
			From:   e.From,
			To:     e.To,
			Arrows: EdgeArrows,
			Color:  EdgeStyle{Color: EdgeColor, Highlight: EdgeHighlightColor},
			Width:  EdgeWidth,
			Label:  EdgeLabel(e.Type),
			Font:   Font{Color: EdgeFontColor, Size: EdgeFontSize},
			Type:   e.Type,
		})
	}
	copy(g.raw, s.Edges)

	return g
}

// Node returns the decorated node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[idx], true
}

// RawEdges returns the undecorated edges in input order.
func (g *Graph) RawEdges() []domain.Edge {
	return g.raw
}

// Touching returns the raw edges with the node as either endpoint.
func (g *Graph) Touching(id string) []domain.Edge {
	var out []domain.Edge
	for _, e := range g.raw {
		if e.From == id || e.To == id {
			out = append(out, e)
		}
	}
	return out
}
