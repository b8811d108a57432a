package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
)

// GraphOverlay contains session state to visualize on the graph.
type GraphOverlay struct {
	SelectedNode string
}

// kinds lists every class emitted by GenerateMermaid, in classDef order.
var kinds = []domain.NodeKind{
	domain.KindSeller,
	domain.KindBuyer,
	domain.KindBank,
	domain.KindDevice,
	domain.KindCard,
	domain.KindDispute,
	domain.KindOther,
}

// GenerateMermaid produces a Mermaid flowchart from a display graph.
// It applies semantic shapes:
// - Seller: [Rectangle]
// - Buyer: (Rounded)
// - Bank: [(Cylinder)]
// - Device: {{Hexagon}}
// - Card: [/Parallelogram/]
// - Dispute: >Flag]
// Node fills follow the display palette. Unknown types use the "other" class.
func GenerateMermaid(g *display.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if g == nil {
		return sb.String()
	}

	for _, node := range g.Nodes {
		opener, closer := shape(node.Kind())
		label := strings.ReplaceAll(node.Label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(node.ID), opener, label, closer))
	}

	for _, edge := range g.Edges {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(edge.From),
			strings.ReplaceAll(edge.Label, "\"", "'"),
			sanitizeMermaidID(edge.To),
		))
	}

	sb.WriteString("\n    %% Type Styles\n")
	for _, k := range kinds {
		sb.WriteString(fmt.Sprintf("    classDef %s fill:%s,stroke:%s,color:#000;\n", k, display.NodeColor(k), display.NodeBorderColor))
	}
	for _, node := range g.Nodes {
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(node.ID), className(node.Kind())))
	}

	if overlay != nil && overlay.SelectedNode != "" {
		if _, ok := g.Node(overlay.SelectedNode); ok {
			sb.WriteString("\n    %% Overlay Styles\n")
			sb.WriteString(fmt.Sprintf("    classDef selected stroke:%s,stroke-width:4px;\n", display.EdgeHighlightColor))
			sb.WriteString(fmt.Sprintf("    class %s selected;\n", sanitizeMermaidID(overlay.SelectedNode)))
		}
	}

	return sb.String()
}

func shape(kind domain.NodeKind) (string, string) {
	switch kind {
	case domain.KindBuyer:
		return "(", ")"
	case domain.KindBank:
		return "[(", ")]"
	case domain.KindDevice:
		return "{{", "}}"
	case domain.KindCard:
		return "[/", "/]"
	case domain.KindDispute:
		return ">", "]"
	default:
		return "[", "]"
	}
}

func className(kind domain.NodeKind) string {
	if kind == domain.KindUnknown {
		return domain.KindOther.String()
	}
	return kind.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
