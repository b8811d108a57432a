package tui

import (
	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var pillStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(display.NodeBorderColor)).
	Padding(0, 1).
	Bold(true)

// Pill renders a node type as a colored badge, using the fill of its kind.
func Pill(nodeType string) string {
	kind := domain.KindOf(nodeType)
	label := nodeType
	if label == "" {
		label = domain.KindOther.String()
	}
	return pillStyle.Background(lipgloss.Color(display.NodeColor(kind))).Render(label)
}

// NodeLine renders "label [type]" for list output.
func NodeLine(n domain.Node) string {
	return lipgloss.JoinHorizontal(lipgloss.Center, n.Label+" ", Pill(n.Type))
}
