package display

import (
	"strings"

	"github.com/aretw0/ringlens/pkg/domain"
)

// Fixed visual constants of the network view.
const (
	DefaultNodeColor   = "#e5e7eb"
	NodeBorderColor    = "#020617"
	NodeHighlightColor = "#f9fafb"
	NodeFontColor      = "#e5e7eb"
	NodeFontSize       = 14
	NodeShape          = "dot"
	NodeSize           = 18

	EdgeColor          = "#4b5563"
	EdgeHighlightColor = "#6366f1"
	EdgeFontColor      = "#9ca3af"
	EdgeFontSize       = 10
	EdgeWidth          = 1.2
	EdgeArrows         = "to"

	// OtherPill is the pill class for node types without a dedicated style.
	OtherPill = "pill-other"
)

// NodeColor returns the fill color for a node kind.
func NodeColor(kind domain.NodeKind) string {
	switch kind {
	case domain.KindSeller:
		return "#0ea5e9"
	case domain.KindBuyer:
		return "#22c55e"
	case domain.KindBank:
		return "#f97373"
	case domain.KindDevice:
		return "#a855f7"
	case domain.KindCard:
		return "#facc15"
	case domain.KindDispute:
		return "#fb923c"
	case domain.KindOther, domain.KindUnknown:
		return DefaultNodeColor
	default:
		return DefaultNodeColor
	}
}

// Pill returns the CSS class of the type badge shown next to a node label.
func Pill(kind domain.NodeKind) string {
	switch kind {
	case domain.KindSeller, domain.KindBuyer, domain.KindBank,
		domain.KindDevice, domain.KindCard, domain.KindDispute:
		return "pill-" + kind.String()
	case domain.KindOther, domain.KindUnknown:
		return OtherPill
	default:
		return OtherPill
	}
}

// EdgeLabel returns the display label of an edge type.
// Unknown types fall back to the uppercased raw tag.
func EdgeLabel(tag string) string {
	switch domain.EdgeKindOf(tag) {
	case domain.EdgeOrder:
		return "ORDER"
	case domain.EdgePayout:
		return "PAYOUT"
	case domain.EdgeUsesDevice:
		return "USES DEVICE"
	case domain.EdgeUsesCard:
		return "USES CARD"
	case domain.EdgeControls:
		return "CONTROLS"
	case domain.EdgeOther, domain.EdgeUnknown:
		return strings.ToUpper(tag)
	default:
		return strings.ToUpper(tag)
	}
}
