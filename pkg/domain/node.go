package domain

// NodeKind classifies a node by its semantic role in a scenario.
// KindUnknown is the explicit fallback arm for type tags ringlens does not
// know yet; callers switching on a kind must handle it.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindSeller
	KindBuyer
	KindBank
	KindDevice
	KindCard
	KindDispute
	KindOther
)

var nodeKindTags = map[string]NodeKind{
	"seller":  KindSeller,
	"buyer":   KindBuyer,
	"bank":    KindBank,
	"device":  KindDevice,
	"card":    KindCard,
	"dispute": KindDispute,
	"other":   KindOther,
}

// KindOf classifies a raw node type tag. Matching is exact (case-sensitive).
func KindOf(tag string) NodeKind {
	if k, ok := nodeKindTags[tag]; ok {
		return k
	}
	return KindUnknown
}

func (k NodeKind) String() string {
	switch k {
	case KindSeller:
		return "seller"
	case KindBuyer:
		return "buyer"
	case KindBank:
		return "bank"
	case KindDevice:
		return "device"
	case KindCard:
		return "card"
	case KindDispute:
		return "dispute"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// EdgeKind classifies an edge by the relationship it models.
type EdgeKind int

const (
	EdgeUnknown EdgeKind = iota
	EdgeOrder
	EdgePayout
	EdgeUsesDevice
	EdgeUsesCard
	EdgeControls
	EdgeOther
)

var edgeKindTags = map[string]EdgeKind{
	"order":       EdgeOrder,
	"payout":      EdgePayout,
	"uses_device": EdgeUsesDevice,
	"uses_card":   EdgeUsesCard,
	"controls":    EdgeControls,
	"other":       EdgeOther,
}

// EdgeKindOf classifies a raw edge type tag.
func EdgeKindOf(tag string) EdgeKind {
	if k, ok := edgeKindTags[tag]; ok {
		return k
	}
	return EdgeUnknown
}

// Node represents a participant of a scenario (account, device, instrument...).
type Node struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`

	// Type is the raw type tag as authored. It is preserved even when it is
	// not a known kind so that new node types render with the fallback style.
	Type string `json:"type" yaml:"type" mapstructure:"type"`
}

// Kind returns the classified type of the node.
func (n Node) Kind() NodeKind {
	return KindOf(n.Type)
}

// Edge is a directed relationship between two nodes of the same scenario.
// Several edges may connect the same pair.
type Edge struct {
	From string `json:"from" yaml:"from" mapstructure:"from" validate:"required"`
	To   string `json:"to" yaml:"to" mapstructure:"to" validate:"required"`
	Type string `json:"type" yaml:"type" mapstructure:"type"`
}

// Kind returns the classified type of the edge.
func (e Edge) Kind() EdgeKind {
	return EdgeKindOf(e.Type)
}
