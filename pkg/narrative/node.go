package narrative

import (
	"fmt"
	"strings"

	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
)

// Tally counts the neighbors of a node by type.
// Counts are per edge occurrence: two edges to the same neighbor count twice.
type Tally struct {
	Sellers  int `json:"sellers"`
	Buyers   int `json:"buyers"`
	Banks    int `json:"banks"`
	Devices  int `json:"devices"`
	Cards    int `json:"cards"`
	Disputes int `json:"disputes"`

	// Total includes neighbors of other or unknown types.
	Total int `json:"total"`
}

// Neighbors tallies the far endpoint of every raw edge touching the node.
// Endpoints missing from the graph count as "other".
func Neighbors(node domain.Node, g *display.Graph) Tally {
	var t Tally
	if g == nil {
		return t
	}

	for _, e := range g.RawEdges() {
		var far string
		switch {
		case e.From == node.ID:
			far = e.To
		case e.To == node.ID:
			far = e.From
		default:
			continue
		}

		t.Total++
		n, ok := g.Node(far)
		if !ok {
			continue
		}
		switch n.Kind() {
		case domain.KindSeller:
			t.Sellers++
		case domain.KindBuyer:
			t.Buyers++
		case domain.KindBank:
			t.Banks++
		case domain.KindDevice:
			t.Devices++
		case domain.KindCard:
			t.Cards++
		case domain.KindDispute:
			t.Disputes++
		case domain.KindOther, domain.KindUnknown:
		}
	}
	return t
}

// ExplainNode describes a node's role from its neighborhood.
func ExplainNode(node domain.Node, g *display.Graph) string {
	t := Neighbors(node, g)

	var lines []string
	switch node.Kind() {
	case domain.KindBank:
		lines = []string{
			fmt.Sprintf("%s is a payout / bank node that receives flows from %d seller/merchant node(s) and is indirectly linked to %d buyer node(s).", node.Label, t.Sellers, t.Buyers),
			"Such a central payout node can represent a mule or coordinator account if value flows exceed what would be expected for a single legitimate business or individual.",
			"An investigator should confirm the true owner, review KYC documents, compare inflows/outflows vs declared income, and check for rapid onward transfers or links to known scam/fraud patterns.",
		}
	case domain.KindDevice:
		lines = []string{
			fmt.Sprintf("%s is a device shared across %d buyer account(s) and %d seller/merchant node(s).", node.Label, t.Buyers, t.Sellers),
			"Shared devices across multiple identities are strong linkage signals in abuse scenarios, especially when combined with abnormal order, refund, or dispute patterns.",
			"Investigators should correlate this device with IPs, locations, and prior risk events, and assess whether it appears in other suspicious clusters across the platform or PSP.",
		}
	case domain.KindSeller:
		lines = []string{
			fmt.Sprintf("%s is a seller/merchant node connected to %d buyer node(s), %d payout node(s), %d device node(s), and %d card node(s).", node.Label, t.Buyers, t.Banks, t.Devices, t.Cards),
			"Its position in the graph and connection mix can indicate whether it is a potential anchor for a collusive ring, a victim of hostile activity, or a normal business.",
			"Investigators should examine its order/refund ratios, review/complaint patterns, pricing history, and any prior enforcement or risk flags in combination with this network context.",
		}
	case domain.KindBuyer:
		lines = []string{
			fmt.Sprintf("%s is a buyer node linked to %d seller/merchant node(s), %d card node(s), and %d device node(s).", node.Label, t.Sellers, t.Cards, t.Devices),
			"Multiple links across sellers and shared devices or payment methods increase the likelihood that this buyer is part of a coordinated abuse pattern rather than a purely legitimate customer.",
			"Investigators should review its dispute/chargeback history, geolocation/IP patterns, and linkage to other known bad actors.",
		}
	case domain.KindCard:
		lines = []string{
			fmt.Sprintf("%s is a payment instrument node linked to %d buyer node(s) and %d seller/merchant node(s).", node.Label, t.Buyers, t.Sellers),
			"Cards used across multiple buyers or merchants with abnormal dispute or refund rates can signal synthetic identity, testing, or friendly fraud patterns.",
			"Investigators should verify the issuing BIN, geolocation alignment, historical usage, and whether this instrument appears in other fraud or AML cases.",
		}
	case domain.KindDispute, domain.KindOther, domain.KindUnknown:
		lines = genericNode(node, t)
	default:
		lines = genericNode(node, t)
	}
	return strings.Join(lines, "\n")
}

func genericNode(node domain.Node, t Tally) []string {
	return []string{
		fmt.Sprintf("%s is a node of type \"%s\", connected to %d other node(s).", node.Label, node.Type, t.Total),
		"At this time, there is no specialized template for this node type, but investigators should still review its connections, volumes, and any prior risk signals in combination with the broader graph.",
	}
}

// Header is the title line of the node panel: the label and its type pill.
type Header struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Pill  string `json:"pill"`
}

// NodeHeader returns the panel header for a node.
func NodeHeader(node domain.Node) Header {
	return Header{
		Label: node.Label,
		Type:  node.Type,
		Pill:  display.Pill(node.Kind()),
	}
}
