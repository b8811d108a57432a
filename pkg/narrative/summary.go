package narrative

import (
	"fmt"
	"strings"

	"github.com/aretw0/ringlens/pkg/domain"
)

// Summary describes the composition of a scenario. Card and dispute nodes
// are not counted.
func Summary(s domain.Scenario) string {
	lines := []string{
		fmt.Sprintf("Scenario \"%s\" models a synthetic cluster with %d seller/merchant node(s), %d buyer node(s), %d payout/bank node(s), and %d shared device node(s).",
			s.Name,
			s.CountKind(domain.KindSeller),
			s.CountKind(domain.KindBuyer),
			s.CountKind(domain.KindBank),
			s.CountKind(domain.KindDevice),
		),
		"The edges capture relationships such as orders, payouts, shared devices, and control links, representing patterns you have seen in real marketplace and PSP abuse cases.",
		"This view is intended as a thinking and training aid: it does not represent real customers, but it mirrors how hostile rings, mule clusters, or competitor attacks can appear in network form.",
	}
	return strings.Join(lines, "\n")
}

// Checklist formats checklist items as a plain-text bullet list.
func Checklist(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
