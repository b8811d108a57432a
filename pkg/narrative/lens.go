package narrative

import (
	"strings"

	"github.com/aretw0/ringlens/pkg/domain"
)

// Lens interprets a scenario through an analytical lens.
// The text depends on the lens only; unknown lenses yield "".
func Lens(_ domain.Scenario, lens domain.Lens) string {
	var lines []string
	switch lens {
	case domain.LensFraud:
		lines = []string{
			"From a fraud and chargeback perspective, this scenario highlights where financial loss can crystallize: ",
			"orders that are cancelled, refunded, or disputed, and payout nodes that aggregate value before it leaves the platform or PSP.",
			"Fraud teams should focus on loss exposure, arbitration win rates, promotion abuse, and controls around eligibility for refunds/cashback, as well as velocity and abnormal ratios vs peer baselines.",
		}
	case domain.LensAML:
		lines = []string{
			"From an AML / fincrime perspective, this network can resemble mule or pass-through structures where value is moved between accounts via fake commerce or coordinated buyer-seller behaviour.",
			"The key questions are whether the flows align with declared business activity, whether payout nodes behave like personal vs business accounts, and whether there are links to known scams or higher-risk jurisdictions.",
			"Such patterns can drive scenario refinement and may justify STR/SAR filings when combined with additional evidence.",
		}
	case domain.LensTS:
		lines = []string{
			"From a trust & safety perspective, this scenario demonstrates abuse of platform rules: fake demand, review manipulation, hostile seller activity, and coordination to harm competitors or game incentives.",
			"Trust & safety teams should align with fraud and AML functions on a shared view of bad-actor networks, to ensure interventions target the right cluster of accounts rather than isolated symptoms.",
			"This lens emphasizes user harm, marketplace integrity, and enforcement policy rather than purely financial or regulatory outcomes.",
		}
	default:
		return ""
	}
	return strings.Join(lines, "\n")
}
