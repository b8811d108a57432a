package domain

// Lens is the analytical viewpoint used to interpret a scenario.
type Lens string

const (
	LensFraud Lens = "fraud"
	LensAML   Lens = "aml"
	LensTS    Lens = "ts"
)

// DefaultLens is selected for new sessions.
const DefaultLens = LensFraud

// Lenses lists the known lenses in display order.
func Lenses() []Lens {
	return []Lens{LensFraud, LensAML, LensTS}
}

// Known reports whether the lens has a narrative template.
func (l Lens) Known() bool {
	switch l {
	case LensFraud, LensAML, LensTS:
		return true
	default:
		return false
	}
}

// Title is the human label shown in selectors.
func (l Lens) Title() string {
	switch l {
	case LensFraud:
		return "Fraud & chargebacks"
	case LensAML:
		return "AML / fincrime"
	case LensTS:
		return "Trust & safety"
	default:
		return string(l)
	}
}
