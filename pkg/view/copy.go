package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/narrative"
)

// Target names a copy button.
type Target string

const (
	TargetSummary   Target = "summary"
	TargetNode      Target = "node"
	TargetLens      Target = "lens"
	TargetChecklist Target = "checklist"
)

// ErrUnknownTarget is returned for a copy target without a button.
var ErrUnknownTarget = errors.New("unknown copy target")

// Targets lists the copy targets in button order.
func Targets() []Target {
	return []Target{TargetSummary, TargetNode, TargetLens, TargetChecklist}
}

// Label is the resting caption of the target's button.
func (t Target) Label() string {
	switch t {
	case TargetSummary:
		return "Copy summary"
	case TargetNode:
		return "Copy node insight"
	case TargetLens:
		return "Copy lens narrative"
	case TargetChecklist:
		return "Copy checklist"
	default:
		return ""
	}
}

// CopyText returns the trimmed text for a copy target. The node target
// prefers the last explanation kept in the state over the panel text.
func CopyText(p Panels, s *domain.ViewState, t Target) (string, error) {
	var text string
	switch t {
	case TargetSummary:
		text = p.Summary
	case TargetNode:
		if s != nil && s.NodeText != "" {
			text = s.NodeText
		} else {
			text = p.NodeText
		}
	case TargetLens:
		text = p.LensText
	case TargetChecklist:
		text = narrative.Checklist(p.Checklist)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, t)
	}
	return strings.TrimSpace(text), nil
}

// AckLabel replaces a button caption after a successful copy.
const AckLabel = "Copied!"

// AckDelay is how long AckLabel stays before the caption is restored.
const AckDelay = 1200 * time.Millisecond

// Ack is the transient acknowledgement of a copy action.
type Ack struct {
	Label   string        `json:"label"`
	Restore string        `json:"restore"`
	After   time.Duration `json:"-"`
	AfterMS int64         `json:"after_ms"`
}

// Acknowledge returns the acknowledgement for a copy on target t.
func Acknowledge(t Target) Ack {
	return Ack{
		Label:   AckLabel,
		Restore: t.Label(),
		After:   AckDelay,
		AfterMS: AckDelay.Milliseconds(),
	}
}
