package loam

import (
	"github.com/aretw0/ringlens/pkg/domain"
)

// ScenarioMetadata is the frontmatter (or JSON/YAML body) of a scenario document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ScenarioMetadata struct {
	ID          string        `json:"id" mapstructure:"id"`
	Name        string        `json:"name" mapstructure:"name"`
	Description string        `json:"description" mapstructure:"description"`
	Nodes       []domain.Node `json:"nodes" mapstructure:"nodes"`
	Edges       []domain.Edge `json:"edges" mapstructure:"edges"`
	Checklist   []string      `json:"checklist" mapstructure:"checklist"`
}
