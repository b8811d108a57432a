package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/ringlens/pkg/domain"
)

// Loader implements ports.ScenarioLoader over in-process records.
type Loader struct {
	scenarios []domain.Scenario
	raw       []byte
}

// NewLoader creates a Loader that returns the given scenarios in order.
func NewLoader(scenarios ...domain.Scenario) *Loader {
	return &Loader{scenarios: scenarios}
}

// NewLoaderFromJSON creates a Loader that decodes a JSON array of scenarios
// on every LoadAll. Decoding errors surface from LoadAll.
func NewLoaderFromJSON(data []byte) *Loader {
	return &Loader{raw: data}
}

// LoadAll returns a copy of the scenarios so callers cannot mutate the source.
func (l *Loader) LoadAll(ctx context.Context) ([]domain.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.raw != nil {
		var scenarios []domain.Scenario
		if err := json.Unmarshal(l.raw, &scenarios); err != nil {
			return nil, fmt.Errorf("failed to decode scenarios: %w", err)
		}
		return scenarios, nil
	}

	out := make([]domain.Scenario, len(l.scenarios))
	for i, s := range l.scenarios {
		out[i] = s.Clone()
	}
	return out, nil
}
