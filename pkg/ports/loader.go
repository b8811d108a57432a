package ports

import (
	"context"

	"github.com/aretw0/ringlens/pkg/domain"
)

// ScenarioLoader defines how the catalog retrieves scenario records.
// This allows the storage layer (embedded fixture, file, Loam, URL) to be decoupled.
type ScenarioLoader interface {
	// LoadAll returns every scenario in source order.
	// An unreachable or malformed source is reported as an error; the catalog
	// wraps it in a domain.LoadError.
	LoadAll(ctx context.Context) ([]domain.Scenario, error)
}
