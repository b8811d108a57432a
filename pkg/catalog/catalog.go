// Package catalog holds the read-only scenario collection.
//
// A Store is populated once by Load and never mutated afterwards, so it is
// safe for concurrent reads from every surface (CLI, HTTP, MCP).
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/ringlens/internal/logging"
	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/aretw0/ringlens/pkg/ports"
	"github.com/aretw0/ringlens/pkg/schema"
)

// Store is an ordered, immutable set of validated scenarios.
type Store struct {
	scenarios []domain.Scenario
	byID      map[string]int
}

type loadConfig struct {
	source  string
	logger  *slog.Logger
	metrics *metrics.Registry
}

// Option configures Load.
type Option func(*loadConfig)

// WithSource names the backing resource in errors and logs.
func WithSource(source string) Option {
	return func(c *loadConfig) {
		c.source = source
	}
}

// WithLogger configures a logger for load events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithMetrics records load outcomes in the registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *loadConfig) {
		c.metrics = r
	}
}

// Load fetches every scenario from the loader once, validates the collection
// and builds the store. Any failure, an empty collection included, is
// returned as a *domain.LoadError.
func Load(ctx context.Context, loader ports.ScenarioLoader, opts ...Option) (*Store, error) {
	cfg := &loadConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	scenarios, err := loader.LoadAll(ctx)
	if err != nil {
		err = &domain.LoadError{Source: cfg.source, Err: err}
		cfg.metrics.RecordScenarioLoad(err, 0)
		cfg.logger.Error("Failed to load scenarios", "source", cfg.source, "err", err)
		return nil, err
	}

	if len(scenarios) == 0 {
		err = &domain.LoadError{Source: cfg.source, Err: domain.ErrNoScenarios}
		cfg.metrics.RecordScenarioLoad(err, 0)
		cfg.logger.Error("Source yielded no scenarios", "source", cfg.source)
		return nil, err
	}

	store, err := New(scenarios)
	if err != nil {
		err = &domain.LoadError{Source: cfg.source, Err: err}
		cfg.metrics.RecordScenarioLoad(err, 0)
		cfg.logger.Error("Rejected malformed scenarios", "source", cfg.source, "err", err)
		return nil, err
	}

	cfg.metrics.RecordScenarioLoad(nil, store.Len())
	cfg.logger.Info("Scenarios loaded", "source", cfg.source, "count", store.Len())
	return store, nil
}

// New validates scenarios and builds a store preserving their order.
func New(scenarios []domain.Scenario) (*Store, error) {
	if err := schema.ValidateAll(scenarios); err != nil {
		return nil, err
	}

	s := &Store{
		scenarios: make([]domain.Scenario, len(scenarios)),
		byID:      make(map[string]int, len(scenarios)),
	}
	for i, sc := range scenarios {
		s.scenarios[i] = sc.Clone()
		s.byID[sc.ID] = i
	}
	return s, nil
}

// All returns the scenarios in source order.
func (s *Store) All() []domain.Scenario {
	out := make([]domain.Scenario, len(s.scenarios))
	for i, sc := range s.scenarios {
		out[i] = sc.Clone()
	}
	return out
}

// Len returns the number of scenarios.
func (s *Store) Len() int {
	return len(s.scenarios)
}

// FindByID looks up a scenario.
func (s *Store) FindByID(id string) (domain.Scenario, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return domain.Scenario{}, false
	}
	return s.scenarios[idx].Clone(), true
}

// Get is FindByID returning domain.ErrScenarioNotFound on a miss.
func (s *Store) Get(id string) (domain.Scenario, error) {
	sc, ok := s.FindByID(id)
	if !ok {
		return domain.Scenario{}, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
	}
	return sc, nil
}

// Default returns the first scenario, the one selected at startup.
func (s *Store) Default() (domain.Scenario, bool) {
	if len(s.scenarios) == 0 {
		return domain.Scenario{}, false
	}
	return s.scenarios[0].Clone(), true
}

// Graph builds the display graph of a scenario.
func (s *Store) Graph(id string) (*display.Graph, error) {
	sc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return display.Build(sc), nil
}

// Node returns a node of a scenario.
func (s *Store) Node(scenarioID, nodeID string) (domain.Node, error) {
	sc, err := s.Get(scenarioID)
	if err != nil {
		return domain.Node{}, err
	}
	n, ok := sc.Node(nodeID)
	if !ok {
		return domain.Node{}, fmt.Errorf("%w: %s in scenario %s", domain.ErrNodeNotFound, nodeID, scenarioID)
	}
	return n, nil
}
