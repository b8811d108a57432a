package ringlens

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/ringlens/internal/logging"
	"github.com/aretw0/ringlens/pkg/adapters/file"
	loamAdapter "github.com/aretw0/ringlens/pkg/adapters/loam"
	"github.com/aretw0/ringlens/pkg/adapters/memory"
	"github.com/aretw0/ringlens/pkg/adapters/remote"
	"github.com/aretw0/ringlens/pkg/catalog"
	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/fixtures"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/aretw0/ringlens/pkg/narrative"
	"github.com/aretw0/ringlens/pkg/ports"
	"github.com/aretw0/ringlens/pkg/session"
	"github.com/aretw0/ringlens/pkg/view"
)

// Engine is the high-level entry point for the ringlens library.
// It owns the loaded scenario catalog and the session controller.
type Engine struct {
	catalog    *catalog.Store
	controller *view.Controller
	sessions   *session.Manager

	loader    ports.ScenarioLoader
	store     ports.StateStore
	locker    ports.DistributedLocker
	clipboard ports.Clipboard
	metrics   *metrics.Registry
	logger    *slog.Logger
	lens      domain.Lens
	observers []view.Observer

	// Source describes where scenarios were loaded from.
	Source string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom ScenarioLoader, bypassing source resolution.
func WithLoader(l ports.ScenarioLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(s ports.StateStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker serializes session updates across processes.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithClipboard makes copy actions write to cb.
func WithClipboard(cb ports.Clipboard) Option {
	return func(e *Engine) {
		e.clipboard = cb
	}
}

// WithMetrics records load, narrative and copy metrics in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// WithDefaultLens sets the lens of new sessions.
func WithDefaultLens(l domain.Lens) Option {
	return func(e *Engine) {
		e.lens = l
	}
}

// WithObserver registers a callback for session state changes.
func WithObserver(o view.Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// Resolve picks a loader for a scenario source:
//   - "" uses the embedded sample scenarios;
//   - http:// and https:// URLs are fetched;
//   - directories are opened as loam repositories;
//   - anything else is read as a JSON or YAML file.
func Resolve(source string) (ports.ScenarioLoader, error) {
	switch {
	case source == "":
		return fixtures.Loader(), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return remote.New(source), nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario source: %w", err)
	}
	if info.IsDir() {
		absPath, err := filepath.Abs(source)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		return loamAdapter.Open(absPath)
	}
	return file.New(source), nil
}

// New loads the scenarios of source and prepares a session controller.
// Loading happens once; a failure is returned as a *domain.LoadError and
// no engine is created.
func New(ctx context.Context, source string, opts ...Option) (*Engine, error) {
	eng := &Engine{lens: domain.DefaultLens}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.loader == nil {
		l, err := Resolve(source)
		if err != nil {
			return nil, &domain.LoadError{Source: source, Err: err}
		}
		eng.loader = l
	}
	eng.Source = source
	if eng.Source == "" {
		eng.Source = "embedded"
	}

	store, err := catalog.Load(ctx, eng.loader,
		catalog.WithSource(eng.Source),
		catalog.WithLogger(eng.logger),
		catalog.WithMetrics(eng.metrics),
	)
	if err != nil {
		return nil, err
	}
	eng.catalog = store

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	sessOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessOpts = append(sessOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessOpts...)

	viewOpts := []view.Option{
		view.WithLogger(eng.logger),
		view.WithMetrics(eng.metrics),
		view.WithDefaultLens(eng.lens),
	}
	if eng.clipboard != nil {
		viewOpts = append(viewOpts, view.WithClipboard(eng.clipboard))
	}
	for _, o := range eng.observers {
		viewOpts = append(viewOpts, view.WithObserver(o))
	}
	eng.controller = view.NewController(eng.catalog, eng.sessions, viewOpts...)

	return eng, nil
}

// Catalog returns the loaded scenarios.
func (e *Engine) Catalog() *catalog.Store {
	return e.catalog
}

// Controller returns the session controller used by the HTTP surface.
func (e *Engine) Controller() *view.Controller {
	return e.controller
}

// Scenarios returns every scenario in source order.
func (e *Engine) Scenarios() []domain.Scenario {
	return e.catalog.All()
}

// Graph returns the display graph of a scenario.
func (e *Engine) Graph(scenarioID string) (*display.Graph, error) {
	return e.catalog.Graph(scenarioID)
}

// Summary returns the summary narrative of a scenario.
func (e *Engine) Summary(scenarioID string) (string, error) {
	sc, err := e.catalog.Get(scenarioID)
	if err != nil {
		return "", err
	}
	e.metrics.RecordNarrative("summary")
	return narrative.Summary(sc), nil
}

// Lens returns the lens narrative of a scenario; "" for unknown lenses.
func (e *Engine) Lens(scenarioID string, lens domain.Lens) (string, error) {
	sc, err := e.catalog.Get(scenarioID)
	if err != nil {
		return "", err
	}
	e.metrics.RecordNarrative("lens")
	return narrative.Lens(sc, lens), nil
}

// Explain returns the header and explanation of a node.
func (e *Engine) Explain(scenarioID, nodeID string) (narrative.Header, string, error) {
	sc, err := e.catalog.Get(scenarioID)
	if err != nil {
		return narrative.Header{}, "", err
	}
	node, err := e.catalog.Node(scenarioID, nodeID)
	if err != nil {
		return narrative.Header{}, "", err
	}
	e.metrics.RecordNarrative("node")
	return narrative.NodeHeader(node), narrative.ExplainNode(node, display.Build(sc)), nil
}

// Checklist returns the checklist items of a scenario.
func (e *Engine) Checklist(scenarioID string) ([]string, error) {
	sc, err := e.catalog.Get(scenarioID)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordNarrative("checklist")
	return sc.Checklist, nil
}

// Copy writes text to the configured clipboard and records the outcome.
func (e *Engine) Copy(target view.Target, text string) error {
	if e.clipboard == nil {
		return fmt.Errorf("no clipboard configured")
	}
	err := e.clipboard.WriteText(text)
	e.metrics.RecordCopy(string(target), err)
	if err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
