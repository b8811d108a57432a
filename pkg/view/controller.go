package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/ringlens/internal/logging"
	"github.com/aretw0/ringlens/pkg/catalog"
	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/aretw0/ringlens/pkg/ports"
	"github.com/aretw0/ringlens/pkg/session"
	"github.com/google/uuid"
)

// ErrUnknownTab is returned when switching to a tab the UI does not have.
var ErrUnknownTab = errors.New("unknown tab")

// Snapshot is the complete view of one session after an action.
type Snapshot struct {
	State  *domain.ViewState `json:"state"`
	Panels Panels            `json:"panels"`
	Graph  *display.Graph    `json:"graph,omitempty"`
}

// CopyResult is the outcome of a copy action.
type CopyResult struct {
	Target Target `json:"target"`
	Text   string `json:"text"`
	Ack    Ack    `json:"ack"`
}

// Observer is notified after a session state is written.
type Observer func(prev, next *domain.ViewState)

// Controller applies view actions to stored sessions.
type Controller struct {
	catalog   *catalog.Store
	sessions  *session.Manager
	clipboard ports.Clipboard
	logger    *slog.Logger
	metrics   *metrics.Registry
	mu        sync.RWMutex
	observers []Observer
	lens      domain.Lens
	newID     func() string
}

// Option configures the Controller.
type Option func(*Controller)

// WithClipboard writes copied text to cb.
func WithClipboard(cb ports.Clipboard) Option {
	return func(c *Controller) {
		c.clipboard = cb
	}
}

// WithLogger configures a logger for view transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMetrics records narrative and copy counters.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *Controller) {
		c.metrics = r
	}
}

// WithObserver registers a callback for state changes.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, o)
	}
}

// WithDefaultLens sets the lens of new sessions.
func WithDefaultLens(l domain.Lens) Option {
	return func(c *Controller) {
		c.lens = l
	}
}

// NewController creates a controller over a loaded catalog.
func NewController(store *catalog.Store, sessions *session.Manager, opts ...Option) *Controller {
	c := &Controller{
		catalog:  store,
		sessions: sessions,
		logger:   logging.NewNop(),
		lens:     domain.DefaultLens,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe registers o for state changes after construction.
func (c *Controller) Observe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Catalog returns the scenario store.
func (c *Controller) Catalog() *catalog.Store {
	return c.catalog
}

// Start opens a session. An empty id creates a new session with a generated
// id. New sessions select and load the first scenario.
func (c *Controller) Start(ctx context.Context, sessionID string) (*Snapshot, error) {
	if sessionID == "" {
		sessionID = c.newID()
	}

	state, err := c.sessions.LoadOrStart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	if state.ScenarioID == "" && state.SelectedScenarioID == "" {
		c.metrics.RecordSession()
		c.logger.Info("Session started", "session_id", sessionID)

		state, err = c.apply(ctx, sessionID, func(cur *domain.ViewState) (*domain.ViewState, error) {
			n := cur
			if c.lens != cur.Lens {
				n = SetLens(n, c.lens)
			}
			if def, ok := c.catalog.Default(); ok {
				n = Load(n, def)
				c.metrics.RecordNarrative("summary")
			}
			return n, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return c.snapshot(state), nil
}

// Get returns the current snapshot of a session.
func (c *Controller) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	state, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.snapshot(state), nil
}

// End deletes a session.
func (c *Controller) End(ctx context.Context, sessionID string) error {
	if err := c.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	c.logger.Info("Session ended", "session_id", sessionID)
	return nil
}

// Sessions lists the stored session ids.
func (c *Controller) Sessions(ctx context.Context) ([]string, error) {
	return c.sessions.List(ctx)
}

// Select changes the selector. Unknown ids are accepted and show no description.
func (c *Controller) Select(ctx context.Context, sessionID, scenarioID string) (*Snapshot, error) {
	state, err := c.apply(ctx, sessionID, func(cur *domain.ViewState) (*domain.ViewState, error) {
		return Select(cur, scenarioID), nil
	})
	if err != nil {
		return nil, err
	}
	return c.snapshot(state), nil
}

// Load renders a scenario. An empty scenarioID loads the selected one.
// Unknown ids fail with domain.ErrScenarioNotFound and leave the state as is.
func (c *Controller) Load(ctx context.Context, sessionID, scenarioID string) (*Snapshot, error) {
	state, err := c.apply(ctx, sessionID, func(cur *domain.ViewState) (*domain.ViewState, error) {
		id := scenarioID
		if id == "" {
			id = cur.SelectedScenarioID
		}
		sc, err := c.catalog.Get(id)
		if err != nil {
			return nil, err
		}
		c.metrics.RecordNarrative("summary")
		return Load(cur, sc), nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Scenario loaded", "session_id", sessionID, "scenario_id", state.ScenarioID)
	return c.snapshot(state), nil
}

// SetLens changes the lens.
func (c *Controller) SetLens(ctx context.Context, sessionID string, lens domain.Lens) (*Snapshot, error) {
	state, err := c.apply(ctx, sessionID, func(cur *domain.ViewState) (*domain.ViewState, error) {
		c.metrics.RecordNarrative("lens")
		return SetLens(cur, lens), nil
	})
	if err != nil {
		return nil, err
	}
	if !lens.Known() {
		c.logger.Warn("Unknown lens selected", "session_id", sessionID, "lens", lens)
	}
	return c.snapshot(state), nil
}

// Click explains a node of the loaded scenario. Clicks on unknown nodes, or
// with no scenario loaded, leave the state unchanged.
func (c *Controller) Click(ctx context.Context, sessionID, nodeID string) (*Snapshot, error) {
	state, err := c.apply(ctx, sessionID, func(cur *domain.ViewState) (*domain.ViewState, error) {
		sc, ok := c.catalog.FindByID(cur.ScenarioID)
		if !ok {
			return nil, nil
		}
		n := ClickNode(cur, display.Build(sc), nodeID)
		if n != cur {
			c.metrics.RecordNarrative("node")
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return c.snapshot(state), nil
}

// SwitchTab activates a tab.
func (c *Controller) SwitchTab(ctx context.Context, sessionID string, tab domain.Tab) (*Snapshot, error) {
	if !tab.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	state, err := c.apply(ctx, sessionID, func(cur *domain.ViewState) (*domain.ViewState, error) {
		return SwitchTab(cur, tab), nil
	})
	if err != nil {
		return nil, err
	}
	return c.snapshot(state), nil
}

// Copy returns the text of a copy target. When a clipboard is configured the
// text is also written to it, and a write failure is returned.
func (c *Controller) Copy(ctx context.Context, sessionID string, target Target) (*CopyResult, error) {
	state, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	text, err := CopyText(Render(state, c.catalog), state, target)
	if err != nil {
		return nil, err
	}

	if c.clipboard != nil {
		if err := c.clipboard.WriteText(text); err != nil {
			c.metrics.RecordCopy(string(target), err)
			c.logger.Error("Clipboard write failed", "session_id", sessionID, "target", target, "err", err)
			return nil, fmt.Errorf("failed to write clipboard: %w", err)
		}
	}
	c.metrics.RecordCopy(string(target), nil)

	return &CopyResult{Target: target, Text: text, Ack: Acknowledge(target)}, nil
}

func (c *Controller) apply(ctx context.Context, sessionID string, fn session.UpdateFunc) (*domain.ViewState, error) {
	prev, next, err := c.sessions.Update(ctx, sessionID, fn)
	if err != nil {
		return nil, err
	}
	if diff := domain.Diff(prev, next); diff != nil {
		c.logger.Debug("View state changed", "session_id", sessionID, "tab", next.ActiveTab)
		c.mu.RLock()
		observers := c.observers
		c.mu.RUnlock()
		for _, o := range observers {
			o(prev, next)
		}
	}
	return next, nil
}

func (c *Controller) snapshot(state *domain.ViewState) *Snapshot {
	snap := &Snapshot{
		State:  state,
		Panels: Render(state, c.catalog),
	}
	if sc, ok := c.catalog.FindByID(state.ScenarioID); ok {
		snap.Graph = display.Build(sc)
	}
	return snap
}
