package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/ringlens/pkg/adapters/memory"
	"github.com/aretw0/ringlens/pkg/catalog"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/fixtures"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/aretw0/ringlens/pkg/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLoader struct{ err error }

func (f failingLoader) LoadAll(context.Context) ([]domain.Scenario, error) {
	return nil, f.err
}

func TestLoad_Fixtures(t *testing.T) {
	store, err := catalog.Load(context.Background(), fixtures.Loader(), catalog.WithSource("embedded"))
	require.NoError(t, err)

	all := store.All()
	require.Equal(t, 4, store.Len())
	assert.Equal(t, "ring-a", all[0].ID, "source order is preserved")

	def, ok := store.Default()
	require.True(t, ok)
	assert.Equal(t, all[0].ID, def.ID)

	ringA, err := store.Get("ring-a")
	require.NoError(t, err)
	assert.Equal(t, 2, ringA.CountKind(domain.KindSeller))
	assert.Equal(t, 3, ringA.CountKind(domain.KindBuyer))
	assert.Equal(t, 1, ringA.CountKind(domain.KindBank))
	assert.Equal(t, 0, ringA.CountKind(domain.KindDevice))
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unreachable source", func(t *testing.T) {
		cause := errors.New("connection refused")
		_, err := catalog.Load(context.Background(), failingLoader{err: cause}, catalog.WithSource("http://example"))

		var loadErr *domain.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "http://example", loadErr.Source)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("dangling edge is rejected", func(t *testing.T) {
		loader := memory.NewLoader(domain.Scenario{
			ID:    "bad",
			Name:  "Bad",
			Nodes: []domain.Node{{ID: "a", Type: "seller"}},
			Edges: []domain.Edge{{From: "a", To: "ghost", Type: "order"}},
		})
		_, err := catalog.Load(context.Background(), loader)

		var loadErr *domain.LoadError
		require.ErrorAs(t, err, &loadErr)
		var agg *schema.AggregateError
		require.ErrorAs(t, err, &agg)
	})

	t.Run("duplicate scenario ids are rejected", func(t *testing.T) {
		loader := memory.NewLoader(
			domain.Scenario{ID: "dup", Name: "One"},
			domain.Scenario{ID: "dup", Name: "Two"},
		)
		_, err := catalog.Load(context.Background(), loader)
		assert.ErrorContains(t, err, "duplicate scenario id")
	})

	t.Run("empty source is rejected", func(t *testing.T) {
		_, err := catalog.Load(context.Background(), memory.NewLoader(), catalog.WithSource("empty.json"))

		var loadErr *domain.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "empty.json", loadErr.Source)
		assert.ErrorIs(t, err, domain.ErrNoScenarios)
	})

	t.Run("failed load is counted", func(t *testing.T) {
		reg := metrics.NewRegistry()
		_, _ = catalog.Load(context.Background(), failingLoader{err: errors.New("x")}, catalog.WithMetrics(reg))
		_, err := catalog.Load(context.Background(), fixtures.Loader(), catalog.WithMetrics(reg))
		require.NoError(t, err)

		assert.Equal(t, 1.0, testutil.ToFloat64(reg.ScenarioLoadsTotal.WithLabelValues("error")))
		assert.Equal(t, 1.0, testutil.ToFloat64(reg.ScenarioLoadsTotal.WithLabelValues("success")))
		assert.Equal(t, 4.0, testutil.ToFloat64(reg.ScenariosLoaded))
	})
}

func TestStore_Lookups(t *testing.T) {
	store, err := catalog.New([]domain.Scenario{{
		ID:    "ring-a",
		Name:  "Ring A",
		Nodes: []domain.Node{{ID: "b1", Label: "Bank 1", Type: "bank"}},
	}})
	require.NoError(t, err)

	_, ok := store.FindByID("nope")
	assert.False(t, ok)

	_, err = store.Get("nope")
	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)

	n, err := store.Node("ring-a", "b1")
	require.NoError(t, err)
	assert.Equal(t, "Bank 1", n.Label)

	_, err = store.Node("ring-a", "zz")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	g, err := store.Graph("ring-a")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)

	_, err = store.Graph("nope")
	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
}

func TestStore_AllReturnsCopy(t *testing.T) {
	store, err := catalog.New([]domain.Scenario{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	require.NoError(t, err)

	all := store.All()
	all[0] = domain.Scenario{ID: "mutated"}

	def, _ := store.Default()
	assert.Equal(t, "a", def.ID)
}

func TestStore_ReturnsDeepCopies(t *testing.T) {
	store, err := catalog.New([]domain.Scenario{{
		ID:        "ring-a",
		Name:      "Ring A",
		Nodes:     []domain.Node{{ID: "s1", Label: "Seller 1", Type: "seller"}, {ID: "b1", Label: "Bank 1", Type: "bank"}},
		Edges:     []domain.Edge{{From: "s1", To: "b1", Type: "payout"}},
		Checklist: []string{"Confirm the payout owner."},
	}})
	require.NoError(t, err)

	all := store.All()
	all[0].Nodes[0].Type = "bank"
	all[0].Edges[0].To = "s1"
	all[0].Checklist[0] = "mutated"

	found, ok := store.FindByID("ring-a")
	require.True(t, ok)
	found.Nodes[1].Label = "mutated"

	def, _ := store.Default()
	def.Checklist = append(def.Checklist[:0], "mutated")

	sc, err := store.Get("ring-a")
	require.NoError(t, err)
	assert.Equal(t, "seller", sc.Nodes[0].Type)
	assert.Equal(t, "Bank 1", sc.Nodes[1].Label)
	assert.Equal(t, "b1", sc.Edges[0].To)
	assert.Equal(t, []string{"Confirm the payout owner."}, sc.Checklist)

	g, err := store.Graph("ring-a")
	require.NoError(t, err)
	assert.Equal(t, "PAYOUT", g.Edges[0].Label)
	assert.Equal(t, "b1", g.Edges[0].To)
}

func TestStore_Empty(t *testing.T) {
	store, err := catalog.New(nil)
	require.NoError(t, err)

	_, ok := store.Default()
	assert.False(t, ok)
	assert.Empty(t, store.All())
}
