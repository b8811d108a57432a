package tests

import (
	"context"
	"testing"

	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/ports"
)

// ScenarioLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.ScenarioLoader.
// want lists the scenario IDs the loader must return, in order.
func ScenarioLoaderContractTest(t *testing.T, loader ports.ScenarioLoader, want []string) {
	t.Helper()

	t.Run("LoadAll_Order", func(t *testing.T) {
		scenarios, err := loader.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading scenarios: %v", err)
		}
		if len(scenarios) != len(want) {
			t.Fatalf("expected %d scenarios, got %d", len(want), len(scenarios))
		}
		for i, s := range scenarios {
			if s.ID != want[i] {
				t.Errorf("scenario %d: got id %q, want %q", i, s.ID, want[i])
			}
		}
	})

	t.Run("LoadAll_Repeatable", func(t *testing.T) {
		first, err := loader.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := loader.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first) != len(second) {
			t.Fatalf("second load returned %d scenarios, first returned %d", len(second), len(first))
		}
		for i := range first {
			if len(first[i].Nodes) != len(second[i].Nodes) || len(first[i].Edges) != len(second[i].Edges) {
				t.Errorf("scenario %s changed between loads", first[i].ID)
			}
		}
	})

	t.Run("LoadAll_NodesTyped", func(t *testing.T) {
		scenarios, _ := loader.LoadAll(context.Background())
		for _, s := range scenarios {
			for _, n := range s.Nodes {
				if n.ID == "" {
					t.Errorf("scenario %s has a node without id", s.ID)
				}
				if n.Kind() == domain.KindUnknown && n.Type == "" {
					t.Errorf("scenario %s node %s has no type", s.ID, n.ID)
				}
			}
		}
	})
}
