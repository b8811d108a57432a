package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/ringlens/pkg/domain"
)

// Loader adapts a Loam document repository to ports.ScenarioLoader.
// Each document holds one scenario; a Markdown body becomes the description
// unless the frontmatter sets one.
type Loader struct {
	Repo *loam.TypedRepository[ScenarioMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ScenarioMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric types consistent across JSON and Markdown.
	// ReadOnly avoids Loam's sandbox behavior; scenarios are never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ScenarioMetadata](repo)), nil
}

// LoadAll lists every document and converts it to a scenario, ordered by
// document ID so a numeric filename prefix controls the order.
func (l *Loader) LoadAll(ctx context.Context) ([]domain.Scenario, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})

	seen := make(map[string]string, len(docs))
	scenarios := make([]domain.Scenario, 0, len(docs))
	for _, doc := range docs {
		meta := doc.Data

		rawID := meta.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		description := meta.Description
		if description == "" {
			description = strings.TrimSpace(doc.Content)
		}

		scenarios = append(scenarios, domain.Scenario{
			ID:          id,
			Name:        meta.Name,
			Description: description,
			Nodes:       meta.Nodes,
			Edges:       meta.Edges,
			Checklist:   meta.Checklist,
		})
	}
	return scenarios, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
