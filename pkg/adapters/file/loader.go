// Package file loads scenario collections from JSON or YAML documents.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/ringlens/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ScenarioLoader over a single file.
// The format is chosen by extension: ".json" is JSON, anything else is YAML.
type Loader struct {
	Path string
}

// New creates a file loader.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// LoadAll reads and decodes the file.
func (l *Loader) LoadAll(ctx context.Context) ([]domain.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(l.Path))
	if ext == ".json" {
		return DecodeJSON(data)
	}
	// Default to YAML
	return DecodeYAML(data)
}

// DecodeJSON decodes a JSON scenario document: either a bare array or an
// object whose only key is "scenarios". An empty collection is an error.
func DecodeJSON(data []byte) ([]domain.Scenario, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var scenarios []domain.Scenario
		if err := json.Unmarshal(trimmed, &scenarios); err != nil {
			return nil, fmt.Errorf("failed to parse scenarios json: %w", err)
		}
		return nonEmpty(scenarios)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios json: %w", err)
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	if err := checkDocumentKeys(keys); err != nil {
		return nil, err
	}

	var scenarios []domain.Scenario
	if err := json.Unmarshal(doc[documentKey], &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios json: %w", err)
	}
	return nonEmpty(scenarios)
}

// DecodeYAML decodes a YAML scenario document with the same shapes as
// DecodeJSON.
func DecodeYAML(data []byte) ([]domain.Scenario, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("empty scenarios document: %w", domain.ErrNoScenarios)
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return decodeYAMLList(root)
	case yaml.MappingNode:
		var value *yaml.Node
		keys := make([]string, 0, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			keys = append(keys, root.Content[i].Value)
			if root.Content[i].Value == documentKey {
				value = root.Content[i+1]
			}
		}
		if err := checkDocumentKeys(keys); err != nil {
			return nil, err
		}
		return decodeYAMLList(value)
	default:
		return nil, fmt.Errorf("scenarios yaml must be a list or a %q mapping, line %d", documentKey, root.Line)
	}
}

func decodeYAMLList(n *yaml.Node) ([]domain.Scenario, error) {
	var scenarios []domain.Scenario
	if err := n.Decode(&scenarios); err != nil {
		return nil, fmt.Errorf("failed to decode scenarios yaml: %w", err)
	}
	return nonEmpty(scenarios)
}

const documentKey = "scenarios"

// checkDocumentKeys accepts exactly one top-level key, "scenarios". A single
// scenario written as a bare object or a misspelled key fails here.
func checkDocumentKeys(keys []string) error {
	sort.Strings(keys)
	found := false
	for _, k := range keys {
		if k == documentKey {
			found = true
			continue
		}
		return fmt.Errorf("unexpected key %q in scenarios document, expected a list or a %q key", k, documentKey)
	}
	if !found {
		return fmt.Errorf("scenarios document has no %q key", documentKey)
	}
	return nil
}

func nonEmpty(scenarios []domain.Scenario) ([]domain.Scenario, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("scenarios document: %w", domain.ErrNoScenarios)
	}
	return scenarios, nil
}
