package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/presentation/graph"
	"github.com/aretw0/ringlens/internal/presentation/tui"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/narrative"
	"github.com/aretw0/ringlens/pkg/schema"
	"github.com/aretw0/ringlens/pkg/view"
)

// Graph output formats.
const (
	FormatMermaid = "mermaid"
	FormatJSON    = "json"
)

// RunList prints the scenario catalog.
func RunList(out *Output, engine *ringlens.Engine) error {
	return out.Markdown(tui.ScenarioTable(engine.Scenarios()))
}

// RunGraph exports the display graph of a scenario. A non-empty node id
// is highlighted in the Mermaid output.
func RunGraph(out *Output, engine *ringlens.Engine, scenarioID, format, nodeID string) error {
	g, err := engine.Graph(scenarioID)
	if err != nil {
		return err
	}

	switch format {
	case "", FormatMermaid:
		var overlay *graph.GraphOverlay
		if nodeID != "" {
			overlay = &graph.GraphOverlay{SelectedNode: nodeID}
		}
		out.Printf("%s", graph.GenerateMermaid(g, overlay))
		return nil
	case FormatJSON:
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode graph: %w", err)
		}
		out.Println(string(data))
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected %s or %s", format, FormatMermaid, FormatJSON)
	}
}

// RunNodes lists the nodes of a scenario with their type pills.
func RunNodes(out *Output, engine *ringlens.Engine, scenarioID string) error {
	sc, err := engine.Catalog().Get(scenarioID)
	if err != nil {
		return err
	}
	for _, n := range sc.Nodes {
		if out.Interactive() {
			out.Printf("%-12s %s\n", n.ID, tui.NodeLine(n))
		} else {
			out.Printf("%s\t%s\t%s\n", n.ID, n.Label, narrative.NodeHeader(n).Type)
		}
	}
	return nil
}

// RunExplain prints the neighborhood explanation of a node.
func RunExplain(out *Output, engine *ringlens.Engine, scenarioID, nodeID string) error {
	header, text, err := engine.Explain(scenarioID, nodeID)
	if err != nil {
		return err
	}
	return out.Markdown(tui.NodeDoc(header, text))
}

// RunSummary prints the summary panel of a scenario.
func RunSummary(out *Output, engine *ringlens.Engine, scenarioID string) error {
	sc, err := engine.Catalog().Get(scenarioID)
	if err != nil {
		return err
	}
	summary, err := engine.Summary(scenarioID)
	if err != nil {
		return err
	}
	return out.Markdown(tui.SummaryDoc(sc, summary))
}

// RunLens prints a lens narrative. Unknown lenses print an empty panel.
func RunLens(out *Output, engine *ringlens.Engine, scenarioID string, lens domain.Lens) error {
	text, err := engine.Lens(scenarioID, lens)
	if err != nil {
		return err
	}
	return out.Markdown(tui.LensDoc(lens.Title(), text))
}

// RunChecklist prints the checklist of a scenario. With toClipboard set, the
// bullet list is also written to the engine's clipboard.
func RunChecklist(out *Output, engine *ringlens.Engine, scenarioID string, toClipboard bool) error {
	items, err := engine.Checklist(scenarioID)
	if err != nil {
		return err
	}
	if err := out.Markdown(tui.ChecklistDoc(items)); err != nil {
		return err
	}
	if !toClipboard {
		return nil
	}

	text := narrative.Checklist(items)
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to copy")
	}
	if err := engine.Copy(view.TargetChecklist, text); err != nil {
		return err
	}
	printSystemMessage(out.Writer(), "Copied %d checklist item(s).", len(items))
	return nil
}

// RunValidate loads the scenarios of source and reports every schema
// problem instead of stopping at the first load error.
func RunValidate(ctx context.Context, out *Output, source string) error {
	loader, err := ringlens.Resolve(source)
	if err != nil {
		return err
	}
	scenarios, err := loader.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scenarios: %w", err)
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("failed to load scenarios: %w", domain.ErrNoScenarios)
	}

	if err := schema.ValidateAll(scenarios); err != nil {
		problems := schema.ValidationErrors(err)
		for _, e := range problems {
			out.Printf("  - %v\n", e)
		}
		return fmt.Errorf("%d scenario problem(s) found", len(problems))
	}

	nodes, edges := 0, 0
	for _, sc := range scenarios {
		nodes += len(sc.Nodes)
		edges += len(sc.Edges)
	}
	out.Printf("%d scenario(s), %d node(s), %d edge(s) are valid! ✅\n", len(scenarios), nodes, edges)
	return nil
}
