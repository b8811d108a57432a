package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/narrative"
)

// ScenarioTable renders the catalog as a markdown table.
func ScenarioTable(scenarios []domain.Scenario) string {
	var sb strings.Builder
	sb.WriteString("| ID | Name | Nodes | Edges |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, sc := range scenarios {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d |\n", cell(sc.ID), cell(sc.Name), len(sc.Nodes), len(sc.Edges)))
	}
	return sb.String()
}

// SummaryDoc renders the summary panel.
func SummaryDoc(sc domain.Scenario, summary string) string {
	var sb strings.Builder
	sb.WriteString("# " + sc.Name + "\n\n")
	if sc.Description != "" {
		sb.WriteString("_" + sc.Description + "_\n\n")
	}
	sb.WriteString(paragraphs(summary))
	return sb.String()
}

// NodeDoc renders the node panel.
func NodeDoc(h narrative.Header, text string) string {
	return fmt.Sprintf("## %s `%s`\n\n%s", h.Label, h.Type, paragraphs(text))
}

// LensDoc renders the lens panel. An empty text yields a note instead of
// an empty section.
func LensDoc(title, text string) string {
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("## %s\n\nNo narrative for this lens.\n", title)
	}
	return fmt.Sprintf("## %s\n\n%s", title, paragraphs(text))
}

// ChecklistDoc renders checklist items as a markdown list.
func ChecklistDoc(items []string) string {
	if len(items) == 0 {
		return "## Checklist\n\nNo checklist items.\n"
	}
	return "## Checklist\n\n" + narrative.Checklist(items) + "\n"
}

// paragraphs separates narrative lines with blank lines so markdown keeps them apart.
func paragraphs(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.Join(lines, "\n\n") + "\n"
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
