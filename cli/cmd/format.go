// ABOUTME: Output helpers shared by uxs-plan commands
// ABOUTME: Renders feasibility lists and JSON documents consistently

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uxsforge/mission-planner/backend/models"
	"github.com/uxsforge/mission-planner/cli/internal/styles"
)

// formatJSON renders v as indented JSON
func formatJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// writeList appends a labelled bullet list; empty lists are skipped
func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", styles.Label.Render(label+":"))
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

// writeFeasibility appends a verdict line plus any errors and warnings
func writeFeasibility(b *strings.Builder, name string, f models.Feasibility) {
	fmt.Fprintf(b, "%s %s: %s\n", styles.Mark(f.Pass), name, styles.Verdict(f.Pass))
	writeList(b, "Errors", f.Errors)
	writeList(b, "Warnings", f.Warnings)
}

// exitCodeFor maps a feasibility verdict to the CLI exit convention
func exitCodeFor(pass bool) int {
	if pass {
		return 0
	}
	return 1
}
