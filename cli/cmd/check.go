// ABOUTME: Check command for the uxs-plan CLI
// ABOUTME: Gates CI/CD pipelines on combined mission feasibility

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uxsforge/mission-planner/backend/models"
	"github.com/uxsforge/mission-planner/cli/internal/client"
	"github.com/uxsforge/mission-planner/cli/internal/styles"
)

var checkFile string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whole-mission feasibility",
	Long: `Check platforms, comms, and logistics for a mission in one call and exit
non-zero if any part is infeasible.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Error (connectivity, unreadable file, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Feasibility file with designs, comms, and plan (YAML or JSON)")
}

// checkResult represents the result of a single feasibility check
type checkResult struct {
	name   string
	detail string
	passed bool
}

// runCheck executes the feasibility check and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	var input models.FeasibilityRequest
	if err := loadInput(checkFile, &input); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	report, err := c.Feasibility(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(report)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// performChecks flattens a feasibility report into one result per platform
// plus one each for comms and logistics
func performChecks(report *models.FeasibilityReport) []checkResult {
	var results []checkResult

	for _, p := range report.Platforms {
		results = append(results, checkResult{
			name:   "Platform " + displayOrID(p.DesignName, p.DesignID),
			detail: issueSummary(p.Validation.Errors, p.Validation.Warnings),
			passed: p.Validation.Pass,
		})
	}

	results = append(results, checkResult{
		name:   "Comms",
		detail: issueSummary(report.Comms.Feasibility.Errors, report.Comms.Feasibility.Warnings),
		passed: report.Comms.Feasibility.Pass,
	})

	sustainment := report.Logistics.Sustainment.Feasibility
	results = append(results, checkResult{
		name:   "Logistics",
		detail: issueSummary(sustainment.Errors, sustainment.Warnings),
		passed: sustainment.Pass,
	})

	return results
}

func displayOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// issueSummary returns the first error, else the first warning, else ""
func issueSummary(errs, warnings []string) string {
	switch {
	case len(errs) > 0:
		return errs[0]
	case len(warnings) > 0:
		return warnings[0]
	default:
		return ""
	}
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var b strings.Builder

	for _, r := range results {
		if r.detail != "" {
			fmt.Fprintf(&b, "%s %s: %s\n", styles.Mark(r.passed), r.name, r.detail)
		} else {
			fmt.Fprintf(&b, "%s %s\n", styles.Mark(r.passed), r.name)
		}
	}

	passed, failed := countResults(results)
	if failed > 0 {
		fmt.Fprintf(&b, "\n%s: %d check(s) failed", styles.StatusCritical.Render("FAILED"), failed)
	} else {
		fmt.Fprintf(&b, "\n%s: All %d check(s) feasible", styles.StatusOK.Render("PASSED"), passed)
	}

	return b.String()
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":   r.name,
			"detail": r.detail,
			"passed": r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	return formatJSON(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
