// ABOUTME: Logistics command for the uxs-plan CLI
// ABOUTME: Computes battery sustainment and per-operator packing lists for a mission

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

var logisticsFile string

var logisticsCmd = &cobra.Command{
	Use:   "logistics",
	Short: "Compute mission logistics",
	Long: `Compute battery counts, the swap schedule, and per-operator packing lists
for a mission file. The file holds a plan and, optionally, inline designs;
designs not supplied are looked up among those the backend has validated.

Exit codes:
  0 - Logistics feasible
  1 - Logistics infeasible
  2 - Error (connectivity, unreadable file, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogistics(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logisticsCmd)
	logisticsCmd.Flags().StringVarP(&logisticsFile, "file", "f", "", "Mission file (YAML or JSON)")
}

// runLogistics computes logistics for the mission file and returns exit code
func runLogistics(ctx context.Context, w io.Writer) int {
	var input models.LogisticsRequest
	if err := loadInput(logisticsFile, &input); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	result, err := c.Logistics(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(result))
	} else {
		fmt.Fprintln(w, formatLogisticsHuman(result))
	}

	return exitCodeFor(result.Sustainment.Feasibility.Pass)
}

// formatLogisticsHuman renders battery counts and packing lists
func formatLogisticsHuman(l *models.MissionLogistics) string {
	s := l.Sustainment

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", styles.Title.Render("Mission "+l.PlanID))
	fmt.Fprintf(&b, "Duration:        %.1f h\n", s.TotalDurationHours)
	fmt.Fprintf(&b, "Batteries:       %d (%.2f kg)\n", s.TotalBatteries, s.WeightKg)
	fmt.Fprintf(&b, "Swaps:           %d\n", len(s.BatterySwaps))

	if len(s.BatteriesByPlatform) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.Label.Render("Per platform:"))
		for _, p := range s.BatteriesByPlatform {
			fmt.Fprintf(&b, "  - %s: %d x %s over %.1f h\n", p.PlatformName, p.BatteriesNeeded, p.Battery.Name, p.OperatingHours)
		}
	}

	if len(l.PackingLists) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.Label.Render("Packing:"))
		for _, p := range l.PackingLists {
			fmt.Fprintf(&b, "  %s %s (%s): %.1f / %.0f kg\n",
				packingMark(p), p.OperatorID, p.Role, p.TotalWeightKg, p.WeightLimitKg)
		}
	}

	b.WriteString("\n")
	writeFeasibility(&b, "Logistics", s.Feasibility)

	return strings.TrimRight(b.String(), "\n")
}

// packingMark flags overweight loads: critical is a cross, overweight warns
func packingMark(p models.PackingList) string {
	switch {
	case p.CriticallyOverweight:
		return styles.Mark(false)
	case p.Overweight:
		return styles.StatusWarning.Render("!")
	default:
		return styles.Mark(true)
	}
}
