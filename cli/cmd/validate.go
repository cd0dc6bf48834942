// ABOUTME: Validate command for the uxs-plan CLI
// ABOUTME: Runs a platform design file through the physics validator

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

var (
	validateFile string
	platformType string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a platform design",
	Long: `Validate a platform design file against weight, thrust, power, and
environmental limits.

Exit codes:
  0 - Design passed
  1 - Design failed validation
  2 - Error (connectivity, unreadable file, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runValidate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Platform design file (YAML or JSON)")
	validateCmd.Flags().StringVar(&platformType, "type", "", "Platform type override (multi-rotor, fixed-wing, vtol, ground)")
}

// runValidate validates the design file and returns exit code
func runValidate(ctx context.Context, w io.Writer) int {
	if platformType != "" {
		if _, ok := models.ParsePlatformType(platformType); !ok {
			fmt.Fprintf(w, "Error: unknown platform type %q\n", platformType)
			return 2
		}
	}

	var design models.PlatformDesign
	if err := loadInput(validateFile, &design); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	resp, err := c.ValidatePlatform(ctx, models.ValidatePlatformRequest{
		Design:       design,
		PlatformType: platformType,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(resp))
	} else {
		fmt.Fprintln(w, formatValidateHuman(resp))
	}

	return exitCodeFor(resp.Validation.Pass)
}

// formatValidateHuman formats a validation result for human readability
func formatValidateHuman(resp *models.ValidatePlatformResponse) string {
	v := resp.Validation
	m := v.Metrics

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", styles.Title.Render(fmt.Sprintf("Platform %s (%s)", resp.Design.Name, resp.Design.ID)))
	fmt.Fprintf(&b, "Type:            %s\n", v.PlatformType)
	fmt.Fprintf(&b, "All-up weight:   %.0f g\n", m.AUWG)
	fmt.Fprintf(&b, "Total thrust:    %.0f g\n", m.TotalThrustG)
	fmt.Fprintf(&b, "Thrust/weight:   %.2f (adjusted %.2f)\n", m.ThrustToWeight, m.Environment.AdjustedThrustToWeight)
	fmt.Fprintf(&b, "Power budget:    %.1f W\n", m.PowerBudgetW)
	fmt.Fprintf(&b, "Flight time:     %.1f min (adjusted %.1f min)\n", m.NominalFlightTimeMin, m.Environment.AdjustedFlightTimeMin)
	fmt.Fprintf(&b, "Result:          %s\n", styles.Verdict(v.Pass))

	writeList(&b, "Errors", v.Errors)
	writeList(&b, "Warnings", v.Warnings)
	writeList(&b, "Recommendations", v.Recommendations)
	writeList(&b, "Affected missions", resp.AffectedMissions)

	return strings.TrimRight(b.String(), "\n")
}
