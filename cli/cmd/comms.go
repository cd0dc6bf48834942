// ABOUTME: Comms command for the uxs-plan CLI
// ABOUTME: Analyzes every link in a comms plan file and lists relay needs

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

var commsFile string

var commsCmd = &cobra.Command{
	Use:   "comms",
	Short: "Analyze a comms plan",
	Long: `Compute the link budget, line of sight, and Fresnel clearance for every
node pair in a comms plan file, and recommend relays for failing links.

Exit codes:
  0 - All links usable
  1 - One or more links failed
  2 - Error (connectivity, unreadable file, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runComms(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(commsCmd)
	commsCmd.Flags().StringVarP(&commsFile, "file", "f", "", "Comms plan file (YAML or JSON)")
}

// runComms analyzes the comms plan and returns exit code
func runComms(ctx context.Context, w io.Writer) int {
	var input models.CommsAnalysisRequest
	if err := loadInput(commsFile, &input); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	analysis, err := c.AnalyzeComms(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(analysis))
	} else {
		fmt.Fprintln(w, formatCommsHuman(analysis))
	}

	return exitCodeFor(analysis.Feasibility.Pass)
}

// formatCommsHuman renders one line per link followed by relay advice
func formatCommsHuman(a *models.CommsAnalysis) string {
	var b strings.Builder

	title := "Comms plan"
	if a.Name != "" {
		title = "Comms plan " + a.Name
	}
	fmt.Fprintf(&b, "%s\n", styles.Title.Render(title))
	fmt.Fprintf(&b, "Terrain: %s  Weather: %s\n\n", a.Terrain, a.Weather)

	for _, l := range a.Links {
		fmt.Fprintf(&b, "%s %s -> %s  %.2f km  margin %.1f dB  %s\n",
			styles.Mark(!l.RelayRequired), l.FromName, l.ToName, l.DistanceKm, l.LinkMarginDB,
			styles.Quality(string(l.Quality)))
	}

	if len(a.RelayRecommendations) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.Label.Render("Relays:"))
		for _, r := range a.RelayRecommendations {
			fmt.Fprintf(&b, "  - %s at %.5f, %.5f: %s\n", r.Type, r.Location.Lat, r.Location.Lon, r.Description)
		}
	}

	b.WriteString("\n")
	writeFeasibility(&b, "Comms", a.Feasibility)

	return strings.TrimRight(b.String(), "\n")
}
