// ABOUTME: Health command for the uxs-plan CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uxsforge/mission-planner/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the mission planner backend and verify service status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	return fmt.Sprintf(`Backend:       %s
Status:        %s
Comms Cache:   %t (%d entries)
Designs:       %d
Plans:         %d`, url, resp.Status, resp.Cache.Enabled, resp.Cache.CommsEntries,
		resp.Registry.Designs, resp.Registry.Plans)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	return formatJSON(map[string]interface{}{
		"backend": url,
		"status":  resp.Status,
		"cache": map[string]interface{}{
			"enabled":       resp.Cache.Enabled,
			"comms_entries": resp.Cache.CommsEntries,
		},
		"registry": map[string]int{
			"designs": resp.Registry.Designs,
			"plans":   resp.Registry.Plans,
		},
	})
}
