// ABOUTME: Root command for the uxs-plan CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const (
	defaultAPIURL = "http://localhost:8080"
	apiURLEnvVar  = "UXS_PLANNER_API_URL"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "uxs-plan",
	Short: "CLI for the UxS mission planner",
	Long: `uxs-plan is a command-line interface for the UxS mission feasibility engine.

It validates platform designs, analyzes comms plans, computes mission logistics,
and gates CI/CD pipelines on whole-mission feasibility.

Input files may be YAML (.yaml, .yml) or JSON (.json).

Environment Variables:
  UXS_PLANNER_API_URL  Backend API URL (default: http://localhost:8080)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides UXS_PLANNER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv(apiURLEnvVar); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
