// ABOUTME: Entry point for the uxs-plan CLI
// ABOUTME: Command-line tool for mission feasibility checks and CI/CD integration

package main

import (
	"fmt"
	"os"

	"github.com/uxsforge/mission-planner/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
