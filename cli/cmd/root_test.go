// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"testing"
)

func TestGetAPIURL_Default(t *testing.T) {
	t.Setenv("UXS_PLANNER_API_URL", "")
	apiURL = ""

	url := GetAPIURL()
	if url != "http://localhost:8080" {
		t.Errorf("expected default URL http://localhost:8080, got %s", url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	t.Setenv("UXS_PLANNER_API_URL", "http://planner.example.com")
	apiURL = ""

	url := GetAPIURL()
	if url != "http://planner.example.com" {
		t.Errorf("expected http://planner.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	t.Setenv("UXS_PLANNER_API_URL", "http://planner.example.com")
	apiURL = "http://flag-override.example.com"
	defer func() { apiURL = "" }()

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"health", "validate", "comms", "logistics", "check"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %s to be registered", name)
		}
	}
}
