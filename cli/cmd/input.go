// ABOUTME: Input file loading for uxs-plan commands
// ABOUTME: Decodes YAML or JSON documents chosen by file extension

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadInput reads path and decodes it into v. Unknown fields are rejected
// so a misspelled key fails loudly instead of silently taking a default.
func loadInput(path string, v any) error {
	if path == "" {
		return fmt.Errorf("an input file is required (-f)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to parse %s as YAML: %w", path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to parse %s as JSON: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported input format %q (use .yaml, .yml, or .json)", ext)
	}
	return nil
}
