// ABOUTME: Tests for request boundary validation
// ABOUTME: Verifies field errors are reported by JSON path with readable messages

package services

import (
	"math"
	"strings"
	"testing"

	"github.com/uxsforge/mission-planner/backend/models"
)

func TestInputValidator_ValidDesign(t *testing.T) {
	iv := NewInputValidator()
	design := quadDesign()

	if errs := iv.Check(design); errs != nil {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestInputValidator_NegativeWeight(t *testing.T) {
	iv := NewInputValidator()
	design := quadDesign()
	design.Components.Motors[1].WeightG = -5

	errs := iv.Check(design)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}
	expected := "components.motors[1].weight_g must be >= 0"
	if errs[0] != expected {
		t.Errorf("Expected %q, got %q", expected, errs[0])
	}
}

func TestInputValidator_NestedPointerPart(t *testing.T) {
	iv := NewInputValidator()
	design := quadDesign()
	design.Components.Battery.CapacityWh = -1

	errs := iv.Check(design)
	if len(errs) != 1 || !strings.Contains(errs[0], "battery.capacity_wh") {
		t.Errorf("Expected battery.capacity_wh error, got %v", errs)
	}
}

func TestInputValidator_NodeType(t *testing.T) {
	iv := NewInputValidator()
	req := models.CommsAnalysisRequest{
		Nodes: []models.CommsNode{{ID: "a", Type: "satellite\n"}},
	}

	errs := iv.Check(req)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0], "nodes[0].type must be one of") {
		t.Errorf("Unexpected message: %q", errs[0])
	}
	if strings.Contains(errs[0], "\n") {
		t.Errorf("Expected control characters to be stripped, got %q", errs[0])
	}
}

func TestInputValidator_MissingNodeID(t *testing.T) {
	iv := NewInputValidator()
	req := models.CommsAnalysisRequest{Nodes: []models.CommsNode{{Name: "anon"}}}

	errs := iv.Check(req)
	if len(errs) != 1 || errs[0] != "nodes[0].id is required" {
		t.Errorf("Expected required id error, got %v", errs)
	}
}

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"normal", "normal"},
		{"with\nnewline", "withnewline"},
		{"with\x00null", "withnull"},
		{"tab\there", "tabhere"},
		{"del\x7fchar", "delchar"},
	}

	for _, tt := range tests {
		if got := sanitizeForLog(tt.input); got != tt.expected {
			t.Errorf("sanitizeForLog(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFiniteOr(t *testing.T) {
	if got := finiteOr(math.NaN(), 3); got != 3 {
		t.Errorf("Expected NaN to fall back to 3, got %v", got)
	}
	if got := finiteOr(math.Inf(1), 0); got != 0 {
		t.Errorf("Expected +Inf to fall back to 0, got %v", got)
	}
	if got := finiteOr(-4.5, 0); got != -4.5 {
		t.Errorf("Expected finite value preserved, got %v", got)
	}
}
