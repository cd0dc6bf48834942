// ABOUTME: Shared response models used across all calculators
// ABOUTME: Feasibility summary and JSON error envelope

package models

// Feasibility summarizes whether a calculation result is viable.
// Pass is derived strictly from Errors; warnings never affect it.
type Feasibility struct {
	Pass     bool     `json:"pass"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewFeasibility returns an empty feasibility summary with non-nil slices
// so it serializes as [] rather than null.
func NewFeasibility() Feasibility {
	return Feasibility{
		Errors:   []string{},
		Warnings: []string{},
	}
}

// AddError records a blocking problem.
func (f *Feasibility) AddError(msg string) {
	f.Errors = append(f.Errors, msg)
}

// AddWarning records a degraded-but-viable condition.
func (f *Feasibility) AddWarning(msg string) {
	f.Warnings = append(f.Warnings, msg)
}

// Finalize recomputes Pass from the error list.
func (f *Feasibility) Finalize() {
	f.Pass = len(f.Errors) == 0
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
