// ABOUTME: Request and response models for the combined mission feasibility check
// ABOUTME: Bundles platform validation, comms analysis, and logistics in one call

package models

// FeasibilityRequest carries everything needed to judge a whole mission
type FeasibilityRequest struct {
	Designs []PlatformDesign     `json:"designs" yaml:"designs"`
	Comms   CommsAnalysisRequest `json:"comms" yaml:"comms"`
	Plan    MissionPlan          `json:"plan" yaml:"plan"`
}

// PlatformCheck is the validation outcome for one design
type PlatformCheck struct {
	DesignID   string           `json:"design_id"`
	DesignName string           `json:"design_name"`
	Validation ValidationResult `json:"validation"`
}

// FeasibilityReport is the combined verdict. Pass is true only when every
// platform passes and both the comms and logistics feasibility pass.
type FeasibilityReport struct {
	Pass      bool             `json:"pass"`
	Platforms []PlatformCheck  `json:"platforms"`
	Comms     CommsAnalysis    `json:"comms"`
	Logistics MissionLogistics `json:"logistics"`
	Summary   []string         `json:"summary"`
}
