// ABOUTME: Data models for mission plans, sustainment results, and packing lists
// ABOUTME: Durations in hours, battery weights in grams, packing weights in kilograms

package models

// PhaseType is a standard mission phase
type PhaseType string

const (
	PhaseORP         PhaseType = "ORP"
	PhaseInfil       PhaseType = "INFIL"
	PhaseOnStation   PhaseType = "ON_STATION"
	PhaseExfil       PhaseType = "EXFIL"
	PhaseContingency PhaseType = "CONTINGENCY"
)

// ActivityLevel scales platform power draw during a phase
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

// MissionTeam is the set of operators carrying the mission load
type MissionTeam struct {
	Size  int      `json:"size" yaml:"size"`
	Roles []string `json:"roles" yaml:"roles"`
}

// MissionPhase is one segment of the mission timeline
type MissionPhase struct {
	ID              string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name            string        `json:"name" yaml:"name"`
	Type            PhaseType     `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=ORP INFIL ON_STATION EXFIL CONTINGENCY"`
	DurationHours   float64       `json:"duration_hours" yaml:"duration_hours" validate:"gte=0,lte=8760"`
	ActivityLevel   ActivityLevel `json:"activity_level,omitempty" yaml:"activity_level,omitempty"`
	PlatformsActive []string      `json:"platforms_active" yaml:"platforms_active"`
}

// MissionPlan is the input to the sustainment calculation
type MissionPlan struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	DurationHours float64        `json:"duration_hours" yaml:"duration_hours" validate:"gte=0,lte=8760"`
	Team          MissionTeam    `json:"team" yaml:"team"`
	Terrain       string         `json:"terrain" yaml:"terrain"`
	Phases        []MissionPhase `json:"phases" yaml:"phases" validate:"dive"`
	Platforms     []string       `json:"platforms" yaml:"platforms"`
}

// References reports whether any phase or the plan's platform list names platformID
func (p MissionPlan) References(platformID string) bool {
	for _, id := range p.Platforms {
		if id == platformID {
			return true
		}
	}
	for _, phase := range p.Phases {
		for _, id := range phase.PlatformsActive {
			if id == platformID {
				return true
			}
		}
	}
	return false
}

// BatterySummary is the battery fitted to a platform
type BatterySummary struct {
	Name       string  `json:"name"`
	CapacityWh float64 `json:"capacity_wh"`
	WeightG    float64 `json:"weight_g"`
}

// PlatformBatteries is the per-platform battery requirement
type PlatformBatteries struct {
	PlatformID      string         `json:"platform_id"`
	PlatformName    string         `json:"platform_name"`
	Battery         BatterySummary `json:"battery"`
	FlightTimeHours float64        `json:"flight_time_hours"`
	OperatingHours  float64        `json:"operating_hours"`
	BatteriesNeeded int            `json:"batteries_needed"`
	WeightKg        float64        `json:"weight_kg"`
}

// BatterySwap is one scheduled battery change
type BatterySwap struct {
	TimeHours     float64 `json:"time_hours"`
	Phase         string  `json:"phase"`
	PlatformID    string  `json:"platform_id"`
	PlatformName  string  `json:"platform_name"`
	BatteryNumber int     `json:"battery_number"`
	Action        string  `json:"action"`
}

// PhasePower is the estimated electrical load during one phase
type PhasePower struct {
	Phase         string        `json:"phase"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	PowerW        float64       `json:"power_w"`
}

// SustainmentResult is the battery plan for a mission
type SustainmentResult struct {
	TotalDurationHours  float64             `json:"total_duration_hours"`
	BatteriesByPlatform []PlatformBatteries `json:"batteries_by_platform"`
	TotalBatteries      int                 `json:"total_batteries"`
	WeightKg            float64             `json:"weight_kg"`
	BatterySwaps        []BatterySwap       `json:"battery_swaps"`
	PhasePower          []PhasePower        `json:"phase_power"`
	Feasibility         Feasibility         `json:"feasibility"`
}

// PackingItem is one line of an operator's packing list
type PackingItem struct {
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	UnitWeightKg  float64 `json:"unit_weight_kg"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

// PackingList is the load carried by one operator
type PackingList struct {
	OperatorID           string        `json:"operator_id"`
	Role                 string        `json:"role"`
	Items                []PackingItem `json:"items"`
	TotalWeightKg        float64       `json:"total_weight_kg"`
	WeightLimitKg        float64       `json:"weight_limit_kg"`
	WeightLimitMaxKg     float64       `json:"weight_limit_max_kg"`
	Overweight           bool          `json:"overweight"`
	CriticallyOverweight bool          `json:"critically_overweight"`
}

// LogisticsRequest is the input to a mission logistics calculation.
// Designs not supplied inline are looked up among previously validated designs.
type LogisticsRequest struct {
	Plan    MissionPlan      `json:"plan" yaml:"plan"`
	Designs []PlatformDesign `json:"designs,omitempty" yaml:"designs,omitempty"`
}

// MissionLogistics is the output of a mission logistics calculation
type MissionLogistics struct {
	PlanID       string            `json:"plan_id"`
	Sustainment  SustainmentResult `json:"sustainment"`
	PackingLists []PackingList     `json:"packing_lists"`
}
