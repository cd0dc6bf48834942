// ABOUTME: Data models for platform parts, designs, and physics validation results
// ABOUTME: Parts carry weights in grams, power in watts, energy in watt-hours

package models

// PlatformType selects the thrust-to-weight thresholds used during validation
type PlatformType string

const (
	PlatformMultiRotor PlatformType = "multi-rotor"
	PlatformFixedWing  PlatformType = "fixed-wing"
	PlatformVTOL       PlatformType = "vtol"
	PlatformGround     PlatformType = "ground"
)

// ParsePlatformType maps a raw string to a known platform type.
// Unknown values report ok=false so callers can fall back.
func ParsePlatformType(s string) (PlatformType, bool) {
	switch PlatformType(s) {
	case PlatformMultiRotor, PlatformFixedWing, PlatformVTOL, PlatformGround:
		return PlatformType(s), true
	default:
		return "", false
	}
}

// Part holds the fields common to every component in the parts library
type Part struct {
	ID           string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string  `json:"name" yaml:"name"`
	Manufacturer string  `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	PartNumber   string  `json:"part_number,omitempty" yaml:"part_number,omitempty"`
	WeightG      float64 `json:"weight_g" yaml:"weight_g" validate:"gte=0"`
	CostUSD      float64 `json:"cost_usd,omitempty" yaml:"cost_usd,omitempty" validate:"gte=0"`
}

// Airframe is the structural frame of a platform
type Airframe struct {
	Part        `yaml:",inline"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	MaxPayloadG float64 `json:"max_payload_g,omitempty" yaml:"max_payload_g,omitempty" validate:"gte=0"`
}

// Motor is a single propulsion motor with its propeller
type Motor struct {
	Part        `yaml:",inline"`
	KV          float64 `json:"kv,omitempty" yaml:"kv,omitempty" validate:"gte=0"`
	MaxThrustG  float64 `json:"max_thrust_g" yaml:"max_thrust_g" validate:"gte=0"`
	MaxCurrentA float64 `json:"max_current_a,omitempty" yaml:"max_current_a,omitempty" validate:"gte=0"`
	MaxPowerW   float64 `json:"max_power_w,omitempty" yaml:"max_power_w,omitempty" validate:"gte=0"`
}

// ESC is the electronic speed controller
type ESC struct {
	Part        `yaml:",inline"`
	MaxCurrentA float64 `json:"max_current_a" yaml:"max_current_a" validate:"gte=0"`
}

// Battery is the platform's energy store
type Battery struct {
	Part            `yaml:",inline"`
	Chemistry       string  `json:"chemistry,omitempty" yaml:"chemistry,omitempty"`
	CapacityWh      float64 `json:"capacity_wh" yaml:"capacity_wh" validate:"gte=0"`
	VoltageNominalV float64 `json:"voltage_nominal_v" yaml:"voltage_nominal_v" validate:"gte=0"`
	MaxDischargeA   float64 `json:"max_discharge_a,omitempty" yaml:"max_discharge_a,omitempty" validate:"gte=0"`
}

// FlightController is the autopilot board
type FlightController struct {
	Part          `yaml:",inline"`
	CurrentDrawMA float64 `json:"current_draw_ma,omitempty" yaml:"current_draw_ma,omitempty" validate:"gte=0"`
}

// Radio is an onboard datalink or control radio
type Radio struct {
	Part              `yaml:",inline"`
	FrequencyBand     string  `json:"frequency_band,omitempty" yaml:"frequency_band,omitempty"`
	PowerConsumptionW float64 `json:"power_consumption_w,omitempty" yaml:"power_consumption_w,omitempty" validate:"gte=0"`
}

// Sensor is a payload sensor (camera, lidar, etc.)
type Sensor struct {
	Part              `yaml:",inline"`
	Type              string  `json:"type,omitempty" yaml:"type,omitempty"`
	PowerConsumptionW float64 `json:"power_consumption_w,omitempty" yaml:"power_consumption_w,omitempty" validate:"gte=0"`
}

// Accessory is any other carried item (mounts, lights, parachutes)
type Accessory struct {
	Part     `yaml:",inline"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// PlatformComponents is the parts selection for one platform design.
// Single-slot parts are pointers; absent parts contribute nothing.
type PlatformComponents struct {
	Airframe         *Airframe         `json:"airframe,omitempty" yaml:"airframe,omitempty"`
	Motors           []Motor           `json:"motors" yaml:"motors" validate:"dive"`
	ESC              *ESC              `json:"esc,omitempty" yaml:"esc,omitempty"`
	Battery          *Battery          `json:"battery,omitempty" yaml:"battery,omitempty"`
	FlightController *FlightController `json:"flight_controller,omitempty" yaml:"flight_controller,omitempty"`
	Radios           []Radio           `json:"radios" yaml:"radios" validate:"dive"`
	Sensors          []Sensor          `json:"sensors" yaml:"sensors" validate:"dive"`
	Accessories      []Accessory       `json:"accessories" yaml:"accessories" validate:"dive"`
}

// Environment describes the operating conditions for a platform or mission.
// TemperatureC is a pointer so an explicit 0 °C is distinguishable from unset.
type Environment struct {
	AltitudeM    float64  `json:"altitude_m" yaml:"altitude_m" validate:"gte=0"`
	TemperatureC *float64 `json:"temperature_c,omitempty" yaml:"temperature_c,omitempty"`
}

// Temperature returns the configured temperature or def when unset
func (e Environment) Temperature(def float64) float64 {
	if e.TemperatureC == nil {
		return def
	}
	return *e.TemperatureC
}

// PlatformDesign is a named platform with its parts and last validation
type PlatformDesign struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Type        PlatformType       `json:"type,omitempty" yaml:"type,omitempty"`
	Components  PlatformComponents `json:"components" yaml:"components"`
	Environment Environment        `json:"environment" yaml:"environment"`
	Validation  *ValidationResult  `json:"validation,omitempty" yaml:"-"`
	Notes       string             `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// EnvironmentMetrics holds the environment-adjusted figures
type EnvironmentMetrics struct {
	AltitudeM                   float64 `json:"altitude_m"`
	TemperatureC                float64 `json:"temperature_c"`
	AirDensityKgM3              float64 `json:"air_density_kg_m3"`
	ThrustReductionPct          float64 `json:"thrust_reduction_pct"`
	BatteryCapacityReductionPct float64 `json:"battery_capacity_reduction_pct"`
	AdjustedThrustG             float64 `json:"adjusted_thrust_g"`
	AdjustedThrustToWeight      float64 `json:"adjusted_thrust_to_weight"`
	AdjustedFlightTimeMin       float64 `json:"adjusted_flight_time_min"`
}

// PlatformMetrics holds the nominal physics figures for a design
type PlatformMetrics struct {
	AUWG                 float64            `json:"auw_g"`
	AUWKg                float64            `json:"auw_kg"`
	TotalThrustG         float64            `json:"total_thrust_g"`
	ThrustToWeight       float64            `json:"thrust_to_weight"`
	PowerBudgetW         float64            `json:"power_budget_w"`
	NominalFlightTimeMin float64            `json:"nominal_flight_time_min"`
	Environment          EnvironmentMetrics `json:"environment"`
}

// ValidationResult is the full output of a platform physics validation.
// It is regenerated wholesale on every call, never patched.
type ValidationResult struct {
	Pass            bool            `json:"pass"`
	PlatformType    PlatformType    `json:"platform_type"`
	Errors          []string        `json:"errors"`
	Warnings        []string        `json:"warnings"`
	Recommendations []string        `json:"recommendations"`
	Metrics         PlatformMetrics `json:"metrics"`
}

// FlightTimeMin returns the endurance used for sustainment planning:
// adjusted if available, else nominal, else 0.
func (r *ValidationResult) FlightTimeMin() float64 {
	if r == nil {
		return 0
	}
	if r.Metrics.Environment.AdjustedFlightTimeMin > 0 {
		return r.Metrics.Environment.AdjustedFlightTimeMin
	}
	return r.Metrics.NominalFlightTimeMin
}

// ValidatePlatformRequest is the request body for platform validation
type ValidatePlatformRequest struct {
	Design       PlatformDesign `json:"design"`
	PlatformType string         `json:"platform_type,omitempty"`
}

// ValidatePlatformResponse returns the validated design and any stored
// mission plans that reference it and therefore need recalculation.
type ValidatePlatformResponse struct {
	Design           PlatformDesign   `json:"design"`
	Validation       ValidationResult `json:"validation"`
	AffectedMissions []string         `json:"affected_missions"`
}

// BatteryRequirementsRequest asks how many batteries a design needs for a duration
type BatteryRequirementsRequest struct {
	Design               PlatformDesign `json:"design"`
	MissionDurationHours float64        `json:"mission_duration_hours"`
	Environment          *Environment   `json:"environment,omitempty"`
}

// BatteryRequirements is the per-design battery estimate for a mission duration
type BatteryRequirements struct {
	Error                   string  `json:"error,omitempty"`
	FlightTimePerBatteryMin float64 `json:"flight_time_per_battery_min"`
	BatteriesNeeded         int     `json:"batteries_needed"`
	TotalMissionTimeMin     float64 `json:"total_mission_time_min"`
	EffectiveCapacityWh     float64 `json:"effective_capacity_wh"`
	CapacityReductionPct    float64 `json:"capacity_reduction_pct"`
	RedundancyMargin        float64 `json:"redundancy_margin"`
}

// BOMItem is one line of a bill of materials
type BOMItem struct {
	Category     string  `json:"category"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	PartNumber   string  `json:"part_number"`
	Quantity     int     `json:"quantity"`
	UnitWeightG  float64 `json:"unit_weight_g"`
	TotalWeightG float64 `json:"total_weight_g"`
	UnitCostUSD  float64 `json:"unit_cost_usd"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// BOMTotals sums a bill of materials
type BOMTotals struct {
	WeightG float64 `json:"weight_g"`
	CostUSD float64 `json:"cost_usd"`
}

// BOM is the bill of materials for a design
type BOM struct {
	DesignID   string    `json:"design_id"`
	DesignName string    `json:"design_name"`
	Items      []BOMItem `json:"items"`
	Totals     BOMTotals `json:"totals"`
}
