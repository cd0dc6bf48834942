// ABOUTME: Platform physics validator for weight, thrust, power, and endurance
// ABOUTME: Applies ISA air density and temperature battery derating to parts-derived metrics

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/uxsforge/mission-planner/backend/models"
)

// ISA and derating constants
const (
	seaLevelAirDensity = 1.225  // kg/m³
	standardTempK      = 288.15 // 15 °C
	lapseRate          = 0.0065 // K/m
	pressureExponent   = 5.255
	minBatteryDerating = 0.2
	defaultFCVoltage   = 12.0

	// Endurance thresholds in minutes
	minFlightTimeMin     = 5.0
	shortFlightTimeMin   = 10.0
	adjustedMarginMin    = 8.0
	marginalThrustWindow = 0.3
)

// PhysicsConfig holds the energy model parameters
type PhysicsConfig struct {
	DepthOfDischarge    float64
	Efficiency          float64
	DefaultTemperatureC float64
}

// DefaultPhysicsConfig returns the standard LiPo energy model
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		DepthOfDischarge:    0.8,
		Efficiency:          0.85,
		DefaultTemperatureC: 15,
	}
}

// PhysicsCalculator validates platform designs against physical limits
type PhysicsCalculator struct {
	cfg    PhysicsConfig
	inputs *InputValidator
}

// NewPhysicsCalculator creates a new physics calculator. Out-of-range
// parameters fall back to the defaults.
func NewPhysicsCalculator(cfg PhysicsConfig) *PhysicsCalculator {
	def := DefaultPhysicsConfig()
	if !(cfg.DepthOfDischarge > 0 && cfg.DepthOfDischarge <= 1) {
		cfg.DepthOfDischarge = def.DepthOfDischarge
	}
	if !(cfg.Efficiency > 0 && cfg.Efficiency <= 1) {
		cfg.Efficiency = def.Efficiency
	}
	cfg.DefaultTemperatureC = finiteOr(cfg.DefaultTemperatureC, def.DefaultTemperatureC)
	return &PhysicsCalculator{cfg: cfg, inputs: NewInputValidator()}
}

// Config returns the active energy model
func (c *PhysicsCalculator) Config() PhysicsConfig {
	return c.cfg
}

// AirDensity returns ISA air density in kg/m³. Altitudes beyond the model's
// range yield 0.
func AirDensity(altitudeM, temperatureC float64) float64 {
	base := 1 - lapseRate*altitudeM/standardTempK
	if base <= 0 {
		return 0
	}
	pressureRatio := math.Pow(base, pressureExponent)
	tempRatio := (temperatureC + 273.15) / standardTempK
	if tempRatio <= 0 {
		return 0
	}
	return finiteOr(seaLevelAirDensity*pressureRatio/tempRatio, 0)
}

// ThrustDeratingRatio is the fraction of sea-level thrust available
func ThrustDeratingRatio(altitudeM, temperatureC float64) float64 {
	return AirDensity(altitudeM, temperatureC) / seaLevelAirDensity
}

// BatteryDerating is the fraction of rated capacity available at temperatureC,
// never below 0.2.
func BatteryDerating(temperatureC float64) float64 {
	factor := 1.0
	switch {
	case temperatureC < -10:
		factor = 1 - (0.30 + 0.02*(-10-temperatureC))
	case temperatureC < 20:
		factor = 1 - 0.01*(20-temperatureC)
	case temperatureC > 40:
		factor = 1 - 0.005*(temperatureC-40)
	}
	if factor < minBatteryDerating || math.IsNaN(factor) {
		factor = minBatteryDerating
	}
	return factor
}

// AllUpWeight sums every part weight in grams
func AllUpWeight(c models.PlatformComponents) float64 {
	var total float64
	if c.Airframe != nil {
		total += c.Airframe.WeightG
	}
	for _, m := range c.Motors {
		total += m.WeightG
	}
	if c.ESC != nil {
		total += c.ESC.WeightG
	}
	if c.Battery != nil {
		total += c.Battery.WeightG
	}
	if c.FlightController != nil {
		total += c.FlightController.WeightG
	}
	for _, r := range c.Radios {
		total += r.WeightG
	}
	for _, s := range c.Sensors {
		total += s.WeightG
	}
	for _, a := range c.Accessories {
		total += a.WeightG
	}
	return total
}

// TotalThrust sums motor max thrust in grams
func TotalThrust(motors []models.Motor) float64 {
	var total float64
	for _, m := range motors {
		total += m.MaxThrustG
	}
	return total
}

// ThrustToWeight returns thrust/AUW, or 0 when AUW is 0
func ThrustToWeight(thrustG, auwG float64) float64 {
	if auwG <= 0 {
		return 0
	}
	return thrustG / auwG
}

// PowerBudget estimates total electrical draw in watts
func PowerBudget(c models.PlatformComponents) float64 {
	var total float64

	for _, m := range c.Motors {
		if m.MaxPowerW > 0 {
			total += m.MaxPowerW
		} else if m.MaxCurrentA > 0 && c.Battery != nil {
			total += m.MaxCurrentA * c.Battery.VoltageNominalV
		}
	}

	if c.FlightController != nil && c.FlightController.CurrentDrawMA > 0 {
		voltage := defaultFCVoltage
		if c.Battery != nil {
			voltage = c.Battery.VoltageNominalV
		}
		total += c.FlightController.CurrentDrawMA / 1000 * voltage
	}

	for _, r := range c.Radios {
		total += r.PowerConsumptionW
	}
	for _, s := range c.Sensors {
		total += s.PowerConsumptionW
	}
	return total
}

// FlightTimeMin estimates endurance in minutes from usable energy and draw
func (c *PhysicsCalculator) FlightTimeMin(battery *models.Battery, powerW float64) float64 {
	if battery == nil || battery.CapacityWh <= 0 || powerW <= 0 {
		return 0
	}
	usableWh := battery.CapacityWh * c.cfg.DepthOfDischarge * c.cfg.Efficiency
	return math.Max(0, usableWh/powerW*60)
}

// minThrustToWeight returns the nominal and environment-adjusted minimum T/W
func minThrustToWeight(pt models.PlatformType) (float64, float64) {
	if pt == models.PlatformMultiRotor {
		return 2.0, 1.5
	}
	return 1.2, 1.0
}

// ResolvePlatformType picks the threshold set: an explicit known type,
// then the airframe's type, then multi-rotor.
func ResolvePlatformType(raw string, airframe *models.Airframe) models.PlatformType {
	if pt, ok := models.ParsePlatformType(raw); ok {
		return pt
	}
	if airframe != nil {
		if pt, ok := models.ParsePlatformType(airframe.Type); ok {
			return pt
		}
	}
	return models.PlatformMultiRotor
}

// sanitizeComponents returns a copy with non-finite numbers zeroed
func sanitizeComponents(in models.PlatformComponents) models.PlatformComponents {
	out := in
	fix := func(p *models.Part) {
		p.WeightG = finiteOr(p.WeightG, 0)
		p.CostUSD = finiteOr(p.CostUSD, 0)
	}
	if in.Airframe != nil {
		a := *in.Airframe
		fix(&a.Part)
		a.MaxPayloadG = finiteOr(a.MaxPayloadG, 0)
		out.Airframe = &a
	}
	out.Motors = make([]models.Motor, len(in.Motors))
	for i, m := range in.Motors {
		fix(&m.Part)
		m.MaxThrustG = finiteOr(m.MaxThrustG, 0)
		m.MaxCurrentA = finiteOr(m.MaxCurrentA, 0)
		m.MaxPowerW = finiteOr(m.MaxPowerW, 0)
		out.Motors[i] = m
	}
	if in.ESC != nil {
		e := *in.ESC
		fix(&e.Part)
		e.MaxCurrentA = finiteOr(e.MaxCurrentA, 0)
		out.ESC = &e
	}
	if in.Battery != nil {
		b := *in.Battery
		fix(&b.Part)
		b.CapacityWh = finiteOr(b.CapacityWh, 0)
		b.VoltageNominalV = finiteOr(b.VoltageNominalV, 0)
		b.MaxDischargeA = finiteOr(b.MaxDischargeA, 0)
		out.Battery = &b
	}
	if in.FlightController != nil {
		fc := *in.FlightController
		fix(&fc.Part)
		fc.CurrentDrawMA = finiteOr(fc.CurrentDrawMA, 0)
		out.FlightController = &fc
	}
	out.Radios = make([]models.Radio, len(in.Radios))
	for i, r := range in.Radios {
		fix(&r.Part)
		r.PowerConsumptionW = finiteOr(r.PowerConsumptionW, 0)
		out.Radios[i] = r
	}
	out.Sensors = make([]models.Sensor, len(in.Sensors))
	for i, s := range in.Sensors {
		fix(&s.Part)
		s.PowerConsumptionW = finiteOr(s.PowerConsumptionW, 0)
		out.Sensors[i] = s
	}
	out.Accessories = make([]models.Accessory, len(in.Accessories))
	for i, a := range in.Accessories {
		fix(&a.Part)
		out.Accessories[i] = a
	}
	return out
}

// Validate computes platform metrics and checks them against physical
// and safety thresholds. It always returns a full result.
func (c *PhysicsCalculator) Validate(components models.PlatformComponents, env models.Environment, platformType string) models.ValidationResult {
	result := models.ValidationResult{
		Errors:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}

	// Input errors are reported alongside physics errors
	result.Errors = append(result.Errors, c.inputs.Check(components)...)
	result.Errors = append(result.Errors, c.inputs.Check(env)...)

	parts := sanitizeComponents(components)
	altitudeM := math.Max(0, finiteOr(env.AltitudeM, 0))
	temperatureC := finiteOr(env.Temperature(c.cfg.DefaultTemperatureC), c.cfg.DefaultTemperatureC)
	pt := ResolvePlatformType(platformType, parts.Airframe)
	result.PlatformType = pt

	auw := AllUpWeight(parts)
	totalThrust := TotalThrust(parts.Motors)
	thrustToWeight := ThrustToWeight(totalThrust, auw)
	powerBudget := PowerBudget(parts)

	density := AirDensity(altitudeM, temperatureC)
	thrustRatio := density / seaLevelAirDensity
	batteryDerating := BatteryDerating(temperatureC)

	adjustedThrust := totalThrust * thrustRatio
	adjustedTW := ThrustToWeight(adjustedThrust, auw)

	// Derated copy; the caller's battery is never modified
	var adjustedBattery *models.Battery
	if parts.Battery != nil {
		b := *parts.Battery
		b.CapacityWh *= batteryDerating
		adjustedBattery = &b
	}

	nominalFlight := c.FlightTimeMin(parts.Battery, powerBudget)
	adjustedFlight := c.FlightTimeMin(adjustedBattery, powerBudget)

	result.Metrics = models.PlatformMetrics{
		AUWG:                 auw,
		AUWKg:                auw / 1000,
		TotalThrustG:         totalThrust,
		ThrustToWeight:       thrustToWeight,
		PowerBudgetW:         powerBudget,
		NominalFlightTimeMin: nominalFlight,
		Environment: models.EnvironmentMetrics{
			AltitudeM:                   altitudeM,
			TemperatureC:                temperatureC,
			AirDensityKgM3:              density,
			ThrustReductionPct:          (1 - thrustRatio) * 100,
			BatteryCapacityReductionPct: (1 - batteryDerating) * 100,
			AdjustedThrustG:             adjustedThrust,
			AdjustedThrustToWeight:      adjustedTW,
			AdjustedFlightTimeMin:       adjustedFlight,
		},
	}

	minTW, minAdjustedTW := minThrustToWeight(pt)

	if thrustToWeight < minTW {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Thrust-to-weight ratio (%.2f) is below minimum (%.1f) for %s", thrustToWeight, minTW, pt))
	} else if thrustToWeight < minTW+marginalThrustWindow {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Thrust-to-weight ratio (%.2f) is marginal. Recommend %.1f or higher.", thrustToWeight, minTW+0.5))
	}

	if adjustedTW < minAdjustedTW {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Adjusted T/W (%.2f) at %.0fm altitude is insufficient. Consider more powerful motors.", adjustedTW, altitudeM))
	}

	if parts.Battery == nil || parts.Battery.CapacityWh <= 0 {
		result.Errors = append(result.Errors, "No battery selected")
	}

	if nominalFlight < minFlightTimeMin {
		result.Errors = append(result.Errors, "Estimated flight time is too short (< 5 minutes)")
	} else if nominalFlight < shortFlightTimeMin {
		result.Warnings = append(result.Warnings, "Flight time is short (< 10 minutes). Consider larger battery.")
	}

	if nominalFlight > 0 && adjustedFlight < nominalFlight*0.5 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Environmental conditions reduce flight time by %.0f%%", (1-adjustedFlight/nominalFlight)*100))
	}

	if parts.Airframe != nil && parts.Airframe.MaxPayloadG > 0 {
		payload := auw - parts.Airframe.WeightG
		if payload > parts.Airframe.MaxPayloadG {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Payload (%.0fg) exceeds airframe capacity (%.0fg)", payload, parts.Airframe.MaxPayloadG))
		}
	}

	if parts.ESC != nil && len(parts.Motors) > 0 {
		var maxMotorCurrent float64
		for _, m := range parts.Motors {
			maxMotorCurrent = math.Max(maxMotorCurrent, m.MaxCurrentA)
		}
		if maxMotorCurrent > parts.ESC.MaxCurrentA {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Motor max current (%gA) exceeds ESC rating (%gA)", maxMotorCurrent, parts.ESC.MaxCurrentA))
		}
	}

	if b := parts.Battery; b != nil && b.MaxDischargeA > 0 && b.VoltageNominalV > 0 && powerBudget > 0 {
		estimatedCurrent := powerBudget / b.VoltageNominalV
		if estimatedCurrent > b.MaxDischargeA {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Estimated current draw (%.1fA) may exceed battery discharge limit (%gA)", estimatedCurrent, b.MaxDischargeA))
		}
	}

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		result.Recommendations = append(result.Recommendations, "Platform design looks good!")
	} else {
		if thrustToWeight < minTW {
			result.Recommendations = append(result.Recommendations, "Increase motor size/KV or reduce weight")
		}
		if nominalFlight < shortFlightTimeMin {
			result.Recommendations = append(result.Recommendations, "Use a larger battery for longer flight time")
		}
		if adjustedFlight < adjustedMarginMin {
			result.Recommendations = append(result.Recommendations, "Consider altitude/temperature effects - add 20% battery margin")
		}
	}

	result.Pass = len(result.Errors) == 0

	slog.Debug("Platform validated",
		"platform_type", pt,
		"auw_g", auw,
		"thrust_to_weight", thrustToWeight,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)

	return result
}

// ValidateDesign validates a design and returns a copy carrying the new result
func (c *PhysicsCalculator) ValidateDesign(design models.PlatformDesign, platformType string) models.PlatformDesign {
	if platformType == "" {
		platformType = string(design.Type)
	}
	result := c.Validate(design.Components, design.Environment, platformType)
	design.Type = result.PlatformType
	design.Validation = &result
	return design
}

// BatteryRequirements estimates how many batteries a design needs to cover
// a mission duration with a 20% margin. env overrides the design's environment.
func (c *PhysicsCalculator) BatteryRequirements(design models.PlatformDesign, missionDurationHours float64, env *models.Environment) models.BatteryRequirements {
	parts := sanitizeComponents(design.Components)
	if parts.Battery == nil {
		return models.BatteryRequirements{Error: "No battery configured"}
	}

	environment := design.Environment
	if env != nil {
		environment = *env
	}
	temperatureC := finiteOr(environment.Temperature(c.cfg.DefaultTemperatureC), c.cfg.DefaultTemperatureC)
	derating := BatteryDerating(temperatureC)

	effective := *parts.Battery
	effective.CapacityWh *= derating

	flightTime := c.FlightTimeMin(&effective, PowerBudget(parts))
	missionHours := math.Max(0, finiteOr(missionDurationHours, 0))
	missionMin := missionHours * 60

	req := models.BatteryRequirements{
		FlightTimePerBatteryMin: flightTime,
		TotalMissionTimeMin:     missionMin,
		EffectiveCapacityWh:     effective.CapacityWh,
		CapacityReductionPct:    (1 - derating) * 100,
		RedundancyMargin:        batteryMargin - 1,
	}
	if missionHours > maxMissionDurationHours {
		req.Error = fmt.Sprintf("Mission duration must be <= %d hours", maxMissionDurationHours)
		return req
	}
	if flightTime <= 0 {
		req.Error = "Flight time per battery is zero - check battery capacity and power budget"
		return req
	}
	count := math.Ceil(missionMin / flightTime * batteryMargin)
	if math.IsNaN(count) || count > maxBatteriesPerPlatform {
		req.Error = fmt.Sprintf("More than %d batteries needed - check battery capacity and power budget", maxBatteriesPerPlatform)
		return req
	}
	req.BatteriesNeeded = int(count)
	return req
}

// BOM builds the bill of materials for a design
func (c *PhysicsCalculator) BOM(design models.PlatformDesign) models.BOM {
	bom := models.BOM{
		DesignID:   design.ID,
		DesignName: design.Name,
		Items:      []models.BOMItem{},
	}

	add := func(p models.Part, category string) {
		item := models.BOMItem{
			Category:     category,
			Name:         p.Name,
			Manufacturer: orNA(p.Manufacturer),
			PartNumber:   orNA(p.PartNumber),
			Quantity:     1,
			UnitWeightG:  finiteOr(p.WeightG, 0),
			UnitCostUSD:  finiteOr(p.CostUSD, 0),
		}
		item.TotalWeightG = item.UnitWeightG * float64(item.Quantity)
		item.TotalCostUSD = item.UnitCostUSD * float64(item.Quantity)
		bom.Items = append(bom.Items, item)
		bom.Totals.WeightG += item.TotalWeightG
		bom.Totals.CostUSD += item.TotalCostUSD
	}

	comp := design.Components
	if comp.Airframe != nil {
		add(comp.Airframe.Part, "Airframe")
	}
	for _, m := range comp.Motors {
		add(m.Part, "Motors")
	}
	if comp.ESC != nil {
		add(comp.ESC.Part, "ESC")
	}
	if comp.Battery != nil {
		add(comp.Battery.Part, "Battery")
	}
	if comp.FlightController != nil {
		add(comp.FlightController.Part, "Flight Controller")
	}
	for _, r := range comp.Radios {
		add(r.Part, "Radio")
	}
	for _, s := range comp.Sensors {
		add(s.Part, "Sensor")
	}
	for _, a := range comp.Accessories {
		add(a.Part, "Accessories")
	}
	return bom
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
