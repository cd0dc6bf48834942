// ABOUTME: Sustainment and packing calculator for mission battery logistics
// ABOUTME: Derives battery counts, swap schedules, phase power, and per-operator loads

package services

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/uxsforge/mission-planner/backend/models"
)

const (
	batteryMargin            = 1.2 // 20% spare batteries
	defaultFlightTimeMin     = 20.0
	batteryWeightPerOperator = 10.0 // kg before warning
	defaultActivityFactor    = 0.8
	defaultWeightTerrain     = "temperate"
	swapAction               = "Battery swap required"

	// Matches the lte bound on mission and phase duration_hours
	maxMissionDurationHours = 8760
	maxBatteriesPerPlatform = 10000
)

// WeightLimit is the standard and maximum carried load in kg
type WeightLimit struct {
	Standard float64
	Maximum  float64
}

// weightLimits are per-operator load limits by terrain
var weightLimits = map[string]WeightLimit{
	"urban":     {Standard: 25, Maximum: 30},
	"suburban":  {Standard: 22, Maximum: 27},
	"temperate": {Standard: 20, Maximum: 25},
	"mountain":  {Standard: 18, Maximum: 22},
	"arctic":    {Standard: 15, Maximum: 20},
	"desert":    {Standard: 18, Maximum: 23},
	"jungle":    {Standard: 16, Maximum: 21},
}

// WeightLimitFor returns the limits for a terrain, temperate if unknown
func WeightLimitFor(terrain string) WeightLimit {
	if l, ok := weightLimits[terrain]; ok {
		return l
	}
	return weightLimits[defaultWeightTerrain]
}

type equipmentItem struct {
	name     string
	weightKg float64
}

// roleEquipment is the fixed kit carried by each role
var roleEquipment = map[string][]equipmentItem{
	"Team Lead": {
		{"Tablet/Planning Device", 0.8},
		{"Radio (Command)", 0.5},
		{"Maps/References", 0.3},
	},
	"UxS Pilot": {
		{"Controller", 0.6},
		{"FPV Goggles", 0.4},
		{"Spare Props/Tools", 0.5},
	},
	"Payload Operator": {
		{"Payload Controller", 0.5},
		{"Display/Tablet", 0.7},
	},
	"Mesh Lead": {
		{"Mesh Router", 0.4},
		{"Antennas", 0.6},
		{"Network Diagnostic Tools", 0.3},
	},
	"Comms Specialist": {
		{"Radio Set", 1.2},
		{"Crypto Device", 0.4},
	},
	"Medic": {
		{"Medical Kit", 2.5},
	},
}

// activityFactor scales validated power budgets by phase activity
var activityFactor = map[models.ActivityLevel]float64{
	models.ActivityLow:    0.6,
	models.ActivityMedium: 0.8,
	models.ActivityHigh:   1.0,
}

// ActivityFactor returns the power multiplier for an activity level
func ActivityFactor(level models.ActivityLevel) float64 {
	if f, ok := activityFactor[level]; ok {
		return f
	}
	return defaultActivityFactor
}

// SustainmentCalculator computes mission battery logistics
type SustainmentCalculator struct {
	inputs *InputValidator
}

// NewSustainmentCalculator creates a new sustainment calculator
func NewSustainmentCalculator() *SustainmentCalculator {
	return &SustainmentCalculator{inputs: NewInputValidator()}
}

// uniqueIDs returns ids in first-appearance order without repeats
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Logistics computes the sustainment result and packing lists for a plan.
// Designs are matched to phase platform ids by design id.
func (c *SustainmentCalculator) Logistics(plan models.MissionPlan, designs []models.PlatformDesign) models.MissionLogistics {
	feas := models.NewFeasibility()
	for _, msg := range c.inputs.Check(plan) {
		feas.AddError(msg)
	}

	teamSize := plan.Team.Size
	if teamSize <= 0 {
		feas.AddError(fmt.Sprintf("Team size must be at least 1, got %d", teamSize))
		teamSize = 1
	}

	byID := make(map[string]models.PlatformDesign, len(designs))
	for _, d := range designs {
		if _, dup := byID[d.ID]; !dup {
			byID[d.ID] = d
		}
	}

	// Distinct platforms across phases, first appearance first
	var referenced []string
	for _, phase := range plan.Phases {
		referenced = append(referenced, phase.PlatformsActive...)
	}
	platformIDs := uniqueIDs(referenced)

	sustainment := models.SustainmentResult{
		TotalDurationHours:  finiteOr(plan.DurationHours, 0),
		BatteriesByPlatform: []models.PlatformBatteries{},
		BatterySwaps:        []models.BatterySwap{},
		PhasePower:          []models.PhasePower{},
	}

	batteries := make(map[string]models.PlatformBatteries, len(platformIDs))
	for _, id := range platformIDs {
		design, ok := byID[id]
		if !ok {
			feas.AddError(fmt.Sprintf("Platform %s not found in designs", sanitizeForLog(id)))
			continue
		}
		battery := design.Components.Battery
		if battery == nil {
			feas.AddError(fmt.Sprintf("Platform %s has no battery configured", design.Name))
			continue
		}

		var operatingHours float64
		for _, phase := range plan.Phases {
			for _, active := range uniqueIDs(phase.PlatformsActive) {
				if active == id {
					operatingHours += math.Max(0, finiteOr(phase.DurationHours, 0))
				}
			}
		}

		flightTimeMin := design.Validation.FlightTimeMin()
		if !(flightTimeMin > 0) || math.IsInf(flightTimeMin, 0) {
			flightTimeMin = defaultFlightTimeMin
		}
		flightTimeHours := flightTimeMin / 60

		count := math.Ceil(operatingHours / flightTimeHours * batteryMargin)
		if math.IsNaN(count) || count > maxBatteriesPerPlatform {
			feas.AddError(fmt.Sprintf("Platform %s needs more than %d batteries - shorten the phases or extend endurance",
				design.Name, maxBatteriesPerPlatform))
			continue
		}
		needed := int(count)
		weightG := math.Max(0, finiteOr(battery.WeightG, 0))

		pb := models.PlatformBatteries{
			PlatformID:   id,
			PlatformName: design.Name,
			Battery: models.BatterySummary{
				Name:       battery.Name,
				CapacityWh: battery.CapacityWh,
				WeightG:    weightG,
			},
			FlightTimeHours: flightTimeHours,
			OperatingHours:  operatingHours,
			BatteriesNeeded: needed,
			WeightKg:        weightG * float64(needed) / 1000,
		}
		batteries[id] = pb
		sustainment.BatteriesByPlatform = append(sustainment.BatteriesByPlatform, pb)
		sustainment.TotalBatteries += needed
		sustainment.WeightKg += pb.WeightKg
	}

	sustainment.BatterySwaps = swapSchedule(plan.Phases, batteries)
	sustainment.PhasePower = phasePower(plan.Phases, byID)

	if sustainment.TotalBatteries == 0 {
		feas.AddError("No batteries calculated - check platform configurations")
	}
	if sustainment.WeightKg > float64(teamSize)*batteryWeightPerOperator {
		feas.AddWarning(fmt.Sprintf("Battery weight (%.1f kg) may be excessive for %d operators",
			sustainment.WeightKg, teamSize))
	}

	packing := packingLists(plan, teamSize, sustainment)
	for _, list := range packing {
		if list.CriticallyOverweight {
			feas.AddError(fmt.Sprintf("%s is critically overweight: %.1f kg > %g kg",
				list.Role, list.TotalWeightKg, list.WeightLimitMaxKg))
		} else if list.Overweight {
			feas.AddWarning(fmt.Sprintf("%s exceeds standard load: %.1f kg > %g kg",
				list.Role, list.TotalWeightKg, list.WeightLimitKg))
		}
	}

	feas.Finalize()
	sustainment.Feasibility = feas

	slog.Debug("Mission logistics calculated",
		"plan_id", plan.ID,
		"platforms", len(sustainment.BatteriesByPlatform),
		"total_batteries", sustainment.TotalBatteries,
		"swaps", len(sustainment.BatterySwaps),
		"pass", feas.Pass,
	)

	return models.MissionLogistics{
		PlanID:       plan.ID,
		Sustainment:  sustainment,
		PackingLists: packing,
	}
}

// swapSchedule emits floor(phase/flight time) swaps per active platform per
// phase, then orders the schedule by time.
func swapSchedule(phases []models.MissionPhase, batteries map[string]models.PlatformBatteries) []models.BatterySwap {
	swaps := []models.BatterySwap{}
	var elapsed float64

	for _, phase := range phases {
		duration := math.Max(0, finiteOr(phase.DurationHours, 0))
		for _, id := range uniqueIDs(phase.PlatformsActive) {
			pb, ok := batteries[id]
			if !ok {
				continue
			}
			count := int(math.Floor(duration / pb.FlightTimeHours))
			for i := 0; i < count; i++ {
				swaps = append(swaps, models.BatterySwap{
					TimeHours:     elapsed + float64(i+1)*pb.FlightTimeHours,
					Phase:         phase.Name,
					PlatformID:    id,
					PlatformName:  pb.PlatformName,
					BatteryNumber: i + 1,
					Action:        swapAction,
				})
			}
		}
		elapsed += duration
	}

	sort.SliceStable(swaps, func(i, j int) bool {
		return swaps[i].TimeHours < swaps[j].TimeHours
	})
	return swaps
}

// phasePower sums validated power budgets scaled by each phase's activity
func phasePower(phases []models.MissionPhase, designs map[string]models.PlatformDesign) []models.PhasePower {
	out := make([]models.PhasePower, 0, len(phases))
	for _, phase := range phases {
		factor := ActivityFactor(phase.ActivityLevel)
		var total float64
		for _, id := range uniqueIDs(phase.PlatformsActive) {
			d, ok := designs[id]
			if !ok || d.Validation == nil {
				continue
			}
			total += d.Validation.Metrics.PowerBudgetW * factor
		}
		level := phase.ActivityLevel
		if _, ok := activityFactor[level]; !ok {
			level = models.ActivityMedium
		}
		out = append(out, models.PhasePower{
			Phase:         phase.Name,
			ActivityLevel: level,
			PowerW:        total,
		})
	}
	return out
}

// packingLists builds one list per role. Each operator takes up to an even
// share from each platform's remaining battery pool.
func packingLists(plan models.MissionPlan, teamSize int, s models.SustainmentResult) []models.PackingList {
	limits := WeightLimitFor(plan.Terrain)
	share := int(math.Ceil(float64(s.TotalBatteries) / float64(teamSize)))

	pools := make([]int, len(s.BatteriesByPlatform))
	for i, pb := range s.BatteriesByPlatform {
		pools[i] = pb.BatteriesNeeded
	}

	lists := make([]models.PackingList, 0, len(plan.Team.Roles))
	for idx, role := range plan.Team.Roles {
		list := models.PackingList{
			OperatorID:       fmt.Sprintf("op-%d", idx+1),
			Role:             role,
			Items:            []models.PackingItem{},
			WeightLimitKg:    limits.Standard,
			WeightLimitMaxKg: limits.Maximum,
		}

		for i, pb := range s.BatteriesByPlatform {
			take := share
			if pools[i] < take {
				take = pools[i]
			}
			if take <= 0 {
				continue
			}
			unitKg := pb.Battery.WeightG / 1000
			item := models.PackingItem{
				Category:      "Battery",
				Name:          fmt.Sprintf("%s (%s)", pb.Battery.Name, pb.PlatformName),
				Quantity:      take,
				UnitWeightKg:  unitKg,
				TotalWeightKg: unitKg * float64(take),
			}
			list.Items = append(list.Items, item)
			list.TotalWeightKg += item.TotalWeightKg
			pools[i] -= take
		}

		for _, eq := range roleEquipment[role] {
			list.Items = append(list.Items, models.PackingItem{
				Category:      "Equipment",
				Name:          eq.name,
				Quantity:      1,
				UnitWeightKg:  eq.weightKg,
				TotalWeightKg: eq.weightKg,
			})
			list.TotalWeightKg += eq.weightKg
		}

		list.Overweight = list.TotalWeightKg > list.WeightLimitKg
		list.CriticallyOverweight = list.TotalWeightKg > list.WeightLimitMaxKg
		lists = append(lists, list)
	}
	return lists
}

// AffectedPlans returns the ids of plans that reference platformID and so
// need their logistics recalculated after the platform changes.
func AffectedPlans(plans []models.MissionPlan, platformID string) []string {
	ids := []string{}
	for _, p := range plans {
		if p.References(platformID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
