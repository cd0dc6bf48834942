// ABOUTME: RF link-budget analyzer for pairwise radio links between comms nodes
// ABOUTME: Haversine distance, free-space path loss, radio horizon, and Fresnel clearance

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/uxsforge/mission-planner/backend/models"
)

const (
	earthRadiusM  = 6371000.0
	speedOfLight  = 299792458.0
	minLinkMargin = 10.0 // dB

	fresnelClearanceFraction = 0.6
	relaySafetyMarginM       = 5.0
	minRelayHeightM          = 10.0

	defaultTerrain = "rural"
	defaultWeather = "clear"
)

// terrainLossDB is attenuation by terrain class
var terrainLossDB = map[string]float64{
	"open":        0,
	"rural":       3,
	"suburban":    6,
	"urban":       12,
	"dense_urban": 20,
	"forest":      8,
	"mountain":    5,
}

// weatherLossDB is attenuation by weather condition
var weatherLossDB = map[string]float64{
	"clear":      0,
	"light_rain": 1,
	"heavy_rain": 3,
	"snow":       2,
	"fog":        1,
}

// TerrainLoss returns the attenuation for a terrain class and the class
// actually applied. Unknown classes are treated as rural.
func TerrainLoss(terrain string) (float64, string) {
	if loss, ok := terrainLossDB[terrain]; ok {
		return loss, terrain
	}
	return terrainLossDB[defaultTerrain], defaultTerrain
}

// WeatherLoss returns the attenuation for a weather condition and the
// condition actually applied. Unknown conditions are treated as clear.
func WeatherLoss(weather string) (float64, string) {
	if loss, ok := weatherLossDB[weather]; ok {
		return loss, weather
	}
	return weatherLossDB[defaultWeather], defaultWeather
}

// HaversineDistance returns the great-circle distance in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// FSPL returns free-space path loss in dB. Co-located nodes and
// non-positive frequencies yield 0.
func FSPL(distanceKm, frequencyMHz float64) float64 {
	if distanceKm <= 0 || frequencyMHz <= 0 {
		return 0
	}
	return 20*math.Log10(distanceKm) + 20*math.Log10(frequencyMHz) + 32.45
}

// RadioHorizon returns the distance to the radio horizon for an antenna height
func RadioHorizon(heightAGLM float64) float64 {
	if heightAGLM <= 0 {
		return 0
	}
	return math.Sqrt(2 * earthRadiusM * heightAGLM)
}

// LineOfSight checks earth-curvature clearance between two antenna heights
func LineOfSight(height1M, height2M, distanceM float64) models.LOSResult {
	horizon := RadioHorizon(height1M) + RadioHorizon(height2M)
	los := models.LOSResult{
		Clear:    distanceM <= horizon,
		HorizonM: horizon,
	}
	if !los.Clear {
		half := distanceM / 2
		los.RequiredRelayHeightM = half * half / (2 * earthRadiusM)
	}
	return los
}

// FresnelZone returns the first Fresnel zone radius at the link midpoint
func FresnelZone(distanceM, frequencyMHz float64) models.FresnelResult {
	if distanceM <= 0 || frequencyMHz <= 0 {
		return models.FresnelResult{}
	}
	wavelength := speedOfLight / (frequencyMHz * 1e6)
	d1, d2 := distanceM/2, distanceM/2
	radius := math.Sqrt(wavelength * d1 * d2 / (d1 + d2))
	return models.FresnelResult{
		RadiusM:         radius,
		Clearance60PctM: radius * fresnelClearanceFraction,
	}
}

// ClassifyLink grades a link. Blocked line-of-sight dominates margin.
func ClassifyLink(losClear bool, marginDB float64) (models.LinkQuality, bool) {
	switch {
	case !losClear:
		return models.LinkNoLOS, true
	case marginDB >= minLinkMargin+10:
		return models.LinkExcellent, false
	case marginDB >= minLinkMargin:
		return models.LinkGood, false
	case marginDB >= 0:
		return models.LinkMarginal, false
	default:
		return models.LinkPoor, true
	}
}

// LinkBudgetCalculator analyzes radio links between comms nodes
type LinkBudgetCalculator struct {
	inputs    *InputValidator
	elevation ElevationLookup
}

// NewLinkBudgetCalculator creates a link budget calculator. A nil
// elevation lookup is treated as flat terrain.
func NewLinkBudgetCalculator(elevation ElevationLookup) *LinkBudgetCalculator {
	if elevation == nil {
		elevation = FlatTerrain{}
	}
	return &LinkBudgetCalculator{
		inputs:    NewInputValidator(),
		elevation: elevation,
	}
}

// LinkBudget computes the budget for one link, reading tx as the transmitter
func (c *LinkBudgetCalculator) LinkBudget(tx, rx models.ResolvedNode, terrainLoss, weatherLoss float64) models.LinkBudgetResult {
	distanceM := finiteOr(HaversineDistance(tx.Lat, tx.Lon, rx.Lat, rx.Lon), 0)
	frequency := (tx.Radio.FrequencyMHz + rx.Radio.FrequencyMHz) / 2
	fspl := FSPL(distanceM/1000, frequency)

	received := tx.Radio.PowerOutputDBm -
		tx.Radio.TxCableLossDB +
		tx.Radio.TxGainDBi -
		fspl -
		terrainLoss -
		weatherLoss +
		rx.Radio.RxGainDBi -
		rx.Radio.RxCableLossDB
	margin := received - rx.Radio.SensitivityDBm

	los := LineOfSight(tx.HeightAGLM, rx.HeightAGLM, distanceM)
	quality, relayRequired := ClassifyLink(los.Clear, margin)

	return models.LinkBudgetResult{
		FromNode:         tx.ID,
		FromName:         tx.Name,
		ToNode:           rx.ID,
		ToName:           rx.Name,
		DistanceM:        distanceM,
		DistanceKm:       distanceM / 1000,
		FrequencyMHz:     frequency,
		TxPowerDBm:       tx.Radio.PowerOutputDBm,
		FSPLDB:           fspl,
		TerrainLossDB:    terrainLoss,
		WeatherLossDB:    weatherLoss,
		ReceivedPowerDBm: received,
		SensitivityDBm:   rx.Radio.SensitivityDBm,
		LinkMarginDB:     margin,
		Quality:          quality,
		RelayRequired:    relayRequired,
		LOS:              los,
		Fresnel:          FresnelZone(distanceM, frequency),
	}
}

// resolveNodes applies defaults and coerces non-finite numbers
func resolveNodes(nodes []models.CommsNode) []models.ResolvedNode {
	resolved := make([]models.ResolvedNode, len(nodes))
	for i, n := range nodes {
		r := models.ApplyNodeDefaults(n)
		def := models.DefaultNodeRadio
		r.Lat = finiteOr(r.Lat, 0)
		r.Lon = finiteOr(r.Lon, 0)
		r.ElevationM = finiteOr(r.ElevationM, 0)
		r.HeightAGLM = finiteOr(r.HeightAGLM, models.DefaultHeightAGLM)
		r.Radio.FrequencyMHz = finiteOr(r.Radio.FrequencyMHz, def.FrequencyMHz)
		r.Radio.PowerOutputDBm = finiteOr(r.Radio.PowerOutputDBm, def.PowerOutputDBm)
		r.Radio.TxGainDBi = finiteOr(r.Radio.TxGainDBi, def.TxGainDBi)
		r.Radio.RxGainDBi = finiteOr(r.Radio.RxGainDBi, def.RxGainDBi)
		r.Radio.SensitivityDBm = finiteOr(r.Radio.SensitivityDBm, def.SensitivityDBm)
		r.Radio.TxCableLossDB = finiteOr(r.Radio.TxCableLossDB, def.TxCableLossDB)
		r.Radio.RxCableLossDB = finiteOr(r.Radio.RxCableLossDB, def.RxCableLossDB)
		resolved[i] = r
	}
	return resolved
}

// Analyze computes one link budget per unordered node pair, in node order,
// and derives coverage gaps, relay recommendations, and feasibility.
func (c *LinkBudgetCalculator) Analyze(req models.CommsAnalysisRequest) models.CommsAnalysis {
	terrainLoss, terrain := TerrainLoss(req.Terrain)
	weatherLoss, weather := WeatherLoss(req.Weather)

	analysis := models.CommsAnalysis{
		Name:                 req.Name,
		Terrain:              terrain,
		Weather:              weather,
		Nodes:                resolveNodes(req.Nodes),
		Links:                []models.LinkBudgetResult{},
		CoverageGaps:         []models.CoverageGap{},
		RelayRecommendations: []models.RelayRecommendation{},
		Feasibility:          models.NewFeasibility(),
	}

	for _, msg := range c.inputs.Check(req) {
		analysis.Feasibility.AddError(msg)
	}
	seen := make(map[string]bool, len(req.Nodes))
	for _, n := range req.Nodes {
		if n.ID != "" && seen[n.ID] {
			analysis.Feasibility.AddError(fmt.Sprintf("Duplicate node id: %s", sanitizeForLog(n.ID)))
		}
		seen[n.ID] = true
	}

	nodes := analysis.Nodes
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			link := c.LinkBudget(nodes[i], nodes[j], terrainLoss, weatherLoss)
			analysis.Links = append(analysis.Links, link)

			if !link.RelayRequired {
				continue
			}

			reason := "Insufficient link margin"
			if link.Quality == models.LinkNoLOS {
				reason = "No line-of-sight"
			}
			analysis.CoverageGaps = append(analysis.CoverageGaps, models.CoverageGap{
				From:         link.FromName,
				To:           link.ToName,
				Reason:       reason,
				LinkMarginDB: link.LinkMarginDB,
				DistanceKm:   link.DistanceKm,
			})

			midpoint := models.GeoPoint{
				Lat: (nodes[i].Lat + nodes[j].Lat) / 2,
				Lon: (nodes[i].Lon + nodes[j].Lon) / 2,
			}

			// A blocked link only gets the line-of-sight recommendation,
			// even when its margin is also short.
			if link.Quality == models.LinkNoLOS && link.LOS.RequiredRelayHeightM > 0 {
				analysis.RelayRecommendations = append(analysis.RelayRecommendations, models.RelayRecommendation{
					Type:                models.RelayLOS,
					Description:         fmt.Sprintf("Place relay between %s and %s", link.FromName, link.ToName),
					FromNode:            link.FromNode,
					ToNode:              link.ToNode,
					Location:            midpoint,
					RequiredHeightM:     link.LOS.RequiredRelayHeightM,
					DistanceFromNode1Km: link.DistanceKm / 2,
				})
			} else if link.LinkMarginDB < minLinkMargin {
				analysis.RelayRecommendations = append(analysis.RelayRecommendations, models.RelayRecommendation{
					Type:        models.RelayPower,
					Description: fmt.Sprintf("Add powered relay between %s and %s", link.FromName, link.ToName),
					FromNode:    link.FromNode,
					ToNode:      link.ToNode,
					Location:    midpoint,
					Reason:      fmt.Sprintf("Link margin is %.1f dB, need %.0f dB minimum", link.LinkMarginDB, minLinkMargin),
				})
			}
		}
	}

	if len(nodes) < 2 {
		analysis.Feasibility.AddError("Need at least 2 nodes to analyze links")
	}
	if len(analysis.CoverageGaps) > 0 {
		analysis.Feasibility.AddError(fmt.Sprintf(
			"%d link(s) require relays or improved positioning", len(analysis.CoverageGaps)))
	}

	marginal := 0
	for _, l := range analysis.Links {
		if l.Quality == models.LinkMarginal {
			marginal++
		}
	}
	if marginal > 0 {
		analysis.Feasibility.AddWarning(fmt.Sprintf(
			"%d link(s) have marginal quality - consider adding redundancy", marginal))
	}

	analysis.Feasibility.Finalize()

	slog.Debug("Comms analysis complete",
		"nodes", len(nodes),
		"links", len(analysis.Links),
		"coverage_gaps", len(analysis.CoverageGaps),
		"pass", analysis.Feasibility.Pass,
	)

	return analysis
}

// RecommendRelayPlacement sites a relay at the midpoint of two nodes, tall
// enough to clear the earth bulge plus 60% of the first Fresnel zone.
func (c *LinkBudgetCalculator) RecommendRelayPlacement(node1, node2 models.CommsNode) models.RelayPlacement {
	resolved := resolveNodes([]models.CommsNode{node1, node2})
	a, b := resolved[0], resolved[1]

	midLat := (a.Lat + b.Lat) / 2
	midLon := (a.Lon + b.Lon) / 2
	distanceM := finiteOr(HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon), 0)

	los := LineOfSight(a.HeightAGLM, b.HeightAGLM, distanceM)
	fresnel := FresnelZone(distanceM, a.Radio.FrequencyMHz)
	total := los.RequiredRelayHeightM + fresnel.Clearance60PctM + relaySafetyMarginM

	return models.RelayPlacement{
		Location: models.RelayPlacementLocation{
			Lat:        midLat,
			Lon:        midLon,
			ElevationM: finiteOr(c.elevation.ElevationAt(midLat, midLon), 0),
			HeightAGLM: math.Max(total, minRelayHeightM),
		},
		Reasoning: models.RelayPlacementReasoning{
			LOSClearanceM:     los.RequiredRelayHeightM,
			FresnelClearanceM: fresnel.Clearance60PctM,
			TotalHeightM:      total,
		},
	}
}

// SuggestRadios lists radio classes that fit a range, data rate, and terrain
func SuggestRadios(maxDistanceKm, dataRateKbps float64, terrain string) []models.RadioSuggestion {
	suggestions := []models.RadioSuggestion{}

	if maxDistanceKm > 20 && dataRateKbps < 50 {
		suggestions = append(suggestions, models.RadioSuggestion{
			Type:           "LoRa 900MHz",
			RangeKm:        40,
			DataRateKbps:   19,
			PowerOutputDBm: 20,
			Pros:           []string{"Excellent range", "Low power", "Good penetration"},
			Cons:           []string{"Low data rate", "Telemetry only"},
			UseCase:        "MAVLink telemetry, long-range control",
		})
	}

	if maxDistanceKm <= 30 && dataRateKbps < 1000 {
		suggestions = append(suggestions, models.RadioSuggestion{
			Type:           "ExpressLRS 2.4GHz",
			RangeKm:        30,
			DataRateKbps:   250,
			PowerOutputDBm: 20,
			Pros:           []string{"Good range", "Low latency", "Reliable"},
			Cons:           []string{"Line-of-sight dependent", "Moderate penetration"},
			UseCase:        "UxS control, telemetry",
		})
	}

	if maxDistanceKm <= 5 && dataRateKbps >= 1000 {
		suggestions = append(suggestions, models.RadioSuggestion{
			Type:           "5.8GHz Video",
			RangeKm:        3,
			DataRateKbps:   10000,
			PowerOutputDBm: 23,
			Pros:           []string{"High bandwidth", "Video capable"},
			Cons:           []string{"Short range", "Poor penetration", "Line-of-sight only"},
			UseCase:        "FPV video, high-bandwidth sensors",
		})
	}

	if terrain == "urban" || terrain == "suburban" {
		suggestions = append(suggestions, models.RadioSuggestion{
			Type:           "Wi-Fi Mesh 2.4/5GHz",
			RangeKm:        5,
			DataRateKbps:   54000,
			PowerOutputDBm: 20,
			Pros:           []string{"High bandwidth", "Mesh capable", "Standard protocols"},
			Cons:           []string{"Contested spectrum", "Moderate range"},
			UseCase:        "Mesh backbone, relay nodes",
		})
	}

	return suggestions
}
