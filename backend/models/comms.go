// ABOUTME: Data models for RF link-budget analysis between comms nodes
// ABOUTME: Distances in meters/km, powers in dBm, gains and losses in dB

package models

// NodeType is the role a comms node plays in the network
type NodeType string

const (
	NodeTransmitter NodeType = "transmitter"
	NodeReceiver    NodeType = "receiver"
	NodeTransceiver NodeType = "transceiver"
	NodeRelay       NodeType = "relay"
)

// LinkQuality classifies a link by line-of-sight and margin
type LinkQuality string

const (
	LinkExcellent LinkQuality = "excellent"
	LinkGood      LinkQuality = "good"
	LinkMarginal  LinkQuality = "marginal"
	LinkPoor      LinkQuality = "poor"
	LinkNoLOS     LinkQuality = "no_los"
)

// RelayType distinguishes why a relay was recommended
type RelayType string

const (
	RelayLOS   RelayType = "los_relay"
	RelayPower RelayType = "power_relay"
)

// NodeLocation is a node's position and antenna height above ground
type NodeLocation struct {
	Lat        float64  `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon        float64  `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
	ElevationM float64  `json:"elevation_m" yaml:"elevation_m"`
	HeightAGLM *float64 `json:"height_agl_m,omitempty" yaml:"height_agl_m,omitempty" validate:"omitempty,gte=0"`
}

// NodeRadio describes the radio fitted to a node. Nil fields take defaults
// from DefaultNodeRadio when the node enters an analysis.
type NodeRadio struct {
	FrequencyMHz   *float64 `json:"frequency_mhz,omitempty" yaml:"frequency_mhz,omitempty" validate:"omitempty,gt=0"`
	PowerOutputDBm *float64 `json:"power_output_dbm,omitempty" yaml:"power_output_dbm,omitempty"`
	TxGainDBi      *float64 `json:"tx_gain_dbi,omitempty" yaml:"tx_gain_dbi,omitempty"`
	RxGainDBi      *float64 `json:"rx_gain_dbi,omitempty" yaml:"rx_gain_dbi,omitempty"`
	SensitivityDBm *float64 `json:"sensitivity_dbm,omitempty" yaml:"sensitivity_dbm,omitempty"`
	TxCableLossDB  *float64 `json:"tx_cable_loss_db,omitempty" yaml:"tx_cable_loss_db,omitempty" validate:"omitempty,gte=0"`
	RxCableLossDB  *float64 `json:"rx_cable_loss_db,omitempty" yaml:"rx_cable_loss_db,omitempty" validate:"omitempty,gte=0"`
}

// RadioSettings is a fully resolved radio configuration
type RadioSettings struct {
	FrequencyMHz   float64 `json:"frequency_mhz"`
	PowerOutputDBm float64 `json:"power_output_dbm"`
	TxGainDBi      float64 `json:"tx_gain_dbi"`
	RxGainDBi      float64 `json:"rx_gain_dbi"`
	SensitivityDBm float64 `json:"sensitivity_dbm"`
	TxCableLossDB  float64 `json:"tx_cable_loss_db"`
	RxCableLossDB  float64 `json:"rx_cable_loss_db"`
}

// Default radio values for nodes that omit them
var DefaultNodeRadio = RadioSettings{
	FrequencyMHz:   900,
	PowerOutputDBm: 20,
	TxGainDBi:      2,
	RxGainDBi:      2,
	SensitivityDBm: -110,
	TxCableLossDB:  1,
	RxCableLossDB:  1,
}

const (
	// DefaultHeightAGLM is the antenna height used when a node omits one
	DefaultHeightAGLM = 2.0
	// DefaultNodeType is used when a node omits its type
	DefaultNodeType = NodeTransceiver
)

// CommsNode is a radio endpoint in a comms analysis
type CommsNode struct {
	ID       string       `json:"id" yaml:"id" validate:"required"`
	Name     string       `json:"name" yaml:"name"`
	Type     NodeType     `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=transmitter receiver transceiver relay"`
	Location NodeLocation `json:"location" yaml:"location"`
	Radio    NodeRadio    `json:"radio" yaml:"radio"`
}

// ResolvedNode is a CommsNode with every default applied
type ResolvedNode struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Type       NodeType      `json:"type"`
	Lat        float64       `json:"lat"`
	Lon        float64       `json:"lon"`
	ElevationM float64       `json:"elevation_m"`
	HeightAGLM float64       `json:"height_agl_m"`
	Radio      RadioSettings `json:"radio"`
}

func pick(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// ApplyNodeDefaults resolves a node against DefaultNodeRadio and the
// default height and type. A missing name falls back to the id.
func ApplyNodeDefaults(n CommsNode) ResolvedNode {
	r := ResolvedNode{
		ID:         n.ID,
		Name:       n.Name,
		Type:       n.Type,
		Lat:        n.Location.Lat,
		Lon:        n.Location.Lon,
		ElevationM: n.Location.ElevationM,
		HeightAGLM: pick(n.Location.HeightAGLM, DefaultHeightAGLM),
		Radio: RadioSettings{
			FrequencyMHz:   pick(n.Radio.FrequencyMHz, DefaultNodeRadio.FrequencyMHz),
			PowerOutputDBm: pick(n.Radio.PowerOutputDBm, DefaultNodeRadio.PowerOutputDBm),
			TxGainDBi:      pick(n.Radio.TxGainDBi, DefaultNodeRadio.TxGainDBi),
			RxGainDBi:      pick(n.Radio.RxGainDBi, DefaultNodeRadio.RxGainDBi),
			SensitivityDBm: pick(n.Radio.SensitivityDBm, DefaultNodeRadio.SensitivityDBm),
			TxCableLossDB:  pick(n.Radio.TxCableLossDB, DefaultNodeRadio.TxCableLossDB),
			RxCableLossDB:  pick(n.Radio.RxCableLossDB, DefaultNodeRadio.RxCableLossDB),
		},
	}
	if r.Name == "" {
		r.Name = r.ID
	}
	if r.Type == "" {
		r.Type = DefaultNodeType
	}
	return r
}

// LOSResult is the line-of-sight outcome for one link
type LOSResult struct {
	Clear                bool    `json:"clear"`
	HorizonM             float64 `json:"horizon_m"`
	RequiredRelayHeightM float64 `json:"required_relay_height_m"`
}

// FresnelResult is the first Fresnel zone at the link midpoint
type FresnelResult struct {
	RadiusM         float64 `json:"radius_m"`
	Clearance60PctM float64 `json:"clearance_60pct_m"`
}

// LinkBudgetResult is the computed budget for one unordered node pair
type LinkBudgetResult struct {
	FromNode         string        `json:"from_node"`
	FromName         string        `json:"from_name"`
	ToNode           string        `json:"to_node"`
	ToName           string        `json:"to_name"`
	DistanceM        float64       `json:"distance_m"`
	DistanceKm       float64       `json:"distance_km"`
	FrequencyMHz     float64       `json:"frequency_mhz"`
	TxPowerDBm       float64       `json:"tx_power_dbm"`
	FSPLDB           float64       `json:"fspl_db"`
	TerrainLossDB    float64       `json:"terrain_loss_db"`
	WeatherLossDB    float64       `json:"weather_loss_db"`
	ReceivedPowerDBm float64       `json:"received_power_dbm"`
	SensitivityDBm   float64       `json:"sensitivity_dbm"`
	LinkMarginDB     float64       `json:"link_margin_db"`
	Quality          LinkQuality   `json:"quality"`
	RelayRequired    bool          `json:"relay_required"`
	LOS              LOSResult     `json:"los"`
	Fresnel          FresnelResult `json:"fresnel"`
}

// CoverageGap is a link that needs a relay or repositioning
type CoverageGap struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Reason       string  `json:"reason"`
	LinkMarginDB float64 `json:"link_margin_db"`
	DistanceKm   float64 `json:"distance_km"`
}

// GeoPoint is a latitude/longitude pair
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RelayRecommendation suggests a relay for a failing link
type RelayRecommendation struct {
	Type                RelayType `json:"type"`
	Description         string    `json:"description"`
	FromNode            string    `json:"from_node"`
	ToNode              string    `json:"to_node"`
	Location            GeoPoint  `json:"location"`
	RequiredHeightM     float64   `json:"required_height_m,omitempty"`
	DistanceFromNode1Km float64   `json:"distance_from_node1_km,omitempty"`
	Reason              string    `json:"reason,omitempty"`
}

// CommsAnalysisRequest is the input to a link analysis
type CommsAnalysisRequest struct {
	Name    string      `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes   []CommsNode `json:"nodes" yaml:"nodes" validate:"dive"`
	Terrain string      `json:"terrain" yaml:"terrain"`
	Weather string      `json:"weather" yaml:"weather"`
}

// CommsAnalysis is the full output of a link analysis
type CommsAnalysis struct {
	Name                 string                `json:"name,omitempty"`
	Terrain              string                `json:"terrain"`
	Weather              string                `json:"weather"`
	Nodes                []ResolvedNode        `json:"nodes"`
	Links                []LinkBudgetResult    `json:"links"`
	CoverageGaps         []CoverageGap         `json:"coverage_gaps"`
	RelayRecommendations []RelayRecommendation `json:"relay_recommendations"`
	Feasibility          Feasibility           `json:"feasibility"`
}

// RelayPlacementRequest asks where to put a relay between two nodes
type RelayPlacementRequest struct {
	Node1 CommsNode `json:"node1"`
	Node2 CommsNode `json:"node2"`
}

// RelayPlacementLocation is the suggested relay site
type RelayPlacementLocation struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	ElevationM float64 `json:"elevation_m"`
	HeightAGLM float64 `json:"height_agl_m"`
}

// RelayPlacementReasoning breaks down the suggested mast height
type RelayPlacementReasoning struct {
	LOSClearanceM     float64 `json:"los_clearance_m"`
	FresnelClearanceM float64 `json:"fresnel_clearance_m"`
	TotalHeightM      float64 `json:"total_height_m"`
}

// RelayPlacement is the output of a relay placement recommendation
type RelayPlacement struct {
	Location  RelayPlacementLocation  `json:"location"`
	Reasoning RelayPlacementReasoning `json:"reasoning"`
}

// RadioSuggestion is a radio class that fits the stated requirements
type RadioSuggestion struct {
	Type           string   `json:"type"`
	RangeKm        float64  `json:"range_km"`
	DataRateKbps   float64  `json:"data_rate_kbps"`
	PowerOutputDBm float64  `json:"power_output_dbm"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	UseCase        string   `json:"use_case"`
}
