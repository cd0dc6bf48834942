// ABOUTME: Flat part record used when importing parts catalogues from CSV
// ABOUTME: Converts imported rows into typed platform parts

package models

// PartCategory names a parts library category
type PartCategory string

const (
	CategoryAirframes         PartCategory = "airframes"
	CategoryMotors            PartCategory = "motors"
	CategoryESCs              PartCategory = "escs"
	CategoryBatteries         PartCategory = "batteries"
	CategoryFlightControllers PartCategory = "flight_controllers"
	CategoryRadios            PartCategory = "radios"
	CategorySensors           PartCategory = "sensors"
	CategoryAccessories       PartCategory = "accessories"
)

// PartCategories lists every importable category
var PartCategories = []PartCategory{
	CategoryAirframes, CategoryMotors, CategoryESCs, CategoryBatteries,
	CategoryFlightControllers, CategoryRadios, CategorySensors, CategoryAccessories,
}

// PartRecord is a single CSV row. Numeric columns are pointers so that an
// empty cell is distinguishable from zero when checking required fields.
type PartRecord struct {
	ID                string   `csv:"id" json:"id"`
	Name              string   `csv:"name" json:"name"`
	Manufacturer      string   `csv:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	PartNumber        string   `csv:"part_number,omitempty" json:"part_number,omitempty"`
	Type              string   `csv:"type,omitempty" json:"type,omitempty"`
	Category          string   `csv:"category,omitempty" json:"category,omitempty"`
	Chemistry         string   `csv:"chemistry,omitempty" json:"chemistry,omitempty"`
	FrequencyBand     string   `csv:"frequency_band,omitempty" json:"frequency_band,omitempty"`
	WeightG           *float64 `csv:"weight_g,omitempty" json:"weight_g,omitempty"`
	CostUSD           *float64 `csv:"cost_usd,omitempty" json:"cost_usd,omitempty"`
	KV                *float64 `csv:"kv,omitempty" json:"kv,omitempty"`
	MaxThrustG        *float64 `csv:"max_thrust_g,omitempty" json:"max_thrust_g,omitempty"`
	MaxCurrentA       *float64 `csv:"max_current_a,omitempty" json:"max_current_a,omitempty"`
	MaxPowerW         *float64 `csv:"max_power_w,omitempty" json:"max_power_w,omitempty"`
	MaxPayloadG       *float64 `csv:"max_payload_g,omitempty" json:"max_payload_g,omitempty"`
	VoltageNominalV   *float64 `csv:"voltage_nominal_v,omitempty" json:"voltage_nominal_v,omitempty"`
	CapacityMAh       *float64 `csv:"capacity_mah,omitempty" json:"capacity_mah,omitempty"`
	CapacityWh        *float64 `csv:"capacity_wh,omitempty" json:"capacity_wh,omitempty"`
	MaxDischargeA     *float64 `csv:"max_discharge_a,omitempty" json:"max_discharge_a,omitempty"`
	CurrentDrawMA     *float64 `csv:"current_draw_ma,omitempty" json:"current_draw_ma,omitempty"`
	PowerConsumptionW *float64 `csv:"power_consumption_w,omitempty" json:"power_consumption_w,omitempty"`
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// BasePart returns the fields common to every part
func (r PartRecord) BasePart() Part {
	return Part{
		ID:           r.ID,
		Name:         r.Name,
		Manufacturer: r.Manufacturer,
		PartNumber:   r.PartNumber,
		WeightG:      val(r.WeightG),
		CostUSD:      val(r.CostUSD),
	}
}

// EffectiveCapacityWh returns capacity_wh, or derives it from
// capacity_mah and nominal voltage when only those are given.
func (r PartRecord) EffectiveCapacityWh() float64 {
	if r.CapacityWh != nil {
		return *r.CapacityWh
	}
	return val(r.CapacityMAh) * val(r.VoltageNominalV) / 1000
}

// AsBattery converts a batteries row into a Battery
func (r PartRecord) AsBattery() Battery {
	return Battery{
		Part:            r.BasePart(),
		Chemistry:       r.Chemistry,
		CapacityWh:      r.EffectiveCapacityWh(),
		VoltageNominalV: val(r.VoltageNominalV),
		MaxDischargeA:   val(r.MaxDischargeA),
	}
}

// AsMotor converts a motors row into a Motor
func (r PartRecord) AsMotor() Motor {
	return Motor{
		Part:        r.BasePart(),
		KV:          val(r.KV),
		MaxThrustG:  val(r.MaxThrustG),
		MaxCurrentA: val(r.MaxCurrentA),
		MaxPowerW:   val(r.MaxPowerW),
	}
}

// ImportedPart is an accepted catalogue row together with its category
type ImportedPart struct {
	Category PartCategory `json:"category"`
	Record   PartRecord   `json:"record"`
}

// RowError reports why a catalogue row was rejected. Row is 1-based,
// counting the header as row 1.
type RowError struct {
	Row    int      `json:"row"`
	ID     string   `json:"id,omitempty"`
	Errors []string `json:"errors"`
}

// PartsImportResult is the outcome of importing a parts catalogue
type PartsImportResult struct {
	Category PartCategory   `json:"category"`
	Accepted []ImportedPart `json:"accepted"`
	Rejected []RowError     `json:"rejected"`
}
