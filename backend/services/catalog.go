// ABOUTME: Parts catalogue import from CSV using per-category required fields
// ABOUTME: Bad rows are reported individually and never abort the import

package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jszwec/csvutil"

	"github.com/uxsforge/mission-planner/backend/models"
)

// requiredPartFields lists the columns each category must fill
var requiredPartFields = map[models.PartCategory][]string{
	models.CategoryAirframes:         {"id", "name", "type", "weight_g"},
	models.CategoryMotors:            {"id", "name", "kv", "weight_g", "max_thrust_g"},
	models.CategoryESCs:              {"id", "name", "max_current_a", "weight_g"},
	models.CategoryBatteries:         {"id", "name", "chemistry", "voltage_nominal_v", "capacity_mah", "weight_g"},
	models.CategoryFlightControllers: {"id", "name", "weight_g"},
	models.CategoryRadios:            {"id", "name", "type", "frequency_band", "weight_g"},
	models.CategorySensors:           {"id", "name", "type", "weight_g"},
	models.CategoryAccessories:       {"id", "name", "category", "weight_g"},
}

// fieldPresent reports whether a record has a non-empty value for a column.
// A battery's capacity may be given in mAh or Wh.
func fieldPresent(r models.PartRecord, field string) bool {
	switch field {
	case "id":
		return r.ID != ""
	case "name":
		return r.Name != ""
	case "type":
		return r.Type != ""
	case "category":
		return r.Category != ""
	case "chemistry":
		return r.Chemistry != ""
	case "frequency_band":
		return r.FrequencyBand != ""
	case "weight_g":
		return r.WeightG != nil
	case "kv":
		return r.KV != nil
	case "max_thrust_g":
		return r.MaxThrustG != nil
	case "max_current_a":
		return r.MaxCurrentA != nil
	case "voltage_nominal_v":
		return r.VoltageNominalV != nil
	case "capacity_mah":
		return r.CapacityMAh != nil || r.CapacityWh != nil
	default:
		return false
	}
}

// ValidatePart checks a record against its category's required columns and
// rejects negative weights, costs, currents, and capacities.
func ValidatePart(category models.PartCategory, r models.PartRecord) []string {
	var errs []string

	required, ok := requiredPartFields[category]
	if !ok {
		required = []string{"id", "name"}
	}
	for _, field := range required {
		if !fieldPresent(r, field) {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	numeric := []struct {
		name  string
		value *float64
	}{
		{"weight_g", r.WeightG},
		{"cost_usd", r.CostUSD},
		{"max_current_a", r.MaxCurrentA},
		{"capacity_mah", r.CapacityMAh},
		{"capacity_wh", r.CapacityWh},
	}
	for _, n := range numeric {
		if n.value != nil && *n.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must be non-negative", n.name))
		}
	}
	return errs
}

// IsPartCategory reports whether s names an importable category
func IsPartCategory(s string) bool {
	_, ok := requiredPartFields[models.PartCategory(s)]
	return ok
}

// ParsePartsCSV decodes a catalogue CSV for one category. The header row
// maps columns to fields; unknown columns are ignored. An error is returned
// only when the header itself cannot be read.
func ParsePartsCSV(reader io.Reader, category models.PartCategory) (models.PartsImportResult, error) {
	result := models.PartsImportResult{
		Category: category,
		Accepted: []models.ImportedPart{},
		Rejected: []models.RowError{},
	}
	if !IsPartCategory(string(category)) {
		return result, fmt.Errorf("unknown part category: %s", sanitizeForLog(string(category)))
	}

	src := &readErrRecorder{r: reader}
	csvReader := csv.NewReader(src)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	decoder, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		return result, fmt.Errorf("failed to read parts CSV header: %w", err)
	}

	row := 1
	for {
		row++
		var rec models.PartRecord
		err := decoder.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && src.err != nil {
			return result, fmt.Errorf("failed to read parts CSV: %w", src.err)
		}
		if err != nil {
			result.Rejected = append(result.Rejected, models.RowError{
				Row:    row,
				Errors: []string{sanitizeForLog(err.Error())},
			})
			continue
		}

		if errs := ValidatePart(category, rec); len(errs) > 0 {
			result.Rejected = append(result.Rejected, models.RowError{
				Row:    row,
				ID:     sanitizeForLog(rec.ID),
				Errors: errs,
			})
			continue
		}
		result.Accepted = append(result.Accepted, models.ImportedPart{Category: category, Record: rec})
	}

	slog.Info("Parts catalogue imported",
		"category", category,
		"accepted", len(result.Accepted),
		"rejected", len(result.Rejected),
	)
	return result, nil
}

// readErrRecorder remembers the first non-EOF read error so I/O failures
// abort the import instead of being reported as bad rows.
type readErrRecorder struct {
	r   io.Reader
	err error
}

func (e *readErrRecorder) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && e.err == nil {
		e.err = err
	}
	return n, err
}
