// ABOUTME: Terrain elevation lookup used when siting relays
// ABOUTME: A returned 0 is treated as a valid "no data" value

package services

// ElevationLookup returns ground elevation in meters for a coordinate
type ElevationLookup interface {
	ElevationAt(lat, lon float64) float64
}

// ElevationFunc adapts a plain function to ElevationLookup
type ElevationFunc func(lat, lon float64) float64

// ElevationAt calls f(lat, lon)
func (f ElevationFunc) ElevationAt(lat, lon float64) float64 {
	return f(lat, lon)
}

// FlatTerrain reports sea level everywhere
type FlatTerrain struct{}

// ElevationAt always returns 0
func (FlatTerrain) ElevationAt(lat, lon float64) float64 {
	return 0
}
