package openmeteo

// ElevationResponse holds one elevation per requested coordinate, in meters
type ElevationResponse struct {
	Elevation []float64 `json:"elevation"`
}
