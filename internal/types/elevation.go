package types

const FeetToMeters = 0.3048

// Elevation is a height above mean sea level
type Elevation struct {
	Meters float64 `json:"meters" example:"126"`
	Feet   float64 `json:"feet" example:"413.39"`
}

func NewElevationFromMeters(meters float64) Elevation {
	return Elevation{
		Meters: meters,
		Feet:   meters / FeetToMeters,
	}
}
