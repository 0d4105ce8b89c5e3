package types

// Tag keys used for category matching and placeholder selection
const (
	TagName     = "name"
	TagTourism  = "tourism"
	TagHistoric = "historic"
	TagAmenity  = "amenity"

	AmenityPlaceOfWorship = "place_of_worship"
)

// Place is a point of interest returned by the map data service
type Place struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Coordinates Coords            `json:"coordinates"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// NewPlace builds a Place, taking its name from the tag set.
func NewPlace(id int64, coords Coords, tags map[string]string) Place {
	return Place{
		ID:          id,
		Name:        tags[TagName],
		Coordinates: coords,
		Tags:        tags,
	}
}

// HasName reports whether the place carries a usable display name
func (p Place) HasName() bool {
	return p.Name != ""
}

// EnrichedPlace is a Place ready for display
type EnrichedPlace struct {
	Place
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	DistanceKm  float64 `json:"distance_km"`
}
