package types

// Location is a geocoded place name resolved to a coordinate
type Location struct {
	Coordinates Coords `json:"coordinates"`
	Name        string `json:"name" example:"Kanpur, Kanpur Nagar, Uttar Pradesh, India"`
	Area        string `json:"area,omitempty" example:"Kanpur Nagar"`
}
