package wikipedia

// SummaryResponse is the subset of the REST page summary used for enrichment
type SummaryResponse struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Extract     string  `json:"extract"`
	Thumbnail   *Image  `json:"thumbnail,omitempty"`
	Original    *Image  `json:"originalimage,omitempty"`
	Coordinates *LatLon `json:"coordinates,omitempty"`
}

type Image struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ThumbnailURL returns the thumbnail source, or "" when the page has none
func (s *SummaryResponse) ThumbnailURL() string {
	if s == nil || s.Thumbnail == nil {
		return ""
	}
	return s.Thumbnail.Source
}
