package enrich

import (
	"strings"

	"nearby/internal/types"
)

// Placeholder image file names, by category
const (
	TempleImage   = "temple.png"
	HistoricImage = "historic.png"
	TourismImage  = "tourism.png"
	DefaultImage  = "default.png"
)

// DefaultPlaceholderBase is where placeholder images are served from
const DefaultPlaceholderBase = "images"

// PlaceholderImage picks the category image for tags. Places of worship win
// over historic sites, which win over tourism; anything else gets the default.
func PlaceholderImage(base string, tags map[string]string) string {
	var file string
	switch {
	case tags[types.TagAmenity] == types.AmenityPlaceOfWorship:
		file = TempleImage
	case hasTag(tags, types.TagHistoric):
		file = HistoricImage
	case hasTag(tags, types.TagTourism):
		file = TourismImage
	default:
		file = DefaultImage
	}

	base = strings.TrimRight(base, "/")
	if base == "" {
		return file
	}
	return base + "/" + file
}

func hasTag(tags map[string]string, key string) bool {
	v, ok := tags[key]
	return ok && v != ""
}
