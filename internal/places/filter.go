package places

import (
	"regexp"

	"nearby/internal/types"
)

// touristAttraction applies the tourism value filter the same way the
// interpreter does, as an unanchored match
var touristAttraction = regexp.MustCompile(touristAttractions)

// DefaultDisplayLimit is the number of places shown per search
const DefaultDisplayLimit = 12

// Named drops places without a name tag.
func Named(places []types.Place) []types.Place {
	out := make([]types.Place, 0, len(places))
	for _, p := range places {
		if p.HasName() {
			out = append(out, p)
		}
	}
	return out
}

// MatchesCategory reports whether a tag set belongs to category.
func MatchesCategory(tags map[string]string, category types.Category) bool {
	_, historic := tags[types.TagHistoric]
	tourism, hasTourism := tags[types.TagTourism]
	worship := tags[types.TagAmenity] == types.AmenityPlaceOfWorship

	switch category {
	case types.CategoryTourism:
		return hasTourism
	case types.CategoryHistoric:
		return historic
	case types.CategoryTemple:
		return worship
	default:
		return historic || worship || isTouristAttraction(tourism)
	}
}

func isTouristAttraction(value string) bool {
	return value != "" && touristAttraction.MatchString(value)
}

// FilterCategory keeps the places matching category, in order.
func FilterCategory(places []types.Place, category types.Category) []types.Place {
	out := make([]types.Place, 0, len(places))
	for _, p := range places {
		if MatchesCategory(p.Tags, category) {
			out = append(out, p)
		}
	}
	return out
}

// Limit returns at most n leading items. A non-positive n keeps everything.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
