package places

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"nearby/internal/geo"
	"nearby/internal/types"
)

// Arrange orders places for display using English collation for names.
// The input slice is left untouched.
func Arrange(places []types.Place, origin types.Coords, mode types.SortMode) []types.Place {
	return ArrangeWithCollator(places, origin, mode, nil)
}

// ArrangeWithCollator is Arrange with a caller-supplied collator for the
// name ordering. A nil collator falls back to English.
func ArrangeWithCollator(places []types.Place, origin types.Coords, mode types.SortMode, c *collate.Collator) []types.Place {
	out := slices.Clone(places)
	if out == nil {
		out = []types.Place{}
	}

	switch mode {
	case types.SortNearest:
		type ranked struct {
			place types.Place
			km    float64
		}
		rs := make([]ranked, len(out))
		for i, p := range out {
			rs[i] = ranked{place: p, km: geo.DistanceKm(origin, p.Coordinates)}
		}
		slices.SortStableFunc(rs, func(a, b ranked) int {
			return cmp.Compare(a.km, b.km)
		})
		for i := range rs {
			out[i] = rs[i].place
		}
	case types.SortName:
		if c == nil {
			c = NewCollator(language.English)
		}
		slices.SortStableFunc(out, func(a, b types.Place) int {
			return c.CompareString(a.Name, b.Name)
		})
	}

	return out
}

// NewCollator returns a collator for tag. Collators are not safe for
// concurrent use, so callers create one per search.
func NewCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag)
}
