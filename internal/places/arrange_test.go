package places

import (
	"testing"

	"golang.org/x/text/language"

	"nearby/internal/geo"
	"nearby/internal/types"
)

func distance(origin types.Coords, p types.Place) float64 {
	return geo.DistanceKm(origin, p.Coordinates)
}

func ids(places []types.Place) []int64 {
	out := make([]int64, len(places))
	for i, p := range places {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func named(id int64, name string, lat, lon float64) types.Place {
	return types.NewPlace(id, types.NewCoords(lat, lon), map[string]string{"name": name})
}

func TestArrange(t *testing.T) {
	origin := types.NewCoords(0, 0)

	in := []types.Place{
		named(1, "zoo", 0, 0.03),
		named(2, "Bara Imambara", 0, 0.01),
		named(3, "Ángel Gate", 0, 0.02),
		named(4, "anand bhawan", 0, 0.01),
	}

	tests := []struct {
		name string
		mode types.SortMode
		want []int64
	}{
		// 2 and 4 are equidistant and keep their input order
		{"nearest", types.SortNearest, []int64{2, 4, 3, 1}},
		{"name", types.SortName, []int64{4, 3, 2, 1}},
		{"none", types.SortNone, []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Arrange(in, origin, tt.mode))
			if !equalIDs(got, tt.want) {
				t.Errorf("Arrange(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}

	if !equalIDs(ids(in), []int64{1, 2, 3, 4}) {
		t.Errorf("Arrange() modified its input: %v", ids(in))
	}
}

func TestArrange_NameStable(t *testing.T) {
	in := []types.Place{
		named(1, "Temple", 0, 0.05),
		named(2, "Fort", 0, 0.01),
		named(3, "Temple", 0, 0.02),
	}

	got := ids(ArrangeWithCollator(in, types.NewCoords(0, 0), types.SortName, NewCollator(language.Hindi)))
	if want := []int64{2, 1, 3}; !equalIDs(got, want) {
		t.Errorf("ArrangeWithCollator(name) = %v, want %v", got, want)
	}
}

func TestArrange_NearestIsNonDecreasing(t *testing.T) {
	origin := types.NewCoords(26.4499, 80.3319)
	in := []types.Place{
		named(1, "a", 26.50, 80.40),
		named(2, "b", 26.45, 80.33),
		named(3, "c", 26.30, 80.10),
		named(4, "d", 26.46, 80.32),
	}

	got := Arrange(in, origin, types.SortNearest)
	for i := 1; i < len(got); i++ {
		prev := got[i-1]
		cur := got[i]
		if distance(origin, prev) > distance(origin, cur) {
			t.Errorf("place %d (%v) sorted before closer place %d", prev.ID, distance(origin, prev), cur.ID)
		}
	}
}

func TestArrange_Empty(t *testing.T) {
	got := Arrange(nil, types.NewCoords(0, 0), types.SortNearest)
	if got == nil || len(got) != 0 {
		t.Errorf("Arrange(nil) = %v, want empty slice", got)
	}
}
