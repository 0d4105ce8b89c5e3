package render

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"nearby/internal/search"
)

// OriginLabel names the marker placed at the search origin
const OriginLabel = "You are here"

// Markers builds a map layer with the origin first and one point per place.
func Markers(res *search.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	origin := geojson.NewFeature(orb.Point{res.Origin.Longitude, res.Origin.Latitude})
	origin.Properties["name"] = OriginLabel
	origin.Properties["kind"] = "origin"
	origin.Properties["radius_meters"] = res.RadiusMeters
	fc.Append(origin)

	for _, p := range res.Places {
		f := geojson.NewFeature(orb.Point{p.Coordinates.Longitude, p.Coordinates.Latitude})
		f.ID = p.ID
		f.Properties["name"] = p.Name
		f.Properties["kind"] = "place"
		f.Properties["distance"] = Distance(p.DistanceKm)
		f.Properties["distance_km"] = p.DistanceKm
		f.Properties["image_url"] = p.ImageURL
		fc.Append(f)
	}

	return fc
}

// GeoJSON writes the marker layer for res.
func GeoJSON(w io.Writer, res *search.Result) error {
	data, err := Markers(res).MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
