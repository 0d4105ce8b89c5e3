// Package render presents search results as text cards, GeoJSON map
// markers or JSON documents.
package render

import (
	"fmt"
	"io"
	"strings"

	"nearby/internal/search"
)

// NoPlacesMessage is printed when a search returns nothing to show
const NoPlacesMessage = "No places found"

// Cards writes one text card per place.
func Cards(w io.Writer, res *search.Result) error {
	var b strings.Builder

	origin := fmt.Sprintf("%.4f, %.4f", res.Origin.Latitude, res.Origin.Longitude)
	if res.Location != nil && res.Location.Name != "" {
		origin = res.Location.Name
	}
	fmt.Fprintf(&b, "Places near %s (within %.1f km, %s)\n", origin, float64(res.RadiusMeters)/1000, res.Category)
	if res.Timezone != "" {
		fmt.Fprintf(&b, "Time zone: %s\n", res.Timezone)
	}
	if res.Elevation != nil {
		fmt.Fprintf(&b, "Elevation: %.0f m (%.0f ft)\n", res.Elevation.Meters, res.Elevation.Feet)
	}
	b.WriteString("\n")

	if res.Notice != "" {
		fmt.Fprintf(&b, "%s\n\n", res.Notice)
	}

	if len(res.Places) == 0 {
		if res.Notice == "" {
			fmt.Fprintf(&b, "%s\n", NoPlacesMessage)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, p := range res.Places {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "   %s\n", Distance(p.DistanceKm))
		if p.Description != "" {
			fmt.Fprintf(&b, "   %s\n", p.Description)
		}
		if p.ImageURL != "" {
			fmt.Fprintf(&b, "   %s\n", p.ImageURL)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Distance formats a distance the way cards show it, e.g. "1.25 km away".
func Distance(km float64) string {
	return fmt.Sprintf("%.2f km away", km)
}
