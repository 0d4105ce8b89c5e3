// Package navigation defines the hand-off between the search step and the
// results view: a results location carrying lat, lon and radius.
package navigation

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"nearby/internal/types"
)

// DefaultRadiusMeters applies when radius is absent, non-numeric or not positive
const DefaultRadiusMeters = 3000

// Query parameter names of the results location
const (
	ParamLatitude  = "lat"
	ParamLongitude = "lon"
	ParamRadius    = "radius"
	ParamCategory  = "category"
	ParamSort      = "sort"
)

var ErrMissingCoordinate = errors.New("lat and lon are required")

// Params is the decoded results location
type Params struct {
	Origin       types.Coords
	RadiusMeters int
	Category     types.Category
	Sort         types.SortMode
}

// ResultsURL appends the origin and radius to base as query parameters.
// Existing query parameters on base are kept.
func ResultsURL(base string, origin types.Coords, radiusMeters int) string {
	u, err := url.Parse(base)
	if err != nil {
		u = &url.URL{Path: base}
	}

	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	q := u.Query()
	q.Set(ParamLatitude, strconv.FormatFloat(origin.Latitude, 'f', -1, 64))
	q.Set(ParamLongitude, strconv.FormatFloat(origin.Longitude, 'f', -1, 64))
	q.Set(ParamRadius, strconv.Itoa(radiusMeters))
	u.RawQuery = q.Encode()

	return u.String()
}

// ResultsURLWith is ResultsURL with optional category and sort parameters.
// Category all and sort nearest are left out since they are the defaults.
func ResultsURLWith(base string, p Params) string {
	link := ResultsURL(base, p.Origin, p.RadiusMeters)
	if p.Category == types.CategoryAll && p.Sort == types.SortNearest {
		return link
	}

	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := u.Query()
	if p.Category != types.CategoryAll {
		q.Set(ParamCategory, p.Category.String())
	}
	if p.Sort != types.SortNearest {
		q.Set(ParamSort, p.Sort.String())
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// ParseResults decodes a results location. Coordinates are required and must
// be valid; radius falls back to DefaultRadiusMeters.
func ParseResults(values url.Values) (Params, error) {
	latRaw := strings.TrimSpace(values.Get(ParamLatitude))
	lonRaw := strings.TrimSpace(values.Get(ParamLongitude))
	if latRaw == "" || lonRaw == "" {
		return Params{}, ErrMissingCoordinate
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %q", types.ErrInvalidLatitude, latRaw)
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %q", types.ErrInvalidLongitude, lonRaw)
	}

	origin := types.NewCoords(lat, lon)
	if err := origin.Validate(); err != nil {
		return Params{}, err
	}

	category, err := types.ParseCategory(values.Get(ParamCategory))
	if err != nil {
		return Params{}, err
	}
	sort, err := types.ParseSortMode(values.Get(ParamSort))
	if err != nil {
		return Params{}, err
	}

	return Params{
		Origin:       origin,
		RadiusMeters: ParseRadius(values.Get(ParamRadius)),
		Category:     category,
		Sort:         sort,
	}, nil
}

// ParseRadius reads the leading integer of raw as meters, so "2500m" is 2500
// and "12.5" is 12. Anything without a positive leading integer yields
// DefaultRadiusMeters.
func ParseRadius(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	r, err := strconv.Atoi(s[:end])
	if err != nil || r <= 0 {
		return DefaultRadiusMeters
	}
	return r
}
