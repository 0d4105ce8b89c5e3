package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"nearby/internal/providers/openstreetmap"
	"nearby/internal/types"
)

var (
	ErrInputEmpty         = errors.New("please enter a location")
	ErrNotFound           = errors.New("location not found")
	ErrServiceUnavailable = errors.New("geocoding service unavailable")
)

// geocoder implements the Geocoder interface
type geocoder struct {
	provider SearchProvider
	logger   *slog.Logger
}

// NewGeocoder creates a geocoder backed by the public Nominatim service
func NewGeocoder(logger *slog.Logger, userAgent string) Geocoder {
	return NewGeocoderWithProvider(logger, openstreetmap.NewClient(logger, userAgent))
}

// NewGeocoderWithProvider creates a geocoder with a custom provider
// This is useful for testing with mock providers
func NewGeocoderWithProvider(logger *slog.Logger, provider SearchProvider) Geocoder {
	return &geocoder{
		provider: provider,
		logger:   logger.With("component", "geocoder"),
	}
}

// Resolve looks up the first match for query. It makes a single attempt.
func (g *geocoder) Resolve(ctx context.Context, query string) (*types.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInputEmpty
	}

	resp, err := g.provider.Search(ctx, query, 1)
	if err != nil {
		if errors.Is(err, openstreetmap.ErrMalformedResponse) {
			g.logger.Warn("geocoder returned an unexpected payload", "query", query, "error", err)
			return nil, fmt.Errorf("%w: %q", ErrNotFound, query)
		}
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	if len(resp) == 0 {
		g.logger.Debug("no geocoding results", "query", query)
		return nil, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	loc, err := translateLocation(resp[0])
	if err != nil {
		g.logger.Warn("discarding unusable geocoding result", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %q: %w", ErrNotFound, query, err)
	}

	g.logger.Debug("resolved location",
		"query", query,
		"latitude", loc.Coordinates.Latitude,
		"longitude", loc.Coordinates.Longitude,
	)

	return loc, nil
}

// translateLocation converts a Nominatim search result to the domain Location type
func translateLocation(r openstreetmap.SearchResult) (*types.Location, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", r.Lon, err)
	}

	coords := types.NewCoords(lat, lon)
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	name := r.DisplayName
	if name == "" {
		name = r.Name
	}

	return &types.Location{
		Coordinates: coords,
		Name:        name,
		Area:        firstNonEmpty(r.Address.StateDistrict, r.Address.Town, r.Address.Village),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
