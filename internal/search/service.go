// Package search ties geocoding, place lookup, ordering and enrichment into
// a single request/response operation.
package search

import (
	"context"
	"log/slog"

	"golang.org/x/text/language"

	"nearby/internal/enrich"
	"nearby/internal/location"
	"nearby/internal/places"
	"nearby/internal/types"
)

// Request describes one nearby search
type Request struct {
	Origin       types.Coords
	RadiusMeters int
	Category     types.Category
	Sort         types.SortMode
}

// Result is what the presentation layer renders
type Result struct {
	Location     *types.Location       `json:"location,omitempty"`
	Origin       types.Coords          `json:"origin"`
	RadiusMeters int                   `json:"radius_meters" example:"3000"`
	Category     types.Category        `json:"category" swaggertype:"string" example:"all"`
	Sort         types.SortMode        `json:"sort" swaggertype:"string" example:"nearest"`
	Timezone     string                `json:"timezone,omitempty" example:"Asia/Kolkata"`
	Elevation    *types.Elevation      `json:"elevation,omitempty"`
	Places       []types.EnrichedPlace `json:"places"`
	Degraded     bool                  `json:"degraded"`
	Notice       string                `json:"notice,omitempty" example:"Too many requests. Please try again later."`
}

// Service runs nearby searches
type Service interface {
	// Search looks around a known coordinate
	Search(ctx context.Context, req Request) (*Result, error)

	// SearchByName geocodes query first; geocoder errors are returned as is
	SearchByName(ctx context.Context, query string, req Request) (*Result, error)
}

// TimezoneFinder defines the interface for origin time zone lookups
type TimezoneFinder interface {
	Lookup(coords types.Coords) (string, error)
}

// ElevationFinder defines the interface for origin elevation lookups
type ElevationFinder interface {
	Lookup(ctx context.Context, coords types.Coords) (types.Elevation, error)
}

// Options tune what a search returns
type Options struct {
	DisplayLimit int
	Locale       language.Tag
}

type service struct {
	geocoder  location.Geocoder
	fetcher   places.Fetcher
	enricher  enrich.Enricher
	timezone  TimezoneFinder
	elevation ElevationFinder
	opts      Options
	logger    *slog.Logger
}

// NewService creates a search service from its collaborators. timezone and
// elevation may be nil.
func NewService(
	logger *slog.Logger,
	geocoder location.Geocoder,
	fetcher places.Fetcher,
	enricher enrich.Enricher,
	timezone TimezoneFinder,
	elevation ElevationFinder,
	opts Options,
) Service {
	if opts.DisplayLimit <= 0 {
		opts.DisplayLimit = places.DefaultDisplayLimit
	}
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	return &service{
		geocoder:  geocoder,
		fetcher:   fetcher,
		enricher:  enricher,
		timezone:  timezone,
		elevation: elevation,
		opts:      opts,
		logger:    logger.With("component", "search"),
	}
}

func (s *service) SearchByName(ctx context.Context, query string, req Request) (*Result, error) {
	loc, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	req.Origin = loc.Coordinates
	res, err := s.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	res.Location = loc
	return res, nil
}

func (s *service) Search(ctx context.Context, req Request) (*Result, error) {
	if err := req.Origin.Validate(); err != nil {
		return nil, err
	}
	if req.RadiusMeters <= 0 {
		req.RadiusMeters = places.DefaultRadiusMeters
	}

	fetched, err := s.fetcher.FetchNearby(ctx, req.Origin, req.RadiusMeters, req.Category)
	if err != nil {
		return nil, err
	}

	selected := places.Named(fetched.Places)
	selected = places.FilterCategory(selected, req.Category)
	selected = places.ArrangeWithCollator(selected, req.Origin, req.Sort, places.NewCollator(s.opts.Locale))
	selected = places.Limit(selected, s.opts.DisplayLimit)

	enriched, err := enrich.Places(ctx, s.logger, req.Origin, s.enricher, selected)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Origin:       req.Origin,
		RadiusMeters: req.RadiusMeters,
		Category:     req.Category,
		Sort:         req.Sort,
		Timezone:     s.lookupTimezone(req.Origin),
		Elevation:    s.lookupElevation(ctx, req.Origin),
		Places:       enriched,
		Degraded:     fetched.Degraded,
		Notice:       fetched.Notice,
	}

	s.logger.Info("search complete",
		"latitude", req.Origin.Latitude,
		"longitude", req.Origin.Longitude,
		"radius_meters", req.RadiusMeters,
		"category", req.Category.String(),
		"fetched", len(fetched.Places),
		"shown", len(enriched),
		"degraded", fetched.Degraded,
	)

	return res, nil
}

func (s *service) lookupTimezone(origin types.Coords) string {
	if s.timezone == nil {
		return ""
	}
	name, err := s.timezone.Lookup(origin)
	if err != nil {
		s.logger.Warn("time zone lookup failed", "error", err)
		return ""
	}
	return name
}

func (s *service) lookupElevation(ctx context.Context, origin types.Coords) *types.Elevation {
	if s.elevation == nil {
		return nil
	}
	e, err := s.elevation.Lookup(ctx, origin)
	if err != nil {
		s.logger.Warn("elevation lookup failed", "error", err)
		return nil
	}
	return &e
}
