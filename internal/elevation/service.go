// Package elevation looks up terrain height for a coordinate.
package elevation

import (
	"context"
	"fmt"
	"log/slog"

	"nearby/internal/providers/openmeteo"
	"nearby/internal/types"
)

// Provider defines the interface for point elevation lookups in meters
type Provider interface {
	Elevation(ctx context.Context, latitude, longitude float64) (float64, error)
}

type Service interface {
	Lookup(ctx context.Context, coords types.Coords) (types.Elevation, error)
}

type service struct {
	provider Provider
	logger   *slog.Logger
}

func NewService(logger *slog.Logger, userAgent string) Service {
	return NewServiceWithProvider(logger, openmeteo.NewClient(logger, userAgent))
}

// NewServiceWithProvider creates a service with a custom provider (useful for testing)
func NewServiceWithProvider(logger *slog.Logger, provider Provider) Service {
	return &service{
		provider: provider,
		logger:   logger.With("component", "elevation"),
	}
}

func (s *service) Lookup(ctx context.Context, coords types.Coords) (types.Elevation, error) {
	if err := coords.Validate(); err != nil {
		return types.Elevation{}, err
	}

	meters, err := s.provider.Elevation(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return types.Elevation{}, fmt.Errorf("elevation lookup failed: %w", err)
	}

	s.logger.Debug("resolved elevation",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"meters", meters,
	)
	return types.NewElevationFromMeters(meters), nil
}
