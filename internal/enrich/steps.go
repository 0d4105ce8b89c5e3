package enrich

import (
	"context"
	"log/slog"

	"nearby/internal/geo"
	"nearby/internal/types"
)

// DistanceStep fills in the distance from origin.
func DistanceStep(origin types.Coords) Step[types.EnrichedPlace] {
	return func(_ context.Context, p *types.EnrichedPlace) error {
		p.DistanceKm = geo.DistanceKm(origin, p.Coordinates)
		return nil
	}
}

// SummaryStep fills in the description and image.
func SummaryStep(e Enricher) Step[types.EnrichedPlace] {
	return func(ctx context.Context, p *types.EnrichedPlace) error {
		got := e.Enrich(ctx, p.Name, p.Tags)
		p.Description = got.Description
		p.ImageURL = got.ImageURL
		return nil
	}
}

// NewPlacePipeline runs local work before the remote lookup for each place.
func NewPlacePipeline(logger *slog.Logger, origin types.Coords, e Enricher) *Pipeline[types.EnrichedPlace] {
	return NewPipeline(logger,
		NewStage("local", DistanceStep(origin)),
		NewStage("remote", SummaryStep(e)),
	)
}

// Places enriches places in order and returns the display records. On
// cancellation it returns ctx.Err() and no records.
func Places(ctx context.Context, logger *slog.Logger, origin types.Coords, e Enricher, places []types.Place) ([]types.EnrichedPlace, error) {
	items := make([]*types.EnrichedPlace, len(places))
	for i, p := range places {
		items[i] = &types.EnrichedPlace{Place: p}
	}

	if err := NewPlacePipeline(logger, origin, e).Run(ctx, items); err != nil {
		return nil, err
	}

	out := make([]types.EnrichedPlace, len(items))
	for i, item := range items {
		out[i] = *item
	}
	return out, nil
}
