package location

import (
	"context"

	"nearby/internal/providers/openstreetmap"
	"nearby/internal/types"
)

// Geocoder resolves free-text place names to coordinates
type Geocoder interface {
	// Resolve returns the best match for query, or one of ErrInputEmpty,
	// ErrNotFound or ErrServiceUnavailable
	Resolve(ctx context.Context, query string) (*types.Location, error)
}

// SearchProvider defines the interface for forward geocoding providers
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) (openstreetmap.SearchAPIResponse, error)
}
