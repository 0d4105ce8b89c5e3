package places

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nearby/internal/providers/overpass"
	"nearby/internal/retry"
	"nearby/internal/types"
)

const (
	DefaultRadiusMeters = 3000
	DefaultResultCap    = 25
	DefaultMaxAttempts  = 3
	DefaultRetryDelay   = 3 * time.Second

	// server-side query timeout sent with every request
	queryTimeoutSeconds = 25

	// DegradedNotice is shown when every attempt to reach the map data service failed
	DegradedNotice = "Too many requests. Please try again later."
)

// touristAttractions are the tourism values included when no category is chosen
const touristAttractions = "attraction|museum|gallery|viewpoint"

// FetchResult holds the places found around an origin. Degraded is set when
// the map data service could not be reached and Places is empty as a result.
type FetchResult struct {
	Places   []types.Place
	Degraded bool
	Notice   string
}

// Fetcher finds points of interest around a coordinate
type Fetcher interface {
	// FetchNearby never reports upstream failures as errors; it only returns
	// an error when ctx is cancelled or its deadline passes.
	FetchNearby(ctx context.Context, origin types.Coords, radiusMeters int, category types.Category) (FetchResult, error)
}

// InterpreterProvider defines the interface for Overpass query providers
type InterpreterProvider interface {
	Interpret(ctx context.Context, query overpass.Query) (*overpass.InterpreterResponse, error)
}

// Options tune the query size and the retry behaviour
type Options struct {
	ResultCap int
	Retry     retry.Policy
}

// DefaultOptions makes three attempts three seconds apart and caps results at 25.
func DefaultOptions() Options {
	return Options{
		ResultCap: DefaultResultCap,
		Retry: retry.Policy{
			MaxAttempts: DefaultMaxAttempts,
			Delay:       retry.Fixed(DefaultRetryDelay),
			Clock:       retry.RealClock(),
		},
	}
}

type fetcher struct {
	provider InterpreterProvider
	opts     Options
	logger   *slog.Logger
}

// NewFetcher creates a fetcher backed by the public Overpass interpreter
func NewFetcher(logger *slog.Logger, userAgent string, opts Options) Fetcher {
	return NewFetcherWithProvider(logger, overpass.NewClient(logger, userAgent), opts)
}

// NewFetcherWithProvider creates a fetcher with a custom provider
// This is useful for testing with mock providers and simulated clocks
func NewFetcherWithProvider(logger *slog.Logger, provider InterpreterProvider, opts Options) Fetcher {
	if opts.ResultCap <= 0 {
		opts.ResultCap = DefaultResultCap
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Retry.Delay == nil {
		opts.Retry.Delay = retry.Fixed(DefaultRetryDelay)
	}
	return &fetcher{
		provider: provider,
		opts:     opts,
		logger:   logger.With("component", "places-fetcher"),
	}
}

func (f *fetcher) FetchNearby(ctx context.Context, origin types.Coords, radiusMeters int, category types.Category) (FetchResult, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	query := BuildQuery(origin, radiusMeters, category, f.opts.ResultCap)

	policy := f.opts.Retry
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		f.logger.Warn("map data request failed, retrying",
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"delay", delay,
			"error", err,
		)
	}

	var resp *overpass.InterpreterResponse
	err := policy.Do(ctx, func(ctx context.Context, attempt int) error {
		r, err := f.provider.Interpret(ctx, query)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return FetchResult{}, ctxErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return FetchResult{}, err
		}
		f.logger.Error("giving up on map data request",
			"latitude", origin.Latitude,
			"longitude", origin.Longitude,
			"radius_meters", radiusMeters,
			"error", err,
		)
		return FetchResult{
			Places:   []types.Place{},
			Degraded: true,
			Notice:   DegradedNotice,
		}, nil
	}

	places := translatePlaces(resp.Elements)

	f.logger.Debug("fetched nearby places",
		"category", category.String(),
		"radius_meters", radiusMeters,
		"count", len(places),
	)

	return FetchResult{Places: places}, nil
}

// Filters returns the Overpass tag filters selecting a category.
func Filters(category types.Category) []overpass.Filter {
	worship := overpass.Filter{Key: types.TagAmenity, Value: types.AmenityPlaceOfWorship}

	switch category {
	case types.CategoryTourism:
		return []overpass.Filter{{Key: types.TagTourism}}
	case types.CategoryHistoric:
		return []overpass.Filter{{Key: types.TagHistoric}}
	case types.CategoryTemple:
		return []overpass.Filter{worship}
	default:
		return []overpass.Filter{
			{Key: types.TagTourism, Value: touristAttractions, Regex: true},
			{Key: types.TagHistoric},
			worship,
		}
	}
}

// BuildQuery assembles the node query for a category around origin.
func BuildQuery(origin types.Coords, radiusMeters int, category types.Category, resultCap int) overpass.Query {
	return overpass.Query{
		Filters:        Filters(category),
		Latitude:       origin.Latitude,
		Longitude:      origin.Longitude,
		RadiusMeters:   radiusMeters,
		TimeoutSeconds: queryTimeoutSeconds,
		Limit:          resultCap,
	}
}

// translatePlaces converts Overpass elements to domain places, dropping
// anything without a usable coordinate
func translatePlaces(elements []overpass.Element) []types.Place {
	places := make([]types.Place, 0, len(elements))
	for _, e := range elements {
		coords := types.NewCoords(e.Lat, e.Lon)
		if coords.Validate() != nil {
			continue
		}
		places = append(places, types.NewPlace(e.ID, coords, e.Tags))
	}
	return places
}
