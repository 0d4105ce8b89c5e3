package main

import (
	"log/slog"

	"go.uber.org/fx"

	"nearby/internal/config"
	"nearby/internal/elevation"
	"nearby/internal/enrich"
	"nearby/internal/location"
	"nearby/internal/places"
	"nearby/internal/retry"
	"nearby/internal/search"
	"nearby/internal/timezone"
)

var servicesModule = fx.Module("services",
	fx.Provide(
		provideGeocoder,
		provideFetcher,
		provideEnricher,
		provideTimezone,
		provideElevation,
		provideSearchService,
		search.NewSessions,
	),
)

func provideGeocoder(cfg *config.Config, logger *slog.Logger) location.Geocoder {
	return location.NewGeocoder(logger, cfg.HTTP.UserAgent)
}

func provideFetcher(cfg *config.Config, logger *slog.Logger) places.Fetcher {
	return places.NewFetcher(logger, cfg.HTTP.UserAgent, fetcherOptions(cfg))
}

func fetcherOptions(cfg *config.Config) places.Options {
	return places.Options{
		ResultCap: cfg.Overpass.ResultCap,
		Retry: retry.Policy{
			MaxAttempts: cfg.Overpass.Retry.MaxAttempts,
			Delay:       retry.Fixed(cfg.Overpass.Retry.Delay),
			Clock:       retry.RealClock(),
		},
	}
}

func provideEnricher(cfg *config.Config, logger *slog.Logger) enrich.Enricher {
	return enrich.NewEnricher(logger, cfg.HTTP.UserAgent, cfg.App.PlaceholderBaseURL)
}

// provideTimezone degrades to no time zone rather than failing startup
func provideTimezone(logger *slog.Logger) search.TimezoneFinder {
	tz, err := timezone.NewService()
	if err != nil {
		logger.Warn("time zone lookup disabled", "error", err)
		return nil
	}
	return tz
}

func provideElevation(cfg *config.Config, logger *slog.Logger) search.ElevationFinder {
	return elevation.NewService(logger, cfg.HTTP.UserAgent)
}

func provideSearchService(
	cfg *config.Config,
	logger *slog.Logger,
	geocoder location.Geocoder,
	fetcher places.Fetcher,
	enricher enrich.Enricher,
	tz search.TimezoneFinder,
	elev search.ElevationFinder,
) search.Service {
	return search.NewService(logger, geocoder, fetcher, enricher, tz, elev, search.Options{
		DisplayLimit: cfg.App.DisplayLimit,
		Locale:       cfg.Locale(),
	})
}
