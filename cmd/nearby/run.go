package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"nearby/internal/config"
	"nearby/internal/elevation"
	"nearby/internal/enrich"
	"nearby/internal/location"
	"nearby/internal/places"
	"nearby/internal/render"
	"nearby/internal/retry"
	"nearby/internal/search"
	"nearby/internal/timezone"
	"nearby/internal/types"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// defaultLogLevel keeps terminal output to warnings unless asked otherwise
const defaultLogLevel = "warn"

type options struct {
	query      string
	lat        float64
	lon        float64
	radius     int
	category   string
	sort       string
	format     string
	configFile string
}

type serviceFactory func(cfg *config.Config, logger *slog.Logger) search.Service

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("nearby", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: nearby (--query <place> | --lat <deg> --lon <deg>) [flags]")
		fs.PrintDefaults()
	}

	fs.StringVarP(&opts.query, "query", "q", "", "place name to search around")
	fs.Float64Var(&opts.lat, "lat", 0, "latitude of the search origin, skips geocoding")
	fs.Float64Var(&opts.lon, "lon", 0, "longitude of the search origin, skips geocoding")
	fs.IntVarP(&opts.radius, "radius", "r", places.DefaultRadiusMeters, "search radius in meters")
	fs.StringVarP(&opts.category, "category", "c", "all", "all, tourism, historic or temple")
	fs.StringVarP(&opts.sort, "sort", "s", "nearest", "nearest, name or none")
	fs.StringVarP(&opts.format, "format", "f", "text", "output format: text, json or geojson")
	fs.StringVar(&opts.configFile, "config", "", "config file (default ./config.yaml)")
	fs.String("log-level", defaultLogLevel, "debug, info, warn or error")
	fs.Int("limit", places.DefaultDisplayLimit, "maximum number of places shown")
	fs.String("locale", "en", "locale used when sorting by name")

	return fs
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, newService serviceFactory) int {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	byCoords := fs.Changed("lat") || fs.Changed("lon")
	switch {
	case byCoords && !(fs.Changed("lat") && fs.Changed("lon")):
		fmt.Fprintln(stderr, "error: --lat and --lon must be given together")
		return exitUsage
	case byCoords && opts.query != "":
		fmt.Fprintln(stderr, "error: use either --query or --lat/--lon")
		return exitUsage
	case !byCoords && strings.TrimSpace(opts.query) == "":
		fmt.Fprintf(stderr, "error: %v\n", location.ErrInputEmpty)
		return exitUsage
	}

	category, err := types.ParseCategory(opts.category)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	sortMode, err := types.ParseSortMode(opts.sort)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	write, err := writerFor(opts.format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	loadOpts := []config.Option{
		config.WithDefault("log.level", defaultLogLevel),
		config.WithFlag("log.level", fs.Lookup("log-level")),
		config.WithFlag("app.displayLimit", fs.Lookup("limit")),
		config.WithFlag("app.locale", fs.Lookup("locale")),
	}
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configFile))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	logger := cfg.NewLoggerTo(stderr)

	svc := newService(cfg, logger)
	req := search.Request{
		RadiusMeters: opts.radius,
		Category:     category,
		Sort:         sortMode,
	}

	var res *search.Result
	if byCoords {
		req.Origin = types.NewCoords(opts.lat, opts.lon)
		res, err = svc.Search(ctx, req)
	} else {
		res, err = svc.SearchByName(ctx, opts.query, req)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", describe(err))
		return exitError
	}

	if err := write(stdout, res); err != nil {
		fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
		return exitError
	}
	return exitOK
}

func writerFor(format string) (func(io.Writer, *search.Result) error, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return render.Cards, nil
	case "json":
		return func(w io.Writer, res *search.Result) error { return render.JSON(w, res) }, nil
	case "geojson":
		return render.GeoJSON, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// describe turns search errors into messages for the terminal
func describe(err error) string {
	switch {
	case errors.Is(err, location.ErrInputEmpty):
		return location.ErrInputEmpty.Error()
	case errors.Is(err, location.ErrNotFound):
		return location.ErrNotFound.Error()
	case errors.Is(err, location.ErrServiceUnavailable):
		return "geocoding service is unavailable, please try again later"
	case errors.Is(err, context.Canceled):
		return "search cancelled"
	default:
		return err.Error()
	}
}

func newSearchService(cfg *config.Config, logger *slog.Logger) search.Service {
	var tz search.TimezoneFinder
	if svc, err := timezone.NewService(); err != nil {
		logger.Warn("time zone lookup disabled", "error", err)
	} else {
		tz = svc
	}

	return search.NewService(logger,
		location.NewGeocoder(logger, cfg.HTTP.UserAgent),
		places.NewFetcher(logger, cfg.HTTP.UserAgent, places.Options{
			ResultCap: cfg.Overpass.ResultCap,
			Retry: retry.Policy{
				MaxAttempts: cfg.Overpass.Retry.MaxAttempts,
				Delay:       retry.Fixed(cfg.Overpass.Retry.Delay),
				Clock:       retry.RealClock(),
			},
		}),
		enrich.NewEnricher(logger, cfg.HTTP.UserAgent, cfg.App.PlaceholderBaseURL),
		tz,
		elevation.NewService(logger, cfg.HTTP.UserAgent),
		search.Options{
			DisplayLimit: cfg.App.DisplayLimit,
			Locale:       cfg.Locale(),
		},
	)
}
