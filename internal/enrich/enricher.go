package enrich

import (
	"context"
	"log/slog"
	"strings"

	"nearby/internal/providers/wikipedia"
)

// NoDescription is used when no summary text could be found
const NoDescription = "No description available"

// Enrichment is the display material found for a place
type Enrichment struct {
	Description string
	ImageURL    string
}

// Enricher attaches a description and image to a named place
type Enricher interface {
	// Enrich never fails; upstream problems fall back to placeholders.
	Enrich(ctx context.Context, name string, tags map[string]string) Enrichment
}

// SummaryProvider defines the interface for article summary providers
type SummaryProvider interface {
	Summary(ctx context.Context, title string) (*wikipedia.SummaryResponse, error)
}

type enricher struct {
	provider        SummaryProvider
	placeholderBase string
	logger          *slog.Logger
}

// NewEnricher creates an enricher backed by English Wikipedia
func NewEnricher(logger *slog.Logger, userAgent, placeholderBase string) Enricher {
	return NewEnricherWithProvider(logger, wikipedia.NewClient(logger, userAgent), placeholderBase)
}

// NewEnricherWithProvider creates an enricher with a custom provider
// This is useful for testing with mock providers
func NewEnricherWithProvider(logger *slog.Logger, provider SummaryProvider, placeholderBase string) Enricher {
	return &enricher{
		provider:        provider,
		placeholderBase: placeholderBase,
		logger:          logger.With("component", "enricher"),
	}
}

func (e *enricher) Enrich(ctx context.Context, name string, tags map[string]string) Enrichment {
	placeholder := PlaceholderImage(e.placeholderBase, tags)

	summary, err := e.provider.Summary(ctx, name)
	if err != nil {
		e.logger.Debug("no summary, using placeholder",
			"name", name,
			"placeholder", placeholder,
			"error", err,
		)
		return Enrichment{Description: NoDescription, ImageURL: placeholder}
	}

	out := Enrichment{
		Description: strings.TrimSpace(summary.Extract),
		ImageURL:    summary.ThumbnailURL(),
	}
	if out.Description == "" {
		out.Description = NoDescription
	}
	if out.ImageURL == "" {
		out.ImageURL = placeholder
	}
	return out
}
