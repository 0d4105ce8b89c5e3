// Package enrich turns fetched places into display-ready records: a
// Wikipedia summary and image with category placeholders as the fallback,
// applied through a small staged pipeline.
package enrich

import (
	"context"
)

// Step mutates a single item. A failing step returns an error; the pipeline
// logs it and carries on with the next step.
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that may run at the same time for one item. The
// pipeline waits for every step of a stage before starting the next.
type Stage[T any] struct {
	name  string
	steps []Step[T]
}

// NewStage constructs a named Stage from the provided steps.
func NewStage[T any](name string, steps ...Step[T]) Stage[T] {
	return Stage[T]{name: name, steps: steps}
}
