package enrich

import (
	"context"
	"log/slog"
	"sync"
)

// Pipeline applies its stages, in order, to each item of a batch. Items are
// handled one after another, so a batch never has more than one stage's
// steps in flight.
type Pipeline[T any] struct {
	stages []Stage[T]
	logger *slog.Logger
}

// NewPipeline constructs a Pipeline from the provided stages.
func NewPipeline[T any](logger *slog.Logger, stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{
		stages: stages,
		logger: logger.With("component", "enrich-pipeline"),
	}
}

// Run processes items in order. Step errors are logged and do not stop the
// run; cancellation of ctx does, and Run then returns ctx.Err() with the
// remaining items untouched.
func (p *Pipeline[T]) Run(ctx context.Context, items []*T) error {
	for i, item := range items {
		for _, stage := range p.stages {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.runStage(ctx, stage, i, item)
		}
	}
	return ctx.Err()
}

func (p *Pipeline[T]) runStage(ctx context.Context, stage Stage[T], index int, item *T) {
	if len(stage.steps) == 1 {
		if err := stage.steps[0](ctx, item); err != nil {
			p.logger.Warn("step failed", "stage", stage.name, "item", index, "error", err)
		}
		return
	}

	var wg sync.WaitGroup
	for _, step := range stage.steps {
		wg.Add(1)
		go func(step Step[T]) {
			defer wg.Done()
			if err := step(ctx, item); err != nil {
				p.logger.Warn("step failed", "stage", stage.name, "item", index, "error", err)
			}
		}(step)
	}
	wg.Wait()
}
