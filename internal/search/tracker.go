package search

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a search replaced by a newer one from the same caller
var ErrSuperseded = errors.New("search superseded by a newer request")

// Tracker numbers the searches of one caller. Starting a search cancels the
// one before it, and only the latest search may publish its result.
type Tracker struct {
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelCauseFunc
}

// Ticket identifies one search generation
type Ticket struct {
	tracker    *Tracker
	generation uint64
}

// Begin starts a new generation. The previous generation's context is
// cancelled with ErrSuperseded as its cause.
func (t *Tracker) Begin(ctx context.Context) (context.Context, Ticket) {
	ctx, cancel := context.WithCancelCause(ctx)

	t.mu.Lock()
	prev := t.cancel
	t.generation++
	t.cancel = cancel
	ticket := Ticket{tracker: t, generation: t.generation}
	t.mu.Unlock()

	if prev != nil {
		prev(ErrSuperseded)
	}

	return ctx, ticket
}

// End releases the context of ticket's generation if it is still the latest.
func (t *Tracker) End(ticket Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ticket.generation != t.generation || t.cancel == nil {
		return
	}
	t.cancel(context.Canceled)
	t.cancel = nil
}

// Generation returns the latest generation handed out.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

// Current reports whether no newer search has begun since this ticket.
func (k Ticket) Current() bool {
	return k.tracker != nil && k.tracker.Generation() == k.generation
}

// Guard runs fn as a new generation of t. If a newer generation begins
// before fn returns, fn's outcome is discarded and ErrSuperseded is returned.
func Guard[T any](ctx context.Context, t *Tracker, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, ticket := t.Begin(ctx)
	defer t.End(ticket)

	res, err := fn(ctx)
	if !ticket.Current() {
		var zero T
		return zero, ErrSuperseded
	}
	return res, err
}
