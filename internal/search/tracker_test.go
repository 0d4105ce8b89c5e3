package search

import (
	"context"
	"errors"
	"testing"
)

func TestTracker_BeginSupersedes(t *testing.T) {
	var tracker Tracker

	ctx1, first := tracker.Begin(context.Background())
	if !first.Current() {
		t.Fatal("first ticket should be current before a second search begins")
	}

	ctx2, second := tracker.Begin(context.Background())

	if first.Current() {
		t.Error("first ticket still current after second Begin")
	}
	if !second.Current() {
		t.Error("second ticket not current")
	}
	if ctx1.Err() == nil {
		t.Error("first context not cancelled")
	}
	if !errors.Is(context.Cause(ctx1), ErrSuperseded) {
		t.Errorf("first context cause = %v, want ErrSuperseded", context.Cause(ctx1))
	}
	if ctx2.Err() != nil {
		t.Errorf("second context cancelled early: %v", ctx2.Err())
	}
	if second.generation != first.generation+1 {
		t.Errorf("generations %d then %d", first.generation, second.generation)
	}

	tracker.End(first)
	if ctx2.Err() != nil {
		t.Error("ending a stale ticket cancelled the current search")
	}

	tracker.End(second)
	if ctx2.Err() == nil {
		t.Error("ending the current ticket did not release its context")
	}
}

func TestGuard_StaleResultDiscarded(t *testing.T) {
	var tracker Tracker

	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := Guard(context.Background(), &tracker, func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "stale", nil
		})
		done <- err
	}()

	<-started
	got, err := Guard(context.Background(), &tracker, func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil || got != "fresh" {
		t.Fatalf("second Guard() = %q, %v", got, err)
	}

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Guard() error = %v, want ErrSuperseded", err)
	}
}

func TestRunInSession(t *testing.T) {
	sessions := NewSessions()

	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := RunInSession(context.Background(), sessions, "abc", func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		done <- err
	}()

	<-started
	if sessions.Len() != 1 {
		t.Errorf("Len() = %d during search, want 1", sessions.Len())
	}

	// a different session is unaffected
	if got, err := RunInSession(context.Background(), sessions, "other", func(context.Context) (int, error) { return 7, nil }); err != nil || got != 7 {
		t.Fatalf("other session = %d, %v", got, err)
	}

	got, err := RunInSession(context.Background(), sessions, "abc", func(context.Context) (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Fatalf("second search = %d, %v", got, err)
	}

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first search error = %v, want ErrSuperseded", err)
	}
	if sessions.Len() != 0 {
		t.Errorf("Len() = %d after all searches, want 0", sessions.Len())
	}
}

func TestRunInSession_Anonymous(t *testing.T) {
	sessions := NewSessions()

	got, err := RunInSession(context.Background(), sessions, "", func(context.Context) (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("RunInSession() = %q, %v", got, err)
	}
	if sessions.Len() != 0 {
		t.Errorf("anonymous search left %d sessions", sessions.Len())
	}
}
