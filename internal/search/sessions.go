package search

import (
	"context"
	"sync"
)

// Sessions keeps a Tracker per caller while that caller has a search running
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	tracker *Tracker
	active  int
}

func NewSessions() *Sessions {
	return &Sessions{entries: make(map[string]*sessionEntry)}
}

// acquire returns the tracker for key and a func that must be called once
// the search is done. Entries are dropped when no search uses them.
func (s *Sessions) acquire(key string) (*Tracker, func()) {
	if key == "" {
		return &Tracker{}, func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &sessionEntry{tracker: &Tracker{}}
		s.entries[key] = e
	}
	e.active++

	return e.tracker, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		e.active--
		if e.active == 0 && s.entries[key] == e {
			delete(s.entries, key)
		}
	}
}

// Len reports how many sessions have a search in flight.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunInSession runs fn as the latest search of session key. An empty key
// means the caller did not identify itself, so nothing is superseded.
func RunInSession[T any](ctx context.Context, s *Sessions, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	tracker, release := s.acquire(key)
	defer release()
	return Guard(ctx, tracker, fn)
}
