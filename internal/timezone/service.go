package timezone

import (
	"errors"
	"fmt"
	"sync"
	_ "time/tzdata"

	"github.com/ringsaturn/tzf"

	"nearby/internal/types"
)

// ErrUnknownZone is returned for coordinates outside every known time zone
var ErrUnknownZone = errors.New("could not determine time zone")

// Service resolves the IANA time zone of a search origin
type Service interface {
	// Lookup returns names like "Asia/Kolkata" or "Europe/London"
	Lookup(coords types.Coords) (string, error)
}

// service implements time zone lookup using tzf
type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the shared time zone service.
// tzf keeps its polygon data in memory, so the finder is built once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func (s *service) Lookup(coords types.Coords) (string, error) {
	if err := coords.Validate(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// tzf takes longitude first
	name := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return "", fmt.Errorf("%w: lat=%f, lon=%f", ErrUnknownZone, coords.Latitude, coords.Longitude)
	}

	return name, nil
}
