package weather

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the provider reports a failure status for the city.
	ErrNotFound = errors.New("city not found")

	// ErrTransport is returned when the provider could not be reached or its answer could not be read.
	ErrTransport = errors.New("weather provider unavailable")
)

// Provider abstracts a current-weather source keyed by city name.
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (Reading, error)
}
