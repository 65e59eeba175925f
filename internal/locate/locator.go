package locate

import (
	"context"
	"time"

	"mosque/pkg/geo"
)

// Request carries the hints of a single-shot position request.
type Request struct {
	HighAccuracy bool
	Timeout      time.Duration
	// MaxCacheAge of zero means a cached fix must not be reused.
	MaxCacheAge time.Duration
}

var DefaultRequest = Request{HighAccuracy: true, Timeout: 10 * time.Second}

// Locator produces the device position. Implementations return one of the
// geolocation sentinel errors on failure.
type Locator interface {
	Locate(ctx context.Context, req Request) (geo.Coordinate, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context, req Request) (geo.Coordinate, error)

func (f LocatorFunc) Locate(ctx context.Context, req Request) (geo.Coordinate, error) {
	return f(ctx, req)
}

// Fixed returns a Locator that always reports c.
func Fixed(c geo.Coordinate) Locator {
	return LocatorFunc(func(context.Context, Request) (geo.Coordinate, error) {
		return c, nil
	})
}

// Failing returns a Locator that always fails with err.
func Failing(err error) Locator {
	return LocatorFunc(func(context.Context, Request) (geo.Coordinate, error) {
		return geo.Coordinate{}, err
	})
}
