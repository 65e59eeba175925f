// Package locate turns device fixes and text queries into reference point
// changes on the presentation engine.
package locate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"mosque/internal/presentation"
	"mosque/pkg/geo"
	"mosque/pkg/location"
)

const requestingMessage = "Requesting location access..."

// Geocoder resolves free text to places. *location.Client implements it.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]location.Place, error)
}

// Engine is the part of *presentation.Engine the controller drives.
type Engine interface {
	Ready() bool
	HandleEvent(ev presentation.Event) (presentation.SessionState, error)
	HandleEventAt(version uint64, ev presentation.Event) (presentation.SessionState, error)
	ReferenceVersion() uint64
	SetStatus(s presentation.Status)
	State() presentation.SessionState
}

// Controller drives the reference point from user actions: device location,
// typed searches and picked suggestions. Failures become error statuses on the
// engine and leave the previous reference in place.
//
// Searches are asynchronous. A search only lands if no newer search or
// suggestion was started through this controller and the engine reference is
// still the one the search started from, so a dataset feed or another client
// moving the reference meanwhile wins over a slow geocoder answer.
type Controller struct {
	engine   Engine
	geocoder Geocoder
	request  Request
	seq      atomic.Uint64
}

// NewController returns a controller using DefaultRequest for location fixes.
func NewController(engine Engine, geocoder Geocoder) *Controller {
	return &Controller{engine: engine, geocoder: geocoder, request: DefaultRequest}
}

// Locate asks loc for a single fix and makes it the reference point. On any
// failure the reference point is left as it was.
func (c *Controller) Locate(ctx context.Context, loc Locator) (presentation.SessionState, error) {
	if !c.engine.Ready() {
		return c.fail(presentation.ErrMapNotReady)
	}
	c.engine.SetStatus(presentation.Info(requestingMessage))

	ctx, cancel := context.WithTimeout(ctx, c.request.Timeout)
	defer cancel()

	fix, err := loc.Locate(ctx, c.request)
	if err != nil {
		return c.fail(classify(err))
	}
	if !fix.Valid() {
		return c.fail(ErrPositionUnavailable)
	}

	log.Printf("Device position %.5f,%.5f", fix.Lat, fix.Lng)
	return c.engine.HandleEvent(presentation.ReferenceChanged{
		Reference: fix,
		Source:    presentation.SourceGeolocation,
	})
}

// Search geocodes query and moves the reference point to the first match.
func (c *Controller) Search(ctx context.Context, query string) (presentation.SessionState, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.fail(ErrEmptyQuery)
	}
	if !c.engine.Ready() {
		return c.fail(presentation.ErrMapNotReady)
	}

	seq := c.seq.Add(1)
	version := c.engine.ReferenceVersion()
	places, err := c.geocoder.Search(ctx, query, 1)
	if c.seq.Load() != seq {
		log.Printf("Dropping stale search response for %q", query)
		return c.engine.State(), ErrSuperseded
	}
	if err != nil {
		log.Printf("Search for %q failed: %v", query, err)
		return c.fail(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	if len(places) == 0 {
		return c.fail(ErrNotFound)
	}

	p := places[0]
	state, err := c.engine.HandleEventAt(version, presentation.ReferenceChanged{
		Reference:   p.Coordinate(),
		Source:      presentation.SourceSearch,
		DisplayName: p.DisplayName,
	})
	if errors.Is(err, presentation.ErrReferenceMoved) {
		log.Printf("Dropping search response for %q, reference moved", query)
		return state, ErrSuperseded
	}
	return state, err
}

// Apply moves the reference point to an already resolved place, such as a
// picked suggestion.
func (c *Controller) Apply(s Suggestion) (presentation.SessionState, error) {
	c.seq.Add(1)
	return c.engine.HandleEvent(presentation.ReferenceChanged{
		Reference:   geo.Coordinate{Lat: s.Lat, Lng: s.Lng},
		Source:      presentation.SourceSearch,
		DisplayName: s.DisplayName,
	})
}

func (c *Controller) fail(err error) (presentation.SessionState, error) {
	if msg := Message(err); msg != "" {
		c.engine.SetStatus(presentation.Error(msg))
	}
	return c.engine.State(), err
}

func classify(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrPositionUnavailable),
		errors.Is(err, ErrTimeout),
		errors.Is(err, ErrUnknown):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnknown, err)
	}
}
