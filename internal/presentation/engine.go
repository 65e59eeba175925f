// Package presentation keeps the markers on a map surface in step with the
// current reference point, radius and viewport.
//
// The engine owns all session state. Every mutation happens under one lock and
// leaves the overlay invariants intact before the lock is released: one marker
// per mosque, and at most one user marker and one radius circle, both present
// only while a reference point is known.
package presentation

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"mosque/internal/models"
	"mosque/internal/pin"
	"mosque/internal/proximity"
	"mosque/pkg/directions"
	"mosque/pkg/geo"
)

// Map defaults. InitialZoom frames the whole dataset, ReferenceZoom is used
// when a reference point is set and FocusZoom when a mosque is picked from
// the list.
const (
	DefaultRadiusKm = 1.0
	DefaultWidthPx  = 1280
	InitialZoom     = 12
	ReferenceZoom   = 14
	FocusZoom       = 16
)

const mapNotReadyMessage = "Map is still loading, please try again in a moment"

// Errors returned by Engine operations. None of them changes session state
// except for the error status set by ErrMapNotReady.
var (
	ErrMapNotReady   = errors.New("map not ready")
	ErrInvalidRadius = errors.New("radius must be a positive number")
	ErrUnknownMosque = errors.New("unknown mosque")

	// ErrInvalidReference rejects reference points outside the valid
	// latitude and longitude ranges, or with NaN or infinite components.
	ErrInvalidReference = errors.New("reference point out of range")

	// ErrReferenceMoved is returned by HandleEventAt when the reference point
	// changed after the caller read ReferenceVersion.
	ErrReferenceMoved = errors.New("reference point changed meanwhile")
)

// SessionState is a snapshot of everything the engine drew and why.
type SessionState struct {
	Reference     *geo.Coordinate `json:"reference"`
	Source        Source          `json:"source,omitempty"`
	DisplayName   string          `json:"display_name,omitempty"`
	RadiusKm      float64         `json:"radius_km"`
	WidthPx       int             `json:"width_px"`
	Markers       []*Marker       `json:"markers"`
	UserMarker    *Marker         `json:"user_marker"`
	RadiusOverlay *Circle         `json:"radius_overlay"`
	Status        Status          `json:"status"`
}

// Options configures a new Engine. Zero values fall back to DefaultRadiusKm
// and DefaultWidthPx; a zero MinRadiusKm or MaxRadiusKm leaves that side of
// the radius unbounded.
type Options struct {
	RadiusKm    float64
	MinRadiusKm float64
	MaxRadiusKm float64
	WidthPx     int
	Platform    directions.Platform
}

// Engine owns the session state of one map: the reference point, the radius,
// the viewport width and every overlay drawn for them.
//
// Each input is one call: HandleEvent for reference, radius, viewport and
// clear events, Focus for list selections and SetMosques for dataset reloads.
// Every call takes the engine lock, rebuilds the marker set from scratch
// where needed and returns a copy of the resulting SessionState, so callers
// on different goroutines (HTTP handlers, the Kafka feed) never observe a
// half drawn map.
//
// Until Attach binds a Surface the engine only records status messages and
// rejects events with ErrMapNotReady.
type Engine struct {
	mu       sync.Mutex
	surface  Surface
	mosques  []models.Mosque
	opts     Options
	state    SessionState
	platform directions.Platform
	// refVersion counts reference point changes and clears.
	refVersion uint64
}

// New creates a detached engine for mosques. Records without an ID get their
// models.StableID.
func New(mosques []models.Mosque, opts Options) *Engine {
	if opts.RadiusKm <= 0 {
		opts.RadiusKm = DefaultRadiusKm
	}
	if opts.WidthPx <= 0 {
		opts.WidthPx = DefaultWidthPx
	}
	return &Engine{
		mosques:  withIDs(mosques),
		opts:     opts,
		platform: opts.Platform,
		state: SessionState{
			RadiusKm: opts.RadiusKm,
			WidthPx:  opts.WidthPx,
		},
	}
}

// Attach binds the engine to a ready map surface, centres it and draws the
// neutral marker set.
func (e *Engine) Attach(s Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.surface = s
	s.SetView(geo.DhakaCenter, InitialZoom)
	s.InvalidateSize()
	e.redraw()
}

// HandleEvent applies ev and returns the resulting state. Before Attach every
// event is rejected with ErrMapNotReady and a status message.
func (e *Engine) HandleEvent(ev Event) (SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.surface == nil {
		e.state.Status = Error(mapNotReadyMessage)
		return e.snapshot(), ErrMapNotReady
	}
	return e.apply(ev)
}

// ReferenceVersion identifies the current reference point. It changes every
// time a reference is set or cleared, whoever applied it.
func (e *Engine) ReferenceVersion() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refVersion
}

// HandleEventAt applies ev only if the reference point is still the one
// version was read for, and returns ErrReferenceMoved otherwise. Callers that
// resolve a reference asynchronously use it so a late answer cannot replace
// a newer reference from another producer.
func (e *Engine) HandleEventAt(version uint64, ev Event) (SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.surface == nil {
		e.state.Status = Error(mapNotReadyMessage)
		return e.snapshot(), ErrMapNotReady
	}
	if e.refVersion != version {
		return e.snapshot(), ErrReferenceMoved
	}
	return e.apply(ev)
}

// apply runs one event against the attached surface. Callers hold e.mu.
func (e *Engine) apply(ev Event) (SessionState, error) {
	switch ev := ev.(type) {
	case ReferenceChanged:
		ref := ev.Reference
		if !ref.Valid() {
			return e.snapshot(), fmt.Errorf("%w: %v,%v", ErrInvalidReference, ref.Lat, ref.Lng)
		}
		e.refVersion++
		e.state.Reference = &ref
		e.state.Source = ev.Source
		e.state.DisplayName = ev.DisplayName
		e.surface.SetView(ref, ReferenceZoom)
		e.redraw()
		if e.state.UserMarker != nil {
			e.surface.OpenLabel(e.state.UserMarker)
		}
		e.state.Status = Found(e.state.RadiusKm)

	case RadiusChanged:
		r, err := e.clampRadius(ev.RadiusKm)
		if err != nil {
			return e.snapshot(), err
		}
		e.state.RadiusKm = r
		if e.state.Reference != nil {
			e.redraw()
			e.state.Status = Found(r)
		}

	case ViewportChanged:
		if ev.WidthPx > 0 {
			e.state.WidthPx = ev.WidthPx
		}
		e.surface.InvalidateSize()
		e.redraw()

	case ReferenceCleared:
		e.refVersion++
		e.state.Reference = nil
		e.state.Source = ""
		e.state.DisplayName = ""
		e.redraw()
		e.state.Status = Status{}

	default:
		return e.snapshot(), fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	return e.snapshot(), nil
}

// SetStatus replaces the status line without touching overlays.
func (e *Engine) SetStatus(s Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Status = s
}

// Ready reports whether a surface is attached.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface != nil
}

// SetMosques swaps the collection and redraws it against the current state.
func (e *Engine) SetMosques(mosques []models.Mosque) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mosques = withIDs(mosques)
	if e.surface != nil {
		e.redraw()
	}
	log.Printf("Mosque collection replaced, %d places", len(mosques))
}

// Mosques returns the collection currently drawn.
func (e *Engine) Mosques() []models.Mosque {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Mosque, len(e.mosques))
	copy(out, e.mosques)
	return out
}

// Focus centres the map on one mosque and opens its label.
func (e *Engine) Focus(id string) (SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.surface == nil {
		e.state.Status = Error(mapNotReadyMessage)
		return e.snapshot(), ErrMapNotReady
	}
	for _, m := range e.state.Markers {
		if m.ID == id {
			e.surface.SetView(m.Position, FocusZoom)
			e.surface.OpenLabel(m)
			return e.snapshot(), nil
		}
	}
	return e.snapshot(), fmt.Errorf("%w: %s", ErrUnknownMosque, id)
}

// State returns a copy of the current session state.
func (e *Engine) State() SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func withIDs(mosques []models.Mosque) []models.Mosque {
	out := make([]models.Mosque, len(mosques))
	for i, m := range mosques {
		out[i] = m.WithID()
	}
	return out
}

func (e *Engine) clampRadius(r float64) (float64, error) {
	if math.IsNaN(r) || r <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRadius, r)
	}
	if e.opts.MinRadiusKm > 0 && r < e.opts.MinRadiusKm {
		r = e.opts.MinRadiusKm
	}
	if e.opts.MaxRadiusKm > 0 && r > e.opts.MaxRadiusKm {
		r = e.opts.MaxRadiusKm
	}
	return r, nil
}

// redraw rebuilds the whole marker set. Callers hold e.mu.
func (e *Engine) redraw() {
	for _, m := range e.state.Markers {
		e.surface.RemoveOverlay(m)
	}
	e.state.Markers = nil

	points := proximity.Classify(e.state.Reference, e.state.RadiusKm, e.mosques)
	markers := make([]*Marker, 0, len(points))
	for _, p := range points {
		m := e.poiMarker(p)
		e.surface.AddOverlay(m)
		markers = append(markers, m)
	}
	e.state.Markers = markers

	e.removeUserOverlays()
	if ref := e.state.Reference; ref != nil {
		e.state.RadiusOverlay = &Circle{Center: *ref, RadiusM: e.state.RadiusKm * 1000, Style: RadiusStyle}
		e.state.UserMarker = &Marker{
			ID:             UserMarkerID,
			Position:       *ref,
			Icon:           pin.Resolve(pin.UserLocation, e.state.WidthPx),
			Classification: pin.UserLocation,
			Label:          e.userLabel(),
		}
		e.surface.AddOverlay(e.state.RadiusOverlay)
		e.surface.AddOverlay(e.state.UserMarker)
	}
}

func (e *Engine) removeUserOverlays() {
	if e.state.UserMarker != nil {
		e.surface.RemoveOverlay(e.state.UserMarker)
		e.state.UserMarker = nil
	}
	if e.state.RadiusOverlay != nil {
		e.surface.RemoveOverlay(e.state.RadiusOverlay)
		e.state.RadiusOverlay = nil
	}
}

func (e *Engine) poiMarker(p proximity.ClassifiedPoint) *Marker {
	pos := p.Mosque.Coordinate()
	label := Label{
		Title:         p.Mosque.Name,
		DirectionsURL: directions.URL(pos, e.platform),
	}
	if p.DistanceKm != nil {
		label.Distance = fmt.Sprintf("Distance: %.2f km", *p.DistanceKm)
	}
	return &Marker{
		ID:             p.Mosque.ID,
		Position:       pos,
		Icon:           pin.Resolve(p.Classification(), e.state.WidthPx),
		Classification: p.Classification(),
		Label:          label,
	}
}

func (e *Engine) userLabel() Label {
	if e.state.Source == SourceSearch {
		return Label{Title: "Searched Location", Detail: e.state.DisplayName}
	}
	return Label{Title: "Your Location"}
}

func (e *Engine) snapshot() SessionState {
	s := e.state
	s.Markers = make([]*Marker, len(e.state.Markers))
	for i, m := range e.state.Markers {
		c := *m
		s.Markers[i] = &c
	}
	if e.state.Reference != nil {
		ref := *e.state.Reference
		s.Reference = &ref
	}
	if e.state.UserMarker != nil {
		u := *e.state.UserMarker
		s.UserMarker = &u
	}
	if e.state.RadiusOverlay != nil {
		c := *e.state.RadiusOverlay
		s.RadiusOverlay = &c
	}
	return s
}
