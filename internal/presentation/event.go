package presentation

import (
	"encoding/json"
	"errors"
	"fmt"

	"mosque/pkg/geo"
)

// Source tells which producer set the reference point.
type Source string

const (
	SourceGeolocation Source = "geolocation"
	SourceSearch      Source = "search"
)

// Event is one input to Engine.HandleEvent.
type Event interface {
	eventType() string
}

// ReferenceChanged sets a new point to measure from.
type ReferenceChanged struct {
	Reference   geo.Coordinate
	Source      Source
	DisplayName string
}

// RadiusChanged updates the search radius.
type RadiusChanged struct {
	RadiusKm float64
}

// ViewportChanged reports a new viewport width.
type ViewportChanged struct {
	WidthPx int
}

// ReferenceCleared forgets the reference point.
type ReferenceCleared struct{}

func (ReferenceChanged) eventType() string { return "reference_changed" }
func (RadiusChanged) eventType() string    { return "radius_changed" }
func (ViewportChanged) eventType() string  { return "viewport_changed" }
func (ReferenceCleared) eventType() string { return "reference_cleared" }

// EventType returns the wire name of ev.
func EventType(ev Event) string { return ev.eventType() }

// wireEvent is the JSON envelope events travel in over Kafka and HTTP.
type wireEvent struct {
	Type        string   `json:"type"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Source      Source   `json:"source,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	RadiusKm    float64  `json:"radius_km,omitempty"`
	WidthPx     int      `json:"width_px,omitempty"`
}

var ErrUnknownEvent = errors.New("unknown event type")

// DecodeEvent parses a JSON envelope such as
// {"type":"radius_changed","radius_km":5}.
func DecodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	switch w.Type {
	case "reference_changed":
		if w.Lat == nil || w.Lng == nil {
			return nil, fmt.Errorf("reference_changed requires lat and lng")
		}
		src := w.Source
		if src == "" {
			src = SourceSearch
		}
		ref := geo.Coordinate{Lat: *w.Lat, Lng: *w.Lng}
		if !ref.Valid() {
			return nil, fmt.Errorf("%w: %v,%v", ErrInvalidReference, *w.Lat, *w.Lng)
		}
		return ReferenceChanged{
			Reference:   ref,
			Source:      src,
			DisplayName: w.DisplayName,
		}, nil
	case "radius_changed":
		return RadiusChanged{RadiusKm: w.RadiusKm}, nil
	case "viewport_changed":
		return ViewportChanged{WidthPx: w.WidthPx}, nil
	case "reference_cleared":
		return ReferenceCleared{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, w.Type)
	}
}

// EncodeEvent is the inverse of DecodeEvent.
func EncodeEvent(ev Event) ([]byte, error) {
	w := wireEvent{Type: ev.eventType()}
	switch e := ev.(type) {
	case ReferenceChanged:
		w.Lat, w.Lng = &e.Reference.Lat, &e.Reference.Lng
		w.Source, w.DisplayName = e.Source, e.DisplayName
	case RadiusChanged:
		w.RadiusKm = e.RadiusKm
	case ViewportChanged:
		w.WidthPx = e.WidthPx
	}
	return json.Marshal(w)
}
