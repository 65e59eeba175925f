package presentation

import (
	"mosque/internal/pin"
	"mosque/pkg/geo"
)

// UserMarkerID identifies the reference point marker.
const UserMarkerID = "user"

// Overlay is anything drawn on top of the map tiles.
type Overlay interface {
	OverlayID() string
}

// Label is the popup attached to a marker.
type Label struct {
	Title         string `json:"title"`
	Detail        string `json:"detail,omitempty"`
	Distance      string `json:"distance,omitempty"`
	DirectionsURL string `json:"directions_url,omitempty"`
}

// Marker is a pin at a coordinate.
type Marker struct {
	ID             string             `json:"id"`
	Position       geo.Coordinate     `json:"position"`
	Icon           pin.Icon           `json:"icon"`
	Classification pin.Classification `json:"classification"`
	Label          Label              `json:"label"`
}

func (m *Marker) OverlayID() string { return "marker:" + m.ID }

// CircleStyle is the stroke and fill of a radius overlay.
type CircleStyle struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
}

// RadiusStyle is the fixed translucent style of the search radius.
var RadiusStyle = CircleStyle{Color: "#667eea", FillColor: "#a78bfa", FillOpacity: 0.2}

// Circle is a filled circle with a radius in meters.
type Circle struct {
	Center  geo.Coordinate `json:"center"`
	RadiusM float64        `json:"radius_m"`
	Style   CircleStyle    `json:"style"`
}

func (c *Circle) OverlayID() string { return "circle:radius" }

// Surface is the map widget the engine draws on.
type Surface interface {
	AddOverlay(o Overlay)
	RemoveOverlay(o Overlay)
	SetView(center geo.Coordinate, zoom int)
	InvalidateSize()
	OpenLabel(o Overlay)
}
