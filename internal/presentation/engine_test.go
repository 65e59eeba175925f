package presentation

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"mosque/internal/models"
	"mosque/internal/pin"
	"mosque/pkg/geo"
)

var testMosques = []models.Mosque{
	{ID: "near", Name: "Baitul Mukarram", Lat: 23.8105, Lng: 90.4127, District: "Dhaka"},
	{ID: "mid", Name: "Gulshan Central", Lat: 23.7925, Lng: 90.4078, District: "Dhaka"},
	{ID: "far", Name: "Andarkilla", Lat: 22.3569, Lng: 91.7832, District: "Chattogram"},
}

var dhaka = geo.Coordinate{Lat: 23.8103, Lng: 90.4125}

func attached(t *testing.T, opts Options) (*Engine, *MemorySurface) {
	t.Helper()
	e := New(testMosques, opts)
	s := NewMemorySurface()
	e.Attach(s)
	return e, s
}

func TestAttachDrawsNeutralMarkers(t *testing.T) {
	_, s := attached(t, Options{})

	want := []string{"marker:far", "marker:mid", "marker:near"}
	if got := s.Overlays(); !reflect.DeepEqual(got, want) {
		t.Fatalf("overlays = %v, want %v", got, want)
	}
	center, zoom := s.View()
	if center != geo.DhakaCenter || zoom != InitialZoom {
		t.Errorf("view = %v@%d, want %v@%d", center, zoom, geo.DhakaCenter, InitialZoom)
	}
	o, _ := s.Overlay("marker:near")
	if m := o.(*Marker); m.Classification != pin.OutsideRadius || m.Label.Distance != "" {
		t.Errorf("neutral marker = %+v", m)
	}
}

func TestHandleEventBeforeAttach(t *testing.T) {
	e := New(testMosques, Options{})

	state, err := e.HandleEvent(ReferenceChanged{Reference: dhaka, Source: SourceGeolocation})
	if !errors.Is(err, ErrMapNotReady) {
		t.Fatalf("err = %v, want ErrMapNotReady", err)
	}
	if state.Reference != nil {
		t.Errorf("reference set before attach")
	}
	if state.Status.Text != "Map is still loading, please try again in a moment" {
		t.Errorf("status = %q", state.Status.Text)
	}
}

func TestReferenceChanged(t *testing.T) {
	e, s := attached(t, Options{RadiusKm: 1})

	state, err := e.HandleEvent(ReferenceChanged{Reference: dhaka, Source: SourceGeolocation})
	if err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	classes := map[string]pin.Classification{}
	for _, m := range state.Markers {
		classes[m.ID] = m.Classification
	}
	want := map[string]pin.Classification{
		"near": pin.WithinRadius,
		"mid":  pin.OutsideRadius,
		"far":  pin.OutsideRadius,
	}
	if !reflect.DeepEqual(classes, want) {
		t.Errorf("classes = %v, want %v", classes, want)
	}

	if state.UserMarker == nil || state.UserMarker.Label.Title != "Your Location" {
		t.Fatalf("user marker = %+v", state.UserMarker)
	}
	if state.RadiusOverlay == nil || state.RadiusOverlay.RadiusM != 1000 {
		t.Fatalf("radius overlay = %+v", state.RadiusOverlay)
	}
	if state.RadiusOverlay.Style != RadiusStyle {
		t.Errorf("style = %+v", state.RadiusOverlay.Style)
	}
	if state.Status != Found(1) {
		t.Errorf("status = %+v", state.Status)
	}
	if got := state.Status.Text; got != "Location found! Showing nearby mosques within 1 km." {
		t.Errorf("status text = %q", got)
	}

	center, zoom := s.View()
	if center != dhaka || zoom != ReferenceZoom {
		t.Errorf("view = %v@%d", center, zoom)
	}
	if s.OpenLabelID() != "marker:"+UserMarkerID {
		t.Errorf("open label = %q", s.OpenLabelID())
	}
	if len(s.Overlays()) != len(testMosques)+2 {
		t.Errorf("overlays = %v", s.Overlays())
	}

	near := state.Markers[0]
	if near.Label.Distance != "Distance: 0.03 km" {
		t.Errorf("distance label = %q", near.Label.Distance)
	}
	if near.Label.DirectionsURL == "" {
		t.Errorf("missing directions url")
	}
}

func TestSearchedLocationLabel(t *testing.T) {
	e, _ := attached(t, Options{})

	state, err := e.HandleEvent(ReferenceChanged{Reference: dhaka, Source: SourceSearch, DisplayName: "Motijheel, Dhaka"})
	if err != nil {
		t.Fatal(err)
	}
	got := state.UserMarker.Label
	if got.Title != "Searched Location" || got.Detail != "Motijheel, Dhaka" {
		t.Errorf("label = %+v", got)
	}
}

func TestRedrawIsIdempotent(t *testing.T) {
	e, s := attached(t, Options{})
	if _, err := e.HandleEvent(ReferenceChanged{Reference: dhaka, Source: SourceGeolocation}); err != nil {
		t.Fatal(err)
	}
	before := s.Overlays()

	for i := 0; i < 3; i++ {
		if _, err := e.HandleEvent(RadiusChanged{RadiusKm: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Overlays(); !reflect.DeepEqual(got, before) {
		t.Errorf("overlays after redraws = %v, want %v", got, before)
	}
}

func TestRadiusChanged(t *testing.T) {
	t.Run("with reference", func(t *testing.T) {
		e, s := attached(t, Options{RadiusKm: 1})
		if _, err := e.HandleEvent(ReferenceChanged{Reference: dhaka, Source: SourceGeolocation}); err != nil {
			t.Fatal(err)
		}
		state, err := e.HandleEvent(RadiusChanged{RadiusKm: 5})
		if err != nil {
			t.Fatal(err)
		}
		if state.RadiusOverlay.RadiusM != 5000 {
			t.Errorf("radius = %v, want 5000", state.RadiusOverlay.RadiusM)
		}
		o, ok := s.Overlay("circle:radius")
		if !ok || o.(*Circle).RadiusM != 5000 {
			t.Errorf("surface circle = %+v", o)
		}
		if state.Markers[1].Classification != pin.WithinRadius {
			t.Errorf("mid marker not within 5 km")
		}
		if state.Status.Text != "Location found! Showing nearby mosques within 5 km." {
			t.Errorf("status = %q", state.Status.Text)
		}
	})

	t.Run("without reference", func(t *testing.T) {
		e, s := attached(t, Options{RadiusKm: 1})
		state, err := e.HandleEvent(RadiusChanged{RadiusKm: 3})
		if err != nil {
			t.Fatal(err)
		}
		if state.RadiusKm != 3 || state.RadiusOverlay != nil {
			t.Errorf("state = %+v", state)
		}
		if len(s.Overlays()) != len(testMosques) {
			t.Errorf("overlays = %v", s.Overlays())
		}
	})

	t.Run("clamped and rejected", func(t *testing.T) {
		e, _ := attached(t, Options{RadiusKm: 1, MinRadiusKm: 0.5, MaxRadiusKm: 10})
		tests := []struct {
			in   float64
			want float64
			err  error
		}{
			{in: 0.1, want: 0.5},
			{in: 25, want: 10},
			{in: 2.5, want: 2.5},
			{in: 0, err: ErrInvalidRadius},
			{in: -1, err: ErrInvalidRadius},
			{in: math.NaN(), err: ErrInvalidRadius},
		}
		for _, tt := range tests {
			state, err := e.HandleEvent(RadiusChanged{RadiusKm: tt.in})
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("radius %v: err = %v, want %v", tt.in, err, tt.err)
				}
				continue
			}
			if err != nil || state.RadiusKm != tt.want {
				t.Errorf("radius %v: got %v, %v; want %v", tt.in, state.RadiusKm, err, tt.want)
			}
		}
	})
}

func TestViewportChanged(t *testing.T) {
	e, s := attached(t, Options{WidthPx: 1280})
	before := s.Invalidations()

	state, err := e.HandleEvent(ViewportChanged{WidthPx: 375})
	if err != nil {
		t.Fatal(err)
	}
	if s.Invalidations() != before+1 {
		t.Errorf("invalidations = %d, want %d", s.Invalidations(), before+1)
	}
	for _, m := range state.Markers {
		if m.Icon.SizePx != 25 {
			t.Errorf("marker %s size = %d, want 25", m.ID, m.Icon.SizePx)
		}
	}
}

func TestReferenceCleared(t *testing.T) {
	e, s := attached(t, Options{})
	if _, err := e.HandleEvent(ReferenceChanged{Reference: dhaka, Source: SourceGeolocation}); err != nil {
		t.Fatal(err)
	}

	state, err := e.HandleEvent(ReferenceCleared{})
	if err != nil {
		t.Fatal(err)
	}
	if state.Reference != nil || state.UserMarker != nil || state.RadiusOverlay != nil {
		t.Errorf("state not neutral: %+v", state)
	}
	if state.Status != (Status{}) {
		t.Errorf("status = %+v", state.Status)
	}
	if len(s.Overlays()) != len(testMosques) {
		t.Errorf("overlays = %v", s.Overlays())
	}
	for _, m := range state.Markers {
		if m.Label.Distance != "" {
			t.Errorf("marker %s still has distance %q", m.ID, m.Label.Distance)
		}
	}
}

func TestReferenceChangedRejectsInvalidCoordinate(t *testing.T) {
	e, s := attached(t, Options{})

	for _, ref := range []geo.Coordinate{
		{Lat: 1000, Lng: 90},
		{Lat: math.NaN(), Lng: 90},
		{Lat: 23.8, Lng: math.Inf(1)},
	} {
		state, err := e.HandleEvent(ReferenceChanged{Reference: ref, Source: SourceSearch})
		if !errors.Is(err, ErrInvalidReference) {
			t.Fatalf("%v: err = %v, want ErrInvalidReference", ref, err)
		}
		if state.Reference != nil || state.UserMarker != nil {
			t.Errorf("%v: reference applied: %+v", ref, state)
		}
	}
	if len(s.Overlays()) != len(testMosques) {
		t.Errorf("overlays = %v", s.Overlays())
	}
}

func TestHandleEventAt(t *testing.T) {
	e, _ := attached(t, Options{})

	v0 := e.ReferenceVersion()
	if _, err := e.HandleEventAt(v0, ReferenceChanged{Reference: dhaka, Source: SourceSearch}); err != nil {
		t.Fatalf("HandleEventAt: %v", err)
	}
	v1 := e.ReferenceVersion()
	if v1 == v0 {
		t.Fatal("version did not move after a reference change")
	}

	moved := geo.Coordinate{Lat: 22.3569, Lng: 91.7832}
	state, err := e.HandleEventAt(v0, ReferenceChanged{Reference: moved, Source: SourceSearch})
	if !errors.Is(err, ErrReferenceMoved) {
		t.Fatalf("err = %v, want ErrReferenceMoved", err)
	}
	if state.Reference == nil || *state.Reference != dhaka {
		t.Errorf("reference = %v, want %v", state.Reference, dhaka)
	}

	if _, err := e.HandleEventAt(v1, RadiusChanged{RadiusKm: 3}); err != nil {
		t.Fatalf("radius at current version: %v", err)
	}
	if e.ReferenceVersion() != v1 {
		t.Error("radius change moved the reference version")
	}
	if _, err := e.HandleEvent(ReferenceCleared{}); err != nil {
		t.Fatal(err)
	}
	if e.ReferenceVersion() == v1 {
		t.Error("clear did not move the reference version")
	}
}

func TestFocus(t *testing.T) {
	e, s := attached(t, Options{})

	if _, err := e.Focus("far"); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	center, zoom := s.View()
	if center != testMosques[2].Coordinate() || zoom != FocusZoom {
		t.Errorf("view = %v@%d", center, zoom)
	}
	if s.OpenLabelID() != "marker:far" {
		t.Errorf("open label = %q", s.OpenLabelID())
	}

	if _, err := e.Focus("missing"); !errors.Is(err, ErrUnknownMosque) {
		t.Errorf("err = %v, want ErrUnknownMosque", err)
	}
}

func TestSetMosquesAssignsIDs(t *testing.T) {
	e, s := attached(t, Options{})
	e.SetMosques([]models.Mosque{{Name: "Star Mosque", Lat: 23.7153, Lng: 90.4013}})

	id := models.StableID("Star Mosque", 23.7153, 90.4013)
	if got := s.Overlays(); !reflect.DeepEqual(got, []string{"marker:" + id}) {
		t.Errorf("overlays = %v", got)
	}
}

func TestStateIsACopy(t *testing.T) {
	e, _ := attached(t, Options{})
	state := e.State()
	state.Markers[0].Label.Title = "changed"

	if e.State().Markers[0].Label.Title == "changed" {
		t.Error("State leaked internal marker")
	}
}
