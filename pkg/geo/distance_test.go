package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
		tol  float64
	}{
		{"same point", DhakaCenter, DhakaCenter, 0, 0},
		{"close pair in dhaka", DhakaCenter, Coordinate{Lat: 23.8105, Lng: 90.4127}, 0.0301, 0.0005},
		{"dhaka to chattogram", DhakaCenter, Coordinate{Lat: 22.3569, Lng: 91.7832}, 213.0, 3},
		{"one degree of latitude", Coordinate{Lat: 0, Lng: 0}, Coordinate{Lat: 1, Lng: 0}, 111.19, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Fatalf("Distance(%v, %v) = %f; want %f ± %f", tt.a, tt.b, got, tt.want, tt.tol)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	points := []Coordinate{
		DhakaCenter,
		{Lat: 22.3569, Lng: 91.7832},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: 89.9, Lng: 179.9},
	}
	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %f; want 0", a, a, d)
		}
		for _, b := range points {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("Distance not symmetric for %v and %v", a, b)
			}
		}
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	if d := Distance(Coordinate{Lat: math.NaN()}, DhakaCenter); !math.IsNaN(d) {
		t.Fatalf("expected NaN, got %f", d)
	}
}

func TestBoundingBox(t *testing.T) {
	if got := Bangladesh.Viewbox(); got != "88.0,20.5,92.7,26.6" {
		t.Errorf("Viewbox() = %q", got)
	}
	if got := Bangladesh.Overpass(); got != "20.5,88.0,26.6,92.7" {
		t.Errorf("Overpass() = %q", got)
	}
	if !Bangladesh.Contains(DhakaCenter) {
		t.Error("Bangladesh should contain Dhaka")
	}
	if Bangladesh.Contains(Coordinate{Lat: 51.5, Lng: -0.12}) {
		t.Error("Bangladesh should not contain London")
	}
}

func TestCoordinateValid(t *testing.T) {
	cases := []struct {
		c    Coordinate
		want bool
	}{
		{DhakaCenter, true},
		{Coordinate{Lat: 91, Lng: 0}, false},
		{Coordinate{Lat: 0, Lng: -181}, false},
		{Coordinate{Lat: math.NaN(), Lng: 0}, false},
		{Coordinate{Lat: 0, Lng: math.Inf(1)}, false},
	}
	for _, c := range cases {
		if got := c.c.Valid(); got != c.want {
			t.Errorf("%v.Valid() = %v; want %v", c.c, got, c.want)
		}
	}
}
