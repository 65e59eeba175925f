package enrich

import (
	"context"
	"errors"
	"math"
	"testing"

	"mosque/internal/models"
	"mosque/pkg/geo"
	"mosque/pkg/location"
)

type resolverFunc func(ctx context.Context, c geo.Coordinate) (*location.Address, error)

func (f resolverFunc) Reverse(ctx context.Context, c geo.Coordinate) (*location.Address, error) {
	return f(ctx, c)
}

func TestNormalize(t *testing.T) {
	in := []models.Mosque{
		{Name: "  Star   Mosque ", Lat: 23.7153, Lng: 90.4013, District: "dhaka"},
		{Name: "Andarkilla", Lat: 22.3419, Lng: 91.8358, District: "Chittagong"},
		{Name: "Bad", Lat: math.NaN(), Lng: 90.4},
		{Name: "Out of range", Lat: 123, Lng: 90.4},
		{Name: "   ", Lat: 23.7, Lng: 90.4},
		{Name: "Village Mosque", Lat: 24.9, Lng: 91.87},
		{Name: "Star Mosque", Lat: 23.7153, Lng: 90.4013},
		{ID: "fixed", Name: "Kept ID", Lat: 23.0, Lng: 90.0, District: "Nowhere"},
	}

	var calls int
	resolver := resolverFunc(func(_ context.Context, c geo.Coordinate) (*location.Address, error) {
		calls++
		if c.Lat == 24.9 {
			return &location.Address{District: "Sylhet"}, nil
		}
		return nil, errors.New("no address")
	})

	got := Normalize(context.Background(), in, resolver)

	want := []models.Mosque{
		{ID: models.StableID("Star Mosque", 23.7153, 90.4013), Name: "Star Mosque", Lat: 23.7153, Lng: 90.4013, District: "Dhaka"},
		{ID: models.StableID("Andarkilla", 22.3419, 91.8358), Name: "Andarkilla", Lat: 22.3419, Lng: 91.8358, District: "Chattogram"},
		{ID: models.StableID("Village Mosque", 24.9, 91.87), Name: "Village Mosque", Lat: 24.9, Lng: 91.87, District: "Sylhet"},
		{ID: "fixed", Name: "Kept ID", Lat: 23.0, Lng: 90.0, District: "Nowhere"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d mosques %+v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mosque %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if calls != 2 {
		t.Errorf("resolver called %d times, want 2", calls)
	}
}

func TestNormalizeWithoutResolver(t *testing.T) {
	got := Normalize(context.Background(), []models.Mosque{{Name: "Unknown", Lat: 23, Lng: 90}}, nil)
	if len(got) != 1 || got[0].District != geo.OtherDistrict {
		t.Errorf("got %+v", got)
	}
}

func TestNormalizeResolverFailure(t *testing.T) {
	resolver := resolverFunc(func(context.Context, geo.Coordinate) (*location.Address, error) {
		return nil, errors.New("429 too many requests")
	})
	got := Normalize(context.Background(), []models.Mosque{{Name: "Unknown", Lat: 23, Lng: 90}}, resolver)
	if len(got) != 1 || got[0].District != geo.OtherDistrict {
		t.Errorf("got %+v", got)
	}
}
