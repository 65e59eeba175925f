package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mosque/pkg/geo"
)

// namespace seeds the name-based identifiers of StableID.
var namespace = uuid.MustParse("6f1c2a0e-4b7d-4c55-9a53-6d6f73717565")

// Mosque is a point of interest shown on the map and in the list. Records are
// treated as immutable once loaded.
type Mosque struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	District string  `json:"district,omitempty"`
}

func (m Mosque) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: m.Lat, Lng: m.Lng}
}

// DistrictOrOther returns the district, or geo.OtherDistrict when unset.
func (m Mosque) DistrictOrOther() string {
	if strings.TrimSpace(m.District) == "" {
		return geo.OtherDistrict
	}
	return m.District
}

// StableID derives a deterministic identifier from the structural identity of
// a place, so the same record always maps to the same marker.
func StableID(name string, lat, lng float64) string {
	key := fmt.Sprintf("%s|%.7f|%.7f", strings.ToLower(strings.TrimSpace(name)), lat, lng)
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

// WithID returns a copy of m carrying its StableID when no ID was supplied.
func (m Mosque) WithID() Mosque {
	if m.ID == "" {
		m.ID = StableID(m.Name, m.Lat, m.Lng)
	}
	return m
}
