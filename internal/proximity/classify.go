// Package proximity annotates points of interest with their distance to a
// reference point and whether they fall inside the search radius.
//
// Classification is a full linear scan on every call. That is fine for the
// few hundred places the map shows; there is no spatial index.
package proximity

import (
	"mosque/internal/models"
	"mosque/internal/pin"
	"mosque/pkg/geo"
)

// ClassifiedPoint is a mosque annotated for one reference point and radius.
// DistanceKm is nil when no reference point is known.
type ClassifiedPoint struct {
	Mosque       models.Mosque `json:"mosque"`
	DistanceKm   *float64      `json:"distance_km"`
	WithinRadius bool          `json:"within_radius"`
}

// Classification returns the marker style for the point.
func (p ClassifiedPoint) Classification() pin.Classification {
	if p.WithinRadius {
		return pin.WithinRadius
	}
	return pin.OutsideRadius
}

// Classify returns one ClassifiedPoint per mosque, in input order. A nil
// reference marks every point neutral. The radius boundary is inclusive.
func Classify(reference *geo.Coordinate, radiusKm float64, mosques []models.Mosque) []ClassifiedPoint {
	out := make([]ClassifiedPoint, len(mosques))
	for i, m := range mosques {
		out[i].Mosque = m
		if reference == nil {
			continue
		}
		d := geo.Distance(*reference, m.Coordinate())
		out[i].DistanceKm = &d
		out[i].WithinRadius = d <= radiusKm
	}
	return out
}

// Within returns only the points inside the radius, preserving order.
func Within(points []ClassifiedPoint) []ClassifiedPoint {
	var within []ClassifiedPoint
	for _, p := range points {
		if p.WithinRadius {
			within = append(within, p)
		}
	}
	return within
}
