package enrich

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mosque/internal/models"
	"mosque/pkg/geo"
	"mosque/pkg/location"
)

// Resolver reverse geocodes a coordinate. *location.Client implements it.
type Resolver interface {
	Reverse(ctx context.Context, c geo.Coordinate) (*location.Address, error)
}

// Normalize returns a cleaned copy of mosques: names trimmed, districts in
// canonical spelling, missing districts resolved through resolver (when not
// nil) or set to "Other", stable IDs assigned. Records with an invalid
// coordinate or a blank name are dropped, as are later duplicates of an ID.
// Input order is kept.
func Normalize(ctx context.Context, mosques []models.Mosque, resolver Resolver) []models.Mosque {
	items := make([]*models.Mosque, 0, len(mosques))
	for i := range mosques {
		m := mosques[i]
		if !m.Coordinate().Valid() {
			log.Printf("Skipping %q, invalid coordinate %v,%v", m.Name, m.Lat, m.Lng)
			continue
		}
		if strings.TrimSpace(m.Name) == "" {
			log.Printf("Skipping unnamed place at %v,%v", m.Lat, m.Lng)
			continue
		}
		items = append(items, &m)
	}

	in := make(chan *models.Mosque, len(items))
	for _, m := range items {
		in <- m
	}
	close(in)

	p := NewPipeline(
		NewStage(trimName, canonicalDistrict),
		NewStage(assignID, resolveDistrict(resolver)),
		NewStage(defaultDistrict),
	)
	p.Process(ctx, in)

	seen := make(map[string]bool, len(items))
	out := make([]models.Mosque, 0, len(items))
	for _, m := range items {
		if seen[m.ID] {
			log.Printf("Skipping duplicate %q (%s)", m.Name, m.ID)
			continue
		}
		seen[m.ID] = true
		out = append(out, *m)
	}
	return out
}

func trimName(_ context.Context, m *models.Mosque) error {
	m.Name = strings.Join(strings.Fields(m.Name), " ")
	return nil
}

func canonicalDistrict(_ context.Context, m *models.Mosque) error {
	if strings.TrimSpace(m.District) == "" {
		m.District = ""
		return nil
	}
	m.District = geo.NormalizeDistrict(m.District)
	return nil
}

// assignID only writes ID, resolveDistrict runs beside it.
func assignID(_ context.Context, m *models.Mosque) error {
	if m.ID == "" {
		m.ID = models.StableID(m.Name, m.Lat, m.Lng)
	}
	return nil
}

func resolveDistrict(resolver Resolver) Step[models.Mosque] {
	return func(ctx context.Context, m *models.Mosque) error {
		if m.District != "" || resolver == nil {
			return nil
		}
		addr, err := resolver.Reverse(ctx, m.Coordinate())
		if err != nil {
			return fmt.Errorf("reverse geocoding %q: %w", m.Name, err)
		}
		if addr.District != "" {
			m.District = geo.NormalizeDistrict(addr.District)
		}
		return nil
	}
}

func defaultDistrict(_ context.Context, m *models.Mosque) error {
	m.District = m.DistrictOrOther()
	return nil
}
