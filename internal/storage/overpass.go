package storage

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/serjvanilla/go-overpass"

	"mosque/internal/models"
	"mosque/pkg/geo"
)

const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// OverpassSource fetches Muslim places of worship inside a bounding box from
// OpenStreetMap.
type OverpassSource struct {
	client overpass.Client
	bbox   geo.BoundingBox
}

func NewOverpassSource(endpoint string, timeout time.Duration, bbox geo.BoundingBox) *OverpassSource {
	if endpoint == "" {
		endpoint = DefaultOverpassURL
	}
	httpClient := &http.Client{Timeout: timeout}
	return &OverpassSource{
		client: overpass.NewWithSettings(endpoint, 2, httpClient),
		bbox:   bbox,
	}
}

func (o *OverpassSource) query() string {
	bbox := o.bbox.Overpass()
	return fmt.Sprintf(`
		[out:json][timeout:120];
		(
			node["amenity"="place_of_worship"]["religion"="muslim"](%s);
			way["amenity"="place_of_worship"]["religion"="muslim"](%s);
		);
		out body;
		>;
		out skel qt;
	`, bbox, bbox)
}

// Load returns named mosques sorted by name. Ways are placed at the mean of
// their nodes.
func (o *OverpassSource) Load(ctx context.Context) ([]models.Mosque, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := o.client.Query(o.query())
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	var mosques []models.Mosque
	for _, node := range result.Nodes {
		if m, ok := fromTags(node.Tags, node.Lat, node.Lon); ok {
			mosques = append(mosques, m)
		}
	}
	for _, way := range result.Ways {
		if len(way.Nodes) == 0 {
			continue
		}
		var lat, lon float64
		for _, node := range way.Nodes {
			lat += node.Lat
			lon += node.Lon
		}
		n := float64(len(way.Nodes))
		if m, ok := fromTags(way.Tags, lat/n, lon/n); ok {
			mosques = append(mosques, m)
		}
	}

	sort.Slice(mosques, func(i, j int) bool {
		if mosques[i].Name != mosques[j].Name {
			return mosques[i].Name < mosques[j].Name
		}
		return mosques[i].ID < mosques[j].ID
	})
	log.Printf("Fetched %d mosques from overpass", len(mosques))
	return mosques, nil
}

func fromTags(tags map[string]string, lat, lng float64) (models.Mosque, bool) {
	if tags["amenity"] != "place_of_worship" {
		return models.Mosque{}, false
	}
	name := tags["name:en"]
	if name == "" {
		name = tags["name"]
	}
	if name == "" {
		return models.Mosque{}, false
	}
	district := tags["addr:district"]
	if district == "" {
		district = tags["addr:city"]
	}
	if district != "" {
		district = geo.NormalizeDistrict(district)
	}
	m := models.Mosque{Name: name, Lat: lat, Lng: lng, District: district}
	return m.WithID(), true
}
