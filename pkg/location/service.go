package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mosque/pkg/geo"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "golang-mosque-finder/1.0"
	// DefaultCountry restricts results to Bangladesh.
	DefaultCountry = "bd"
)

// Place is a geocoding result with parsed coordinates.
type Place struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
}

func (p Place) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// NominatimResponse is shaped for the /search API response.
type NominatimResponse []struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Class       string `json:"class"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
}

// Client queries a Nominatim instance. Searches are biased towards a fixed
// region and country.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	region     geo.BoundingBox
	country    string
}

func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		userAgent:  userAgent,
		region:     geo.Bangladesh,
		country:    DefaultCountry,
	}
}

// Search geocodes query and returns at most limit places. An empty slice
// with a nil error means nothing matched.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	if limit > 1 {
		params.Set("addressdetails", "1")
	}
	params.Set("countrycodes", c.country)
	params.Set("viewbox", c.region.Viewbox())
	params.Set("bounded", "0")

	var results NominatimResponse
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			log.Printf("Skipping result %d with bad lat %q", r.PlaceID, r.Lat)
			continue
		}
		lng, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			log.Printf("Skipping result %d with bad lon %q", r.PlaceID, r.Lon)
			continue
		}
		places = append(places, Place{Lat: lat, Lng: lng, DisplayName: r.DisplayName, Type: r.Type})
	}
	return places, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return nil
}
