package location

import (
	"context"
	"net/url"
	"strconv"

	"mosque/pkg/geo"
)

// NominatimReverseResponse is shaped for the /reverse API response.
type NominatimReverseResponse struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
	Address     struct {
		Suburb        string `json:"suburb"`
		City          string `json:"city"`
		Town          string `json:"town"`
		StateDistrict string `json:"state_district"`
		County        string `json:"county"`
		State         string `json:"state"`
		Country       string `json:"country"`
		CountryCode   string `json:"country_code"`
	} `json:"address"`
}

// Address is the subset of a reverse lookup the finder uses.
type Address struct {
	DisplayName string
	District    string
	Country     string
}

// Reverse looks up the address at c. District is empty when no known
// district could be recognised.
func (c *Client) Reverse(ctx context.Context, at geo.Coordinate) (*Address, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	params.Set("zoom", "10")
	params.Set("addressdetails", "1")

	var resp NominatimReverseResponse
	if err := c.get(ctx, "/reverse", params, &resp); err != nil {
		return nil, err
	}

	addr := &Address{DisplayName: resp.DisplayName, Country: resp.Address.Country}
	for _, candidate := range []string{resp.Address.StateDistrict, resp.Address.County, resp.Address.City, resp.Address.Town} {
		if d := geo.ExtractDistrict(candidate); d != "" {
			addr.District = d
			return addr, nil
		}
	}
	addr.District = geo.ExtractDistrict(resp.DisplayName)
	return addr, nil
}
