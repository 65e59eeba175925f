package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula. NaN or infinite inputs yield NaN.
func Distance(a, b Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Valid reports whether c is a finite coordinate inside the WGS84 ranges.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// BoundingBox is an axis-aligned region in degrees.
type BoundingBox struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// Bangladesh is the fixed region geocoding requests are biased towards.
var Bangladesh = BoundingBox{MinLng: 88.0, MinLat: 20.5, MaxLng: 92.7, MaxLat: 26.6}

// DhakaCenter is the initial map view.
var DhakaCenter = Coordinate{Lat: 23.8103, Lng: 90.4125}

// Contains reports whether c lies inside the box, edges included.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// Viewbox formats the box the way Nominatim expects: "minLng,minLat,maxLng,maxLat".
func (b BoundingBox) Viewbox() string {
	return formatFloat(b.MinLng) + "," + formatFloat(b.MinLat) + "," + formatFloat(b.MaxLng) + "," + formatFloat(b.MaxLat)
}

// Overpass formats the box as an Overpass QL bbox filter: "south,west,north,east".
func (b BoundingBox) Overpass() string {
	return formatFloat(b.MinLat) + "," + formatFloat(b.MinLng) + "," + formatFloat(b.MaxLat) + "," + formatFloat(b.MaxLng)
}
