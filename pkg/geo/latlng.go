package geo

import (
	"fmt"
	"math"
	"strconv"
)

// LatLng is a WGS84 coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return fmt.Errorf("coordinate is NaN")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Lng)
	}
	return nil
}

// String renders "lat,lng" using the shortest exact decimal form.
func (p LatLng) String() string {
	return FormatDegrees(p.Lat) + "," + FormatDegrees(p.Lng)
}

func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const earthRadiusMeters = 6371000.0

// DistanceMeters is the haversine great-circle distance between two points.
func DistanceMeters(a, b LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
