package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Earth radius constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineKm calculates the great-circle distance between two points in
// kilometers. The planner uses this as a proxy for real routing distance.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// HaversineMeters calculates the great-circle distance between two points in meters
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineKm(lat1, lon1, lat2, lon2) * 1000
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2.
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// Midpoint calculates the midpoint between two points, used when a destination
// group is collapsed to a single representative center
func Midpoint(lat1, lon1, lat2, lon2 float64) (float64, float64) {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	mid := s2.Interpolate(0.5, s2.PointFromLatLng(p1), s2.PointFromLatLng(p2))
	midLatLng := s2.LatLngFromPoint(mid)

	return midLatLng.Lat.Degrees(), midLatLng.Lng.Degrees()
}

// ValidCoordinates reports whether a latitude/longitude pair is on the globe
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
