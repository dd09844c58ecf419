// Package geo provides great-circle math and human-readable formatting
// for trip distance and ETA estimates.
package geo

import "math"

// EarthRadiusM is the Earth's mean radius in meters.
const EarthRadiusM = 6371000.0

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsValid checks if the point has valid coordinates.
func (p Point) IsValid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Distance calculates the great-circle distance between two points
// using the haversine formula. Returns distance in meters.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := degreesToRadians(lat1)
	phi2 := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusM * c
}

// DistanceBetween is Distance over two Points.
func DistanceBetween(p1, p2 Point) float64 {
	return Distance(p1.Lat, p1.Lng, p2.Lat, p2.Lng)
}

// Bearing calculates the initial bearing from p1 to p2.
// Returns bearing in degrees (0-360, where 0 is North).
func Bearing(p1, p2 Point) float64 {
	lat1 := degreesToRadians(p1.Lat)
	lat2 := degreesToRadians(p2.Lat)
	deltaLng := degreesToRadians(p2.Lng - p1.Lng)

	x := math.Sin(deltaLng) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLng)

	bearing := radiansToDegrees(math.Atan2(x, y))

	// Normalize to 0-360
	return math.Mod(bearing+360, 360)
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func radiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
