package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// DefaultRadiusMeters is applied when a project defines a geofence center
// without an explicit radius.
const DefaultRadiusMeters = 100

// Center is a project's configured geofence zone.
type Center struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Result carries the outcome of a geofence check. DistanceMeters is always
// populated so callers can surface it on failure.
type Result struct {
	OK             bool
	DistanceMeters float64
	RadiusMeters   float64
}

// Distance returns the great-circle distance between two points in meters.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Validate checks a submitted point against a geofence center. A radius of
// zero or less falls back to DefaultRadiusMeters.
func Validate(lat, lon float64, center Center) Result {
	radius := center.RadiusMeters
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}

	d := Distance(lat, lon, center.Latitude, center.Longitude)

	return Result{
		OK:             d <= radius,
		DistanceMeters: d,
		RadiusMeters:   radius,
	}
}
