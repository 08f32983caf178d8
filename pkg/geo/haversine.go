package geo

import "math"

const earthRadiusMeters = 6_371_000.0

const degToRad = math.Pi / 180

// Haversine returns the great-circle distance in meters between two points
// given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// EquirectangularDist approximates Haversine by projecting both points onto a
// plane scaled at their mean latitude. Good to well under 1% for points a few
// kilometers apart away from the poles; used to rank index candidates.
func EquirectangularDist(lat1, lon1, lat2, lon2 float64) float64 {
	x := (lon2 - lon1) * math.Cos((lat1+lat2)/2*degToRad)
	y := lat2 - lat1
	return math.Hypot(x, y) * degToRad * earthRadiusMeters
}
