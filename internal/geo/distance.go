// Package geo computes great-circle distances.
package geo

import (
	"math"

	"hotel_match/internal/domain"
)

// EarthRadiusMeters is the sphere radius used for every distance.
// It is not the mean Earth radius; existing results depend on this value.
const EarthRadiusMeters = 6376500.0

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// Distance returns the haversine distance between a and b in meters.
func Distance(a, b domain.Coordinate) float64 {
	phi1 := toRadians(a.Latitude)
	phi2 := toRadians(b.Latitude)
	dPhi := phi2 - phi1
	dLambda := toRadians(b.Longitude) - toRadians(a.Longitude)

	h := math.Pow(math.Sin(dPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
