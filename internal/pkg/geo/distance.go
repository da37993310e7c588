// Package geo provides the great-circle distance and constant-speed ETA
// heuristics used to characterize delivery progress. No live routing.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DefaultAvgSpeedKmh is the average road speed assumed when estimating ETAs.
const DefaultAvgSpeedKmh = 50

// DistanceKm returns the haversine distance in kilometers between two points.
// Symmetric; zero for identical points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// Estimator converts distances to ETAs assuming a constant average speed.
type Estimator struct {
	avgSpeedKmh float64
}

// NewEstimator returns an Estimator with the given average road speed in
// km/h. Non-positive values fall back to DefaultAvgSpeedKmh.
func NewEstimator(avgSpeedKmh float64) *Estimator {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	return &Estimator{avgSpeedKmh: avgSpeedKmh}
}

// ETAMinutes returns round(distanceKm / avgSpeedKmh * 60).
func (e *Estimator) ETAMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / e.avgSpeedKmh * 60))
}
