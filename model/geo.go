package model

import (
	"fmt"
	"math"
)

const earthRadiusM = 6371000.0

// DistanceMeters returns the great-circle distance between two coordinates.
func DistanceMeters(a, b Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

// PresentableDistance formats a distance in meters for display.
func PresentableDistance(meters float64) string {
	if meters < 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		return ""
	}
	if meters < 100 {
		return "nearby"
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters/10)*10))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
