package geo

import (
	"math"
)

const (
	// EarthRadiusMeters is the mean Earth radius used for haversine.
	EarthRadiusMeters = 6371000.0

	// DefaultWalkingSpeedMPS is the assumed average walking speed.
	// Policy constant; overridable through config.
	DefaultWalkingSpeedMPS = 1.1
)

// Coordinate is a WGS 84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is finite and within global ranges.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// DistanceMeters returns the great-circle distance between two points.
// Either point being invalid yields +Inf: the sentinel for "unreachable",
// not an error condition.
func DistanceMeters(a, b Coordinate) float64 {
	if !a.Valid() || !b.Valid() {
		return math.Inf(1)
	}
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WalkTimeMinutes converts a walking distance to minutes at the given
// speed. A speed <= 0 falls back to DefaultWalkingSpeedMPS.
func WalkTimeMinutes(distanceMeters, speedMPS float64) float64 {
	if speedMPS <= 0 {
		speedMPS = DefaultWalkingSpeedMPS
	}
	return distanceMeters / speedMPS / 60
}
