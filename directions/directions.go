package directions

import (
	"context"

	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
)

// Step is one turn instruction of a walking segment.
type Step struct {
	Instruction    string  `json:"instruction"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// WalkingSegment is the detail for one walking leg. Polyline and Steps
// are opaque provider output; the planner only ever relies on the
// distance and duration.
type WalkingSegment struct {
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
	Polyline        string  `json:"polyline,omitempty"`
	Steps           []Step  `json:"steps,omitempty"`
	// Estimated marks a straight-line fallback produced locally after
	// a provider failure.
	Estimated bool `json:"estimated"`
}

// Provider fetches walking-segment detail between two points.
type Provider interface {
	WalkingSegment(ctx context.Context, from, to geo.Coordinate) (WalkingSegment, error)
}

// Estimate builds the straight-line fallback segment used when no
// provider is configured or the provider call fails.
func Estimate(from, to geo.Coordinate, walkSpeedMPS float64) WalkingSegment {
	d := geo.DistanceMeters(from, to)
	return WalkingSegment{
		DistanceMeters:  d,
		DurationSeconds: geo.WalkTimeMinutes(d, walkSpeedMPS) * 60,
		Estimated:       true,
	}
}
