package planner

import (
	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// Recommendation is the closed set of planning outcomes.
type Recommendation string

const (
	RecommendBus   Recommendation = "bus"
	RecommendWalk  Recommendation = "walk"
	RecommendError Recommendation = "error"
)

// ErrorReason classifies an error recommendation.
type ErrorReason string

const (
	ReasonMissingInput       ErrorReason = "missing input"
	ReasonNoStopsNearOrigin  ErrorReason = "no stops near origin"
	ReasonNoStopsNearDest    ErrorReason = "no stops near destination"
	ReasonNoServiceFound     ErrorReason = "no service along route"
)

// Options are the planner's policy constants. They have no physical
// derivation; treat them as configuration.
type Options struct {
	// RadiusMeters is the walking radius used for both endpoints.
	RadiusMeters float64
	// WalkSpeedMPS is the assumed walking speed.
	WalkSpeedMPS float64
	// SimilarityThresholdMinutes is the total-time window within which
	// two trips count as tied and the closer start stop wins.
	SimilarityThresholdMinutes float64
	// MaxAlternatives caps the alternatives returned beside the primary.
	MaxAlternatives int
}

// DefaultOptions returns the stock policy values.
func DefaultOptions() Options {
	return Options{
		RadiusMeters:               800,
		WalkSpeedMPS:               geo.DefaultWalkingSpeedMPS,
		SimilarityThresholdMinutes: 1,
		MaxAlternatives:            2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RadiusMeters <= 0 {
		o.RadiusMeters = d.RadiusMeters
	}
	if o.WalkSpeedMPS <= 0 {
		o.WalkSpeedMPS = d.WalkSpeedMPS
	}
	if o.SimilarityThresholdMinutes <= 0 {
		o.SimilarityThresholdMinutes = d.SimilarityThresholdMinutes
	}
	if o.MaxAlternatives <= 0 {
		o.MaxAlternatives = d.MaxAlternatives
	}
	return o
}

// CandidateTrip is one scored start-stop/end-stop/vehicle combination.
// Created transiently per planning call; only the ranked top few
// survive into the TripResult.
type CandidateTrip struct {
	RouteID          string             `json:"routeId"`
	RouteName        string             `json:"routeName"`
	RouteColor       string             `json:"routeColor"`
	StartStop        network.NearbyStop `json:"startStop"`
	EndStop          network.NearbyStop `json:"endStop"`
	VehicleID        string             `json:"vehicleId"`
	WalkToStopTime   float64            `json:"walkToStopTime"`
	BusWaitTime      float64            `json:"busWaitTime"`
	BusTravelTime    float64            `json:"busTravelTime"`
	WalkFromStopTime float64            `json:"walkFromStopTime"`
	TotalTime        float64            `json:"totalTime"`
	StopsBetween     int                `json:"stopsBetween"`
	Delayed          bool               `json:"delayed"`
}

// TripResult is the outcome of one planning request. Immutable once
// returned.
type TripResult struct {
	Recommendation Recommendation  `json:"recommendation"`
	Reason         ErrorReason     `json:"reason,omitempty"`
	Primary        *CandidateTrip  `json:"primaryTrip,omitempty"`
	Alternatives   []CandidateTrip `json:"alternatives,omitempty"`
	DirectWalkTime float64         `json:"directWalkTime"`
}
