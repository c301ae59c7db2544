package planner

import (
	"context"
	"sync"

	"github.com/theoremus-urban-solutions/transit-trip-planner/directions"
	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
)

// SegmentKind tags one leg of an assembled itinerary.
type SegmentKind string

const (
	SegmentWalk SegmentKind = "walk"
	SegmentWait SegmentKind = "wait"
	SegmentRide SegmentKind = "ride"
)

// Segment is one ordered leg of an itinerary.
type Segment struct {
	Kind            SegmentKind       `json:"kind"`
	From            geo.Coordinate    `json:"from"`
	To              geo.Coordinate    `json:"to"`
	FromName        string            `json:"fromName,omitempty"`
	ToName          string            `json:"toName,omitempty"`
	DurationMinutes float64           `json:"durationMinutes"`
	DistanceMeters  float64           `json:"distanceMeters,omitempty"`
	Polyline        string            `json:"polyline,omitempty"`
	Steps           []directions.Step `json:"steps,omitempty"`
	Estimated       bool              `json:"estimated,omitempty"`
	RouteID         string            `json:"routeId,omitempty"`
	RouteName       string            `json:"routeName,omitempty"`
	VehicleID       string            `json:"vehicleId,omitempty"`
	StopsBetween    int               `json:"stopsBetween,omitempty"`
	Delayed         bool              `json:"delayed,omitempty"`
}

// Itinerary is the normalized, ordered-segment form of a TripResult.
type Itinerary struct {
	Recommendation Recommendation `json:"recommendation"`
	Reason         ErrorReason    `json:"reason,omitempty"`
	Segments       []Segment      `json:"segments"`
	DirectWalkTime float64        `json:"directWalkTime"`
	TotalTime      float64        `json:"totalTime"`
}

// AssembleItinerary reshapes a TripResult into ordered segments,
// attaching walking-segment detail from the provider. Pure reshape: no
// further decision logic, every numeric field from the result is
// propagated unchanged.
//
// On a bus recommendation the two walk legs are fetched concurrently;
// a provider failure (or nil provider) degrades that leg to a
// straight-line estimate flagged Estimated rather than blocking the
// recommendation. On an error or walk-only result a single
// walk(origin->destination) segment carries the original reason.
func AssembleItinerary(ctx context.Context, origin, destination geo.Coordinate, res TripResult, dp directions.Provider, opts Options) Itinerary {
	opts = opts.withDefaults()

	if res.Recommendation != RecommendBus || res.Primary == nil {
		walk := fetchWalk(ctx, dp, origin, destination, opts.WalkSpeedMPS)
		seg := walkSegment(origin, destination, "", "", res.DirectWalkTime, walk)
		return Itinerary{
			Recommendation: res.Recommendation,
			Reason:         res.Reason,
			Segments:       []Segment{seg},
			DirectWalkTime: res.DirectWalkTime,
			TotalTime:      res.DirectWalkTime,
		}
	}

	trip := res.Primary
	startCoord := trip.StartStop.Stop.Coord
	endCoord := trip.EndStop.Stop.Coord

	// The two walk legs are independent; fetch them concurrently.
	var toStop, fromStop directions.WalkingSegment
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		toStop = fetchWalk(ctx, dp, origin, startCoord, opts.WalkSpeedMPS)
	}()
	go func() {
		defer wg.Done()
		fromStop = fetchWalk(ctx, dp, endCoord, destination, opts.WalkSpeedMPS)
	}()
	wg.Wait()

	segments := []Segment{
		walkSegment(origin, startCoord, "", trip.StartStop.Stop.Name, trip.WalkToStopTime, toStop),
		{
			Kind:            SegmentWait,
			From:            startCoord,
			To:              startCoord,
			FromName:        trip.StartStop.Stop.Name,
			ToName:          trip.StartStop.Stop.Name,
			DurationMinutes: trip.BusWaitTime,
			RouteID:         trip.RouteID,
			RouteName:       trip.RouteName,
			VehicleID:       trip.VehicleID,
			Delayed:         trip.Delayed,
		},
		{
			Kind:            SegmentRide,
			From:            startCoord,
			To:              endCoord,
			FromName:        trip.StartStop.Stop.Name,
			ToName:          trip.EndStop.Stop.Name,
			DurationMinutes: trip.BusTravelTime,
			RouteID:         trip.RouteID,
			RouteName:       trip.RouteName,
			VehicleID:       trip.VehicleID,
			StopsBetween:    trip.StopsBetween,
			Delayed:         trip.Delayed,
		},
		walkSegment(endCoord, destination, trip.EndStop.Stop.Name, "", trip.WalkFromStopTime, fromStop),
	}

	return Itinerary{
		Recommendation: res.Recommendation,
		Segments:       segments,
		DirectWalkTime: res.DirectWalkTime,
		TotalTime:      trip.TotalTime,
	}
}

func fetchWalk(ctx context.Context, dp directions.Provider, from, to geo.Coordinate, walkSpeedMPS float64) directions.WalkingSegment {
	if dp == nil {
		return directions.Estimate(from, to, walkSpeedMPS)
	}
	seg, err := dp.WalkingSegment(ctx, from, to)
	if err != nil {
		return directions.Estimate(from, to, walkSpeedMPS)
	}
	return seg
}

// walkSegment carries the planner's own duration; the provider detail
// is supplementary and must not alter the scored numbers.
func walkSegment(from, to geo.Coordinate, fromName, toName string, plannedMinutes float64, detail directions.WalkingSegment) Segment {
	return Segment{
		Kind:            SegmentWalk,
		From:            from,
		To:              to,
		FromName:        fromName,
		ToName:          toName,
		DurationMinutes: plannedMinutes,
		DistanceMeters:  detail.DistanceMeters,
		Polyline:        detail.Polyline,
		Steps:           detail.Steps,
		Estimated:       detail.Estimated,
	}
}
