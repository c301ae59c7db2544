package planner

import (
	"math"

	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// VehicleMatch is a boardable vehicle at a stop: the soonest vehicle
// whose predicted arrival is at or after the rider's own arrival on
// foot. It keeps the vehicle's full prediction timeline because the
// ride estimator needs it.
type VehicleMatch struct {
	VehicleID   string
	ETAMinutes  float64
	WaitMinutes float64
	Delayed     bool
	Predictions []network.Prediction
}

// FindNextBoardableVehicle scans every vehicle on the route for a
// usable prediction at stopID arriving no earlier than
// earliestArrivalMinutes, and returns the soonest such vehicle. A bus
// predicted before the rider reaches the stop has already passed and
// cannot be boarded. Returns nil when no vehicle qualifies: a valid,
// reportable no-service outcome, not an error.
func FindNextBoardableVehicle(route *network.Route, stopID string, earliestArrivalMinutes float64) *VehicleMatch {
	var best *VehicleMatch
	for vi := range route.Vehicles {
		v := &route.Vehicles[vi]
		for _, p := range v.Predictions {
			if p.StopID != stopID || !p.Usable() {
				continue
			}
			eta := p.ArrivalMinutes()
			if eta < earliestArrivalMinutes {
				continue
			}
			if best == nil || eta < best.ETAMinutes {
				best = &VehicleMatch{
					VehicleID:   v.ID,
					ETAMinutes:  eta,
					WaitMinutes: eta - earliestArrivalMinutes,
					Delayed:     p.Delayed,
					Predictions: v.Predictions,
				}
			}
		}
	}
	return best
}

// RideEstimate is the on-board portion of a candidate trip, derived
// from the matched vehicle's own prediction timeline.
type RideEstimate struct {
	Minutes      float64
	StopsBetween int
}

// Valid reports whether the estimate is usable. A non-positive ride
// time means the vehicle's live data does not corroborate the pair and
// the candidate must be discarded.
func (e RideEstimate) Valid() bool { return e.Minutes > 0 }

// EstimateRideTime derives the ride duration between two stops from
// the matched vehicle's predictions. The segment is bounded by the
// first predicted visit to the start stop and the vehicle's next
// predicted return to it (the loop-back boundary on circular routes,
// +Inf when it never returns); only an end-stop prediction strictly
// inside those bounds counts. This prevents matching an arrival from a
// subsequent loop of a circular route. No distance/speed fallback is
// applied: live data is trusted over a physical estimate whenever both
// bounds exist.
func EstimateRideTime(startStopID, endStopID string, m *VehicleMatch) RideEstimate {
	if m == nil {
		return RideEstimate{}
	}

	startArrival := math.Inf(1)
	startIdx := -1
	for i, p := range m.Predictions {
		if p.StopID == startStopID && p.Usable() {
			startArrival = p.ArrivalMinutes()
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return RideEstimate{}
	}

	// Next visit to the start stop bounds the current loop.
	loopBound := math.Inf(1)
	for _, p := range m.Predictions[startIdx+1:] {
		if p.StopID == startStopID && p.Usable() {
			loopBound = p.ArrivalMinutes()
			break
		}
	}

	endArrival := math.Inf(1)
	for _, p := range m.Predictions {
		if p.StopID != endStopID || !p.Usable() {
			continue
		}
		a := p.ArrivalMinutes()
		if a > startArrival && a < loopBound && a < endArrival {
			endArrival = a
		}
	}
	if math.IsInf(endArrival, 1) {
		return RideEstimate{}
	}

	// Distinct stops predicted in (start, end] ride along with us.
	seen := map[string]struct{}{}
	for _, p := range m.Predictions {
		if !p.Usable() {
			continue
		}
		a := p.ArrivalMinutes()
		if a > startArrival && a <= endArrival {
			seen[p.StopID] = struct{}{}
		}
	}

	return RideEstimate{
		Minutes:      endArrival - startArrival,
		StopsBetween: len(seen),
	}
}
