package planner

import (
	"math"
	"sort"

	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// PlanTrip finds the fastest walk–wait–ride–walk trip between origin
// and destination on the given snapshot, plus up to
// opts.MaxAlternatives runners-up. Pure and synchronous: the snapshot
// is treated as an immutable point-in-time value and never mutated.
func PlanTrip(origin, destination geo.Coordinate, snap *network.Snapshot, opts Options) TripResult {
	opts = opts.withDefaults()

	if snap == nil || !origin.Valid() || !destination.Valid() {
		return TripResult{Recommendation: RecommendError, Reason: ReasonMissingInput}
	}

	// Always computed: the UI offers a walk fallback on every outcome.
	directWalk := geo.WalkTimeMinutes(geo.DistanceMeters(origin, destination), opts.WalkSpeedMPS)

	startCandidates := network.FindNearbyStops(origin, snap, opts.RadiusMeters, opts.WalkSpeedMPS)
	if len(startCandidates) == 0 {
		return TripResult{Recommendation: RecommendError, Reason: ReasonNoStopsNearOrigin, DirectWalkTime: directWalk}
	}
	endCandidates := network.FindNearbyStops(destination, snap, opts.RadiusMeters, opts.WalkSpeedMPS)
	if len(endCandidates) == 0 {
		return TripResult{Recommendation: RecommendError, Reason: ReasonNoStopsNearDest, DirectWalkTime: directWalk}
	}

	candidates := enumerateCandidates(startCandidates, endCandidates, snap)
	if len(candidates) == 0 {
		return TripResult{Recommendation: RecommendError, Reason: ReasonNoServiceFound, DirectWalkTime: directWalk}
	}

	sortCandidates(candidates, opts.SimilarityThresholdMinutes)

	primary := candidates[0]
	alts := candidates[1:]
	if len(alts) > opts.MaxAlternatives {
		alts = alts[:opts.MaxAlternatives]
	}

	rec := RecommendBus
	if directWalk <= primary.TotalTime {
		rec = RecommendWalk
	}

	return TripResult{
		Recommendation: rec,
		Primary:        &primary,
		Alternatives:   append([]CandidateTrip(nil), alts...),
		DirectWalkTime: directWalk,
	}
}

// enumerateCandidates scores every same-route (start, end) stop pair
// that survives the topology check, the live arrival match and the
// ride estimate.
func enumerateCandidates(starts, ends []network.NearbyStop, snap *network.Snapshot) []CandidateTrip {
	var out []CandidateTrip
	for _, start := range starts {
		route := snap.RouteByID(start.RouteID)
		if route == nil {
			continue
		}
		for _, end := range ends {
			if end.RouteID != start.RouteID || end.Stop.ID == start.Stop.ID {
				continue
			}
			valid, _ := route.CheckDirection(start.Stop.ID, end.Stop.ID)
			if !valid {
				continue
			}

			match := FindNextBoardableVehicle(route, start.Stop.ID, start.WalkTimeMinutes)
			if match == nil {
				// Stale or missing prediction: silent exclusion, never
				// a hard error on its own.
				continue
			}

			ride := EstimateRideTime(start.Stop.ID, end.Stop.ID, match)
			if !ride.Valid() {
				continue
			}

			out = append(out, CandidateTrip{
				RouteID:          route.ID,
				RouteName:        route.Name,
				RouteColor:       route.Color,
				StartStop:        start,
				EndStop:          end,
				VehicleID:        match.VehicleID,
				WalkToStopTime:   start.WalkTimeMinutes,
				BusWaitTime:      match.WaitMinutes,
				BusTravelTime:    ride.Minutes,
				WalkFromStopTime: end.WalkTimeMinutes,
				TotalTime:        start.WalkTimeMinutes + match.WaitMinutes + ride.Minutes + end.WalkTimeMinutes,
				StopsBetween:     ride.StopsBetween,
				Delayed:          match.Delayed,
			})
		}
	}
	return out
}

// sortCandidates orders by total time ascending. Totals within the
// similarity threshold count as a visual tie; the trip with the
// shorter walk to its start stop wins, since the walk distance is
// exact and live ETA differences at that scale are noise.
func sortCandidates(c []CandidateTrip, thresholdMinutes float64) {
	sort.SliceStable(c, func(i, j int) bool {
		if math.Abs(c[i].TotalTime-c[j].TotalTime) <= thresholdMinutes {
			return c[i].WalkToStopTime < c[j].WalkToStopTime
		}
		return c[i].TotalTime < c[j].TotalTime
	})
}
