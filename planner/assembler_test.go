package planner

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/transit-trip-planner/directions"
	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
)

// stubProvider returns canned segments keyed by destination, or a
// global error.
type stubProvider struct {
	err   error
	calls int
}

func (s *stubProvider) WalkingSegment(_ context.Context, from, to geo.Coordinate) (directions.WalkingSegment, error) {
	s.calls++
	if s.err != nil {
		return directions.WalkingSegment{}, s.err
	}
	return directions.WalkingSegment{
		DistanceMeters:  geo.DistanceMeters(from, to),
		DurationSeconds: 120,
		Polyline:        "stub-polyline",
		Steps:           []directions.Step{{Instruction: "continue", DistanceMeters: 10}},
	}, nil
}

func TestAssembleItineraryBusTrip(t *testing.T) {
	snap := campusSnapshot()
	origin := testBase
	destination := northOf(testBase, 2500)
	res := PlanTrip(origin, destination, snap, DefaultOptions())
	if res.Recommendation != RecommendBus {
		t.Fatalf("fixture broke: %s", res.Recommendation)
	}

	dp := &stubProvider{}
	it := AssembleItinerary(context.Background(), origin, destination, res, dp, DefaultOptions())

	if len(it.Segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(it.Segments))
	}
	wantKinds := []SegmentKind{SegmentWalk, SegmentWait, SegmentRide, SegmentWalk}
	for i, k := range wantKinds {
		if it.Segments[i].Kind != k {
			t.Errorf("segment %d kind = %s, want %s", i, it.Segments[i].Kind, k)
		}
	}

	trip := res.Primary
	// Numeric fields propagate unchanged: the assembler reshapes, it
	// does not rescore.
	if it.Segments[0].DurationMinutes != trip.WalkToStopTime {
		t.Errorf("walk-to duration %f != %f", it.Segments[0].DurationMinutes, trip.WalkToStopTime)
	}
	if it.Segments[1].DurationMinutes != trip.BusWaitTime {
		t.Errorf("wait duration %f != %f", it.Segments[1].DurationMinutes, trip.BusWaitTime)
	}
	if it.Segments[2].DurationMinutes != trip.BusTravelTime {
		t.Errorf("ride duration %f != %f", it.Segments[2].DurationMinutes, trip.BusTravelTime)
	}
	if it.Segments[2].StopsBetween != trip.StopsBetween {
		t.Errorf("ride stopsBetween %d != %d", it.Segments[2].StopsBetween, trip.StopsBetween)
	}
	if it.Segments[3].DurationMinutes != trip.WalkFromStopTime {
		t.Errorf("walk-from duration %f != %f", it.Segments[3].DurationMinutes, trip.WalkFromStopTime)
	}
	if it.TotalTime != trip.TotalTime {
		t.Errorf("TotalTime %f != %f", it.TotalTime, trip.TotalTime)
	}

	if dp.calls != 2 {
		t.Errorf("expected 2 provider calls (one per walk leg), got %d", dp.calls)
	}
	for _, i := range []int{0, 3} {
		if it.Segments[i].Estimated {
			t.Errorf("segment %d flagged estimated despite provider success", i)
		}
		if it.Segments[i].Polyline != "stub-polyline" {
			t.Errorf("segment %d missing provider polyline", i)
		}
	}
}

func TestAssembleItineraryProviderFailure(t *testing.T) {
	snap := campusSnapshot()
	origin := testBase
	destination := northOf(testBase, 2500)
	res := PlanTrip(origin, destination, snap, DefaultOptions())

	dp := &stubProvider{err: errors.New("directions unavailable")}
	it := AssembleItinerary(context.Background(), origin, destination, res, dp, DefaultOptions())

	// Failure degrades to an estimate; it never blocks the bus
	// recommendation.
	if it.Recommendation != RecommendBus {
		t.Fatalf("Recommendation = %s, want bus despite provider failure", it.Recommendation)
	}
	for _, i := range []int{0, 3} {
		seg := it.Segments[i]
		if !seg.Estimated {
			t.Errorf("segment %d should be flagged estimated", i)
		}
		if seg.DistanceMeters <= 0 || math.IsInf(seg.DistanceMeters, 0) {
			t.Errorf("segment %d estimate distance = %f", i, seg.DistanceMeters)
		}
	}
}

func TestAssembleItineraryErrorResult(t *testing.T) {
	origin := testBase
	destination := northOf(testBase, 900)
	res := TripResult{
		Recommendation: RecommendError,
		Reason:         ReasonNoServiceFound,
		DirectWalkTime: 13.6,
	}

	it := AssembleItinerary(context.Background(), origin, destination, res, &stubProvider{}, DefaultOptions())

	if len(it.Segments) != 1 || it.Segments[0].Kind != SegmentWalk {
		t.Fatalf("expected single walk segment, got %+v", it.Segments)
	}
	if it.Reason != ReasonNoServiceFound {
		t.Errorf("Reason = %q, original error reason must carry through", it.Reason)
	}
	if it.Segments[0].DurationMinutes != res.DirectWalkTime {
		t.Errorf("walk duration %f != directWalkTime %f", it.Segments[0].DurationMinutes, res.DirectWalkTime)
	}
}

func TestAssembleItineraryNilProvider(t *testing.T) {
	origin := testBase
	destination := northOf(testBase, 500)
	res := TripResult{Recommendation: RecommendWalk, DirectWalkTime: 7.6}

	it := AssembleItinerary(context.Background(), origin, destination, res, nil, DefaultOptions())

	if len(it.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(it.Segments))
	}
	if !it.Segments[0].Estimated {
		t.Error("nil provider must produce an estimated segment")
	}
}
