package planner

import (
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

func pred(stopID string, minutes float64) network.Prediction {
	return network.Prediction{StopID: stopID, SecondsToArrival: int(minutes * 60)}
}

func noPred(stopID string) network.Prediction {
	return network.Prediction{StopID: stopID, SecondsToArrival: -1}
}

func TestFindNextBoardableVehicle(t *testing.T) {
	route := &network.Route{
		ID: "r1",
		Vehicles: []network.Vehicle{
			{ID: "bus-early", Predictions: []network.Prediction{pred("S1", 2)}},
			{ID: "bus-next", Predictions: []network.Prediction{pred("S1", 8), pred("S3", 20)}},
			{ID: "bus-later", Predictions: []network.Prediction{pred("S1", 15)}},
			{ID: "bus-blind", Predictions: []network.Prediction{noPred("S1")}},
		},
	}

	tests := []struct {
		name         string
		stopID       string
		earliest     float64
		wantVehicle  string
		wantWait     float64
		wantNoMatch  bool
	}{
		{
			// The 2-minute bus departs before the rider arrives at
			// minute 5; the 8-minute bus is the soonest boardable.
			name:        "skips already-passed vehicle",
			stopID:      "S1",
			earliest:    5,
			wantVehicle: "bus-next",
			wantWait:    3,
		},
		{
			name:        "boards the earliest vehicle when rider is already there",
			stopID:      "S1",
			earliest:    0,
			wantVehicle: "bus-early",
			wantWait:    2,
		},
		{
			name:        "exact arrival still boardable",
			stopID:      "S1",
			earliest:    8,
			wantVehicle: "bus-next",
			wantWait:    0,
		},
		{
			name:        "no vehicle after rider arrival",
			stopID:      "S1",
			earliest:    30,
			wantNoMatch: true,
		},
		{
			name:        "unknown stop",
			stopID:      "S9",
			earliest:    0,
			wantNoMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FindNextBoardableVehicle(route, tt.stopID, tt.earliest)
			if tt.wantNoMatch {
				if m != nil {
					t.Fatalf("expected no match, got vehicle %s", m.VehicleID)
				}
				return
			}
			if m == nil {
				t.Fatal("expected a match, got nil")
			}
			if m.VehicleID != tt.wantVehicle {
				t.Errorf("VehicleID = %s, want %s", m.VehicleID, tt.wantVehicle)
			}
			if math.Abs(m.WaitMinutes-tt.wantWait) > 1e-9 {
				t.Errorf("WaitMinutes = %f, want %f", m.WaitMinutes, tt.wantWait)
			}
			if m.WaitMinutes < 0 {
				t.Error("negative wait time must be impossible")
			}
		})
	}
}

func TestFindNextBoardableVehicleNeverNegativeWait(t *testing.T) {
	route := &network.Route{
		ID: "r1",
		Vehicles: []network.Vehicle{
			{ID: "v1", Predictions: []network.Prediction{pred("S1", 1), pred("S1", 4), pred("S1", 9)}},
		},
	}
	for _, earliest := range []float64{0, 0.5, 1, 3.9, 4, 8.99, 9, 20} {
		if m := FindNextBoardableVehicle(route, "S1", earliest); m != nil && m.WaitMinutes < 0 {
			t.Errorf("earliest=%f: wait %f is negative", earliest, m.WaitMinutes)
		}
	}
}

func TestEstimateRideTime(t *testing.T) {
	// Scenario: vehicle timeline S1@8, S2@14, S3@20.
	match := &VehicleMatch{
		VehicleID:   "bus-next",
		Predictions: []network.Prediction{pred("S1", 8), pred("S2", 14), pred("S3", 20)},
	}

	est := EstimateRideTime("S1", "S3", match)
	if !est.Valid() {
		t.Fatal("expected valid estimate")
	}
	if math.Abs(est.Minutes-12) > 1e-9 {
		t.Errorf("Minutes = %f, want 12", est.Minutes)
	}
	if est.StopsBetween != 2 {
		t.Errorf("StopsBetween = %d, want 2", est.StopsBetween)
	}
}

func TestEstimateRideTimeNoEndPrediction(t *testing.T) {
	match := &VehicleMatch{Predictions: []network.Prediction{pred("S1", 8)}}
	if est := EstimateRideTime("S1", "S3", match); est.Valid() {
		t.Errorf("expected invalid estimate, got %f minutes", est.Minutes)
	}
}

func TestEstimateRideTimeBackwardTimeline(t *testing.T) {
	// End stop predicted before the start stop: the pair is not
	// corroborated by this vehicle's timeline.
	match := &VehicleMatch{Predictions: []network.Prediction{pred("S0", 5), pred("S2", 10)}}
	if est := EstimateRideTime("S2", "S0", match); est.Valid() {
		t.Errorf("expected invalid estimate, got %f minutes", est.Minutes)
	}
}

func TestEstimateRideTimeLoopBoundary(t *testing.T) {
	// Circular route: the vehicle will serve S1 again at minute 30.
	// An S2 prediction belonging to the next loop (minute 35) must not
	// match; only the one inside the current loop does.
	match := &VehicleMatch{
		Predictions: []network.Prediction{
			pred("S1", 8),
			pred("S2", 14),
			pred("S1", 30),
			pred("S2", 35),
		},
	}
	est := EstimateRideTime("S1", "S2", match)
	if !est.Valid() {
		t.Fatal("expected valid estimate within the current loop")
	}
	if math.Abs(est.Minutes-6) > 1e-9 {
		t.Errorf("Minutes = %f, want 6 (current loop), not the next-loop arrival", est.Minutes)
	}
}

func TestEstimateRideTimeNextLoopOnly(t *testing.T) {
	// The only end-stop prediction falls after the vehicle returns to
	// the start: no valid ride within the current loop.
	match := &VehicleMatch{
		Predictions: []network.Prediction{
			pred("S1", 8),
			pred("S1", 30),
			pred("S2", 35),
		},
	}
	if est := EstimateRideTime("S1", "S2", match); est.Valid() {
		t.Errorf("expected invalid estimate, got %f minutes", est.Minutes)
	}
}

func TestEstimateRideTimeSkipsUnusablePredictions(t *testing.T) {
	match := &VehicleMatch{
		Predictions: []network.Prediction{
			noPred("S1"),
			pred("S1", 8),
			noPred("S3"),
			pred("S3", 20),
		},
	}
	est := EstimateRideTime("S1", "S3", match)
	if !est.Valid() || math.Abs(est.Minutes-12) > 1e-9 {
		t.Errorf("expected 12 minutes skipping unusable entries, got %+v", est)
	}
}

func TestEstimateRideTimeNilMatch(t *testing.T) {
	if est := EstimateRideTime("S1", "S2", nil); est.Valid() {
		t.Error("nil match must yield an invalid estimate")
	}
}
