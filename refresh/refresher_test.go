package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

type fakeVehicles struct {
	byRoute map[string][]network.Vehicle
	err     error
	calls   int
}

func (f *fakeVehicles) VehiclesByRoute(context.Context) (map[string][]network.Vehicle, error) {
	f.calls++
	return f.byRoute, f.err
}

type failingTopology struct{ err error }

func (f failingTopology) Routes(context.Context) ([]network.Route, error) { return nil, f.err }

func twoRoutes() StaticTopology {
	return StaticTopology{
		{ID: "a", Stops: []network.Stop{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b", Stops: []network.Stop{{ID: "b1"}}},
	}
}

func TestRefreshOnce(t *testing.T) {
	vs := &fakeVehicles{byRoute: map[string][]network.Vehicle{
		"a": {{ID: "v1"}, {ID: "v2"}},
	}}
	r := New(twoRoutes(), vs, time.Second)

	if r.Snapshot() != nil {
		t.Fatal("snapshot must be nil before the first refresh")
	}
	if err := r.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("RefreshOnce: %v", err)
	}

	snap := r.Snapshot()
	if snap == nil {
		t.Fatal("snapshot not published")
	}
	if len(snap.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(snap.Routes))
	}
	if got := len(snap.RouteByID("a").Vehicles); got != 2 {
		t.Errorf("route a vehicles = %d, want 2", got)
	}
	// A route the vehicle source knows nothing about is present but
	// empty, not missing.
	if rb := snap.RouteByID("b"); rb == nil || len(rb.Vehicles) != 0 {
		t.Error("route without vehicle data must remain in the snapshot")
	}
	if snap.VehicleCount() != 2 {
		t.Errorf("VehicleCount = %d, want 2", snap.VehicleCount())
	}
}

func TestRefreshOnceVehicleFailureDegrades(t *testing.T) {
	vs := &fakeVehicles{err: errors.New("feed down")}
	r := New(twoRoutes(), vs, time.Second)

	if err := r.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("vehicle failure must not fail the refresh: %v", err)
	}
	snap := r.Snapshot()
	if snap == nil || len(snap.Routes) != 2 {
		t.Fatal("topology must still be published")
	}
	if snap.VehicleCount() != 0 {
		t.Errorf("VehicleCount = %d, want 0", snap.VehicleCount())
	}
}

func TestRefreshOnceTopologyFailureKeepsPrevious(t *testing.T) {
	vs := &fakeVehicles{}
	r := New(twoRoutes(), vs, time.Second)
	if err := r.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("seed refresh: %v", err)
	}
	previous := r.Snapshot()

	r.topology = failingTopology{err: errors.New("db down")}
	if err := r.RefreshOnce(context.Background()); err == nil {
		t.Fatal("expected error from failing topology")
	}
	if r.Snapshot() != previous {
		t.Error("previous snapshot must remain published on topology failure")
	}
}

func TestSnapshotSwapIsolation(t *testing.T) {
	// A handle taken before a refresh must be unaffected by the swap.
	vs := &fakeVehicles{byRoute: map[string][]network.Vehicle{"a": {{ID: "v1"}}}}
	r := New(twoRoutes(), vs, time.Second)
	if err := r.RefreshOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	held := r.Snapshot()

	vs.byRoute = map[string][]network.Vehicle{"a": {{ID: "v1"}, {ID: "v2"}, {ID: "v3"}}}
	if err := r.RefreshOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	if held.VehicleCount() != 1 {
		t.Errorf("held snapshot mutated: VehicleCount = %d, want 1", held.VehicleCount())
	}
	if r.Snapshot().VehicleCount() != 3 {
		t.Errorf("new snapshot VehicleCount = %d, want 3", r.Snapshot().VehicleCount())
	}
	if held == r.Snapshot() {
		t.Error("refresh must publish a new snapshot value")
	}
}
