package refresh

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// TopologySource supplies routes with their ordered stop sequences.
type TopologySource interface {
	Routes(ctx context.Context) ([]network.Route, error)
}

// VehicleSource supplies currently tracked vehicles grouped by route.
type VehicleSource interface {
	VehiclesByRoute(ctx context.Context) (map[string][]network.Vehicle, error)
}

// Metrics is the narrow metrics surface the refresher reports to.
type Metrics interface {
	RefreshObserve(d time.Duration)
	RefreshErrInc()
	SetNetworkSize(routes, vehicles int)
}

// VehiclePublisher receives every tracked vehicle after a successful
// refresh (e.g. a NATS fan-out). Publish failures are logged, never
// fatal.
type VehiclePublisher interface {
	PublishVehicle(routeID string, v network.Vehicle, at time.Time) error
}

// StaticTopology adapts a fixed route slice into a TopologySource.
// Used for file-configured networks and tests.
type StaticTopology []network.Route

func (s StaticTopology) Routes(context.Context) ([]network.Route, error) {
	return []network.Route(s), nil
}

// Refresher builds and publishes snapshots on a fixed interval.
type Refresher struct {
	topology  TopologySource
	vehicles  VehicleSource
	interval  time.Duration
	metrics   Metrics
	publisher VehiclePublisher

	current atomic.Pointer[network.Snapshot]
	now     func() time.Time
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) Option { return func(r *Refresher) { r.metrics = m } }

// WithPublisher attaches a vehicle publisher.
func WithPublisher(p VehiclePublisher) Option { return func(r *Refresher) { r.publisher = p } }

// New creates a Refresher. interval <= 0 defaults to 15 seconds.
func New(topology TopologySource, vehicles VehicleSource, interval time.Duration, opts ...Option) *Refresher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	r := &Refresher{
		topology: topology,
		vehicles: vehicles,
		interval: interval,
		now:      time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Snapshot returns the most recently published snapshot, or nil before
// the first successful refresh.
func (r *Refresher) Snapshot() *network.Snapshot {
	return r.current.Load()
}

// RefreshOnce fetches topology and vehicles concurrently, merges them
// into a new snapshot and publishes it. A vehicle-source failure still
// publishes the topology (routes without vehicles); a topology failure
// keeps the previous snapshot and reports the error.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	start := r.now()

	var (
		wg        sync.WaitGroup
		routes    []network.Route
		topoErr   error
		byRoute   map[string][]network.Vehicle
		vehiclErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		routes, topoErr = r.topology.Routes(ctx)
	}()
	go func() {
		defer wg.Done()
		if r.vehicles != nil {
			byRoute, vehiclErr = r.vehicles.VehiclesByRoute(ctx)
		}
	}()
	wg.Wait()

	if topoErr != nil {
		if r.metrics != nil {
			r.metrics.RefreshErrInc()
		}
		return topoErr
	}
	if len(routes) == 0 {
		if r.metrics != nil {
			r.metrics.RefreshErrInc()
		}
		return errors.New("topology source returned no routes")
	}
	if vehiclErr != nil {
		log.Printf("refresh: vehicle fetch failed, publishing topology only: %v", vehiclErr)
	}

	snap := &network.Snapshot{
		Routes:    make([]network.Route, len(routes)),
		FetchedAt: start,
	}
	copy(snap.Routes, routes)
	for i := range snap.Routes {
		snap.Routes[i].Vehicles = byRoute[snap.Routes[i].ID]
	}

	r.current.Store(snap)

	if r.metrics != nil {
		r.metrics.RefreshObserve(r.now().Sub(start))
		r.metrics.SetNetworkSize(len(snap.Routes), snap.VehicleCount())
	}
	if r.publisher != nil {
		for i := range snap.Routes {
			route := &snap.Routes[i]
			for _, v := range route.Vehicles {
				if err := r.publisher.PublishVehicle(route.ID, v, start); err != nil {
					log.Printf("refresh: publish vehicle %s: %v", v.ID, err)
				}
			}
		}
	}
	return nil
}

// Run refreshes immediately and then on every interval tick until the
// context is cancelled. Individual refresh failures are logged and the
// loop keeps going.
func (r *Refresher) Run(ctx context.Context) {
	if err := r.RefreshOnce(ctx); err != nil {
		log.Printf("refresh: initial refresh failed: %v", err)
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				log.Printf("refresh: %v", err)
			}
		}
	}
}
