// Package metrics exposes prometheus instrumentation for the snapshot
// refresh loop and the planning API, served on a dedicated listener.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the service reports.
type Collector struct {
	reg *prometheus.Registry

	RoutesTracked   prometheus.Gauge
	VehiclesTracked prometheus.Gauge

	Refreshes   prometheus.Counter
	RefreshErrs prometheus.Counter
	RefreshDur  prometheus.Histogram

	PlanRequests *prometheus.CounterVec // outcome label: bus|walk|error
	PlanDuration prometheus.Histogram

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
}

// NewCollector builds and registers the full metric set.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RoutesTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_routes_tracked",
			Help: "Routes present in the current network snapshot.",
		}),
		VehiclesTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_vehicles_tracked",
			Help: "Vehicles present in the current network snapshot.",
		}),
		Refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_snapshot_refreshes_total",
			Help: "Total successful snapshot refreshes.",
		}),
		RefreshErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_snapshot_refresh_errors_total",
			Help: "Total failed snapshot refreshes.",
		}),
		RefreshDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_snapshot_refresh_duration_seconds",
			Help:    "Duration of snapshot refresh cycles.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		PlanRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_plan_requests_total",
			Help: "Planning requests by outcome.",
		}, []string{"outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_plan_duration_seconds",
			Help:    "Duration of planning computations.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_published_total",
			Help: "Total NATS vehicle messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_nats_connected",
			Help: "1 if the NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.RoutesTracked, c.VehiclesTracked,
		c.Refreshes, c.RefreshErrs, c.RefreshDur,
		c.PlanRequests, c.PlanDuration,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
	)
	return c
}

// RefreshObserve records one successful refresh cycle.
func (c *Collector) RefreshObserve(d time.Duration) {
	c.Refreshes.Inc()
	c.RefreshDur.Observe(d.Seconds())
}

// RefreshErrInc records a failed refresh.
func (c *Collector) RefreshErrInc() { c.RefreshErrs.Inc() }

// SetNetworkSize records the size of the freshly published snapshot.
func (c *Collector) SetNetworkSize(routes, vehicles int) {
	c.RoutesTracked.Set(float64(routes))
	c.VehiclesTracked.Set(float64(vehicles))
}

// PlanObserve records one planning request.
func (c *Collector) PlanObserve(outcome string, d time.Duration) {
	c.PlanRequests.WithLabelValues(outcome).Inc()
	c.PlanDuration.Observe(d.Seconds())
}

// NATSPublishedInc and friends satisfy the publisher metrics surface.
func (c *Collector) NATSPublishedInc()  { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }
func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}

// Handler returns the prometheus scrape handler for this registry.
func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on addr.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
