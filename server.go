package tripplanner

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/transit-trip-planner/config"
	"github.com/theoremus-urban-solutions/transit-trip-planner/directions"
	"github.com/theoremus-urban-solutions/transit-trip-planner/metrics"
	"github.com/theoremus-urban-solutions/transit-trip-planner/planner"
	"github.com/theoremus-urban-solutions/transit-trip-planner/refresh"
)

// Server exposes the planner over HTTP against the refresher's current
// snapshot.
type Server struct {
	cfg        config.AppConfig
	refresher  *refresh.Refresher
	directions directions.Provider
	metrics    *metrics.Collector

	httpServer *http.Server
}

// NewServer wires the API around an already-configured refresher. Both
// the directions provider and the metrics collector may be nil.
func NewServer(cfg config.AppConfig, r *refresh.Refresher, dp directions.Provider, m *metrics.Collector) *Server {
	return &Server{cfg: cfg, refresher: r, directions: dp, metrics: m}
}

// plannerOptions maps the config policy constants onto the engine.
func (s *Server) plannerOptions() planner.Options {
	return planner.Options{
		RadiusMeters:               s.cfg.Planner.WalkRadiusMeters,
		WalkSpeedMPS:               s.cfg.Planner.WalkSpeedMPS,
		SimilarityThresholdMinutes: s.cfg.Planner.SimilarityThresholdMinutes,
		MaxAlternatives:            s.cfg.Planner.MaxAlternatives,
	}
}

// Start begins serving the API in the background.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/plan", s.handlePlan)

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM and then drains
// the server with a timeout.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
