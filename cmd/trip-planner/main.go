package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	tripplanner "github.com/theoremus-urban-solutions/transit-trip-planner"
	"github.com/theoremus-urban-solutions/transit-trip-planner/config"
	"github.com/theoremus-urban-solutions/transit-trip-planner/directions"
	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
	"github.com/theoremus-urban-solutions/transit-trip-planner/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-trip-planner/internal"
	"github.com/theoremus-urban-solutions/transit-trip-planner/metrics"
	"github.com/theoremus-urban-solutions/transit-trip-planner/pgstatic"
	"github.com/theoremus-urban-solutions/transit-trip-planner/planner"
	"github.com/theoremus-urban-solutions/transit-trip-planner/publish"
	"github.com/theoremus-urban-solutions/transit-trip-planner/refresh"
)

func main() {
	mode := flag.String("mode", "serve", "serve|plan")
	configPath := flag.String("config", "config.yml", "path to config.yml")
	fromLat := flag.Float64("fromLat", 0, "origin latitude (plan mode)")
	fromLon := flag.Float64("fromLon", 0, "origin longitude (plan mode)")
	toLat := flag.Float64("toLat", 0, "destination latitude (plan mode)")
	toLon := flag.Float64("toLon", 0, "destination longitude (plan mode)")
	flag.Parse()

	internal.InitLogging()
	_ = godotenv.Load() // .env is optional

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	topology, cleanup, err := buildTopology(cfg)
	if err != nil {
		log.Fatalf("static network: %v", err)
	}
	defer cleanup()

	var vehicles refresh.VehicleSource
	if cfg.GTFSRT.TripUpdatesURL != "" || cfg.GTFSRT.VehiclePositionsURL != "" {
		vehicles = gtfsrt.NewProvider(cfg.GTFSRT.TripUpdatesURL, cfg.GTFSRT.VehiclePositionsURL)
	}

	var dp directions.Provider
	if cfg.Directions.OSRMBaseURL != "" {
		dp = directions.NewOSRMClient(cfg.Directions.OSRMBaseURL)
	}

	var collector *metrics.Collector
	var refreshOpts []refresh.Option
	if cfg.Server.MetricsAddr != "" {
		collector = metrics.NewCollector()
		collector.Serve(cfg.Server.MetricsAddr)
		refreshOpts = append(refreshOpts, refresh.WithMetrics(collector))
	}
	if cfg.NATS.URL != "" {
		pub, err := publish.NewNATSPublisher(cfg.NATS.URL, collector)
		if err != nil {
			log.Fatalf("nats connect: %v", err)
		}
		defer pub.Close()
		refreshOpts = append(refreshOpts, refresh.WithPublisher(pub))
	}

	interval := time.Duration(cfg.GTFSRT.RefreshIntervalSec) * time.Second
	refresher := refresh.New(topology, vehicles, interval, refreshOpts...)

	switch *mode {
	case "serve":
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go refresher.Run(ctx)

		srv := tripplanner.NewServer(cfg, refresher, dp, collector)
		srv.Start()
		srv.HandleGracefulShutdown()

	case "plan":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := refresher.RefreshOnce(ctx); err != nil {
			log.Fatalf("refresh: %v", err)
		}

		origin := geo.Coordinate{Lat: *fromLat, Lon: *fromLon}
		destination := geo.Coordinate{Lat: *toLat, Lon: *toLon}
		opts := planner.Options{
			RadiusMeters:               cfg.Planner.WalkRadiusMeters,
			WalkSpeedMPS:               cfg.Planner.WalkSpeedMPS,
			SimilarityThresholdMinutes: cfg.Planner.SimilarityThresholdMinutes,
			MaxAlternatives:            cfg.Planner.MaxAlternatives,
		}

		result := planner.PlanTrip(origin, destination, refresher.Snapshot(), opts)
		itinerary := planner.AssembleItinerary(ctx, origin, destination, result, dp, opts)

		out, err := json.MarshalIndent(itinerary, "", "  ")
		if err != nil {
			log.Fatalf("encode itinerary: %v", err)
		}
		fmt.Println(string(out))

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

// buildTopology picks the static network source: Postgres when a DSN
// is configured, otherwise a routes file.
func buildTopology(cfg config.AppConfig) (refresh.TopologySource, func(), error) {
	if cfg.Static.DatabaseURL != "" {
		loader, err := pgstatic.Open(cfg.Static.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := loader.Ping(context.Background()); err != nil {
			_ = loader.Close()
			return nil, nil, fmt.Errorf("postgres ping: %w", err)
		}
		return loader, func() { _ = loader.Close() }, nil
	}
	if cfg.Static.FilePath != "" {
		topo, err := refresh.LoadTopologyFile(cfg.Static.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return topo, func() {}, nil
	}
	return nil, nil, fmt.Errorf("either static.databaseURL or static.filePath must be configured")
}
