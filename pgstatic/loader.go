package pgstatic

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// Loader reads the static network from Postgres.
type Loader struct {
	db *sql.DB
}

// Open connects to the database behind the DSN and returns a Loader.
func Open(dsn string) (*Loader, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Loader{db: db}, nil
}

// NewLoader wraps an existing handle (tests, shared pools).
func NewLoader(db *sql.DB) *Loader { return &Loader{db: db} }

// Close releases the underlying connection pool.
func (l *Loader) Close() error { return l.db.Close() }

// Ping verifies connectivity with a short timeout.
func (l *Loader) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return l.db.PingContext(ctx)
}

// Routes loads every route with its ordered stop sequence. A failure
// loading one route's stops skips that route and keeps the rest; the
// caller gets a partial network rather than nothing.
func (l *Loader) Routes(ctx context.Context) ([]network.Route, error) {
	const q = `SELECT route_id, COALESCE(route_name, ''), COALESCE(route_color, ''), COALESCE(is_circular, false)
	           FROM routes ORDER BY route_id`
	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var routes []network.Route
	for rows.Next() {
		var r network.Route
		if err := rows.Scan(&r.ID, &r.Name, &r.Color, &r.IsCircular); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := routes[:0]
	for _, r := range routes {
		stops, err := l.routeStops(ctx, r.ID)
		if err != nil {
			log.Printf("pgstatic: skipping route %s: %v", r.ID, err)
			continue
		}
		r.Stops = stops
		out = append(out, r)
	}
	return out, nil
}

func (l *Loader) routeStops(ctx context.Context, routeID string) ([]network.Stop, error) {
	const q = `SELECT stop_id, COALESCE(stop_name, ''), stop_lat, stop_lon
	           FROM route_stops WHERE route_id = $1 ORDER BY stop_sequence`
	rows, err := l.db.QueryContext(ctx, q, routeID)
	if err != nil {
		return nil, fmt.Errorf("query route_stops: %w", err)
	}
	defer rows.Close()

	var stops []network.Stop
	for rows.Next() {
		var s network.Stop
		var lat, lon float64
		if err := rows.Scan(&s.ID, &s.Name, &lat, &lon); err != nil {
			return nil, err
		}
		s.Coord = geo.Coordinate{Lat: lat, Lon: lon}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}
