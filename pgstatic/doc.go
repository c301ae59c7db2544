// Package pgstatic loads the static network topology (routes and their
// ordered stop sequences) from Postgres. It is the static counterpart
// to the gtfsrt live provider: topology changes rarely and lives in a
// database, vehicles change every few seconds and come from feeds.
//
// Expected schema:
//
//	routes(route_id text primary key, route_name text,
//	       route_color text, is_circular boolean)
//	route_stops(route_id text, stop_id text, stop_name text,
//	            stop_lat double precision, stop_lon double precision,
//	            stop_sequence int)
//
// Stop rows are ordered by stop_sequence; that order is the travel
// order the planner's direction check relies on.
package pgstatic
