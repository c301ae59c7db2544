/*
Package network models an immutable point-in-time view of a transit
network: every active route with its ordered stop sequence and the
vehicles currently tracked on it, each carrying live per-stop arrival
predictions.

# Snapshot semantics

A Snapshot is built once by a provider (GTFS-RT feeds, Postgres static
data, test fixtures) and then only read. The planner receives a single
Snapshot handle per call and never sees a newer one mid-computation;
the refresher publishes replacements with a pointer swap, so no locking
is needed on the read side.

Stop order within a route is the single source of truth for travel
direction: index 0 is the first stop served, index len-1 the last. A
physical stop served by two routes appears as two Stop records, one per
route, because the planner needs the route association on every stop.

# Lookups

The package provides the two topology queries the planner needs:

	near := network.FindNearbyStops(loc, snap, 800, 1.1)
	valid, between := route.CheckDirection("stop_a", "stop_b")

Both are pure functions of the snapshot.
*/
package network
