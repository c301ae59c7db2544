package network

import (
	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
)

// NearbyStop is a stop within walking range of a query location,
// annotated with its owning route and the walk to reach it. Derived
// per query, never persisted.
type NearbyStop struct {
	Stop            Stop    `json:"stop"`
	RouteID         string  `json:"routeId"`
	WalkDistanceM   float64 `json:"walkDistanceMeters"`
	WalkTimeMinutes float64 `json:"walkTimeMinutes"`
}

// FindNearbyStops returns every stop on every route within radiusMeters
// of loc. A location served by two routes yields two entries, one per
// route; the caller needs the route association for pairing. Routes
// with no stops contribute nothing. Output order is unspecified.
func FindNearbyStops(loc geo.Coordinate, snap *Snapshot, radiusMeters, walkSpeedMPS float64) []NearbyStop {
	if snap == nil {
		return nil
	}
	var out []NearbyStop
	for ri := range snap.Routes {
		route := &snap.Routes[ri]
		for si := range route.Stops {
			stop := route.Stops[si]
			d := geo.DistanceMeters(loc, stop.Coord)
			if d <= radiusMeters {
				out = append(out, NearbyStop{
					Stop:            stop,
					RouteID:         route.ID,
					WalkDistanceM:   d,
					WalkTimeMinutes: geo.WalkTimeMinutes(d, walkSpeedMPS),
				})
			}
		}
	}
	return out
}
