package network

import (
	"time"

	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
)

// Stop is a fixed boarding/alighting point on a route. A stop belongs
// to exactly one Route within a snapshot; shared physical locations are
// modeled as separate records per route.
type Stop struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Coord geo.Coordinate `json:"coord"`
}

// Prediction is a vehicle's live arrival estimate for one stop.
// SecondsToArrival < 0 means no usable prediction: such entries must be
// skipped, never treated as "arriving now".
type Prediction struct {
	StopID           string    `json:"stopId"`
	SecondsToArrival int       `json:"secondsToArrival"`
	PredictedTime    time.Time `json:"predictedTime"`
	Countdown        string    `json:"countdown"`
	Delayed          bool      `json:"delayed"`
}

// Usable reports whether the prediction carries a real arrival estimate.
func (p Prediction) Usable() bool { return p.SecondsToArrival >= 0 }

// ArrivalMinutes returns the predicted arrival as fractional minutes.
func (p Prediction) ArrivalMinutes() float64 { return float64(p.SecondsToArrival) / 60 }

// Vehicle is a tracked unit serving a route.
type Vehicle struct {
	ID          string         `json:"id"`
	Coord       geo.Coordinate `json:"coord"`
	Heading     float64        `json:"heading"`
	Predictions []Prediction   `json:"predictions"`
}

// Route is a fixed ordered sequence of stops plus its active vehicles.
// Stops index order is physical travel order.
type Route struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Stops      []Stop    `json:"stops"`
	IsCircular bool      `json:"isCircular"`
	Vehicles   []Vehicle `json:"vehicles"`
}

// Circular reports whether the route loops: either flagged explicitly
// or closed by a terminal stop that duplicates the first.
func (r *Route) Circular() bool {
	if r.IsCircular {
		return true
	}
	n := len(r.Stops)
	return n > 1 && r.Stops[0].ID == r.Stops[n-1].ID
}

// Snapshot is an immutable point-in-time view of the whole network.
type Snapshot struct {
	Routes    []Route   `json:"routes"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// RouteByID returns the route with the given id, or nil.
func (s *Snapshot) RouteByID(id string) *Route {
	for i := range s.Routes {
		if s.Routes[i].ID == id {
			return &s.Routes[i]
		}
	}
	return nil
}

// VehicleCount returns the number of tracked vehicles across all routes.
func (s *Snapshot) VehicleCount() int {
	n := 0
	for i := range s.Routes {
		n += len(s.Routes[i].Vehicles)
	}
	return n
}
