package gtfsrt

import (
	"context"
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// delayedThresholdSeconds marks a prediction as delayed when the feed
// reports at least this much schedule deviation.
const delayedThresholdSeconds = 60

// Provider maps GTFS-RT feeds to per-route vehicle data.
type Provider struct {
	tripUpdatesURL      string
	vehiclePositionsURL string
	client              *Client

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewProvider creates a provider for the two feed URLs. Either URL may
// be empty; the corresponding feed is skipped.
func NewProvider(tripUpdatesURL, vehiclePositionsURL string) *Provider {
	return &Provider{
		tripUpdatesURL:      tripUpdatesURL,
		vehiclePositionsURL: vehiclePositionsURL,
		client:              NewClient(),
		now:                 time.Now,
	}
}

// VehiclesByRoute fetches both feeds and returns the tracked vehicles
// grouped by route id. TripUpdates supply the prediction timelines;
// VehiclePositions supply coordinates and headings. A trip without a
// route id is dropped: the planner pairs stops by route and has no use
// for it.
func (p *Provider) VehiclesByRoute(ctx context.Context) (map[string][]network.Vehicle, error) {
	tu, err := p.client.FetchFeed(ctx, p.tripUpdatesURL)
	if err != nil {
		return nil, fmt.Errorf("trip updates: %w", err)
	}
	vp, err := p.client.FetchFeed(ctx, p.vehiclePositionsURL)
	if err != nil {
		return nil, fmt.Errorf("vehicle positions: %w", err)
	}
	return p.merge(tu, vp), nil
}

func (p *Provider) merge(tu, vp *gtfsrtpb.FeedMessage) map[string][]network.Vehicle {
	nowEpoch := p.now().Unix()

	type tracked struct {
		routeID string
		vehicle network.Vehicle
	}
	byTrip := map[string]*tracked{}
	order := []string{}

	if tu != nil {
		for _, e := range tu.Entity {
			u := e.TripUpdate
			if u == nil || u.Trip == nil || u.Trip.TripId == nil || u.Trip.RouteId == nil {
				continue
			}
			tripID := *u.Trip.TripId
			tr := &tracked{routeID: *u.Trip.RouteId}
			tr.vehicle.ID = tripID
			if u.Vehicle != nil && u.Vehicle.Id != nil {
				tr.vehicle.ID = *u.Vehicle.Id
			}
			for _, stu := range u.StopTimeUpdate {
				if stu.StopId == nil {
					continue
				}
				tr.vehicle.Predictions = append(tr.vehicle.Predictions, predictionFrom(stu, nowEpoch))
			}
			byTrip[tripID] = tr
			order = append(order, tripID)
		}
	}

	if vp != nil {
		for _, e := range vp.Entity {
			v := e.Vehicle
			if v == nil || v.Trip == nil || v.Trip.TripId == nil {
				continue
			}
			tr, ok := byTrip[*v.Trip.TripId]
			if !ok {
				// Position without a trip update: visible on a map but
				// useless for boarding; skipped.
				continue
			}
			if v.Vehicle != nil && v.Vehicle.Id != nil {
				tr.vehicle.ID = *v.Vehicle.Id
			}
			if v.Position != nil {
				if v.Position.Latitude != nil && v.Position.Longitude != nil {
					tr.vehicle.Coord = geo.Coordinate{
						Lat: float64(*v.Position.Latitude),
						Lon: float64(*v.Position.Longitude),
					}
				}
				if v.Position.Bearing != nil {
					tr.vehicle.Heading = float64(*v.Position.Bearing)
				}
			}
		}
	}

	out := map[string][]network.Vehicle{}
	for _, tripID := range order {
		tr := byTrip[tripID]
		out[tr.routeID] = append(out[tr.routeID], tr.vehicle)
	}
	return out
}

func predictionFrom(stu *gtfsrtpb.TripUpdate_StopTimeUpdate, nowEpoch int64) network.Prediction {
	pr := network.Prediction{
		StopID:           *stu.StopId,
		SecondsToArrival: -1, // unusable until proven otherwise
	}
	ev := stu.Arrival
	if ev == nil {
		ev = stu.Departure
	}
	if ev == nil {
		return pr
	}
	if ev.Time != nil {
		secs := *ev.Time - nowEpoch
		if secs >= 0 {
			pr.SecondsToArrival = int(secs)
			pr.PredictedTime = time.Unix(*ev.Time, 0).UTC()
			pr.Countdown = countdownLabel(int(secs))
		}
	}
	if ev.Delay != nil && *ev.Delay >= delayedThresholdSeconds {
		pr.Delayed = true
	}
	return pr
}

func countdownLabel(secs int) string {
	mins := secs / 60
	if mins < 1 {
		return "Due"
	}
	return fmt.Sprintf("%d min", mins)
}
