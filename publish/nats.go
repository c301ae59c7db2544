// Package publish fans live vehicle data out to NATS so map frontends
// and other consumers can follow positions without polling the API.
package publish

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// Metrics is the counter surface the publisher reports to.
type Metrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	NATSSetConnected(connected bool)
}

// NATSPublisher publishes one message per tracked vehicle per refresh
// on subject vehicles.<route>.<vehicle>.
type NATSPublisher struct {
	nc      *nats.Conn
	metrics Metrics
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string, m Metrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("transit-trip-planner"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSPublisher{nc: nc, metrics: m}, nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

// VehicleMessage is the wire form of one tracked vehicle.
type VehicleMessage struct {
	RouteID     string    `json:"routeId"`
	VehicleID   string    `json:"vehicleId"`
	Timestamp   time.Time `json:"timestamp"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Heading     float64   `json:"heading"`
	Predictions int       `json:"predictions"`
}

// PublishVehicle satisfies refresh.VehiclePublisher.
func (p *NATSPublisher) PublishVehicle(routeID string, v network.Vehicle, at time.Time) error {
	subject := fmt.Sprintf("vehicles.%s.%s", subjectToken(routeID), subjectToken(v.ID))
	msg := VehicleMessage{
		RouteID:     routeID,
		VehicleID:   v.ID,
		Timestamp:   at,
		Lat:         v.Coord.Lat,
		Lon:         v.Coord.Lon,
		Heading:     v.Heading,
		Predictions: len(v.Predictions),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

// subjectToken sanitizes an id for use as a NATS subject token.
func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
