package refresh

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theoremus-urban-solutions/transit-trip-planner/network"
)

// LoadTopologyFile reads a JSON array of routes from disk. Small
// deployments ship their network as a checked-in file instead of a
// database.
func LoadTopologyFile(path string) (StaticTopology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var routes []network.Route
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("parse topology file %s: %w", path, err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("topology file %s contains no routes", path)
	}
	// Vehicles always come from the live source.
	for i := range routes {
		routes[i].Vehicles = nil
	}
	return StaticTopology(routes), nil
}
