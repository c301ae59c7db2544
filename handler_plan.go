package tripplanner

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/theoremus-urban-solutions/transit-trip-planner/geo"
	"github.com/theoremus-urban-solutions/transit-trip-planner/planner"
)

type planResponse struct {
	Result    planner.TripResult `json:"result"`
	Itinerary planner.Itinerary  `json:"itinerary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handlePlan answers GET /api/plan?fromLat&fromLon&toLat&toLon with the
// ranked trip and its assembled itinerary.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	origin, ok := coordParams(r, "fromLat", "fromLon")
	if !ok {
		writeError(w, http.StatusBadRequest, "fromLat and fromLon must be valid coordinates")
		return
	}
	destination, ok := coordParams(r, "toLat", "toLon")
	if !ok {
		writeError(w, http.StatusBadRequest, "toLat and toLon must be valid coordinates")
		return
	}

	snap := s.refresher.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "network snapshot not yet available")
		return
	}

	opts := s.plannerOptions()
	start := time.Now()
	result := planner.PlanTrip(origin, destination, snap, opts)
	if s.metrics != nil {
		s.metrics.PlanObserve(string(result.Recommendation), time.Since(start))
	}

	itinerary := planner.AssembleItinerary(r.Context(), origin, destination, result, s.directions, opts)

	_ = json.NewEncoder(w).Encode(planResponse{Result: result, Itinerary: itinerary})
}

func coordParams(r *http.Request, latKey, lonKey string) (geo.Coordinate, bool) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get(latKey), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get(lonKey), 64)
	if err1 != nil || err2 != nil {
		return geo.Coordinate{}, false
	}
	c := geo.Coordinate{Lat: lat, Lon: lon}
	return c, c.Valid()
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
