package tripplanner

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status          string `json:"status"`
	SnapshotEpoch   int64  `json:"snapshot_epoch"`
	RoutesTracked   int    `json:"routes_tracked"`
	VehiclesTracked int    `json:"vehicles_tracked"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{Status: "ok"}
	if snap := s.refresher.Snapshot(); snap != nil {
		resp.SnapshotEpoch = snap.FetchedAt.Unix()
		resp.RoutesTracked = len(snap.Routes)
		resp.VehiclesTracked = snap.VehicleCount()
	} else {
		resp.Status = "starting"
	}
	_ = json.NewEncoder(w).Encode(resp)
}
