package pandalhopper

import "net/http"

type healthResponse struct {
	Status            string `json:"status"`
	LocationResolved  bool   `json:"location_resolved"`
	FacilitiesVisible int    `json:"facilities_visible"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := a.orch.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "ok",
		LocationResolved:  snap.User != nil,
		FacilitiesVisible: len(snap.Facilities),
	})
}
