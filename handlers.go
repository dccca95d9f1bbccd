package pandalhopper

import (
	"encoding/json"
	"net/http"

	"github.com/festival-transit/pandal-hopper/model"
)

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.orch.Snapshot())
}

func (a *App) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.adapter.CurrentView())
}

func (a *App) handleZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Zones())
}

func (a *App) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := a.orch.SetLocation(model.Coordinate{Lat: body.Lat, Lon: body.Lon}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, a.orch.Snapshot())
}

func (a *App) handleRetryNearest(w http.ResponseWriter, r *http.Request) {
	if err := a.orch.RetryNearest(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, a.orch.Snapshot())
}

func (a *App) handleSelectZone(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Zone string `json:"zone"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	zone, err := model.ParseZone(body.Zone)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.orch.SelectZone(zone); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, a.orch.Snapshot())
}

func (a *App) handleSelectStation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StationID int `json:"stationId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := a.orch.SelectStation(body.StationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, a.orch.Snapshot())
}

func (a *App) handlePlanRoute(w http.ResponseWriter, r *http.Request) {
	if err := a.orch.PlanRoute(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, a.orch.Snapshot())
}

func (a *App) handleClearRoute(w http.ResponseWriter, r *http.Request) {
	a.orch.ClearRoute()
	writeJSON(w, http.StatusOK, a.orch.Snapshot())
}

func (a *App) handleMapClick(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MarkerID string `json:"markerId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := a.adapter.HandleClick(body.MarkerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.adapter.CurrentView())
}

func (a *App) handleMapReset(w http.ResponseWriter, r *http.Request) {
	a.adapter.Reset()
	writeJSON(w, http.StatusOK, a.adapter.CurrentView())
}
