// Package maprender translates orchestrator state into the render
// primitives of an external map surface and marker clicks back into
// selection actions. It never calls network collaborators.
package maprender

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/festival-transit/pandal-hopper/model"
	"github.com/festival-transit/pandal-hopper/trip"
)

// DefaultCenter is the fixed fallback when nothing else can center the
// map: central Kolkata.
var DefaultCenter = model.Coordinate{Lat: 22.5726, Lon: 88.3639}

// Controller is the slice of the orchestrator the adapter needs: state
// snapshots and station selection.
type Controller interface {
	Snapshot() trip.Snapshot
	SelectStation(stationID int) error
}

// Adapter owns the center lock ("focus") and builds views from snapshots.
type Adapter struct {
	ctrl     Controller
	renderer Renderer
	fallback model.Coordinate

	mu    sync.Mutex
	focus *model.Coordinate
}

// NewAdapter creates an adapter. renderer may be nil when views are only
// pulled via BuildView/CurrentView. fallback zero value means DefaultCenter.
func NewAdapter(ctrl Controller, renderer Renderer, fallback model.Coordinate) *Adapter {
	if !fallback.Valid() || (fallback == model.Coordinate{}) {
		fallback = DefaultCenter
	}
	return &Adapter{ctrl: ctrl, renderer: renderer, fallback: fallback}
}

// BuildView is the pure translation from a state snapshot to render
// primitives. Center priority: locked focus, user coordinate, first zone
// station, first facility, fixed fallback.
func (a *Adapter) BuildView(snap trip.Snapshot) View {
	a.mu.Lock()
	focus := a.focus
	a.mu.Unlock()

	view := View{Center: a.fallback}
	switch {
	case focus != nil:
		view.Center = *focus
	case snap.User != nil:
		view.Center = *snap.User
	case len(snap.Stations) > 0:
		view.Center = snap.Stations[0].Location
	case len(snap.Facilities) > 0:
		view.Center = snap.Facilities[0].Location
	}

	if snap.User != nil {
		view.Markers = append(view.Markers, Marker{
			ID:       "user",
			Kind:     MarkerUser,
			Label:    "Your Location",
			Location: *snap.User,
		})
	}
	// The nearest-station pin only shows in the unscoped view; zone
	// browsing replaces it with the zone's own stations.
	if snap.NearestStation != nil && snap.Selection.Zone == model.ZoneAll {
		label := snap.NearestStation.Name
		if snap.User != nil {
			d := model.PresentableDistance(model.DistanceMeters(*snap.User, snap.NearestStation.Location))
			if d != "" {
				label = label + ", " + d
			}
		}
		view.Markers = append(view.Markers, Marker{
			ID:       "nearest",
			Kind:     MarkerNearest,
			Label:    label,
			Location: snap.NearestStation.Location,
		})
	}
	for _, st := range snap.Stations {
		view.Markers = append(view.Markers, Marker{
			ID:       "station:" + strconv.Itoa(st.ID),
			Kind:     MarkerStation,
			Label:    st.Name,
			Location: st.Location,
			Selected: st.ID == snap.Selection.StationID && snap.Selection.StationID != model.NoStation,
		})
	}
	for i, f := range snap.Facilities {
		view.Markers = append(view.Markers, Marker{
			ID:       "facility:" + strconv.Itoa(i),
			Kind:     MarkerFacility,
			Label:    f.Name,
			Location: f.Location,
		})
	}

	view.Path = buildPath(snap)
	return view
}

// buildPath renders the planned route when one exists, else the simple
// user-to-nearest connecting path in the unscoped view.
func buildPath(snap trip.Snapshot) []model.Coordinate {
	if snap.Route != nil {
		stops := snap.Route.Stops()
		path := make([]model.Coordinate, 0, len(stops))
		for _, s := range stops {
			path = append(path, s.Location)
		}
		return path
	}
	if snap.Selection.Zone == model.ZoneAll && snap.User != nil && snap.NearestStation != nil {
		return []model.Coordinate{*snap.User, snap.NearestStation.Location}
	}
	return nil
}

// CurrentView builds a view from the controller's current state.
func (a *Adapter) CurrentView() View {
	return a.BuildView(a.ctrl.Snapshot())
}

// Render pushes the current view to the rendering collaborator.
func (a *Adapter) Render() {
	if a.renderer == nil {
		return
	}
	a.renderer.Render(a.CurrentView())
}

// HandleClick translates a marker click back into orchestrator actions.
// Station clicks select the station and lock the center on it; facility
// clicks lock the center only.
func (a *Adapter) HandleClick(markerID string) error {
	snap := a.ctrl.Snapshot()
	switch {
	case markerID == "user" || markerID == "nearest":
		return nil
	case strings.HasPrefix(markerID, "station:"):
		id, err := strconv.Atoi(strings.TrimPrefix(markerID, "station:"))
		if err != nil {
			return fmt.Errorf("bad marker id %q", markerID)
		}
		st, ok := snap.StationByID(id)
		if !ok {
			return fmt.Errorf("unknown station marker %q", markerID)
		}
		a.Focus(st.Location)
		return a.ctrl.SelectStation(id)
	case strings.HasPrefix(markerID, "facility:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(markerID, "facility:"))
		if err != nil || idx < 0 || idx >= len(snap.Facilities) {
			return fmt.Errorf("unknown facility marker %q", markerID)
		}
		a.Focus(snap.Facilities[idx].Location)
		return nil
	}
	return fmt.Errorf("unknown marker %q", markerID)
}

// Focus locks the map center on coord until Reset.
func (a *Adapter) Focus(coord model.Coordinate) {
	if !coord.Valid() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	c := coord
	a.focus = &c
}

// Reset clears the center lock, returning the center to the user's
// coordinate (or the fallback chain below it).
func (a *Adapter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.focus = nil
}
