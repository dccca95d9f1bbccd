package trip

import "github.com/festival-transit/pandal-hopper/model"

// Snapshot is an immutable copy of the orchestrator state. The map
// adapter and the HTTP surface read state exclusively through snapshots;
// mutation happens only through the orchestrator's operations.
type Snapshot struct {
	User           *model.Coordinate `json:"user,omitempty"`
	NearestStation *model.Station    `json:"nearestStation,omitempty"`
	// NearestMissing records a NotFound nearest-station outcome: an
	// informational state, not a failure.
	NearestMissing bool   `json:"nearestMissing,omitempty"`
	NearestError   string `json:"nearestError,omitempty"`

	Selection  model.Selection  `json:"selection"`
	Stations   []model.Station  `json:"stations"`
	Facilities []model.Facility `json:"facilities"`

	Route      *model.RoutePlan `json:"route,omitempty"`
	RouteError string           `json:"routeError,omitempty"`

	StationsLoading   bool `json:"stationsLoading,omitempty"`
	FacilitiesLoading bool `json:"facilitiesLoading,omitempty"`
	RouteLoading      bool `json:"routeLoading,omitempty"`
}

// StationByID looks a zone station up in the snapshot.
func (s Snapshot) StationByID(id int) (model.Station, bool) {
	for _, st := range s.Stations {
		if st.ID == id {
			return st, true
		}
	}
	return model.Station{}, false
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	snap := Snapshot{
		NearestMissing:    o.nearestMissing,
		Selection:         o.sel,
		Stations:          append([]model.Station(nil), o.stations...),
		Facilities:        append([]model.Facility(nil), o.facilities...),
		StationsLoading:   o.stationsPending,
		FacilitiesLoading: o.facilitiesPending,
		RouteLoading:      o.routePending,
	}
	if o.user != nil {
		u := *o.user
		snap.User = &u
	}
	if o.nearest != nil {
		n := *o.nearest
		snap.NearestStation = &n
	}
	if o.nearestErr != nil {
		snap.NearestError = o.nearestErr.Error()
	}
	if o.route != nil {
		r := *o.route
		r.Waypoints = append([]model.Stop(nil), o.route.Waypoints...)
		snap.Route = &r
	}
	if o.routeErr != nil {
		snap.RouteError = o.routeErr.Error()
	}
	return snap
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}
