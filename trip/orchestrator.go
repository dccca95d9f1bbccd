package trip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/festival-transit/pandal-hopper/locate"
	"github.com/festival-transit/pandal-hopper/model"
)

// Backend is the collaborator contract the orchestrator plans against.
// *backend.Client satisfies it; tests substitute fakes.
type Backend interface {
	NearestStation(ctx context.Context, coord model.Coordinate) (model.Station, error)
	AllFacilities(ctx context.Context) ([]model.Facility, error)
	FacilitiesByZone(ctx context.Context, zone model.Zone) ([]model.Facility, error)
	StationsByZone(ctx context.Context, zone model.Zone) ([]model.Station, error)
	FacilitiesByStation(ctx context.Context, zone model.Zone, stationID int) ([]model.Facility, error)
	PlanRoute(ctx context.Context, origin model.Station, facilities []model.Facility) (model.RoutePlan, error)
}

// Orchestrator owns Selection, Stations, Facilities and RoutePlan, and
// mutates them only through its public operations. Async fetch results
// re-enter the mutex and apply only under a matching generation.
type Orchestrator struct {
	api Backend
	loc locate.Source

	// Background context for async fetches. Late results are suppressed
	// by generation checks, never cancelled mid-flight.
	ctx context.Context

	mu sync.Mutex
	wg sync.WaitGroup

	user           *model.Coordinate
	nearest        *model.Station
	nearestMissing bool
	nearestErr     error
	nearestPending bool

	sel        model.Selection
	stations   []model.Station
	facilities []model.Facility
	route      *model.RoutePlan
	routeErr   error

	stationsGen   uint64
	facilitiesGen uint64
	routeGen      uint64

	stationsPending   bool
	facilitiesPending bool
	routePending      bool
}

// New creates an orchestrator in the unscoped initial state
// (zone All, no station selected). loc may be nil when coordinates are
// pushed in via SetLocation instead of resolved.
func New(api Backend, loc locate.Source) *Orchestrator {
	return &Orchestrator{
		api: api,
		loc: loc,
		ctx: context.Background(),
		sel: model.Selection{Zone: model.ZoneAll},
	}
}

// Start issues the initial global facility fetch for the unscoped view.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	o.facilitiesGen++
	o.facilitiesPending = true
	gen := o.facilitiesGen
	o.mu.Unlock()
	o.fetchFacilities(gen, "global", func(ctx context.Context) ([]model.Facility, error) {
		return o.api.AllFacilities(ctx)
	})
}

// ResolveLocation obtains the session coordinate from the configured
// source and stores it. Geolocation failures pass through with their
// distinct conditions (permission denied, unsupported, unavailable).
func (o *Orchestrator) ResolveLocation(ctx context.Context) error {
	if o.loc == nil {
		return model.ErrUnsupported
	}
	coord, err := o.loc.Resolve(ctx)
	if err != nil {
		return err
	}
	return o.SetLocation(coord)
}

// SetLocation stores the session coordinate and triggers the one
// nearest-station lookup. The coordinate is read-only once set; a second
// call fails with ErrLocationSet.
func (o *Orchestrator) SetLocation(coord model.Coordinate) error {
	if !coord.Valid() {
		return model.ErrInvalidCoordinate
	}
	o.mu.Lock()
	if o.user != nil {
		o.mu.Unlock()
		return model.ErrLocationSet
	}
	c := coord
	o.user = &c
	o.nearestPending = true
	o.mu.Unlock()

	o.fetchNearest(coord)
	return nil
}

// RetryNearest re-issues a failed nearest-station lookup. It is the
// manual retry for a NetworkError; nothing retries automatically.
func (o *Orchestrator) RetryNearest() error {
	o.mu.Lock()
	if o.user == nil {
		o.mu.Unlock()
		return model.ErrUnavailable
	}
	if o.nearestPending || o.nearest != nil {
		o.mu.Unlock()
		return nil
	}
	coord := *o.user
	o.nearestErr = nil
	o.nearestPending = true
	o.mu.Unlock()

	o.fetchNearest(coord)
	return nil
}

func (o *Orchestrator) fetchNearest(coord model.Coordinate) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		st, err := o.api.NearestStation(o.ctx, coord)

		o.mu.Lock()
		defer o.mu.Unlock()
		o.nearestPending = false
		switch {
		case err == nil:
			o.nearest = &st
			o.nearestErr = nil
			o.nearestMissing = false
		case errors.Is(err, model.ErrNotFound):
			// A valid empty result. The zone selection is kept as is.
			o.nearestMissing = true
			o.nearestErr = nil
			log.Printf("no station within service area for (%.4f, %.4f)", coord.Lat, coord.Lon)
		default:
			o.nearestErr = err
			log.Printf("nearest station lookup failed: %v", err)
		}
	}()
}

// SelectZone switches the browsing scope. It clears the station selection
// and any route plan, supersedes in-flight station/facility fetches for
// the previous zone, and issues the new zone's fetches concurrently.
func (o *Orchestrator) SelectZone(zone model.Zone) error {
	if !zone.Known() {
		return fmt.Errorf("unknown zone %q", zone)
	}
	o.mu.Lock()
	o.sel = model.Selection{Zone: zone}
	o.clearRouteLocked()

	o.stationsGen++
	o.facilitiesGen++
	stationsGen := o.stationsGen
	facilitiesGen := o.facilitiesGen

	if zone == model.ZoneAll {
		o.stations = nil
		o.stationsPending = false
		o.facilitiesPending = true
		o.mu.Unlock()

		o.fetchFacilities(facilitiesGen, "global", func(ctx context.Context) ([]model.Facility, error) {
			return o.api.AllFacilities(ctx)
		})
		return nil
	}

	o.stationsPending = true
	o.facilitiesPending = true
	o.mu.Unlock()

	o.fetchStations(stationsGen, zone)
	o.fetchFacilities(facilitiesGen, string(zone), func(ctx context.Context) ([]model.Facility, error) {
		return o.api.FacilitiesByZone(ctx, zone)
	})
	return nil
}

// SelectStation narrows the facility list to one station's associated
// facilities. A no-op in the unscoped view or for an id outside the
// current station list: no state change, no fetch.
func (o *Orchestrator) SelectStation(stationID int) error {
	o.mu.Lock()
	if o.sel.Zone == model.ZoneAll {
		o.mu.Unlock()
		return model.ErrZoneUnscoped
	}
	known := false
	for _, st := range o.stations {
		if st.ID == stationID {
			known = true
			break
		}
	}
	if !known {
		o.mu.Unlock()
		return fmt.Errorf("%w: %d", model.ErrUnknownStation, stationID)
	}
	zone := o.sel.Zone
	o.sel.StationID = stationID
	o.clearRouteLocked()

	o.facilitiesGen++
	gen := o.facilitiesGen
	o.facilitiesPending = true
	o.mu.Unlock()

	o.fetchFacilities(gen, fmt.Sprintf("station %d", stationID), func(ctx context.Context) ([]model.Facility, error) {
		return o.api.FacilitiesByStation(ctx, zone, stationID)
	})
	return nil
}

// PlanRoute bundles the origin station and the currently visible facility
// set into one optimization request. A second call before the first
// resolves supersedes it: at most one route plan is ever visible. The
// origin is the selected zone station, or the nearest station in the
// unscoped view.
func (o *Orchestrator) PlanRoute() error {
	o.mu.Lock()
	origin, ok := o.originLocked()
	if !ok || len(o.facilities) == 0 {
		o.mu.Unlock()
		return model.ErrNoFacilities
	}
	facilities := append([]model.Facility(nil), o.facilities...)

	o.routeGen++
	gen := o.routeGen
	o.routePending = true
	o.routeErr = nil
	o.mu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		plan, err := o.api.PlanRoute(o.ctx, origin, facilities)

		o.mu.Lock()
		defer o.mu.Unlock()
		if gen != o.routeGen {
			log.Printf("discarding superseded route result (gen %d, current %d)", gen, o.routeGen)
			return
		}
		o.routePending = false
		if err != nil {
			o.route = nil
			o.routeErr = err
			log.Printf("route planning failed: %v", err)
			return
		}
		o.route = &plan
	}()
	return nil
}

// ClearRoute drops the visible route plan and invalidates any in-flight
// planning request.
func (o *Orchestrator) ClearRoute() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clearRouteLocked()
}

// clearRouteLocked proactively clears the rendered plan and bumps the
// route generation so an in-flight request is stale on arrival.
func (o *Orchestrator) clearRouteLocked() {
	o.route = nil
	o.routeErr = nil
	o.routeGen++
	o.routePending = false
}

func (o *Orchestrator) originLocked() (model.Station, bool) {
	if o.sel.Zone != model.ZoneAll && o.sel.StationID != model.NoStation {
		for _, st := range o.stations {
			if st.ID == o.sel.StationID {
				return st, true
			}
		}
		return model.Station{}, false
	}
	if o.nearest != nil {
		return *o.nearest, true
	}
	return model.Station{}, false
}

func (o *Orchestrator) fetchStations(gen uint64, zone model.Zone) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		list, err := o.api.StationsByZone(o.ctx, zone)
		if err != nil {
			// Degrade to an empty list; never propagate.
			log.Printf("stations fetch for zone %s failed: %v", zone, err)
			list = nil
		}

		o.mu.Lock()
		defer o.mu.Unlock()
		if gen != o.stationsGen {
			log.Printf("discarding stale stations result for zone %s (gen %d, current %d)", zone, gen, o.stationsGen)
			return
		}
		o.stations = list
		o.stationsPending = false
	}()
}

func (o *Orchestrator) fetchFacilities(gen uint64, scope string, fetch func(context.Context) ([]model.Facility, error)) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		list, err := fetch(o.ctx)
		if err != nil {
			log.Printf("facilities fetch (%s) failed: %v", scope, err)
			list = nil
		}

		o.mu.Lock()
		defer o.mu.Unlock()
		if gen != o.facilitiesGen {
			log.Printf("discarding stale facilities result (%s, gen %d, current %d)", scope, gen, o.facilitiesGen)
			return
		}
		o.facilities = list
		o.facilitiesPending = false
	}()
}

// WaitIdle blocks until no fetch is in flight. Results are still
// generation-filtered; this only asserts quiescence.
func (o *Orchestrator) WaitIdle() {
	o.wg.Wait()
}
