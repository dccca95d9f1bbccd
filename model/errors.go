package model

import "errors"

// Failure taxonomy for the orchestrator core. Every condition here is
// recoverable at the UI boundary; none is fatal to the process.
var (
	// Geolocation outcomes.
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnsupported      = errors.New("geolocation not supported")
	ErrUnavailable      = errors.New("location unavailable")

	// ErrNotFound means no station within the service area. A normal,
	// user-visible outcome rather than an error state.
	ErrNotFound = errors.New("no station found nearby")

	// ErrNetwork is a transport or HTTP failure on any fetch.
	ErrNetwork = errors.New("network error")

	// ErrPlanningRejected means the optimizer understood the request but
	// could not satisfy it. Surfaced distinctly from ErrNetwork.
	ErrPlanningRejected = errors.New("route planning rejected")

	// ErrInvalidCoordinate flags a non-finite lat/lon before use.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrNoFacilities rejects a planning request with no origin station
	// or an empty facility set; no network call is made.
	ErrNoFacilities = errors.New("no facilities to plan a route for")

	// ErrLocationSet rejects re-resolution: the session coordinate is
	// stored once and read-only thereafter.
	ErrLocationSet = errors.New("location already resolved for this session")

	// ErrZoneUnscoped rejects station selection in the unscoped view.
	ErrZoneUnscoped = errors.New("station selection requires a zone")

	// ErrUnknownStation rejects selection of an id absent from the
	// current zone's station list; no state changes and no fetch runs.
	ErrUnknownStation = errors.New("unknown station id")
)
