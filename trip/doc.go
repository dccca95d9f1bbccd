// Package trip is the trip-planning orchestrator: it resolves the user's
// location to a nearest station, owns zone- and station-scoped browsing
// state, coordinates on-demand route planning, and reconciles overlapping
// asynchronous fetches so that only results matching the current selection
// are ever applied.
//
// Every async fetch kind (stations, facilities, route) carries a
// monotonically increasing generation counter. A fetch captures the counter
// when issued and its result is applied only if the counter is unchanged at
// completion time; anything else is discarded. Cancellation is therefore
// "ignore late result": the transport call completes regardless, its effect
// is suppressed. State is guarded by a single mutex and read through
// immutable snapshots.
package trip
