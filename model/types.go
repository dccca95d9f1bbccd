package model

import "math"

// Coordinate is a WGS84 point. Both components must be finite; anything
// else is rejected at the boundary that produced it and never forwarded
// to rendering or network calls.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are finite numbers.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// Station is a metro stop. The nearest-station singleton carries ID 0;
// zone-scoped stations carry the backend's id, unique within a zone.
type Station struct {
	ID       int        `json:"id,omitempty"`
	Name     string     `json:"name"`
	Location Coordinate `json:"location"`
}

// Facility is a point of interest (a pandal). Facility lists come in three
// mutually exclusive views: global, zone-scoped, or station-scoped.
type Facility struct {
	Name     string     `json:"name"`
	Location Coordinate `json:"location"`
}

// Stop is a named point inside a RoutePlan.
type Stop struct {
	Name     string     `json:"name"`
	Location Coordinate `json:"location"`
}

// RoutePlan is an ordered stop sequence from the backend optimizer.
// Waypoints arrive pre-ordered; no reordering happens on this side.
type RoutePlan struct {
	Origin      Stop   `json:"origin"`
	Destination Stop   `json:"destination"`
	Waypoints   []Stop `json:"waypoints"`
}

// Stops returns the full visiting order: origin, waypoints, destination.
func (p RoutePlan) Stops() []Stop {
	out := make([]Stop, 0, len(p.Waypoints)+2)
	out = append(out, p.Origin)
	out = append(out, p.Waypoints...)
	out = append(out, p.Destination)
	return out
}

// NoStation marks an empty station selection.
const NoStation = 0

// Selection is the user's current browsing scope. StationID is only
// meaningful when Zone != ZoneAll; selecting ZoneAll clears it.
type Selection struct {
	Zone      Zone `json:"zone"`
	StationID int  `json:"stationId,omitempty"`
}
