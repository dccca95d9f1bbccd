package maprender

import "github.com/festival-transit/pandal-hopper/model"

// MarkerKind selects the icon family for a marker.
type MarkerKind string

const (
	MarkerUser     MarkerKind = "user"
	MarkerNearest  MarkerKind = "nearest"
	MarkerStation  MarkerKind = "station"
	MarkerFacility MarkerKind = "facility"
)

// Marker is one labeled map pin. Selected picks the highlighted icon
// variant (the enlarged yellow pin).
type Marker struct {
	ID       string           `json:"id"`
	Kind     MarkerKind       `json:"kind"`
	Label    string           `json:"label"`
	Location model.Coordinate `json:"location"`
	Selected bool             `json:"selected,omitempty"`
}

// View is the full set of render primitives the external map surface
// consumes: a center point, markers, and an optional path overlay.
type View struct {
	Center  model.Coordinate   `json:"center"`
	Markers []Marker           `json:"markers"`
	Path    []model.Coordinate `json:"path,omitempty"`
}

// Renderer is the capability interface of the external mapping SDK.
// Any conforming adapter can be substituted, including test fakes.
type Renderer interface {
	Render(view View)
}
