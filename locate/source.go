// Package locate abstracts how the user's coordinates are obtained at
// session start. A platform without any way to produce a location reports
// ErrUnsupported, distinct from a user-denied ErrPermissionDenied.
package locate

import (
	"context"

	"github.com/festival-transit/pandal-hopper/model"
)

// Source produces the user's current coordinates once per session start.
type Source interface {
	Resolve(ctx context.Context) (model.Coordinate, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (model.Coordinate, error)

func (f SourceFunc) Resolve(ctx context.Context) (model.Coordinate, error) {
	return f(ctx)
}

// StaticSource serves a fixed coordinate, typically pinned in config for
// kiosk deployments and tests.
type StaticSource struct {
	Coord model.Coordinate
}

func (s StaticSource) Resolve(ctx context.Context) (model.Coordinate, error) {
	if !s.Coord.Valid() {
		return model.Coordinate{}, model.ErrInvalidCoordinate
	}
	return s.Coord, nil
}

// Unsupported is the source for platforms with no geolocation capability.
type Unsupported struct{}

func (Unsupported) Resolve(ctx context.Context) (model.Coordinate, error) {
	return model.Coordinate{}, model.ErrUnsupported
}
