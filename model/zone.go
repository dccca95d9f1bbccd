package model

import "fmt"

// Zone is a fixed geographic partition of the festival service area.
// ZoneAll is the sentinel for the unscoped view and has no backend code.
type Zone string

const (
	ZoneAll     Zone = "All"
	ZoneNorth   Zone = "North"
	ZoneSouth   Zone = "South"
	ZoneEast    Zone = "East"
	ZoneCentral Zone = "Central"
	ZoneHowrah  Zone = "Howrah"
)

// zoneCodes is the fixed zone-to-backend-code table shared by all
// zone-scoped requests. ZoneAll is deliberately absent.
var zoneCodes = map[Zone]string{
	ZoneNorth:   "N",
	ZoneSouth:   "S",
	ZoneEast:    "E",
	ZoneCentral: "C",
	ZoneHowrah:  "H",
}

// Zones lists every zone in display order, ZoneAll first.
func Zones() []Zone {
	return []Zone{ZoneAll, ZoneNorth, ZoneSouth, ZoneEast, ZoneCentral, ZoneHowrah}
}

// Code returns the backend zone code. ok is false for ZoneAll, which has
// no code and means "no zone scoping".
func (z Zone) Code() (string, bool) {
	c, ok := zoneCodes[z]
	return c, ok
}

// Known reports whether z is one of the enumerated zones.
func (z Zone) Known() bool {
	if z == ZoneAll {
		return true
	}
	_, ok := zoneCodes[z]
	return ok
}

// ParseZone maps a zone name to its Zone value.
func ParseZone(s string) (Zone, error) {
	z := Zone(s)
	if !z.Known() {
		return "", fmt.Errorf("unknown zone %q", s)
	}
	return z, nil
}
