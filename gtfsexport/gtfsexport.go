// Package gtfsexport turns a decoded ttformat.DecoderOutput into the six
// core GTFS text tables. It uses GTFS entity naming (Key, Coordinate,
// Agency/Stop/Route/Trip) and only writes CSV, since a .tt decode has no
// existing feed to load.
package gtfsexport

import "github.com/umahmood/haversine"

// Key identifies a GTFS entity (agency_id, stop_id, route_id, ...).
type Key string

// Coordinate is a geographical point. Nothing in this module fills in a
// non-zero one: the decoder itself never recovers geometry.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DistanceTo returns the great-circle distance to other, in kilometres.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: c.Latitude, Lon: c.Longitude},
		haversine.Coord{Lat: other.Latitude, Lon: other.Longitude},
	)
	return km
}

// IsZero reports whether c is the unset placeholder (0, 0).
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Category distinguishes the three KOMPLET data roots a .tt file can come
// from; it prefixes synthesized IDs so per-category feeds never collide
// before ttmerge runs.
type Category string

const (
	CategoryRail    Category = "VL"
	CategoryBus     Category = "BUS"
	CategoryTransit Category = "MHD"
)
