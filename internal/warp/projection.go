package warp

import (
	"math"
)

// WGS84 ellipsoid parameters, used by the Mercator target projection.
const (
	wgs84SemiMajor  = 6378137.0
	wgs84Flattening = 1.0 / 298.257223563
)

// Projection maps between geodetic coordinates and projected map coordinates.
//
// Geodetic coordinates are longitude/latitude in degrees on the projection's
// datum. Projected coordinates are in meters. Implementations must be
// immutable value types safe for concurrent use.
type Projection interface {
	// Forward projects geodetic lon/lat (degrees) to projected x/y (meters).
	//
	// ok is false when the location cannot be represented in this
	// projection, e.g. a point behind the limb of a geostationary view.
	Forward(lon, lat float64) (x, y float64, ok bool)

	// Inverse unprojects x/y (meters) back to geodetic lon/lat (degrees).
	//
	// ok is false when the coordinates fall outside the projection's valid
	// area, e.g. off the earth disk of a geostationary view.
	Inverse(x, y float64) (lon, lat float64, ok bool)

	// String returns a PROJ-style description of the projection.
	String() string
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// wrapLon normalizes a longitude into [-180, 180).
func wrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
