package warp

import (
	"fmt"
	"math"
)

// Mercator is an ellipsoidal WGS84 Mercator projection with a configurable
// reference longitude.
//
// The standard (bounded) definition wraps every longitude into ±180° of the
// reference longitude before projecting, which makes geometry spanning the
// anti-meridian fold back on itself. Setting Over permits over-range
// longitudes: input longitudes are taken as-is relative to Lon0, so a
// Pacific-centered working range like -230..-100 (130E across the
// anti-meridian to 100W, with Lon0=-180) projects to a continuous strip.
//
// This mirrors the PROJ "+proj=merc ... +over" definition; the bounded
// EPSG:3395 form refuses exactly this case.
type Mercator struct {
	// Lon0 is the reference (central) longitude in degrees.
	Lon0 float64

	// Over permits longitudes beyond ±180° of Lon0 instead of wrapping,
	// which is required for bounding boxes that cross the anti-meridian.
	Over bool
}

// OverRange reports whether the projection accepts over-range longitudes.
func (m Mercator) OverRange() bool { return m.Over }

// Forward projects geodetic lon/lat (degrees) to Mercator x/y (meters).
//
// Latitudes at or beyond the poles are not representable.
func (m Mercator) Forward(lon, lat float64) (x, y float64, ok bool) {
	if lat <= -90 || lat >= 90 {
		return 0, 0, false
	}
	dlon := lon - m.Lon0
	if !m.Over {
		dlon = wrapLon(dlon)
	}
	e := math.Sqrt(2*wgs84Flattening - wgs84Flattening*wgs84Flattening)
	phi := deg2rad(lat)
	con := e * math.Sin(phi)
	ts := math.Tan(math.Pi/4+phi/2) * math.Pow((1-con)/(1+con), e/2)

	x = wgs84SemiMajor * deg2rad(dlon)
	y = wgs84SemiMajor * math.Log(ts)
	return x, y, true
}

// Inverse unprojects Mercator x/y (meters) to geodetic lon/lat (degrees).
func (m Mercator) Inverse(x, y float64) (lon, lat float64, ok bool) {
	e := math.Sqrt(2*wgs84Flattening - wgs84Flattening*wgs84Flattening)
	t := math.Exp(-y / wgs84SemiMajor)

	// Fixed-point iteration for the geodetic latitude; converges to well
	// below float64 precision in a handful of rounds.
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 8; i++ {
		con := e * math.Sin(phi)
		phi = math.Pi/2 - 2*math.Atan(t*math.Pow((1-con)/(1+con), e/2))
	}

	lon = m.Lon0 + rad2deg(x/wgs84SemiMajor)
	if !m.Over {
		lon = wrapLon(lon)
	}
	return lon, rad2deg(phi), true
}

func (m Mercator) String() string {
	over := ""
	if m.Over {
		over = " +over"
	}
	return fmt.Sprintf("+proj=merc +lon_0=%g +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs%s", m.Lon0, over)
}
