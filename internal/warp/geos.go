package warp

import (
	"fmt"
	"math"
)

// Geostationary is the fixed-grid projection of a geostationary weather
// satellite (PROJ "geos").
//
// Projected coordinates are scan angles multiplied by the satellite height,
// so the full earth disk spans roughly ±5.43e6 meters for the GOES-R series.
// The ellipsoid is part of the projection because the imager's view geometry
// is computed against it; GOES ground systems publish the exact values in the
// Product User Guide.
//
// Points behind the limb of the earth (not visible from the satellite) are
// not representable; Forward reports ok=false for them and Inverse reports
// ok=false for coordinates off the earth disk.
type Geostationary struct {
	// Lon0 is the sub-satellite (reference) longitude in degrees.
	Lon0 float64

	// Height is the satellite height above the ellipsoid in meters.
	Height float64

	// SemiMajor and SemiMinor are the ellipsoid axes in meters.
	SemiMajor float64
	SemiMinor float64

	// SweepX selects the scan geometry. GOES imagers sweep along the x
	// axis; Meteosat sweeps along y.
	SweepX bool
}

// Forward projects geodetic lon/lat (degrees) to scan coordinates (meters).
func (g Geostationary) Forward(lon, lat float64) (x, y float64, ok bool) {
	radiusP := g.SemiMinor / g.SemiMajor
	radiusP2 := radiusP * radiusP
	radiusG1 := g.Height / g.SemiMajor
	radiusG := 1 + radiusG1

	lam := deg2rad(wrapLon(lon - g.Lon0))
	// Geodetic to geocentric latitude on the satellite's ellipsoid.
	phi := math.Atan(radiusP2 * math.Tan(deg2rad(lat)))

	// Unit vector from earth center to the ground point, normalized by the
	// semi-major axis.
	r := radiusP / math.Hypot(radiusP*math.Cos(phi), math.Sin(phi))
	vx := r * math.Cos(lam) * math.Cos(phi)
	vy := r * math.Sin(lam) * math.Cos(phi)
	vz := r * math.Sin(phi)

	// Visibility check: the point must be on the satellite-facing side of
	// the ellipsoid.
	if (radiusG-vx)*vx-vy*vy-vz*vz/radiusP2 < 0 {
		return 0, 0, false
	}

	tmp := radiusG - vx
	if g.SweepX {
		x = radiusG1 * math.Atan(vy/math.Hypot(vz, tmp))
		y = radiusG1 * math.Atan(vz/tmp)
	} else {
		x = radiusG1 * math.Atan(vy/tmp)
		y = radiusG1 * math.Atan(vz/math.Hypot(vy, tmp))
	}
	return x * g.SemiMajor, y * g.SemiMajor, true
}

// Inverse unprojects scan coordinates (meters) to geodetic lon/lat (degrees).
func (g Geostationary) Inverse(x, y float64) (lon, lat float64, ok bool) {
	radiusP := g.SemiMinor / g.SemiMajor
	radiusP2 := radiusP * radiusP
	radiusG1 := g.Height / g.SemiMajor
	radiusG := 1 + radiusG1
	c := radiusG*radiusG - 1

	xs := x / g.SemiMajor
	ys := y / g.SemiMajor

	// View vector from the satellite toward the scan angle.
	var vy, vz float64
	if g.SweepX {
		vz = math.Tan(ys / radiusG1)
		vy = math.Tan(xs/radiusG1) * math.Hypot(1, vz)
	} else {
		vy = math.Tan(xs / radiusG1)
		vz = math.Tan(ys/radiusG1) * math.Hypot(1, vy)
	}
	vx := -1.0

	// Intersect the view ray with the ellipsoid.
	qa := vz / radiusP
	qa = vy*vy + qa*qa + vx*vx
	qb := 2 * radiusG * vx
	det := qb*qb - 4*qa*c
	if det < 0 {
		return 0, 0, false
	}
	k := (-qb - math.Sqrt(det)) / (2 * qa)

	vx = radiusG + k*vx
	vy *= k
	vz *= k

	lon = wrapLon(rad2deg(math.Atan2(vy, vx)) + g.Lon0)
	lat = rad2deg(math.Atan(vz / (radiusP2 * math.Hypot(vx, vy))))
	return lon, lat, true
}

func (g Geostationary) String() string {
	sweep := "y"
	if g.SweepX {
		sweep = "x"
	}
	return fmt.Sprintf("+proj=geos +h=%.0f +a=%.0f +b=%.1f +lon_0=%g +sweep=%s +units=m +no_defs",
		g.Height, g.SemiMajor, g.SemiMinor, g.Lon0, sweep)
}
