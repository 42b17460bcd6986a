package warp

import "fmt"

// BoundingBox is a geodetic rectangle in degrees.
//
// West/East are longitudes, South/North latitudes. A box may cross the
// anti-meridian, in which case West > East is valid and CrossesAntimeridian
// must be set; e.g. {West: 150, East: -120, CrossesAntimeridian: true} spans
// 90 degrees from east Asia across the Pacific. Crop corners are always
// geodetic regardless of the working projection, so the same box is reusable
// across differently-centered projections.
type BoundingBox struct {
	West  float64 `yaml:"west"`
	South float64 `yaml:"south"`
	East  float64 `yaml:"east"`
	North float64 `yaml:"north"`

	// CrossesAntimeridian marks a box spanning the ±180° discontinuity.
	// Without it a West > East box is rejected rather than silently
	// clipped.
	CrossesAntimeridian bool `yaml:"crosses_antimeridian"`
}

// Width returns the angular longitude span of the box in degrees.
func (b BoundingBox) Width() float64 {
	w := b.East - b.West
	if b.CrossesAntimeridian {
		for w <= 0 {
			w += 360
		}
	}
	return w
}

// Height returns the latitude span of the box in degrees.
func (b BoundingBox) Height() float64 {
	return b.North - b.South
}

// EastUnwrapped returns the east edge expressed continuously from the west
// edge, possibly beyond ±180°.
func (b BoundingBox) EastUnwrapped() float64 {
	return b.West + b.Width()
}

// Contains reports whether the geodetic point lies inside the box.
func (b BoundingBox) Contains(lon, lat float64) bool {
	if lat < b.South || lat > b.North {
		return false
	}
	d := lon - b.West
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d <= b.Width()
}

// Validate checks the box for internal consistency.
func (b BoundingBox) Validate() error {
	if b.South >= b.North {
		return &ProjectionError{Op: "bounds", Reason: fmt.Sprintf("south (%g) must be below north (%g)", b.South, b.North)}
	}
	if !b.CrossesAntimeridian && b.West >= b.East {
		return &ProjectionError{Op: "bounds", Reason: fmt.Sprintf("west (%g) must be left of east (%g) unless the box crosses the anti-meridian", b.West, b.East)}
	}
	return nil
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", b.West, b.South, b.East, b.North)
}
