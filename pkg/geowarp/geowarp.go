package geowarp

import (
	"bytes"
	"image"
	"image/png"
	"time"

	"github.com/beetlebugorg/geowarp/internal/warp"
)

// BoundingBox is a geodetic rectangle in degrees, optionally crossing the
// anti-meridian. See the internal/warp documentation for the crossing rules.
type BoundingBox = warp.BoundingBox

// GeoTransform is the six-parameter affine pixel-to-map mapping.
type GeoTransform = warp.GeoTransform

// ProjectionError indicates a malformed spatial reference or invalid warp
// request.
type ProjectionError = warp.ProjectionError

// FormatError indicates an undecodable raster or unsupported band count.
type FormatError = warp.FormatError

// Frame is a pixel-major RGBA raster tied to a geodetic bounding box.
//
// Frames are the currency between pipeline stages: the warped satellite
// image, the cleaned chart overlay, and the final composite are all Frames.
// A Frame owns its image exclusively; stages never mutate a Frame after
// handing it downstream.
type Frame struct {
	Image *image.NRGBA
	Box   BoundingBox

	// Time is the capture or valid time of the underlying data, when known.
	Time time.Time
}

// EncodePNG returns the frame as PNG bytes.
func (f *Frame) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Region describes one output product: a geodetic bounding box rendered at a
// fixed pixel resolution from one satellite, optionally overlaid with one
// chart source.
//
// A Pacific-centered region spans the anti-meridian and must set the
// crossing flag on its box, or the warp is rejected rather than silently
// clipped:
//
//	pacific := geowarp.Region{
//	    Name:      "pacific",
//	    Box:       geowarp.BoundingBox{West: -225, South: 16, East: -115, North: 65, CrossesAntimeridian: true},
//	    Width:     2441,
//	    Height:    1556,
//	    Satellite: "goes-17",
//	    Chart:     "opc-pacific",
//	}
type Region struct {
	// Name identifies the region in logs and error messages.
	Name string `yaml:"name"`

	// Box is the geodetic crop of the output frame.
	Box BoundingBox `yaml:"box"`

	// Width and Height are the output resolution in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Satellite is the imager id, e.g. "goes-17". Must be one of the
	// supported satellites (see Satellites).
	Satellite string `yaml:"satellite"`

	// Chart names the chart source to overlay. Empty selects the source
	// covering Box from the renderer's index; frames without chart bytes
	// render the satellite image alone either way.
	Chart string `yaml:"chart"`
}

// Projection returns the target map projection for the region: a Mercator
// centered on the box, with over-range longitudes permitted when the box
// crosses the anti-meridian.
func (r Region) Projection() warp.Mercator {
	center := r.Box.West + r.Box.Width()/2
	// Keep the reference longitude on a whole degree; fractional values
	// work but make transforms needlessly irreproducible across runs.
	return warp.Mercator{
		Lon0: float64(int(center)),
		Over: r.Box.CrossesAntimeridian,
	}
}
