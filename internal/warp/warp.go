package warp

import (
	"fmt"
	"math"
)

// overRanger is implemented by projections that can be configured to accept
// longitudes beyond ±180° of their reference longitude.
type overRanger interface {
	OverRange() bool
}

// Warp resamples a georeferenced source grid into a target projection,
// clipped to a geodetic bounding box at the requested pixel resolution.
//
// The warp is an inverse mapping: for every output pixel the target
// projection is inverted to geodetic coordinates, those are projected through
// the source spatial reference, and the source grid is sampled bilinearly at
// the resulting fractional pixel position. Output pixels whose ground point
// is not visible in the source (behind the limb of a geostationary view, or
// outside the source grid) are left zero.
//
// When the bounding box crosses the anti-meridian the target projection must
// permit over-range longitudes (see Mercator.Over); a bounded projection
// would fold the far side of the box back across the globe, so the request is
// rejected instead of producing a silently clipped frame.
//
// The whole operation runs on in-memory buffers; nothing touches the
// filesystem.
func Warp(src *Grid, dst Projection, box BoundingBox, width, height int) (*Grid, error) {
	if src == nil || src.Ref == nil {
		return nil, &ProjectionError{Op: "warp", Reason: "source raster has no spatial reference"}
	}
	if width <= 0 || height <= 0 {
		return nil, &ProjectionError{Op: "warp", Reason: fmt.Sprintf("non-positive output resolution %dx%d", width, height)}
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if box.CrossesAntimeridian {
		or, ok := dst.(overRanger)
		if !ok || !or.OverRange() {
			return nil, &ProjectionError{
				Op:     "warp",
				Reason: fmt.Sprintf("bounding box %s crosses the anti-meridian but target projection %q is bounded; an over-range projection is required", box, dst),
			}
		}
	}

	// Projected extent of the crop box. Corners are geodetic; the east edge
	// is unwrapped so a crossing box projects to a continuous strip.
	xw, yn, ok1 := dst.Forward(box.West, box.North)
	xe, ys, ok2 := dst.Forward(box.EastUnwrapped(), box.South)
	if !ok1 || !ok2 {
		return nil, &ProjectionError{Op: "warp", Reason: fmt.Sprintf("bounding box %s is not representable in target projection %q", box, dst)}
	}

	out := NewGrid(width, height, src.Bands)
	out.Ref = dst
	out.Transform = GeoTransform{
		OriginX: xw,
		ScaleX:  (xe - xw) / float64(width),
		OriginY: yn,
		ScaleY:  (ys - yn) / float64(height),
	}

	// Pixel-center sample coordinates, precomputed per axis.
	xs := make([]float64, width)
	for col := range xs {
		xs[col] = xw + (float64(col)+0.5)*out.Transform.ScaleX
	}
	rowY := make([]float64, height)
	for row := range rowY {
		rowY[row] = yn + (float64(row)+0.5)*out.Transform.ScaleY
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			lon, lat, ok := dst.Inverse(xs[col], rowY[row])
			if !ok {
				continue
			}
			sx, sy, ok := src.Ref.Forward(lon, lat)
			if !ok {
				continue
			}
			scol, srow := src.Transform.MapToPixel(sx, sy)
			for band := 0; band < src.Bands; band++ {
				v, ok := src.Bilinear(band, scol-0.5, srow-0.5)
				if !ok {
					break
				}
				out.Set(band, row, col, uint8(math.Round(v)))
			}
		}
	}
	return out, nil
}
