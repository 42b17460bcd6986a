package geowarp

import (
	"image"
	"sort"
	"strings"

	"github.com/beetlebugorg/geowarp/internal/warp"
)

// Satellite describes one supported geostationary imager: its fixed-grid
// projection and the affine transform of its full-disk product.
//
// The values come from the GOES-R Product User Guide Volume 3 (L1b). Note
// the GeoTransform signs: the origin sits at the north-west corner in scan
// coordinates and both per-pixel scale signs run against naive row/column
// ordering (x grows east across columns, y shrinks north-to-south down
// rows). The published constants encode this and are used verbatim; pixel
// alignment of the warp depends on them.
type Satellite struct {
	// ID is the canonical identifier, e.g. "goes-17".
	ID string

	// Projection is the satellite's fixed-grid spatial reference.
	Projection warp.Geostationary

	// Transform georeferences the native full-disk raster.
	Transform warp.GeoTransform

	// GridSize is the native full-disk raster width/height in pixels at
	// the resolution Transform describes (2 km for the table below).
	GridSize int
}

// GOES-R series fixed-grid constants (PUG-L1b-vol3, pages 11-20).
const (
	goesHeight    = 35785831.0
	goesSemiMajor = 6378169.0
	goesSemiMinor = 6356583.8

	// 2 km resolution full disk: 5424x5424 pixels, just over 2 km ground
	// sampling distance at nadir.
	goesGridSize = 5424
	goesGSD      = 2004.0173154875411
	goesOriginXY = 5434894.7009821739
)

func goesSatellite(id string, lon0 float64) Satellite {
	return Satellite{
		ID: id,
		Projection: warp.Geostationary{
			Lon0:      lon0,
			Height:    goesHeight,
			SemiMajor: goesSemiMajor,
			SemiMinor: goesSemiMinor,
			SweepX:    true,
		},
		Transform: warp.GeoTransform{
			OriginX: -goesOriginXY,
			ScaleX:  goesGSD,
			OriginY: goesOriginXY,
			ScaleY:  -goesGSD,
		},
		GridSize: goesGridSize,
	}
}

// satellites is the immutable per-satellite projection table. Built once at
// init, read-only afterwards; adding a satellite means adding an entry, not
// a conditional.
//
// The ground systems renormalize L1b data onto the nominal station longitude
// (GOES-17 flies at 137.2W but its grid is centered on 137.0W), which is
// what makes warps pixel-perfect against the published constants.
var satellites = map[string]Satellite{
	"goes-16": goesSatellite("goes-16", -75.0),
	"goes-17": goesSatellite("goes-17", -137.0),
	"goes-18": goesSatellite("goes-18", -137.0),
}

// Satellites returns the supported satellite identifiers, sorted.
func Satellites() []string {
	ids := make([]string, 0, len(satellites))
	for id := range satellites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LookupSatellite returns the projection table entry for a satellite id.
//
// Returns a ConfigurationError for identifiers not in the table.
func LookupSatellite(id string) (Satellite, error) {
	sat, ok := satellites[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Satellite{}, &ConfigurationError{Kind: "satellite", Name: id}
	}
	return sat, nil
}

// Georeference attaches a satellite's spatial reference and affine transform
// to a decoded raster. No resampling is performed; the only side effect is
// metadata attachment.
//
// Rasters at other resolutions than the native grid (tile composites are
// commonly assembled at half resolution) get the per-pixel scale adjusted
// proportionally, keeping the same ground extent.
func Georeference(img image.Image, satelliteID string) (*warp.Grid, error) {
	sat, err := LookupSatellite(satelliteID)
	if err != nil {
		return nil, err
	}

	grid := warp.FromImage(img)
	grid.Ref = sat.Projection
	grid.Transform = sat.Transform
	if grid.Width != sat.GridSize {
		grid.Transform.ScaleX *= float64(sat.GridSize) / float64(grid.Width)
	}
	if grid.Height != sat.GridSize {
		grid.Transform.ScaleY *= float64(sat.GridSize) / float64(grid.Height)
	}
	return grid, nil
}
