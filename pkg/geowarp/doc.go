// Package geowarp reprojects geostationary satellite imagery and composites
// NOAA surface-analysis charts over it, producing frames for time-lapse
// sequencing.
//
// The pipeline for one frame is: georeference the raw satellite raster using
// the published fixed-grid constants for its satellite, warp it into an
// anti-meridian-safe Mercator frame clipped to a geodetic bounding box,
// convert the band-major warp output to a pixel-major RGBA image, clean the
// chart raster (transparent background, white linework), and alpha-composite
// the chart over the satellite frame.
//
// # Basic Usage
//
//	r := geowarp.NewRenderer(geowarp.RendererOptions{
//	    ChartSources: []geowarp.ChartSource{geowarp.OPCPacificSource()},
//	})
//
//	region := geowarp.Region{
//	    Name:      "pacific",
//	    Box:       geowarp.BoundingBox{West: -225, South: 16, East: -115, North: 65, CrossesAntimeridian: true},
//	    Width:     2441,
//	    Height:    1556,
//	    Satellite: "goes-17",
//	}
//
//	frame, err := r.RenderFrame(region, geowarp.FrameInput{
//	    Satellite: "goes-17",
//	    Image:     satellitePNG,
//	    Time:      frameTime,
//	    Chart:     chartPNG,
//	    ChartTime: chartValidTime,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png.Encode(out, frame.Image)
//
// # Batch Rendering
//
// Frames are independent; RenderFrames runs a worker pool across them:
//
//	frames, errs := r.RenderFrames(region, inputs, geowarp.DefaultBatchOptions())
//
// # Errors
//
// Failures are typed per stage: ConfigurationError (unknown satellite or
// chart source), ProjectionError (bad spatial reference or warp request),
// FormatError (undecodable raster or unsupported band count), and
// AlignmentError (mismatched dimensions or bounding boxes at composite time).
// A frame either renders completely or fails; no partial output is produced.
package geowarp
