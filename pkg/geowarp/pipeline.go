package geowarp

import (
	"bytes"
	"fmt"
	"image"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog/log"

	"github.com/beetlebugorg/geowarp/internal/warp"
)

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// ChartSources are the chart products the renderer knows about.
	ChartSources []ChartSource

	// CacheBytes bounds the prepared-chart cache. 0 means unlimited.
	CacheBytes int64

	// FadeWindow is how far from a chart's valid time the overlay fades
	// out entirely; half the issue interval works well (3h for 6-hourly
	// surface analyses).
	FadeWindow time.Duration

	// FadeFloor is the minimum overlay opacity inside the fade window.
	FadeFloor uint8

	// FontPath optionally points at a TrueType font for decorations.
	FontPath string
}

// DefaultRendererOptions returns renderer options tuned for the 6-hourly
// NOAA surface analysis products.
func DefaultRendererOptions() RendererOptions {
	return RendererOptions{
		ChartSources: nil,
		CacheBytes:   256 * 1024 * 1024,
		FadeWindow:   3 * time.Hour,
		FadeFloor:    64,
	}
}

// Renderer runs the per-frame pipeline: georeference, warp, bridge, chart
// cleanup, composite. A Renderer is safe for concurrent use; per-frame state
// lives entirely in local buffers.
type Renderer struct {
	opts  RendererOptions
	index *ChartSourceIndex
	cache *ChartCache
}

// NewRenderer creates a renderer.
//
// Example:
//
//	r := geowarp.NewRenderer(geowarp.RendererOptions{
//	    ChartSources: []geowarp.ChartSource{geowarp.OPCPacificSource()},
//	})
func NewRenderer(opts RendererOptions) *Renderer {
	return &Renderer{
		opts:  opts,
		index: NewChartSourceIndex(opts.ChartSources),
		cache: NewChartCache(opts.CacheBytes),
	}
}

// FrameInput is everything needed to render one frame. Rasters arrive as
// PNG or JPEG bytes; nothing in the pipeline touches the filesystem.
type FrameInput struct {
	// Satellite is the imager id, e.g. "goes-17".
	Satellite string

	// Image is the raw satellite raster (PNG or JPEG, 3 or 4 bands).
	Image []byte

	// Time is the frame capture time; used for fading and decoration.
	Time time.Time

	// Chart is the chart raster to overlay; nil renders the satellite
	// frame alone.
	Chart []byte

	// ChartSource names the chart product the bytes came from. Empty
	// falls back to the region's configured chart, then to coverage
	// lookup.
	ChartSource string

	// ChartTime is the chart's valid time, the fade reference.
	ChartTime time.Time

	// ChartKey caches the prepared overlay under this key (for example
	// the chart filename). Empty disables caching for this frame.
	ChartKey string

	// Decorate optionally draws banners and logos on the composite.
	Decorate *Decoration
}

// RenderFrame runs the full pipeline for one frame and returns the
// composite.
//
// Each stage fails fast with a typed error carrying the stage, satellite,
// and bounding box context; a failed frame produces no output and corrupts
// nothing, so batch callers can skip it and continue.
func (r *Renderer) RenderFrame(region Region, in FrameInput) (*Frame, error) {
	start := time.Now()

	base, err := r.renderBase(region, in)
	if err != nil {
		return nil, err
	}

	frame := base
	if in.Chart != nil {
		overlay, opacity, err := r.prepareOverlay(region, in)
		if err != nil {
			return nil, err
		}
		if opacity > 0 {
			frame, err = CompositeOpacity(base, overlay, opacity)
			if err != nil {
				return nil, fmt.Errorf("composite %s: %w", region.Name, err)
			}
		} else {
			log.Debug().Str("region", region.Name).Time("chart", in.ChartTime).
				Msg("chart outside fade window, skipping overlay")
		}
	}

	if in.Decorate != nil {
		if err := Decorate(frame, *in.Decorate); err != nil {
			return nil, fmt.Errorf("decorate %s: %w", region.Name, err)
		}
	}

	log.Debug().Str("region", region.Name).Str("satellite", in.Satellite).
		Dur("elapsed", time.Since(start)).Msg("frame rendered")
	return frame, nil
}

// renderBase produces the warped satellite frame: decode, georeference,
// warp, pixel bridge.
func (r *Renderer) renderBase(region Region, in FrameInput) (*Frame, error) {
	img, kind, err := image.Decode(bytes.NewReader(in.Image))
	if err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", in.Satellite, region.Box,
			&warp.FormatError{Reason: err.Error()})
	}
	log.Debug().Str("satellite", in.Satellite).Str("format", kind).
		Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).
		Msg("satellite raster decoded")

	grid, err := Georeference(img, in.Satellite)
	if err != nil {
		return nil, fmt.Errorf("georeference %s: %w", in.Satellite, err)
	}

	warped, err := warp.Warp(grid, region.Projection(), region.Box, region.Width, region.Height)
	if err != nil {
		return nil, fmt.Errorf("warp %s %s: %w", in.Satellite, region.Box, err)
	}

	rgba, err := warp.ToRGBA(warped)
	if err != nil {
		return nil, fmt.Errorf("bridge %s: %w", in.Satellite, err)
	}
	return &Frame{Image: rgba, Box: region.Box, Time: in.Time}, nil
}

// prepareOverlay cleans and crops the chart for the region (through the
// cache when a key is provided) and computes its fade opacity.
func (r *Renderer) prepareOverlay(region Region, in FrameInput) (*Frame, uint8, error) {
	src, err := r.resolveChartSource(region, in)
	if err != nil {
		return nil, 0, err
	}

	opacity := uint8(255)
	if !in.ChartTime.IsZero() {
		opacity = FadeOpacity(in.Time, in.ChartTime, r.opts.FadeWindow, r.opts.FadeFloor)
	}
	if opacity == 0 {
		return nil, 0, nil
	}

	prepare := func() (*Frame, error) {
		img, _, err := image.Decode(bytes.NewReader(in.Chart))
		if err != nil {
			return nil, &warp.FormatError{Reason: err.Error()}
		}
		return PrepareChart(src, img, region)
	}

	var overlay *Frame
	if in.ChartKey != "" {
		overlay, err = r.cache.Get(src.Name+"/"+in.ChartKey, prepare)
	} else {
		overlay, err = prepare()
	}
	if err != nil {
		return nil, 0, fmt.Errorf("chart %s %s: %w", src.Name, region.Box, err)
	}
	return overlay, opacity, nil
}

// resolveChartSource picks the chart source for a frame: explicit input
// name, then the region's configured chart, then coverage lookup.
func (r *Renderer) resolveChartSource(region Region, in FrameInput) (ChartSource, error) {
	name := in.ChartSource
	if name == "" {
		name = region.Chart
	}
	if name != "" {
		src, ok := r.index.Lookup(name)
		if !ok {
			return ChartSource{}, &ConfigurationError{Kind: "chart source", Name: name}
		}
		return src, nil
	}

	covering := r.index.Covering(region.Box)
	if len(covering) == 0 {
		return ChartSource{}, &ConfigurationError{Kind: "chart source", Name: "covering " + region.Box.String()}
	}
	return covering[0], nil
}

// CacheStats exposes the prepared-chart cache statistics.
func (r *Renderer) CacheStats() CacheStats {
	return r.cache.Stats()
}
