package geowarp

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

// encodePNG renders an NRGBA raster to PNG bytes for pipeline input.
func encodePNG(t *testing.T, img *image.NRGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// grayDisk builds a uniform mid-gray full-disk raster. Uniform input makes
// resampling exact: every on-disk output pixel must come back as the same
// gray.
func grayDisk(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 80
		img.Pix[i+1] = 80
		img.Pix[i+2] = 80
		img.Pix[i+3] = 255
	}
	return encodePNG(t, img)
}

// lineworkChart builds a chart raster drawn entirely in the OPC linework
// navy; after cleanup the whole overlay is opaque white.
func lineworkChart(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			img.SetNRGBA(col, row, color.NRGBA{R: 0, G: 16, B: 18, A: 255})
		}
	}
	return encodePNG(t, img)
}

var (
	testChartSource = ChartSource{
		Name:    "test-chart",
		Box:     BoundingBox{West: -170, South: 10, East: -110, North: 60},
		Palette: DefaultOPCPalette(),
	}

	testRegion = Region{
		Name:      "eastpac",
		Box:       BoundingBox{West: -160, South: 20, East: -120, North: 50},
		Width:     64,
		Height:    40,
		Satellite: "goes-17",
		Chart:     "test-chart",
	}
)

func testRenderer() *Renderer {
	opts := DefaultRendererOptions()
	opts.ChartSources = []ChartSource{testChartSource}
	return NewRenderer(opts)
}

func TestRenderFrameBaseOnly(t *testing.T) {
	r := testRenderer()
	when := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	frame, err := r.RenderFrame(testRegion, FrameInput{
		Satellite: "goes-17",
		Image:     grayDisk(t, 96),
		Time:      when,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if got := frame.Image.Bounds(); got.Dx() != 64 || got.Dy() != 40 {
		t.Fatalf("frame size = %v, want 64x40", got)
	}
	if frame.Box != testRegion.Box {
		t.Errorf("frame box = %v, want region box", frame.Box)
	}
	if !frame.Time.Equal(when) {
		t.Errorf("frame time = %v, want %v", frame.Time, when)
	}
	if got := frame.Image.NRGBAAt(32, 20); got != (color.NRGBA{R: 80, G: 80, B: 80, A: 255}) {
		t.Errorf("center pixel = %v, want the input gray", got)
	}
}

func TestRenderFrameWithChart(t *testing.T) {
	r := testRenderer()
	when := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	frame, err := r.RenderFrame(testRegion, FrameInput{
		Satellite: "goes-17",
		Image:     grayDisk(t, 96),
		Time:      when,
		Chart:     lineworkChart(t, 120, 100),
		ChartTime: when,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	// At the chart's valid time the overlay is fully opaque, and this
	// chart is solid linework, so every pixel is white.
	if got := frame.Image.NRGBAAt(32, 20); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("center pixel = %v, want opaque white linework", got)
	}
}

func TestRenderFrameChartOutsideFadeWindow(t *testing.T) {
	r := testRenderer()
	when := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	frame, err := r.RenderFrame(testRegion, FrameInput{
		Satellite: "goes-17",
		Image:     grayDisk(t, 96),
		Time:      when,
		Chart:     lineworkChart(t, 120, 100),
		ChartTime: when.Add(-10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := frame.Image.NRGBAAt(32, 20); got != (color.NRGBA{R: 80, G: 80, B: 80, A: 255}) {
		t.Errorf("stale chart should be dropped, pixel = %v", got)
	}
}

func TestRenderFrameCoverageFallback(t *testing.T) {
	r := testRenderer()
	region := testRegion
	region.Chart = "" // force the coverage lookup

	frame, err := r.RenderFrame(region, FrameInput{
		Satellite: "goes-17",
		Image:     grayDisk(t, 96),
		Time:      time.Now(),
		Chart:     lineworkChart(t, 120, 100),
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := frame.Image.NRGBAAt(32, 20); got.R != 255 {
		t.Errorf("coverage lookup should have found the chart, pixel = %v", got)
	}
}

func TestRenderFrameCachesPreparedChart(t *testing.T) {
	r := testRenderer()
	in := FrameInput{
		Satellite: "goes-17",
		Image:     grayDisk(t, 96),
		Time:      time.Now(),
		Chart:     lineworkChart(t, 120, 100),
		ChartKey:  "2024030118",
	}

	if _, err := r.RenderFrame(testRegion, in); err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	if _, err := r.RenderFrame(testRegion, in); err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if got := r.CacheStats().EntryCount; got != 1 {
		t.Errorf("cache entries = %d, want 1", got)
	}
}

func TestRenderFrameErrors(t *testing.T) {
	r := testRenderer()

	_, err := r.RenderFrame(testRegion, FrameInput{
		Satellite: "goes-17",
		Image:     []byte("not an image"),
	})
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Errorf("undecodable raster: want *FormatError, got %v", err)
	}

	_, err = r.RenderFrame(testRegion, FrameInput{
		Satellite: "goes-99",
		Image:     grayDisk(t, 96),
	})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("unknown satellite: want *ConfigurationError, got %v", err)
	}

	_, err = r.RenderFrame(testRegion, FrameInput{
		Satellite:   "goes-17",
		Image:       grayDisk(t, 96),
		Chart:       lineworkChart(t, 120, 100),
		ChartSource: "no-such-chart",
	})
	if !errors.As(err, &cerr) {
		t.Errorf("unknown chart source: want *ConfigurationError, got %v", err)
	}
}
