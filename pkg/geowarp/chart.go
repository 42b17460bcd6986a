package geowarp

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/beetlebugorg/geowarp/internal/warp"
)

// ChartPalette describes the colors of one chart source for overlay cleanup.
//
// Background pixels become fully transparent; foreground linework pixels are
// remapped to opaque white so they stay visible against dark satellite
// imagery. The foreground is configuration because chart renderers rarely
// use pure black: NOAA OPC draws its "black" linework in a dark navy, and
// anti-aliasing and compression smear both colors, hence the tolerances.
type ChartPalette struct {
	// Background is the chart's paper color, nominally white.
	Background color.NRGBA

	// BackgroundTolerance is the per-channel distance within which a pixel
	// still counts as background.
	BackgroundTolerance uint8

	// Foreground is the linework color keyed to white.
	Foreground color.NRGBA

	// ForegroundTolerance is the per-channel distance within which a pixel
	// still counts as linework.
	ForegroundTolerance uint8
}

// DefaultOPCPalette returns the palette tuned for NOAA Ocean Prediction
// Center surface analysis charts: white background, dark navy linework.
func DefaultOPCPalette() ChartPalette {
	return ChartPalette{
		Background:          color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		BackgroundTolerance: 8,
		Foreground:          color.NRGBA{R: 0, G: 16, B: 18, A: 255},
		ForegroundTolerance: 20,
	}
}

// ChartSource describes one chart product: where it sits on the globe, how
// to trim its margins, and how to key its colors.
//
// The bounding box covers the map area after trimming. Trim insets exist
// because rendered charts carry non-map header and footer strips (the OPC
// products have an 8 px header and a 36 px footer).
type ChartSource struct {
	// Name identifies the source, e.g. "opc-pacific".
	Name string

	// Box is the geodetic coverage of the trimmed chart raster. The chart
	// is a Mercator rendering of exactly this box.
	Box BoundingBox

	// Palette keys the chart's colors during cleanup.
	Palette ChartPalette

	// Margin trim in pixels, applied before anything else.
	TrimTop, TrimBottom, TrimLeft, TrimRight int
}

// OPCPacificSource returns the NOAA OPC Pacific surface analysis source.
// The chart spans east Asia to North America and crosses the anti-meridian.
func OPCPacificSource() ChartSource {
	return ChartSource{
		Name:       "opc-pacific",
		Box:        BoundingBox{West: 130, South: 16, East: -115, North: 65, CrossesAntimeridian: true},
		Palette:    DefaultOPCPalette(),
		TrimTop:    8,
		TrimBottom: 36,
	}
}

// OPCAtlanticSource returns the NOAA OPC Atlantic surface analysis source.
func OPCAtlanticSource() ChartSource {
	return ChartSource{
		Name:       "opc-atlantic",
		Box:        BoundingBox{West: -100, South: 16, East: -15, North: 65},
		Palette:    DefaultOPCPalette(),
		TrimTop:    8,
		TrimBottom: 36,
	}
}

func near(v, target, tol uint8) bool {
	d := int(v) - int(target)
	if d < 0 {
		d = -d
	}
	return d <= int(tol)
}

func (p ChartPalette) isBackground(r, g, b uint8) bool {
	return near(r, p.Background.R, p.BackgroundTolerance) &&
		near(g, p.Background.G, p.BackgroundTolerance) &&
		near(b, p.Background.B, p.BackgroundTolerance)
}

func (p ChartPalette) isForeground(r, g, b uint8) bool {
	return near(r, p.Foreground.R, p.ForegroundTolerance) &&
		near(g, p.Foreground.G, p.ForegroundTolerance) &&
		near(b, p.Foreground.B, p.ForegroundTolerance)
}

// CleanChart turns a chart raster into an overlay-ready RGBA raster:
// background pixels become fully transparent, linework pixels become opaque
// white, and everything else passes through unchanged except gaining full
// opacity.
//
// Single-channel inputs (grayscale, alpha masks) are rejected with a
// FormatError; color keying needs the chart's RGB values.
func CleanChart(img image.Image, pal ChartPalette) (*image.NRGBA, error) {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return nil, &warp.FormatError{Bands: 1, Reason: "chart cleanup requires an RGB raster"}
	case nil:
		return nil, &warp.FormatError{Reason: "nil chart raster"}
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for row := 0; row < b.Dy(); row++ {
		o := out.PixOffset(0, row)
		for col := 0; col < b.Dx(); col++ {
			r16, g16, b16, a16 := img.At(b.Min.X+col, b.Min.Y+row).RGBA()
			// RGBA() is alpha-premultiplied; un-premultiply so translucent
			// pixels keep their color and key against the palette correctly.
			if a16 > 0 && a16 < 0xffff {
				r16 = r16 * 0xffff / a16
				g16 = g16 * 0xffff / a16
				b16 = b16 * 0xffff / a16
			}
			r8, g8, b8 := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)

			switch {
			case a16 == 0:
				// Fully transparent pixels carry no color; treat as
				// background rather than keying on black.
				out.Pix[o] = 255
				out.Pix[o+1] = 255
				out.Pix[o+2] = 255
				out.Pix[o+3] = 0
			case pal.isBackground(r8, g8, b8):
				out.Pix[o] = 255
				out.Pix[o+1] = 255
				out.Pix[o+2] = 255
				out.Pix[o+3] = 0
			case pal.isForeground(r8, g8, b8):
				out.Pix[o] = 255
				out.Pix[o+1] = 255
				out.Pix[o+2] = 255
				out.Pix[o+3] = 255
			default:
				out.Pix[o] = r8
				out.Pix[o+1] = g8
				out.Pix[o+2] = b8
				out.Pix[o+3] = 255
			}
			o += 4
		}
	}
	return out, nil
}

// PrepareChart produces the overlay Frame for a region from a decoded chart
// raster: trim margins, key the palette, then crop to the region's box and
// resample to the region's resolution in a single Catmull-Rom pass.
//
// The region's box must lie within the source's coverage; a region the
// chart cannot cover is a configuration problem, not a crop.
func PrepareChart(src ChartSource, img image.Image, region Region) (*Frame, error) {
	if img == nil {
		return nil, &warp.FormatError{Reason: "nil chart raster"}
	}
	b := img.Bounds()
	trimmed := image.Rect(
		b.Min.X+src.TrimLeft,
		b.Min.Y+src.TrimTop,
		b.Max.X-src.TrimRight,
		b.Max.Y-src.TrimBottom,
	)
	if trimmed.Dx() <= 0 || trimmed.Dy() <= 0 {
		return nil, &warp.FormatError{Reason: "chart raster smaller than its trim margins"}
	}

	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	var work image.Image = img
	if ok {
		work = sub.SubImage(trimmed)
	}

	cleaned, err := CleanChart(work, src.Palette)
	if err != nil {
		return nil, err
	}

	crop, err := chartCrop(src.Box, region.Box, cleaned.Bounds())
	if err != nil {
		return nil, err
	}

	out := image.NewNRGBA(image.Rect(0, 0, region.Width, region.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), cleaned, crop, draw.Src, nil)

	return &Frame{Image: out, Box: region.Box}, nil
}

// chartCrop maps a region box to the pixel rectangle it occupies inside a
// chart covering srcBox. Columns are linear in longitude; rows are linear in
// Mercator northing, matching the chart's own projection.
func chartCrop(srcBox, regionBox BoundingBox, px image.Rectangle) (image.Rectangle, error) {
	dLon := regionBox.West - srcBox.West
	for dLon < 0 {
		dLon += 360
	}
	if dLon+regionBox.Width() > srcBox.Width()+1e-9 ||
		regionBox.South < srcBox.South || regionBox.North > srcBox.North {
		return image.Rectangle{}, &warp.ProjectionError{
			Op:     "chart crop",
			Reason: "chart coverage " + srcBox.String() + " does not contain region " + regionBox.String(),
		}
	}

	m := warp.Mercator{Lon0: srcBox.West, Over: true}
	_, yn, _ := m.Forward(srcBox.West, srcBox.North)
	_, ys, _ := m.Forward(srcBox.West, srcBox.South)
	_, yTop, _ := m.Forward(srcBox.West, regionBox.North)
	_, yBot, _ := m.Forward(srcBox.West, regionBox.South)

	w := float64(px.Dx())
	h := float64(px.Dy())
	x0 := dLon / srcBox.Width() * w
	x1 := (dLon + regionBox.Width()) / srcBox.Width() * w
	y0 := (yn - yTop) / (yn - ys) * h
	y1 := (yn - yBot) / (yn - ys) * h

	return image.Rect(
		px.Min.X+int(math.Round(x0)),
		px.Min.Y+int(math.Round(y0)),
		px.Min.X+int(math.Round(x1)),
		px.Min.Y+int(math.Round(y1)),
	), nil
}
