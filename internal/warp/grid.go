package warp

import (
	"image"
)

// GeoTransform is the six-parameter affine mapping from pixel coordinates to
// projected map coordinates, in GDAL parameter order.
//
// The origin is the projected coordinate of the outer corner of pixel (0,0).
// For north-up imagery ScaleY is negative: row numbers grow downward while
// projected y grows northward. The GOES fixed-grid transforms additionally
// carry a negative sign convention on both axes relative to naive row/column
// ordering; the published constants already encode this and must be used
// as-is.
type GeoTransform struct {
	OriginX float64 // projected x of the grid origin
	ScaleX  float64 // pixel width in projected units
	ShearX  float64 // row rotation, zero for axis-aligned grids
	OriginY float64 // projected y of the grid origin
	ShearY  float64 // column rotation, zero for axis-aligned grids
	ScaleY  float64 // pixel height in projected units, negative when north-up
}

// PixelToMap maps fractional pixel coordinates to projected coordinates.
func (t GeoTransform) PixelToMap(col, row float64) (x, y float64) {
	x = t.OriginX + col*t.ScaleX + row*t.ShearX
	y = t.OriginY + col*t.ShearY + row*t.ScaleY
	return x, y
}

// MapToPixel maps projected coordinates to fractional pixel coordinates.
// The transform must be invertible (non-zero determinant).
func (t GeoTransform) MapToPixel(x, y float64) (col, row float64) {
	det := t.ScaleX*t.ScaleY - t.ShearX*t.ShearY
	dx := x - t.OriginX
	dy := y - t.OriginY
	col = (dx*t.ScaleY - dy*t.ShearX) / det
	row = (dy*t.ScaleX - dx*t.ShearY) / det
	return col, row
}

// Grid is a band-major raster: sample (band, row, col) lives at
// Data[(band*Height+row)*Width+col]. Band-major layout keeps each band plane
// contiguous, which the warp engine samples independently; the pixel bridge
// converts to pixel-major for imaging libraries.
//
// A Grid optionally carries a spatial reference (Ref) and an affine
// georeferencing transform. A Grid with a nil Ref is just pixels.
type Grid struct {
	Width  int
	Height int
	Bands  int
	Data   []uint8

	Transform GeoTransform
	Ref       Projection
}

// NewGrid allocates a zero-filled band-major grid.
func NewGrid(width, height, bands int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Bands:  bands,
		Data:   make([]uint8, width*height*bands),
	}
}

// Plane returns the contiguous sample slice for one band.
func (g *Grid) Plane(band int) []uint8 {
	n := g.Width * g.Height
	return g.Data[band*n : (band+1)*n]
}

// At returns the sample at (band, row, col).
func (g *Grid) At(band, row, col int) uint8 {
	return g.Data[(band*g.Height+row)*g.Width+col]
}

// Set stores a sample at (band, row, col).
func (g *Grid) Set(band, row, col int, v uint8) {
	g.Data[(band*g.Height+row)*g.Width+col] = v
}

// Bilinear samples one band at fractional pixel coordinates using bilinear
// interpolation. Coordinates are in pixel space with (0,0) at the center of
// the top-left pixel. ok is false when the point falls outside the grid.
func (g *Grid) Bilinear(band int, col, row float64) (float64, bool) {
	if col < -0.5 || row < -0.5 || col > float64(g.Width)-0.5 || row > float64(g.Height)-0.5 {
		return 0, false
	}
	c0 := int(col)
	r0 := int(row)
	if col < 0 {
		c0 = 0
	}
	if row < 0 {
		r0 = 0
	}
	c1 := c0 + 1
	r1 := r0 + 1
	if c1 >= g.Width {
		c1 = g.Width - 1
	}
	if r1 >= g.Height {
		r1 = g.Height - 1
	}
	fc := col - float64(c0)
	fr := row - float64(r0)
	if fc < 0 {
		fc = 0
	}
	if fr < 0 {
		fr = 0
	}

	plane := g.Plane(band)
	w := g.Width
	v00 := float64(plane[r0*w+c0])
	v01 := float64(plane[r0*w+c1])
	v10 := float64(plane[r1*w+c0])
	v11 := float64(plane[r1*w+c1])

	top := v00 + (v01-v00)*fc
	bot := v10 + (v11-v10)*fc
	return top + (bot-top)*fr, true
}

// FromImage converts a decoded image to a band-major grid.
//
// Sources without an alpha channel (JPEG's YCbCr, grayscale) produce a 3-band
// RGB grid; sources with alpha produce a 4-band RGBA grid. Alpha is kept
// non-premultiplied.
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		g := NewGrid(w, h, 4)
		rp, gp, bp, ap := g.Plane(0), g.Plane(1), g.Plane(2), g.Plane(3)
		for row := 0; row < h; row++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+row)
			o := row * w
			for col := 0; col < w; col++ {
				rp[o+col] = src.Pix[i]
				gp[o+col] = src.Pix[i+1]
				bp[o+col] = src.Pix[i+2]
				ap[o+col] = src.Pix[i+3]
				i += 4
			}
		}
		return g
	case *image.YCbCr:
		g := NewGrid(w, h, 3)
		rp, gp, bp := g.Plane(0), g.Plane(1), g.Plane(2)
		for row := 0; row < h; row++ {
			o := row * w
			for col := 0; col < w; col++ {
				yi := src.YOffset(b.Min.X+col, b.Min.Y+row)
				ci := src.COffset(b.Min.X+col, b.Min.Y+row)
				r8, g8, b8 := ycbcrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				rp[o+col] = r8
				gp[o+col] = g8
				bp[o+col] = b8
			}
		}
		return g
	}

	// Generic fallback for other color models.
	bands := 3
	if hasAlpha(img) {
		bands = 4
	}
	g := NewGrid(w, h, bands)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			r16, g16, b16, a16 := img.At(b.Min.X+col, b.Min.Y+row).RGBA()
			// Un-premultiply so transparent regions keep their color.
			if a16 > 0 && a16 < 0xffff {
				r16 = r16 * 0xffff / a16
				g16 = g16 * 0xffff / a16
				b16 = b16 * 0xffff / a16
			}
			g.Set(0, row, col, uint8(r16>>8))
			g.Set(1, row, col, uint8(g16>>8))
			g.Set(2, row, col, uint8(b16>>8))
			if bands == 4 {
				g.Set(3, row, col, uint8(a16>>8))
			}
		}
	}
	return g
}

func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64, *image.Alpha, *image.Alpha16:
		return true
	}
	return false
}

// ycbcrToRGB is the JFIF conversion, matching image/color.YCbCrToRGB.
func ycbcrToRGB(y, cb, cr uint8) (uint8, uint8, uint8) {
	yy := int32(y) * 0x10101
	cb1 := int32(cb) - 128
	cr1 := int32(cr) - 128

	r := yy + 91881*cr1
	g := yy - 22554*cb1 - 46802*cr1
	b := yy + 116130*cb1

	return clamp8(r >> 16), clamp8(g >> 16), clamp8(b >> 16)
}

func clamp8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
