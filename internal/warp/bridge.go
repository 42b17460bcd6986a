package warp

import (
	"image"
)

// ToRGBA converts a band-major grid into a pixel-major *image.NRGBA.
//
// The conversion is a single linear reorder pass: each band plane is walked
// by its own index while one write index walks the interleaved output. No
// per-pixel accessor calls are made; benchmarks put the accessor route at
// several times the cost of the reorder (see bridge_test.go).
//
// 3-band grids (JPEG-sourced RGB) gain a fully-opaque alpha channel; 4-band
// grids materialize directly as RGBA. Any other band count is a FormatError.
func ToRGBA(g *Grid) (*image.NRGBA, error) {
	if g.Bands != 3 && g.Bands != 4 {
		return nil, &FormatError{Bands: g.Bands, Reason: "pixel bridge requires an RGB or RGBA raster"}
	}

	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	n := g.Width * g.Height
	rp := g.Plane(0)
	gp := g.Plane(1)
	bp := g.Plane(2)
	pix := img.Pix

	if g.Bands == 4 {
		ap := g.Plane(3)
		for i, o := 0, 0; i < n; i, o = i+1, o+4 {
			pix[o] = rp[i]
			pix[o+1] = gp[i]
			pix[o+2] = bp[i]
			pix[o+3] = ap[i]
		}
		return img, nil
	}

	for i, o := 0, 0; i < n; i, o = i+1, o+4 {
		pix[o] = rp[i]
		pix[o+1] = gp[i]
		pix[o+2] = bp[i]
		pix[o+3] = 0xff
	}
	return img, nil
}
