package warp

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestGeoTransformRoundTrip(t *testing.T) {
	// North-up transform with negative y scale, GOES-style.
	tr := GeoTransform{
		OriginX: -5434894.7009821739,
		ScaleX:  2004.0173154875411,
		OriginY: 5434894.7009821739,
		ScaleY:  -2004.0173154875411,
	}
	for _, p := range []struct{ col, row float64 }{
		{0, 0}, {100.5, 200.25}, {5423, 5423},
	} {
		x, y := tr.PixelToMap(p.col, p.row)
		col, row := tr.MapToPixel(x, y)
		if math.Abs(col-p.col) > 1e-9 || math.Abs(row-p.row) > 1e-9 {
			t.Errorf("round trip of (%g, %g) gave (%g, %g)", p.col, p.row, col, row)
		}
	}

	// Rows grow downward, projected y grows northward.
	_, yTop := tr.PixelToMap(0, 0)
	_, yBottom := tr.PixelToMap(0, 5424)
	if yTop <= yBottom {
		t.Errorf("north-up transform should decrease y with row, got top %g bottom %g", yTop, yBottom)
	}
}

func TestGridBilinear(t *testing.T) {
	g := NewGrid(4, 4, 1)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			g.Set(0, r, c, uint8(10*c))
		}
	}

	v, ok := g.Bilinear(0, 1, 2)
	if !ok || v != 10 {
		t.Errorf("sample at a pixel center = %g (ok=%v), want 10", v, ok)
	}
	v, ok = g.Bilinear(0, 1.5, 2)
	if !ok || math.Abs(v-15) > 1e-9 {
		t.Errorf("midpoint sample = %g (ok=%v), want 15", v, ok)
	}
	if _, ok := g.Bilinear(0, -1, 0); ok {
		t.Error("sample outside the grid should not be ok")
	}
	if _, ok := g.Bilinear(0, 0, 9); ok {
		t.Error("sample outside the grid should not be ok")
	}
}

func TestFromImageNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	src.SetNRGBA(2, 1, color.NRGBA{R: 50, G: 60, B: 70, A: 80})

	g := FromImage(src)
	if g.Bands != 4 {
		t.Fatalf("NRGBA source should give 4 bands, got %d", g.Bands)
	}
	if g.At(0, 0, 1) != 10 || g.At(1, 0, 1) != 20 || g.At(2, 0, 1) != 30 || g.At(3, 0, 1) != 40 {
		t.Error("band-major samples do not match source pixel (1,0)")
	}
	if g.At(0, 1, 2) != 50 || g.At(3, 1, 2) != 80 {
		t.Error("band-major samples do not match source pixel (2,1)")
	}
}

func TestFromImageYCbCr(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio444)
	for i := range src.Y {
		src.Y[i] = 128
	}
	for i := range src.Cb {
		src.Cb[i] = 128
		src.Cr[i] = 128
	}

	g := FromImage(src)
	if g.Bands != 3 {
		t.Fatalf("YCbCr source should give 3 bands, got %d", g.Bands)
	}
	// Neutral chroma at mid luma is mid gray.
	for band := 0; band < 3; band++ {
		if v := g.At(band, 2, 2); v != 128 {
			t.Errorf("band %d = %d, want 128", band, v)
		}
	}
}
