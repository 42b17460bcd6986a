package warp

import (
	"errors"
	"image"
	"testing"
)

func TestToRGBAPermutation(t *testing.T) {
	g := NewGrid(3, 2, 4)
	for i := range g.Data {
		g.Data[i] = uint8(i * 7)
	}

	img, err := ToRGBA(g)
	if err != nil {
		t.Fatalf("ToRGBA failed: %v", err)
	}

	// Exact permutation: pixel-major (row, col, band) equals band-major
	// (band, row, col) for every index.
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			for band := 0; band < 4; band++ {
				got := img.Pix[img.PixOffset(col, row)+band]
				want := g.At(band, row, col)
				if got != want {
					t.Fatalf("pixel (%d,%d) band %d = %d, want %d", row, col, band, got, want)
				}
			}
		}
	}
}

func TestToRGBAThreeBand(t *testing.T) {
	g := NewGrid(4, 4, 3)
	for i := range g.Data {
		g.Data[i] = uint8(i)
	}

	img, err := ToRGBA(g)
	if err != nil {
		t.Fatalf("ToRGBA failed: %v", err)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			o := img.PixOffset(col, row)
			for band := 0; band < 3; band++ {
				if img.Pix[o+band] != g.At(band, row, col) {
					t.Fatalf("pixel (%d,%d) band %d mismatch", row, col, band)
				}
			}
			if img.Pix[o+3] != 0xff {
				t.Fatalf("3-band input should gain opaque alpha, got %d", img.Pix[o+3])
			}
		}
	}
}

func TestToRGBABandCount(t *testing.T) {
	for _, bands := range []int{1, 2, 5} {
		_, err := ToRGBA(NewGrid(2, 2, bands))
		if err == nil {
			t.Errorf("%d-band grid should be rejected", bands)
			continue
		}
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("want *FormatError for %d bands, got %T", bands, err)
		}
	}
}

// naiveToRGBA is the per-pixel accessor route the bridge exists to avoid.
// Kept for the benchmark comparison below.
func naiveToRGBA(g *Grid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			o := img.PixOffset(col, row)
			img.Pix[o] = g.At(0, row, col)
			img.Pix[o+1] = g.At(1, row, col)
			img.Pix[o+2] = g.At(2, row, col)
			if g.Bands == 4 {
				img.Pix[o+3] = g.At(3, row, col)
			} else {
				img.Pix[o+3] = 0xff
			}
		}
	}
	return img
}

func benchGrid() *Grid {
	g := NewGrid(2048, 1024, 4)
	for i := range g.Data {
		g.Data[i] = uint8(i)
	}
	return g
}

func BenchmarkToRGBA(b *testing.B) {
	g := benchGrid()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ToRGBA(g); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkToRGBANaive(b *testing.B) {
	g := benchGrid()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		naiveToRGBA(g)
	}
}
