package warp

import (
	"errors"
	"math"
	"testing"
)

// mercatorGrid builds a source grid whose pixels cover box exactly under m,
// filled with a smooth gradient.
func mercatorGrid(m Mercator, box BoundingBox, w, h int) *Grid {
	xw, yn, _ := m.Forward(box.West, box.North)
	xe, ys, _ := m.Forward(box.EastUnwrapped(), box.South)

	g := NewGrid(w, h, 4)
	g.Ref = m
	g.Transform = GeoTransform{
		OriginX: xw,
		ScaleX:  (xe - xw) / float64(w),
		OriginY: yn,
		ScaleY:  (ys - yn) / float64(h),
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			g.Set(0, r, c, uint8(c*255/w))
			g.Set(1, r, c, uint8(r*255/h))
			g.Set(2, r, c, 128)
			g.Set(3, r, c, 255)
		}
	}
	return g
}

func TestWarpNoOpReprojection(t *testing.T) {
	m := Mercator{}
	box := BoundingBox{West: -60, South: 10, East: -20, North: 50}
	src := mercatorGrid(m, box, 80, 80)

	out, err := Warp(src, m, box, 80, 80)
	if err != nil {
		t.Fatalf("no-op warp failed: %v", err)
	}

	// Identical projection, box, and resolution: pixel centers map back
	// onto themselves, so values change only by resampling noise.
	for _, band := range []int{0, 1, 2, 3} {
		for r := 5; r < 75; r += 7 {
			for c := 5; c < 75; c += 7 {
				got := float64(out.At(band, r, c))
				want := float64(src.At(band, r, c))
				if math.Abs(got-want) > 2 {
					t.Fatalf("band %d pixel (%d,%d) = %g, want %g within 2", band, r, c, got, want)
				}
			}
		}
	}
}

// fullDisk builds a small synthetic full-disk satellite grid in the GOES-17
// fixed-grid projection.
func fullDisk(size int) *Grid {
	g := NewGrid(size, size, 4)
	g.Ref = goes17
	half := 5434894.7009821739
	scale := 2 * half / float64(size)
	g.Transform = GeoTransform{
		OriginX: -half,
		ScaleX:  scale,
		OriginY: half,
		ScaleY:  -scale,
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			g.Set(0, r, c, uint8(c*255/size))
			g.Set(1, r, c, uint8(r*255/size))
			g.Set(2, r, c, 200)
			g.Set(3, r, c, 255)
		}
	}
	return g
}

func TestWarpAntimeridianCrossing(t *testing.T) {
	src := fullDisk(200)

	crossing := BoundingBox{West: 150, South: 10, East: -120, North: 60, CrossesAntimeridian: true}
	outA, err := Warp(src, Mercator{Lon0: -165, Over: true}, crossing, 300, 150)
	if err != nil {
		t.Fatalf("crossing warp failed: %v", err)
	}

	// A non-crossing box with the same 90-degree angular span must produce
	// the same projected pixel spacing.
	plain := BoundingBox{West: -130, South: 10, East: -40, North: 60}
	outB, err := Warp(src, Mercator{Lon0: -85, Over: true}, plain, 300, 150)
	if err != nil {
		t.Fatalf("non-crossing warp failed: %v", err)
	}

	if crossing.Width() != 90 || plain.Width() != 90 {
		t.Fatalf("test boxes should both span 90 degrees, got %g and %g", crossing.Width(), plain.Width())
	}
	sa, sb := outA.Transform.ScaleX, outB.Transform.ScaleX
	if math.Abs(sa-sb) > math.Abs(sa)*1e-9 {
		t.Errorf("pixel spacing differs between crossing (%g) and non-crossing (%g) boxes", sa, sb)
	}

	// The crossing frame should have real imagery near its center (over
	// the satellite's field of view).
	if outA.At(3, 75, 150) != 255 {
		t.Error("center of the crossing frame should be opaque satellite imagery")
	}
}

func TestWarpCrossingRequiresOverRange(t *testing.T) {
	src := fullDisk(64)
	box := BoundingBox{West: 150, South: 10, East: -120, North: 60, CrossesAntimeridian: true}

	_, err := Warp(src, Mercator{Lon0: -165}, box, 64, 32)
	if err == nil {
		t.Fatal("crossing box with a bounded target projection should fail")
	}
	var perr *ProjectionError
	if !errors.As(err, &perr) {
		t.Errorf("want *ProjectionError, got %T", err)
	}
}

func TestWarpRejectsBadRequests(t *testing.T) {
	src := fullDisk(32)
	box := BoundingBox{West: -170, South: 20, East: -120, North: 50}

	if _, err := Warp(src, Mercator{Lon0: -145}, box, 0, 32); err == nil {
		t.Error("zero width should fail")
	}
	if _, err := Warp(src, Mercator{Lon0: -145}, box, 32, -1); err == nil {
		t.Error("negative height should fail")
	}

	bare := NewGrid(8, 8, 3)
	if _, err := Warp(bare, Mercator{}, box, 8, 8); err == nil {
		t.Error("source without a spatial reference should fail")
	}

	inverted := BoundingBox{West: 150, South: 10, East: -120, North: 60}
	if _, err := Warp(src, Mercator{Lon0: -165, Over: true}, inverted, 8, 8); err == nil {
		t.Error("west > east without the crossing flag should fail, not silently clip")
	}
}

func TestWarpOffDiskIsTransparent(t *testing.T) {
	src := fullDisk(128)

	// The east edge of this box is past GOES-17's limb; those output
	// pixels must stay zero rather than picking up stray samples.
	box := BoundingBox{West: -150, South: 10, East: -40, North: 60}
	out, err := Warp(src, Mercator{Lon0: -95, Over: true}, box, 220, 100)
	if err != nil {
		t.Fatalf("warp failed: %v", err)
	}
	if out.At(3, 50, 10) != 255 {
		t.Error("west side of the box is well inside the field of view and should be opaque")
	}
	if out.At(3, 50, 219) != 0 {
		t.Error("east side of the box is past the limb and should be transparent")
	}
}
