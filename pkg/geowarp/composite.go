package geowarp

import (
	"image"
	"time"

	"golang.org/x/image/draw"
)

// Composite alpha-blends the overlay frame onto the base frame and returns a
// new frame; neither input is modified.
//
// The inputs must agree exactly on pixel dimensions and bounding box. No
// implicit resampling is performed here; any resampling must already have
// happened in the warp or the chart preparation. Mismatches return an
// AlignmentError and produce no output.
func Composite(base, overlay *Frame) (*Frame, error) {
	return CompositeOpacity(base, overlay, 255)
}

// CompositeOpacity is Composite with the overlay's alpha channel scaled by
// opacity/255 before blending. An opacity of 255 blends the overlay as-is;
// 0 returns a copy of the base frame.
//
// The opacity scale is how chart fading works: the overlay raster itself is
// never mutated, so a cached cleaned chart can be blended at a different
// opacity for every frame.
func CompositeOpacity(base, overlay *Frame, opacity uint8) (*Frame, error) {
	bw, bh := base.Image.Rect.Dx(), base.Image.Rect.Dy()
	ow, oh := overlay.Image.Rect.Dx(), overlay.Image.Rect.Dy()
	if bw != ow || bh != oh || base.Box != overlay.Box {
		return nil, &AlignmentError{
			BaseWidth: bw, BaseHeight: bh,
			OverlayWidth: ow, OverlayHeight: oh,
			BaseBox: base.Box, OverlayBox: overlay.Box,
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, bw, bh))
	draw.Draw(out, out.Bounds(), base.Image, base.Image.Rect.Min, draw.Src)

	src := overlay.Image
	if opacity < 255 {
		src = scaleAlpha(overlay.Image, opacity)
	}
	draw.Draw(out, out.Bounds(), src, src.Rect.Min, draw.Over)

	return &Frame{Image: out, Box: base.Box, Time: base.Time}, nil
}

// scaleAlpha returns a copy of img with every alpha sample multiplied by
// opacity/255. Color channels are untouched (non-premultiplied storage).
func scaleAlpha(img *image.NRGBA, opacity uint8) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	copy(out.Pix, img.Pix)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(int(out.Pix[i]) * int(opacity) / 255)
	}
	return out
}

// FadeOpacity computes the chart overlay opacity for a frame at frameTime
// given the chart's valid time.
//
// Surface analyses are issued every six hours; fading the overlay in toward
// the valid time and out after it reads far better in a time lapse than a
// hard swap. Within the window the opacity ramps linearly between floor and
// 255, peaking at the valid time; at or beyond the window the overlay is
// dropped entirely (opacity 0).
func FadeOpacity(frameTime, validTime time.Time, window time.Duration, floor uint8) uint8 {
	if window <= 0 {
		return 255
	}
	dist := frameTime.Sub(validTime)
	if dist < 0 {
		dist = -dist
	}
	if dist >= window {
		return 0
	}
	ramp := int64(window-dist) * int64(255-floor) / int64(window)
	return uint8(int64(floor) + ramp)
}
