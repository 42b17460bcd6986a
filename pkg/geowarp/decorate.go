package geowarp

import (
	"fmt"
	"image"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
)

// Decoration describes the banners and logos drawn over a composite frame.
//
// Banner lines render as white monospace-ish text on a translucent black
// box, stacked from the named corner; logos render in a row at the
// bottom-left, scaled to LogoHeight, with the credit label above them.
type Decoration struct {
	// TopLeft lines, usually the satellite and chart timestamps, e.g.
	// " GOES-17 2018-12-24 03:00Z ".
	TopLeft []string

	// TopRight lines, e.g. a preliminary-data notice.
	TopRight []string

	// Credit is a label drawn above the logo row.
	Credit string

	// Logos are drawn bottom-left in order, scaled to LogoHeight.
	Logos []image.Image

	// LogoHeight is the logo row height in pixels. 0 means 96.
	LogoHeight int

	// FontPath optionally points at a TrueType font. Empty falls back to
	// the built-in bitmap face, which is fine for small frames but coarse
	// at HD sizes.
	FontPath string

	// FontSize is the text size in points. 0 means 24.
	FontSize float64

	// OutputWidth and OutputHeight, when both set, center-crop the
	// decorated frame to the output aspect ratio and resample it to
	// exactly this size, e.g. 1920x1080 for HD video assembly. Zero
	// leaves the frame at its rendered resolution.
	OutputWidth  int
	OutputHeight int
}

const (
	bannerPadY    = 2
	bannerMarginX = 4
	bannerMarginY = 8
	logoSpacing   = 4
	logoMargin    = 8
)

// Decorate draws the decoration onto the frame in place. The frame must be
// a finished composite; decoration is the last stage before encoding.
func Decorate(f *Frame, d Decoration) error {
	if f == nil || f.Image == nil {
		return fmt.Errorf("decorate: nil frame")
	}

	dc := gg.NewContextForImage(f.Image)
	if d.FontPath != "" {
		size := d.FontSize
		if size == 0 {
			size = 24
		}
		data, err := os.ReadFile(d.FontPath)
		if err != nil {
			return fmt.Errorf("decorate: read font: %w", err)
		}
		fnt, err := truetype.Parse(data)
		if err != nil {
			return fmt.Errorf("decorate: parse font: %w", err)
		}
		dc.SetFontFace(truetype.NewFace(fnt, &truetype.Options{Size: size}))
	}

	w := float64(f.Image.Rect.Dx())
	h := float64(f.Image.Rect.Dy())

	y := float64(bannerMarginY)
	for _, line := range d.TopLeft {
		y = drawBanner(dc, line, bannerMarginX, y)
	}
	y = float64(bannerMarginY)
	for _, line := range d.TopRight {
		tw, _ := dc.MeasureString(line)
		y = drawBanner(dc, line, w-tw-bannerMarginX, y)
	}

	if len(d.Logos) > 0 {
		logoHeight := d.LogoHeight
		if logoHeight == 0 {
			logoHeight = 96
		}
		x := float64(logoMargin)
		ly := h - float64(logoHeight+logoMargin)

		if d.Credit != "" {
			_, th := dc.MeasureString(d.Credit)
			drawBanner(dc, d.Credit, x, ly-th-2*bannerPadY-logoSpacing)
		}
		for _, logo := range d.Logos {
			scaled := scaleToHeight(logo, logoHeight)
			dc.DrawImage(scaled, int(x), int(ly))
			x += float64(scaled.Rect.Dx() + logoSpacing)
		}
	}

	// gg works on its own RGBA copy; fold the result back into the frame.
	draw.Draw(f.Image, f.Image.Rect, dc.Image(), dc.Image().Bounds().Min, draw.Src)

	if d.OutputWidth > 0 && d.OutputHeight > 0 {
		f.Image = resizeCover(f.Image, d.OutputWidth, d.OutputHeight)
	}
	return nil
}

// resizeCover center-crops img to the target aspect ratio and resamples it
// to exactly width x height.
func resizeCover(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Rect
	cw, ch := b.Dx(), b.Dy()
	if cw*height > ch*width {
		cw = ch * width / height
	} else {
		ch = cw * height / width
	}
	crop := image.Rect(0, 0, cw, ch).Add(image.Pt(
		b.Min.X+(b.Dx()-cw)/2,
		b.Min.Y+(b.Dy()-ch)/2,
	))
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, crop, draw.Src, nil)
	return out
}

// drawBanner draws one line of white text on a translucent black box at
// (x, y) and returns the y coordinate below it.
func drawBanner(dc *gg.Context, text string, x, y float64) float64 {
	tw, th := dc.MeasureString(text)
	boxH := th + 2*bannerPadY

	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawRectangle(x, y, tw, boxH)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawString(text, x, y+th+bannerPadY-2)

	return y + boxH
}

// scaleToHeight resamples an image to the given height, preserving aspect.
func scaleToHeight(img image.Image, height int) *image.NRGBA {
	b := img.Bounds()
	width := b.Dx() * height / b.Dy()
	if width < 1 {
		width = 1
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, b, draw.Over, nil)
	return out
}
