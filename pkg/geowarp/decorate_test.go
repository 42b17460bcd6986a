package geowarp

import (
	"image"
	"image/color"
	"testing"
)

func TestDecorateBanners(t *testing.T) {
	frame := solidFrame(200, 120, testBox, color.NRGBA{R: 10, G: 10, B: 10, A: 255})

	err := Decorate(frame, Decoration{
		TopLeft:  []string{" GOES-17 2018-12-24 03:00Z ", " OPC Pacific 00Z "},
		TopRight: []string{" preliminary "},
	})
	if err != nil {
		t.Fatalf("decorate failed: %v", err)
	}

	// The banner area must differ from the untouched background.
	changed := false
	for row := 0; row < 40 && !changed; row++ {
		for col := 0; col < 200; col++ {
			if frame.Image.NRGBAAt(col, row).R != 10 {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("banners should have drawn over the top rows")
	}

	// Decoration stays out of the frame center.
	if got := frame.Image.NRGBAAt(100, 60); got.R != 10 {
		t.Errorf("center pixel = %v, want untouched background", got)
	}
}

func TestDecorateLogosAndCredit(t *testing.T) {
	frame := solidFrame(300, 200, testBox, color.NRGBA{R: 10, G: 10, B: 10, A: 255})

	logo := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(logo.Pix); i += 4 {
		logo.Pix[i] = 200
		logo.Pix[i+3] = 255
	}

	err := Decorate(frame, Decoration{
		Credit:     " Imagery: NOAA ",
		Logos:      []image.Image{logo},
		LogoHeight: 32,
	})
	if err != nil {
		t.Fatalf("decorate failed: %v", err)
	}

	// The logo row sits at the bottom-left, scaled to 32 px.
	found := false
	for row := 200 - 32 - logoMargin; row < 200-logoMargin && !found; row++ {
		for col := logoMargin; col < logoMargin+32; col++ {
			if frame.Image.NRGBAAt(col, row).R > 150 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("logo pixels should appear in the bottom-left row")
	}
}

func TestDecorateOutputSize(t *testing.T) {
	// A 4:3 frame, top half red and bottom half blue. Cropping to 16:9
	// trims rows symmetrically, so the halves survive the resample.
	frame := solidFrame(320, 240, testBox, color.NRGBA{R: 200, A: 255})
	for row := 120; row < 240; row++ {
		for col := 0; col < 320; col++ {
			frame.Image.SetNRGBA(col, row, color.NRGBA{B: 200, A: 255})
		}
	}

	err := Decorate(frame, Decoration{
		OutputWidth:  160,
		OutputHeight: 90,
	})
	if err != nil {
		t.Fatalf("decorate failed: %v", err)
	}

	if got := frame.Image.Bounds(); got.Dx() != 160 || got.Dy() != 90 {
		t.Fatalf("output size = %v, want 160x90", got)
	}
	if got := frame.Image.NRGBAAt(80, 10); got.R < 150 || got.B > 50 {
		t.Errorf("top pixel = %v, want red", got)
	}
	if got := frame.Image.NRGBAAt(80, 80); got.B < 150 || got.R > 50 {
		t.Errorf("bottom pixel = %v, want blue", got)
	}
}

func TestDecorateZeroOutputKeepsSize(t *testing.T) {
	frame := solidFrame(64, 48, testBox, color.NRGBA{A: 255})
	if err := Decorate(frame, Decoration{TopLeft: []string{"x"}}); err != nil {
		t.Fatalf("decorate failed: %v", err)
	}
	if got := frame.Image.Bounds(); got.Dx() != 64 || got.Dy() != 48 {
		t.Errorf("size changed to %v without an output size", got)
	}
}

func TestDecorateMissingFont(t *testing.T) {
	frame := solidFrame(64, 64, testBox, color.NRGBA{A: 255})
	err := Decorate(frame, Decoration{
		TopLeft:  []string{"x"},
		FontPath: "/nonexistent/font.ttf",
	})
	if err == nil {
		t.Error("missing font file should fail")
	}
}

func TestDecorateNilFrame(t *testing.T) {
	if err := Decorate(nil, Decoration{}); err == nil {
		t.Error("nil frame should fail")
	}
}
