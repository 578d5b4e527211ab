package compose

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name   string
		bw, bh int
		fw, fh int
		want   image.Point
	}{
		{"centered", 100, 100, 20, 20, image.Pt(40, 40)},
		{"odd sizes floor", 101, 101, 20, 21, image.Pt(40, 40)},
		{"half then subtract", 100, 100, 21, 21, image.Pt(40, 40)},
		{"same size", 64, 48, 64, 48, image.Pt(0, 0)},
		{"oversized clamps", 50, 50, 60, 60, image.Pt(0, 0)},
		{"oversized on one axis", 100, 50, 20, 80, image.Pt(40, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offset(image.Rect(0, 0, tt.bw, tt.bh), image.Rect(0, 0, tt.fw, tt.fh))
			if got != tt.want {
				t.Errorf("Offset = %v, want %v", got, tt.want)
			}
		})
	}
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	transparent = color.NRGBA{}
)

func TestComposite_Centered(t *testing.T) {
	bg := solid(100, 100, red)
	fg := solid(20, 20, blue)

	out := Composite(bg, fg)

	if out.Bounds() != bg.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), bg.Bounds())
	}
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{39, 39, red},
		{40, 40, blue},
		{59, 59, blue},
		{60, 60, red},
		{0, 0, red},
	}
	for _, c := range checks {
		if got := out.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}

	if got := bg.NRGBAAt(50, 50); got != red {
		t.Errorf("background mutated: pixel (50,50) = %v", got)
	}
}

func TestComposite_Alpha(t *testing.T) {
	bg := solid(10, 10, red)
	fg := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	fg.SetNRGBA(0, 0, transparent)
	fg.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 128})

	out := Composite(bg, fg)
	at := Offset(bg.Bounds(), fg.Bounds())

	if got := out.NRGBAAt(at.X, at.Y); got != red {
		t.Errorf("transparent foreground pixel changed background: %v", got)
	}

	blended := out.NRGBAAt(at.X+1, at.Y)
	if blended.A != 255 {
		t.Errorf("blended alpha = %d, want 255", blended.A)
	}
	if blended.R < 120 || blended.R > 135 || blended.B < 120 || blended.B > 135 {
		t.Errorf("blended pixel = %v, want roughly half red half blue", blended)
	}
}

func TestComposite_OversizedForeground(t *testing.T) {
	bg := solid(50, 50, red)
	fg := solid(60, 60, blue)
	fg.SetNRGBA(49, 49, color.NRGBA{G: 255, A: 255})
	fg.SetNRGBA(55, 55, color.NRGBA{G: 255, A: 255})

	out := Composite(bg, fg)

	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 50 {
		t.Fatalf("bounds = %v, want 50x50", out.Bounds())
	}
	if got := out.NRGBAAt(0, 0); got != blue {
		t.Errorf("pixel (0,0) = %v, want foreground", got)
	}
	if got := out.NRGBAAt(49, 49); got.G != 255 {
		t.Errorf("pixel (49,49) = %v, want the foreground's (49,49)", got)
	}
}

func TestComposite_OffsetBounds(t *testing.T) {
	bg := solid(30, 30, red).SubImage(image.Rect(10, 10, 30, 30))
	fg := solid(2, 2, blue)

	out := Composite(bg, fg)

	// Clone rebases to the origin: a 20x20 canvas with fg at (9,9).
	if out.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.NRGBAAt(9, 9); got != blue {
		t.Errorf("pixel (9,9) = %v, want foreground", got)
	}
	if got := out.NRGBAAt(8, 8); got != red {
		t.Errorf("pixel (8,8) = %v, want background", got)
	}
}
