package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in      string
		want    Kernel
		wantErr bool
	}{
		{"", KernelCatmullRom, false},
		{"nearest", KernelNearest, false},
		{"BiLinear", KernelBilinear, false},
		{"catmullrom", KernelCatmullRom, false},
		{"lanczos", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKernel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKernel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKernel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanvas_NoSize(t *testing.T) {
	bg := solid(7, 5, red)
	if got := Canvas(bg, 0, DefaultKernel); got != image.Image(bg) {
		t.Fatal("Canvas with size 0 should return the background unchanged")
	}
}

func TestCanvas_CoverAndCrop(t *testing.T) {
	// Left third red, middle blue, right third red: the centered square is all blue.
	bg := solid(30, 10, red)
	for y := 0; y < 10; y++ {
		for x := 10; x < 20; x++ {
			bg.SetNRGBA(x, y, blue)
		}
	}

	out := Canvas(bg, 20, KernelNearest)

	if out.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bounds = %v, want 20x20", out.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {19, 19}, {10, 10}} {
		if got := color.NRGBAModel.Convert(out.At(p.X, p.Y)).(color.NRGBA); got != blue {
			t.Errorf("pixel %v = %v, want blue", p, got)
		}
	}
}

func TestCanvas_AgreesWithFill(t *testing.T) {
	// Tall image: top and bottom thirds red, middle blue.
	bg := solid(12, 36, red)
	for y := 12; y < 24; y++ {
		for x := 0; x < 12; x++ {
			bg.SetNRGBA(x, y, blue)
		}
	}
	// Shift the origin to check the source rectangle is honored.
	shifted := image.NewNRGBA(image.Rect(5, 7, 17, 43))
	for y := 0; y < 36; y++ {
		for x := 0; x < 12; x++ {
			shifted.SetNRGBA(x+5, y+7, bg.NRGBAAt(x, y))
		}
	}

	want := imaging.Fill(bg, 24, 24, imaging.Center, imaging.NearestNeighbor)
	for name, src := range map[string]image.Image{"origin": bg, "shifted": shifted} {
		got := Canvas(src, 24, KernelNearest)
		if got.Bounds() != want.Bounds() {
			t.Fatalf("%s: bounds = %v, want %v", name, got.Bounds(), want.Bounds())
		}
		for y := 0; y < 24; y++ {
			for x := 0; x < 24; x++ {
				g := color.NRGBAModel.Convert(got.At(x, y)).(color.NRGBA)
				if w := want.NRGBAAt(x, y); g != w {
					t.Fatalf("%s: pixel (%d,%d) = %v, imaging.Fill gives %v", name, x, y, g, w)
				}
			}
		}
	}
}

func TestCoverRect(t *testing.T) {
	tests := []struct {
		in   image.Rectangle
		want image.Rectangle
	}{
		{image.Rect(0, 0, 30, 10), image.Rect(10, 0, 20, 10)},
		{image.Rect(0, 0, 10, 31), image.Rect(0, 10, 10, 20)},
		{image.Rect(5, 5, 15, 15), image.Rect(5, 5, 15, 15)},
	}
	for _, tt := range tests {
		if got := coverRect(tt.in); got != tt.want {
			t.Errorf("coverRect(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
