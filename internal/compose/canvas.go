package compose

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Kernel selects the interpolator used when a background is scaled to the
// requested canvas size.
type Kernel string

const (
	KernelNearest    Kernel = "nearest"
	KernelBilinear   Kernel = "bilinear"
	KernelCatmullRom Kernel = "catmullrom"
)

// DefaultKernel is used when no filter is configured.
const DefaultKernel = KernelCatmullRom

// ParseKernel resolves a kernel name case-insensitively. The empty name
// resolves to DefaultKernel.
func ParseKernel(name string) (Kernel, error) {
	switch k := Kernel(strings.ToLower(strings.TrimSpace(name))); k {
	case "":
		return DefaultKernel, nil
	case KernelNearest, KernelBilinear, KernelCatmullRom:
		return k, nil
	default:
		return "", fmt.Errorf("unknown filter %q (valid: nearest, bilinear, catmullrom)", name)
	}
}

func (k Kernel) interpolator() draw.Interpolator {
	switch k {
	case KernelNearest:
		return draw.NearestNeighbor
	case KernelBilinear:
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}

// Canvas returns the background to composite onto. With size <= 0 that is bg
// itself. Otherwise bg is scaled to cover a size x size square and cropped to
// it around the center, so the aspect ratio is kept.
func Canvas(bg image.Image, size int, kernel Kernel) image.Image {
	if size <= 0 {
		return bg
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	kernel.interpolator().Scale(dst, dst.Bounds(), bg, coverRect(bg.Bounds()), draw.Src, nil)
	return dst
}

// coverRect is the largest centered square inside b.
func coverRect(b image.Rectangle) image.Rectangle {
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}
