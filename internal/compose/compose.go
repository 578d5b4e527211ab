// Package compose places a foreground image centered on a background image.
package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// Offset returns the top-left point at which fg is centered on bg.
//
// Each axis is bg/2 - fg/2 with truncating division. A foreground larger than
// the background on an axis would give a negative offset; it is clamped to 0,
// so the oversized foreground starts at the canvas edge and whatever extends
// past the canvas is dropped.
func Offset(bg, fg image.Rectangle) image.Point {
	x := bg.Dx()/2 - fg.Dx()/2
	y := bg.Dy()/2 - fg.Dy()/2
	return image.Pt(max(x, 0), max(y, 0))
}

// Composite returns a copy of bg with fg alpha-blended on top at Offset.
// Neither input is modified.
func Composite(bg, fg image.Image) *image.NRGBA {
	at := Offset(bg.Bounds(), fg.Bounds()).Add(bg.Bounds().Min)
	return imaging.Overlay(bg, fg, at, 1.0)
}
