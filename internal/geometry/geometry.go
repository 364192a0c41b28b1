// Package geometry maps the editor's rotation and normalized crop rectangle
// onto pixel operations.
//
// Rotation is clockwise in degrees with the image y-axis pointing down, and
// the rotated buffer always grows to fit the rotated bounds. Cropping is
// computed against the rotated image, never the source. Preview and export
// both call Apply, so they cannot disagree about which pixels survive.
package geometry

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// NormalizeDegrees folds any angle into [0, 360).
func NormalizeDegrees(degrees float64) float64 {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0
	}
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Rotate returns a new image holding src rotated clockwise by degrees about
// its center. Quarter turns are exact pixel permutations; any other angle is
// resampled and the uncovered corners are transparent.
func Rotate(src image.Image, degrees float64) *image.NRGBA {
	switch d := NormalizeDegrees(degrees); d {
	case 0:
		return imaging.Clone(src)
	case 90:
		return imaging.Rotate270(src)
	case 180:
		return imaging.Rotate180(src)
	case 270:
		return imaging.Rotate90(src)
	default:
		// imaging rotates counter-clockwise.
		return imaging.Rotate(src, 360-d, color.Transparent)
	}
}

// CropRect converts a normalized crop rectangle into pixels for an image of
// the given size.
//
// Offsets and extents are truncated toward zero, extents are at least one
// pixel, and the result is clamped to lie inside the image. Crop values are
// not required to be ordered: an inverted rectangle yields a 1-pixel extent
// on that axis.
func CropRect(width, height int, left, top, right, bottom float64) image.Rectangle {
	if width <= 0 || height <= 0 {
		return image.Rectangle{}
	}

	x := int(left * float64(width))
	y := int(top * float64(height))
	w := maxInt(1, int((right-left)*float64(width)))
	h := maxInt(1, int((bottom-top)*float64(height)))

	x = clamp(x, 0, width-1)
	y = clamp(y, 0, height-1)
	w = clamp(w, 1, width-x)
	h = clamp(h, 1, height-y)

	return image.Rect(x, y, x+w, y+h)
}

// Apply rotates src and then extracts the crop rectangle from the rotated
// image. The result is always a freshly allocated buffer.
func Apply(src image.Image, degrees, left, top, right, bottom float64) *image.NRGBA {
	rotated := Rotate(src, degrees)
	b := rotated.Bounds()
	rect := CropRect(b.Dx(), b.Dy(), left, top, right, bottom)
	if rect == b {
		return rotated
	}
	return imaging.Crop(rotated, rect)
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
