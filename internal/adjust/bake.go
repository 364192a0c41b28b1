package adjust

import (
	"image"

	"github.com/disintegration/imaging"
)

// Bake returns a new image with m applied to every pixel of img.
// The source is never modified. An identity transform still yields a copy,
// so callers can rely on the result never aliasing img.
func Bake(img image.Image, m ColorMatrix) *image.NRGBA {
	if m.IsIdentity() {
		return imaging.Clone(img)
	}
	return imaging.AdjustFunc(img, m.Transform)
}
