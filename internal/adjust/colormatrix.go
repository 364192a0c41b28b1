package adjust

import (
	"image/color"
	"math"
)

// Luma weights used for desaturation. These match the weights of the common
// mobile ColorMatrix.setSaturation implementation and sum to exactly 1.
const (
	LumaR = 0.213
	LumaG = 0.715
	LumaB = 0.072
)

// ColorMatrix is a 4x4 affine color transform in row-major order.
// See the package documentation for the layout.
type ColorMatrix [16]float64

// Identity returns the transform that leaves every pixel unchanged.
func Identity() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// BrightnessContrast returns the combined brightness/contrast matrix.
//
// Contrast scales each channel around mid-gray (128); brightness shifts
// every channel by brightness*255. Both land in the offset column:
//
//	offset = (1 - contrast) * 128 + brightness * 255
func BrightnessContrast(brightness, contrast float64) ColorMatrix {
	offset := (1-contrast)*128 + brightness*255
	return ColorMatrix{
		contrast, 0, 0, offset,
		0, contrast, 0, offset,
		0, 0, contrast, offset,
		0, 0, 0, 1,
	}
}

// Saturation returns a luminance-preserving saturation matrix.
// 1 is the identity, 0 maps every pixel to its luma, values above 1
// push colors away from gray.
func Saturation(s float64) ColorMatrix {
	inv := 1 - s
	r := LumaR * inv
	g := LumaG * inv
	b := LumaB * inv
	return ColorMatrix{
		r + s, g, b, 0,
		r, g + s, b, 0,
		r, g, b + s, 0,
		0, 0, 0, 1,
	}
}

// Warmth returns a pure-offset matrix that tints toward orange for positive
// values and toward blue for negative ones.
func Warmth(w float64) ColorMatrix {
	m := Identity()
	switch {
	case w > 0:
		m[3] = w * 50
		m[7] = w * 25
	case w < 0:
		m[11] = -w * 50
	}
	return m
}

// Concat returns m * n: the transform that applies n first and then m.
func (m ColorMatrix) Concat(n ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * n[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Build composes the editor adjustments into a single transform.
// Inputs are expected to be in range already; Build does not clamp.
func Build(brightness, contrast, saturation, warmth float64) ColorMatrix {
	return Warmth(warmth).
		Concat(BrightnessContrast(brightness, contrast)).
		Concat(Saturation(saturation))
}

// IsIdentity reports whether m leaves every pixel unchanged.
func (m ColorMatrix) IsIdentity() bool {
	return m == Identity()
}

// RowMajor4x5 expands m into the 20-element layout used by 4x5 color
// matrix filters (RGBA in, offset column last). Preview clients that
// apply the transform as a GPU or view filter consume this form.
func (m ColorMatrix) RowMajor4x5() [20]float64 {
	return [20]float64{
		m[0], m[1], m[2], 0, m[3],
		m[4], m[5], m[6], 0, m[7],
		m[8], m[9], m[10], 0, m[11],
		0, 0, 0, 1, 0,
	}
}

// Transform applies m to a single non-premultiplied color.
// Each output channel is rounded half away from zero and clamped to 0-255.
func (m ColorMatrix) Transform(c color.NRGBA) color.NRGBA {
	r := float64(c.R)
	g := float64(c.G)
	b := float64(c.B)
	return color.NRGBA{
		R: clampChannel(m[0]*r + m[1]*g + m[2]*b + m[3]),
		G: clampChannel(m[4]*r + m[5]*g + m[6]*b + m[7]),
		B: clampChannel(m[8]*r + m[9]*g + m[10]*b + m[11]),
		A: c.A,
	}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
