package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor extracts the color at a pixel coordinate.
//
// Coordinates are 0-based relative to the image bounds' origin. Colors are
// reported non-premultiplied, which is how the editor stores and adjusts
// pixels, so a sample of an exported image matches the values written to
// disk.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	var c color.NRGBA
	if nrgba, ok := img.(*image.NRGBA); ok {
		c = nrgba.NRGBAAt(px, py)
	} else {
		c = color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
	}

	return NewColorResult(c), nil
}

// NewColorResult describes c in every supported representation.
func NewColorResult(c color.NRGBA) *ColorResult {
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, s, l := cf.Hsl()
	hue := int(math.Round(h)) % 360

	return &ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: hue,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
