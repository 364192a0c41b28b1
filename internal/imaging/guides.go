package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultGuideColor is used when GuideOptions.LineColor is empty or invalid.
const DefaultGuideColor = "#FFFFFFCC"

// GuideOptions controls how crop guides are drawn.
type GuideOptions struct {
	// LineColor is "#RRGGBB" or "#RRGGBBAA".
	LineColor string

	// Dim darkens pixels outside the crop rectangle: 0 leaves them alone,
	// 1 turns them black. Values outside [0,1] are clamped.
	Dim float64

	// Thirds draws rule-of-thirds lines inside the crop rectangle.
	Thirds bool
}

// CropGuides renders the crop overlay a user sees while framing a photo.
//
// crop is in pixel coordinates relative to img's top-left corner and is
// clipped to the image. Pixels outside it are dimmed, its border is outlined,
// and with Thirds set the interior is split into a 3x3 grid. The source image
// is not modified.
func CropGuides(img image.Image, crop image.Rectangle, opts GuideOptions) *image.NRGBA {
	dst := imaging.Clone(img)
	bounds := dst.Bounds()
	crop = crop.Intersect(bounds)

	lineColor, err := parseGuideColor(opts.LineColor)
	if err != nil {
		lineColor, _ = parseGuideColor(DefaultGuideColor)
	}

	keep := 1 - clampUnit(opts.Dim)
	if keep < 1 {
		parallel.Line(bounds.Dy(), func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < bounds.Dx(); x++ {
					if image.Pt(x, y).In(crop) {
						continue
					}
					i := dst.PixOffset(x, y)
					dst.Pix[i+0] = uint8(float64(dst.Pix[i+0])*keep + 0.5)
					dst.Pix[i+1] = uint8(float64(dst.Pix[i+1])*keep + 0.5)
					dst.Pix[i+2] = uint8(float64(dst.Pix[i+2])*keep + 0.5)
				}
			}
		})
	}

	if crop.Empty() {
		return dst
	}

	// Border
	drawVLine(dst, crop.Min.X, crop.Min.Y, crop.Max.Y, lineColor)
	drawVLine(dst, crop.Max.X-1, crop.Min.Y, crop.Max.Y, lineColor)
	drawHLine(dst, crop.Min.Y, crop.Min.X, crop.Max.X, lineColor)
	drawHLine(dst, crop.Max.Y-1, crop.Min.X, crop.Max.X, lineColor)

	if opts.Thirds {
		w, h := crop.Dx(), crop.Dy()
		for i := 1; i <= 2; i++ {
			drawVLine(dst, crop.Min.X+w*i/3, crop.Min.Y, crop.Max.Y, lineColor)
			drawHLine(dst, crop.Min.Y+h*i/3, crop.Min.X, crop.Max.X, lineColor)
		}
	}

	return dst
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		blendPixel(img, x, y, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	for x := x0; x < x1; x++ {
		blendPixel(img, x, y, c)
	}
}

// blendPixel composites c over the pixel at (x,y), keeping the pixel's alpha.
func blendPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return
	}
	a := float64(c.A) / 255
	i := img.PixOffset(x, y)
	img.Pix[i+0] = uint8(float64(img.Pix[i+0])*(1-a) + float64(c.R)*a + 0.5)
	img.Pix[i+1] = uint8(float64(img.Pix[i+1])*(1-a) + float64(c.G)*a + 0.5)
	img.Pix[i+2] = uint8(float64(img.Pix[i+2])*(1-a) + float64(c.B)*a + 0.5)
}

func clampUnit(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseGuideColor reads "#RRGGBB" or "#RRGGBBAA" (the leading '#' is
// optional). A missing alpha byte means opaque.
func parseGuideColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid guide color %q: want #RRGGBB or #RRGGBBAA", hex)
	}

	c, err := colorful.Hex("#" + hex[:6])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid guide color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()

	a := uint64(255)
	if len(hex) == 8 {
		a, err = strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid guide color alpha %q: %w", hex[6:], err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}
