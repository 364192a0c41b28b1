package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// EncodedImage carries a rendered image across the wire as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG. A scale other than 1 resizes the
// image first with a Lanczos filter; it is meant for thumbnails and never
// applies to export.
func EncodePNG(img image.Image, scale float64) (*EncodedImage, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot encode empty image")
	}

	if scale != 1.0 && scale > 0 {
		newWidth := maxInt(1, int(float64(bounds.Dx())*scale))
		newHeight := maxInt(1, int(float64(bounds.Dy())*scale))
		img = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
