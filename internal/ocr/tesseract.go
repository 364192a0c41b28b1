package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a word with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the image.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the results of text extraction from an image.
type OCRResult struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Regions contains individual words with their bounding boxes.
	// May be empty if bounding box extraction fails.
	Regions []TextRegion `json:"regions"`
}

// ExtractText runs OCR over an in-memory image.
//
// The image is handed to Tesseract as PNG bytes, so the rendered frame of an
// editing session can be read without touching disk. language is a Tesseract
// code such as "eng"; empty means DefaultLanguage. If word-level bounding
// boxes cannot be extracted, FullText is still returned with no Regions.
func ExtractText(img image.Image, language string) (*OCRResult, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("cannot read text from empty image")
	}
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{
			FullText: text,
			Regions:  []TextRegion{},
		}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &OCRResult{
		FullText: text,
		Regions:  regions,
	}, nil
}

// ExtractTextFromRegion runs OCR over part of an image.
//
// r is in pixel coordinates relative to img's top-left corner and is clipped
// to the image. Returned bounding boxes are translated back into the
// coordinates of the full image.
func ExtractTextFromRegion(img image.Image, r image.Rectangle, language string) (*OCRResult, error) {
	origin := img.Bounds().Min
	r = r.Add(origin).Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("region is outside the image")
	}

	result, err := ExtractText(imaging.Crop(img, r), language)
	if err != nil {
		return nil, err
	}

	offsetRegions(result.Regions, r.Min.Sub(origin))
	return result, nil
}

// offsetRegions translates word bounds by d.
func offsetRegions(regions []TextRegion, d image.Point) {
	for i := range regions {
		regions[i].Bounds.X1 += d.X
		regions[i].Bounds.Y1 += d.Y
		regions[i].Bounds.X2 += d.X
		regions[i].Bounds.Y2 += d.Y
	}
}
