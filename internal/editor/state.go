package editor

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/photo-editor-mcp/internal/adjust"
	"github.com/ironsheep/photo-editor-mcp/internal/geometry"
)

// Field names one scalar of an EditState.
type Field int

const (
	Brightness Field = iota
	Contrast
	Saturation
	Warmth
	Rotation
	CropLeft
	CropTop
	CropRight
	CropBottom
)

var fieldNames = [...]string{
	Brightness: "brightness",
	Contrast:   "contrast",
	Saturation: "saturation",
	Warmth:     "warmth",
	Rotation:   "rotation",
	CropLeft:   "crop_left",
	CropTop:    "crop_top",
	CropRight:  "crop_right",
	CropBottom: "crop_bottom",
}

// String returns the snake_case name used on the wire.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField resolves a field name, case-insensitively.
func ParseField(name string) (Field, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, fn := range fieldNames {
		if fn == n {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field: %s", name)
}

// ParseAdjustment resolves the name of one of the four color adjustments.
func ParseAdjustment(name string) (Field, error) {
	f, err := ParseField(name)
	if err != nil || !f.IsAdjustment() {
		return 0, fmt.Errorf("unknown adjustment: %s", name)
	}
	return f, nil
}

// IsAdjustment reports whether f is a color adjustment rather than geometry.
func (f Field) IsAdjustment() bool {
	return f >= Brightness && f <= Warmth
}

// AdjustmentFields lists the color adjustments in display order.
func AdjustmentFields() []Field {
	return []Field{Brightness, Contrast, Saturation, Warmth}
}

// Range returns the inclusive bounds for f. Rotation reports [0, 360) as
// (0, 360); it is folded rather than clamped.
func (f Field) Range() (min, max float64) {
	switch f {
	case Brightness, Warmth:
		return -1, 1
	case Contrast:
		return 0.5, 1.5
	case Saturation:
		return 0, 2
	case Rotation:
		return 0, 360
	default:
		return 0, 1
	}
}

// EditState is an immutable snapshot of every edit parameter.
// The zero value is not meaningful; start from DefaultState.
type EditState struct {
	brightness float64
	contrast   float64
	saturation float64
	warmth     float64
	rotation   float64
	cropLeft   float64
	cropTop    float64
	cropRight  float64
	cropBottom float64
}

// DefaultState returns the state of a freshly loaded image.
func DefaultState() EditState {
	return EditState{
		contrast:   1,
		saturation: 1,
		cropRight:  1,
		cropBottom: 1,
	}
}

// Brightness returns the brightness offset in [-1, 1].
func (s EditState) Brightness() float64 { return s.brightness }

// Contrast returns the contrast scale in [0.5, 1.5].
func (s EditState) Contrast() float64 { return s.contrast }

// Saturation returns the saturation factor in [0, 2].
func (s EditState) Saturation() float64 { return s.saturation }

// Warmth returns the warmth shift in [-1, 1].
func (s EditState) Warmth() float64 { return s.warmth }

// Rotation returns the clockwise rotation in degrees, in [0, 360).
func (s EditState) Rotation() float64 { return s.rotation }

// Crop returns the normalized crop edges.
func (s EditState) Crop() (left, top, right, bottom float64) {
	return s.cropLeft, s.cropTop, s.cropRight, s.cropBottom
}

// Value returns the value of f.
func (s EditState) Value(f Field) float64 {
	switch f {
	case Brightness:
		return s.brightness
	case Contrast:
		return s.contrast
	case Saturation:
		return s.saturation
	case Warmth:
		return s.warmth
	case Rotation:
		return s.rotation
	case CropLeft:
		return s.cropLeft
	case CropTop:
		return s.cropTop
	case CropRight:
		return s.cropRight
	case CropBottom:
		return s.cropBottom
	}
	return 0
}

// With returns a copy of s with f set to v, clamped into f's range.
// Rotation is folded into [0, 360). NaN leaves the state unchanged.
func (s EditState) With(f Field, v float64) EditState {
	if math.IsNaN(v) {
		return s
	}
	if f == Rotation {
		s.rotation = geometry.NormalizeDegrees(v)
		return s
	}

	min, max := f.Range()
	v = math.Max(min, math.Min(max, v))

	switch f {
	case Brightness:
		s.brightness = v
	case Contrast:
		s.contrast = v
	case Saturation:
		s.saturation = v
	case Warmth:
		s.warmth = v
	case CropLeft:
		s.cropLeft = v
	case CropTop:
		s.cropTop = v
	case CropRight:
		s.cropRight = v
	case CropBottom:
		s.cropBottom = v
	}
	return s
}

// WithCrop sets all four crop edges, each clamped on its own.
func (s EditState) WithCrop(left, top, right, bottom float64) EditState {
	return s.With(CropLeft, left).
		With(CropTop, top).
		With(CropRight, right).
		With(CropBottom, bottom)
}

// ColorTransform derives the color matrix for the current adjustments.
func (s EditState) ColorTransform() adjust.ColorMatrix {
	return adjust.Build(s.brightness, s.contrast, s.saturation, s.warmth)
}

// IsDefault reports whether s equals DefaultState.
func (s EditState) IsDefault() bool {
	return s == DefaultState()
}

// stateJSON is the wire form of EditState.
type stateJSON struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Warmth     float64 `json:"warmth"`
	Rotation   float64 `json:"rotation"`
	CropLeft   float64 `json:"crop_left"`
	CropTop    float64 `json:"crop_top"`
	CropRight  float64 `json:"crop_right"`
	CropBottom float64 `json:"crop_bottom"`
}

// MarshalJSON encodes the state with snake_case field names.
func (s EditState) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		Brightness: s.brightness,
		Contrast:   s.contrast,
		Saturation: s.saturation,
		Warmth:     s.warmth,
		Rotation:   s.rotation,
		CropLeft:   s.cropLeft,
		CropTop:    s.cropTop,
		CropRight:  s.cropRight,
		CropBottom: s.cropBottom,
	})
}

// String is a compact form for logs.
func (s EditState) String() string {
	return fmt.Sprintf("b=%.3g c=%.3g s=%.3g w=%.3g rot=%g crop=(%.3g,%.3g,%.3g,%.3g)",
		s.brightness, s.contrast, s.saturation, s.warmth, s.rotation,
		s.cropLeft, s.cropTop, s.cropRight, s.cropBottom)
}
