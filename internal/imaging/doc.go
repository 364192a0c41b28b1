// Package imaging provides the file and pixel plumbing around the editor.
//
// It decodes source photos (with a cache for repeated opens), encodes
// rendered frames as base64 PNG for transport, samples colors, computes
// histograms and draws crop guides. The editing model itself lives in
// internal/editor; nothing here knows about adjustment state or history.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and relative to the
// image's top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, Min is inclusive and Max is exclusive
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are shared
// and must be treated as read-only. All other functions are stateless and
// never modify their input.
//
// # Color Representation
//
// Colors are reported non-premultiplied in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-359), Saturation (0-100), Lightness (0-100)
package imaging
