// Package adjust builds and applies the color transform behind the editor's
// brightness, contrast, saturation and warmth sliders.
//
// # Color Transform
//
// A ColorMatrix is a 4x4 affine matrix over homogeneous RGB in the 0-255
// range, stored row-major:
//
//	[R']   [m0  m1  m2  m3 ]   [R]
//	[G'] = [m4  m5  m6  m7 ] * [G]
//	[B']   [m8  m9  m10 m11]   [B]
//	[1 ]   [0   0   0   1  ]   [1]
//
// The fourth column is the per-channel offset. Alpha is never touched by any
// of the editor adjustments, so it passes through unchanged.
//
// # Composition Order
//
// Build composes the three component matrices in a fixed order: saturation
// is applied to a pixel first, then brightness/contrast, then warmth. In
// matrix terms the result is W * B * S. Changing the order changes output
// pixels, so preview and export must both go through Build.
//
// # Baking
//
// Bake writes a transform into a fresh *image.NRGBA. Rounding and clamping
// happen in Transform, which is the only per-pixel code path, so a preview
// flattened on the client side and an exported image agree bit-for-bit.
package adjust
