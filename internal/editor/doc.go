// Package editor holds the non-destructive editing state of a single photo:
// the current EditState, its undo/redo history, and the render and export
// paths that turn that state into pixels.
//
// # Edit State
//
// EditState is an immutable value. Every change goes through EditState.With,
// which clamps the new value into the field's range, so a state can never
// hold an out-of-range value and a snapshot pushed onto the history can never
// be changed behind its back.
//
// Ranges:
//   - Brightness: -1 to 1 (default 0)
//   - Contrast: 0.5 to 1.5 (default 1)
//   - Saturation: 0 to 2 (default 1)
//   - Warmth: -1 to 1 (default 0)
//   - Rotation: degrees clockwise, folded into [0, 360) (default 0)
//   - Crop left/top/right/bottom: 0 to 1 each (default 0, 0, 1, 1)
//
// Crop edges are clamped independently. No ordering between left/right or
// top/bottom is enforced; the geometry stage turns an inverted edge pair
// into a 1-pixel extent.
//
// # History
//
// History is a linear undo/redo timeline. Recording a checkpoint clears the
// redo stack, and the undo stack keeps at most MaxUndoDepth entries, evicting
// the oldest first. The redo stack has no cap of its own; it can only be
// filled by undo, so it never holds more than MaxUndoDepth entries either.
//
// Only discrete actions checkpoint: quarter-turn rotation, reset, and
// CommitAdjustment. SetAdjustmentField and SetCrop are meant for continuous
// slider and handle drags and do not.
//
// # Rendering
//
// RenderPreview and ExportFlattened share the same geometry and color code.
// The preview leaves the color transform unbaked so the caller can apply it
// as a live filter; Preview.Flatten bakes it and matches ExportFlattened
// bit-for-bit.
//
// # Thread Safety
//
// A Session is not safe for concurrent use; the host serializes access.
// ExportJob snapshots are immutable and may be run on any goroutine.
package editor
