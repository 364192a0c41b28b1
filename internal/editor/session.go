package editor

import (
	"image"
	"reflect"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/photo-editor-mcp/internal/adjust"
	"github.com/ironsheep/photo-editor-mcp/internal/geometry"
)

// Session owns one source image, its current EditState and its History.
//
// The source buffer is private to the session: LoadImage copies its input,
// and every render or export allocates a new buffer, so nothing handed to
// or returned from a Session aliases session state.
type Session struct {
	source  *image.NRGBA
	state   EditState
	history *History
}

// NewSession returns a session with no image and default state.
func NewSession() *Session {
	return &Session{
		state:   DefaultState(),
		history: NewHistory(),
	}
}

// LoadImage replaces the source image, resets the state to defaults and
// clears the history. A nil image, including a typed nil pointer, or one
// with empty bounds unloads the session.
func (s *Session) LoadImage(img image.Image) {
	if isNilImage(img) || img.Bounds().Empty() {
		s.source = nil
	} else {
		s.source = imaging.Clone(img)
	}
	s.state = DefaultState()
	s.history.Reset()

	if s.source != nil {
		b := s.source.Bounds()
		Logger().Debug("image loaded", "width", b.Dx(), "height", b.Dy())
	} else {
		Logger().Debug("image unloaded")
	}
}

func isNilImage(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// HasImage reports whether a source image is loaded.
func (s *Session) HasImage() bool {
	return s.source != nil
}

// ImageSize returns the source dimensions before any rotation or crop.
func (s *Session) ImageSize() (width, height int, ok bool) {
	if s.source == nil {
		return 0, 0, false
	}
	b := s.source.Bounds()
	return b.Dx(), b.Dy(), true
}

// State returns the current edit state.
func (s *Session) State() EditState {
	return s.state
}

// SetAdjustmentField sets one field without recording a checkpoint. It is
// the path for continuous slider drags.
func (s *Session) SetAdjustmentField(f Field, v float64) {
	s.state = s.state.With(f, v)
}

// CommitAdjustment checkpoints the current state and then sets f, so the
// change can be undone as one step. Hosts call it when a drag ends.
func (s *Session) CommitAdjustment(f Field, v float64) {
	s.checkpoint("commit " + f.String())
	s.state = s.state.With(f, v)
}

// RotateQuarterTurn checkpoints and then rotates a further 90 degrees
// clockwise.
func (s *Session) RotateQuarterTurn() {
	s.checkpoint("rotate")
	s.state = s.state.With(Rotation, s.state.Rotation()+90)
}

// SetCrop sets all four crop edges, each clamped into [0, 1] on its own.
// No checkpoint is recorded.
func (s *Session) SetCrop(left, top, right, bottom float64) {
	s.state = s.state.WithCrop(left, top, right, bottom)
}

// ResetAdjustments checkpoints and restores every field to its default.
func (s *Session) ResetAdjustments() {
	s.checkpoint("reset")
	s.state = DefaultState()
}

// Undo restores the most recent checkpoint. It reports false when there
// is nothing to undo.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo(s.state)
	if !ok {
		return false
	}
	s.state = prev
	Logger().Debug("undo", "state", s.state.String(), "undo_depth", s.history.UndoDepth())
	return true
}

// Redo re-applies the most recently undone state. It reports false when
// there is nothing to redo.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo(s.state)
	if !ok {
		return false
	}
	s.state = next
	Logger().Debug("redo", "state", s.state.String(), "redo_depth", s.history.RedoDepth())
	return true
}

// CanUndo reports whether Undo would change the state.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change the state.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// UndoDepth returns the number of undoable checkpoints.
func (s *Session) UndoDepth() int { return s.history.UndoDepth() }

// RedoDepth returns the number of redoable states.
func (s *Session) RedoDepth() int { return s.history.RedoDepth() }

func (s *Session) checkpoint(reason string) {
	s.history.Record(s.state)
	Logger().Debug("checkpoint", "reason", reason, "undo_depth", s.history.UndoDepth())
}

// Preview is a rendered frame for live display. Pixels carry rotation and
// crop; Transform is left for the caller to apply as a filter.
type Preview struct {
	Pixels    *image.NRGBA
	Transform adjust.ColorMatrix
}

// Flatten bakes the transform into a new image. The result equals what
// ExportFlattened returns for the same state.
func (p *Preview) Flatten() *image.NRGBA {
	return adjust.Bake(p.Pixels, p.Transform)
}

// RenderPreview applies the current geometry to a fresh copy of the source
// and returns it together with the unbaked color transform.
func (s *Session) RenderPreview() (*Preview, error) {
	if s.source == nil {
		return nil, noImage("preview")
	}
	l, t, r, b := s.state.Crop()
	return &Preview{
		Pixels:    geometry.Apply(s.source, s.state.Rotation(), l, t, r, b),
		Transform: s.state.ColorTransform(),
	}, nil
}

// CropFrame is the rotated but uncropped image with the crop rectangle in
// its pixel space. Crop editors draw handles against this frame.
type CropFrame struct {
	Pixels    *image.NRGBA
	Crop      image.Rectangle
	Transform adjust.ColorMatrix
}

// RenderCropFrame returns the rotated source and the pixel crop rectangle
// that preview and export would extract from it.
func (s *Session) RenderCropFrame() (*CropFrame, error) {
	if s.source == nil {
		return nil, noImage("crop frame")
	}
	rotated := geometry.Rotate(s.source, s.state.Rotation())
	b := rotated.Bounds()
	l, t, r, bt := s.state.Crop()
	return &CropFrame{
		Pixels:    rotated,
		Crop:      geometry.CropRect(b.Dx(), b.Dy(), l, t, r, bt),
		Transform: s.state.ColorTransform(),
	}, nil
}
