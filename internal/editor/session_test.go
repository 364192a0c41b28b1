package editor

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

// createPatternImage creates an image where every pixel differs
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7),
				G: uint8(y * 11),
				B: uint8(x*y + 30),
				A: 255,
			})
		}
	}
	return img
}

func equalPixels(a, b *image.NRGBA) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.NRGBAAt(a.Bounds().Min.X+x, a.Bounds().Min.Y+y) != b.NRGBAAt(b.Bounds().Min.X+x, b.Bounds().Min.Y+y) {
				return false
			}
		}
	}
	return true
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	if s.HasImage() {
		t.Error("new session should have no image")
	}
	if !s.State().IsDefault() {
		t.Errorf("new session state = %v, want defaults", s.State())
	}
	if _, _, ok := s.ImageSize(); ok {
		t.Error("ImageSize should report no image")
	}
}

func TestSession_AdjustmentThenRotateThenUndo(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(8, 6))

	s.SetAdjustmentField(Brightness, 0.5)
	if s.State().Brightness() != 0.5 {
		t.Fatalf("brightness = %v, want 0.5", s.State().Brightness())
	}
	if s.CanUndo() {
		t.Fatal("slider adjustment must not record a checkpoint")
	}

	s.RotateQuarterTurn()
	if s.State().Rotation() != 90 {
		t.Fatalf("rotation = %v, want 90", s.State().Rotation())
	}
	if s.UndoDepth() != 1 {
		t.Fatalf("UndoDepth = %d, want 1", s.UndoDepth())
	}

	if !s.Undo() {
		t.Fatal("Undo returned false")
	}
	st := s.State()
	if st.Brightness() != 0.5 || st.Rotation() != 0 {
		t.Errorf("after undo: brightness=%v rotation=%v, want 0.5 and 0", st.Brightness(), st.Rotation())
	}

	if !s.Redo() {
		t.Fatal("Redo returned false")
	}
	if s.State().Rotation() != 90 || s.State().Brightness() != 0.5 {
		t.Errorf("after redo: %v", s.State())
	}
}

func TestSession_FourQuarterTurnsRestoreRotation(t *testing.T) {
	s := NewSession()
	start := s.State().Rotation()
	for i := 0; i < 4; i++ {
		s.RotateQuarterTurn()
	}
	if got := s.State().Rotation(); got != start {
		t.Errorf("rotation after four quarter turns = %v, want %v", got, start)
	}
	if s.UndoDepth() != 4 {
		t.Errorf("UndoDepth = %d, want 4", s.UndoDepth())
	}
}

func TestSession_SetCropClamps(t *testing.T) {
	s := NewSession()
	s.SetCrop(-0.2, 0.1, 1.5, 0.9)

	l, top, r, b := s.State().Crop()
	if l != 0 || top != 0.1 || r != 1 || b != 0.9 {
		t.Errorf("crop = (%v, %v, %v, %v), want (0, 0.1, 1, 0.9)", l, top, r, b)
	}
	if s.CanUndo() {
		t.Error("SetCrop must not record a checkpoint")
	}
}

func TestSession_CommitAdjustmentIsUndoable(t *testing.T) {
	s := NewSession()
	s.SetAdjustmentField(Contrast, 1.2)
	s.CommitAdjustment(Saturation, 0)

	if s.State().Saturation() != 0 {
		t.Fatalf("saturation = %v, want 0", s.State().Saturation())
	}
	s.Undo()
	if s.State().Saturation() != 1 || s.State().Contrast() != 1.2 {
		t.Errorf("after undo: %v", s.State())
	}
}

func TestSession_ResetAdjustments(t *testing.T) {
	s := NewSession()
	s.SetAdjustmentField(Warmth, -0.6)
	s.SetCrop(0.1, 0.1, 0.9, 0.9)
	s.RotateQuarterTurn()

	s.ResetAdjustments()
	if !s.State().IsDefault() {
		t.Fatalf("after reset: %v", s.State())
	}

	s.Undo()
	if s.State().Warmth() != -0.6 || s.State().Rotation() != 90 {
		t.Errorf("reset should be undoable, got %v", s.State())
	}
}

func TestSession_NewActionAfterUndoClearsRedo(t *testing.T) {
	s := NewSession()
	s.RotateQuarterTurn()
	s.RotateQuarterTurn()
	s.Undo()
	if !s.CanRedo() {
		t.Fatal("redo should be available")
	}

	s.RotateQuarterTurn()
	if s.CanRedo() {
		t.Error("new checkpoint after undo must clear redo")
	}
	if s.Redo() {
		t.Error("Redo should be a no-op")
	}
}

func TestSession_UndoRedoEmptyAreNoOps(t *testing.T) {
	s := NewSession()
	s.SetAdjustmentField(Brightness, 0.3)
	before := s.State()

	if s.Undo() {
		t.Error("Undo on empty history should return false")
	}
	if s.Redo() {
		t.Error("Redo on empty history should return false")
	}
	if s.State() != before {
		t.Errorf("state changed by no-op: %v", s.State())
	}
}

func TestSession_LoadImageResets(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(4, 4))
	s.SetAdjustmentField(Brightness, 0.4)
	s.RotateQuarterTurn()
	s.RotateQuarterTurn()
	s.Undo()

	s.LoadImage(createPatternImage(10, 5))

	if !s.State().IsDefault() {
		t.Errorf("state after load = %v, want defaults", s.State())
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("history should be cleared on load")
	}
	if w, h, ok := s.ImageSize(); !ok || w != 10 || h != 5 {
		t.Errorf("ImageSize = %d, %d, %v", w, h, ok)
	}
}

func TestSession_LoadImageCopiesSource(t *testing.T) {
	src := createPatternImage(6, 6)
	s := NewSession()
	s.LoadImage(src)

	before, err := s.ExportFlattened()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	for i := range src.Pix {
		src.Pix[i] = 0
	}

	after, err := s.ExportFlattened()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !equalPixels(before, after) {
		t.Error("mutating the caller's buffer changed the session source")
	}
}

func TestSession_LoadNilUnloads(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(4, 4))
	s.LoadImage(nil)
	if s.HasImage() {
		t.Error("LoadImage(nil) should unload")
	}
}

func TestSession_LoadUnusableImage(t *testing.T) {
	var typedNil *image.NRGBA

	tests := []struct {
		name string
		img  image.Image
	}{
		{"typed nil", typedNil},
		{"empty bounds", image.NewNRGBA(image.Rect(0, 0, 0, 5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			s.LoadImage(createPatternImage(4, 4))
			s.RotateQuarterTurn()

			s.LoadImage(tt.img)
			if s.HasImage() {
				t.Error("session should have no image")
			}
			if s.CanUndo() {
				t.Error("history should be cleared")
			}
			if _, err := s.RenderPreview(); !errors.Is(err, ErrNoImage) {
				t.Errorf("RenderPreview error: got %v, want ErrNoImage", err)
			}
		})
	}
}

func TestSession_ExportWithoutImage(t *testing.T) {
	s := NewSession()

	img, err := s.ExportFlattened()
	if err == nil {
		t.Fatal("ExportFlattened without image should fail")
	}
	if img != nil {
		t.Error("ExportFlattened must not return a buffer on failure")
	}

	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not a *PreconditionError", err)
	}
	if pe.Op != "export" {
		t.Errorf("Op = %q, want export", pe.Op)
	}
	if !errors.Is(err, ErrNoImage) {
		t.Error("error should match ErrNoImage")
	}
	if err.Error() != "export: no image loaded" {
		t.Errorf("message = %q", err.Error())
	}

	if _, err := s.RenderPreview(); !errors.Is(err, ErrNoImage) {
		t.Errorf("RenderPreview error = %v, want ErrNoImage", err)
	}
	if _, err := s.RenderCropFrame(); !errors.Is(err, ErrNoImage) {
		t.Errorf("RenderCropFrame error = %v, want ErrNoImage", err)
	}
}

func TestSession_ExportDefaultsMatchesSource(t *testing.T) {
	src := createPatternImage(9, 7)
	s := NewSession()
	s.LoadImage(src)

	out, err := s.ExportFlattened()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !equalPixels(out, src) {
		t.Error("export with default state should reproduce the source")
	}
}

func TestSession_PreviewFlattenMatchesExport(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(40, 30))

	s.SetAdjustmentField(Brightness, 0.2)
	s.SetAdjustmentField(Contrast, 1.3)
	s.SetAdjustmentField(Saturation, 0.4)
	s.SetAdjustmentField(Warmth, 0.7)
	s.RotateQuarterTurn()
	s.SetCrop(0.1, 0.2, 0.85, 0.9)

	preview, err := s.RenderPreview()
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if preview.Transform != s.State().ColorTransform() {
		t.Error("preview transform differs from state transform")
	}

	exported, err := s.ExportFlattened()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if preview.Pixels.Bounds().Size() != exported.Bounds().Size() {
		t.Fatalf("preview size %v, export size %v", preview.Pixels.Bounds().Size(), exported.Bounds().Size())
	}
	if !equalPixels(preview.Flatten(), exported) {
		t.Error("flattened preview differs from export")
	}
}

func TestSession_PreviewDoesNotBakeColor(t *testing.T) {
	src := createPatternImage(12, 12)
	s := NewSession()
	s.LoadImage(src)
	s.SetAdjustmentField(Brightness, 1)

	preview, err := s.RenderPreview()
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !equalPixels(preview.Pixels, src) {
		t.Error("preview pixels should carry geometry only")
	}
}

func TestSession_CropFrameMatchesPreviewGeometry(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(20, 10))
	s.RotateQuarterTurn()
	s.SetCrop(0.25, 0.1, 0.75, 0.6)

	frame, err := s.RenderCropFrame()
	if err != nil {
		t.Fatalf("crop frame failed: %v", err)
	}
	if frame.Pixels.Bounds().Dx() != 10 || frame.Pixels.Bounds().Dy() != 20 {
		t.Fatalf("frame size = %v, want 10x20", frame.Pixels.Bounds().Size())
	}

	preview, _ := s.RenderPreview()
	if frame.Crop.Size() != preview.Pixels.Bounds().Size() {
		t.Fatalf("crop rect %v does not match preview size %v", frame.Crop, preview.Pixels.Bounds().Size())
	}
	for y := 0; y < frame.Crop.Dy(); y++ {
		for x := 0; x < frame.Crop.Dx(); x++ {
			got := preview.Pixels.NRGBAAt(x, y)
			want := frame.Pixels.NRGBAAt(frame.Crop.Min.X+x, frame.Crop.Min.Y+y)
			if got != want {
				t.Fatalf("pixel (%d,%d): preview %v, frame %v", x, y, got, want)
			}
		}
	}
}

func TestSession_ExportDoesNotMutateState(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(10, 10))
	s.RotateQuarterTurn()
	s.SetAdjustmentField(Warmth, -0.3)

	before := s.State()
	depth := s.UndoDepth()

	if _, err := s.ExportFlattened(); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if s.State() != before || s.UndoDepth() != depth {
		t.Error("export changed session state")
	}
}

func TestSession_ExportJobIsSnapshot(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(16, 8))
	s.SetAdjustmentField(Saturation, 0)

	job, err := s.ExportJob()
	if err != nil {
		t.Fatalf("ExportJob failed: %v", err)
	}
	want := job.Run()

	s.RotateQuarterTurn()
	s.SetAdjustmentField(Saturation, 2)
	s.LoadImage(createPatternImage(3, 3))

	if job.State().Saturation() != 0 || job.State().Rotation() != 0 {
		t.Errorf("job state changed: %v", job.State())
	}
	if got := job.Run(); !equalPixels(got, want) {
		t.Error("job output changed after session mutations")
	}
}

func TestSession_ExportAsync(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(24, 18))
	s.SetAdjustmentField(Contrast, 0.7)
	s.SetCrop(0, 0, 0.5, 0.5)

	want, err := s.ExportFlattened()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	select {
	case res := <-s.ExportAsync():
		if res.Err != nil {
			t.Fatalf("async export failed: %v", res.Err)
		}
		if !equalPixels(res.Image, want) {
			t.Error("async export differs from synchronous export")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("async export timed out")
	}
}

func TestSession_ExportAsyncWithoutImage(t *testing.T) {
	s := NewSession()
	res, ok := <-s.ExportAsync()
	if !ok {
		t.Fatal("channel closed without a result")
	}
	if !errors.Is(res.Err, ErrNoImage) {
		t.Errorf("Err = %v, want ErrNoImage", res.Err)
	}
	if _, ok := <-s.ExportAsync(); !ok {
		t.Error("each call should deliver one result")
	}
}

func TestSession_ExportGrayscale(t *testing.T) {
	s := NewSession()
	s.LoadImage(createPatternImage(10, 10))
	s.SetAdjustmentField(Saturation, 0)

	out, err := s.ExportFlattened()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := out.NRGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("pixel (%d,%d) = %v, want gray", x, y, c)
			}
		}
	}
}
