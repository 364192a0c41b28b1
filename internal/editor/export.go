package editor

import (
	"image"

	"github.com/ironsheep/photo-editor-mcp/internal/adjust"
	"github.com/ironsheep/photo-editor-mcp/internal/geometry"
)

// ExportJob is a snapshot of everything an export needs. Run is a pure
// function of the snapshot, so a job may run on any goroutine while the
// session keeps changing.
//
// The source pointer is shared with the session that created the job. That
// is safe because a session never writes into a loaded source; LoadImage
// installs a new buffer instead.
type ExportJob struct {
	source *image.NRGBA
	state  EditState
}

// State returns the edit state captured by the job.
func (j ExportJob) State() EditState {
	return j.state
}

// Run rotates and crops the source and then bakes the color transform, in
// that order, into a new image.
func (j ExportJob) Run() *image.NRGBA {
	l, t, r, b := j.state.Crop()
	shaped := geometry.Apply(j.source, j.state.Rotation(), l, t, r, b)
	return adjust.Bake(shaped, j.state.ColorTransform())
}

// ExportJob snapshots the session for export.
func (s *Session) ExportJob() (ExportJob, error) {
	if s.source == nil {
		return ExportJob{}, noImage("export")
	}
	return ExportJob{source: s.source, state: s.state}, nil
}

// ExportFlattened renders the current state into a new image with crop,
// rotation and color permanently applied. It does not change the session.
func (s *Session) ExportFlattened() (*image.NRGBA, error) {
	job, err := s.ExportJob()
	if err != nil {
		return nil, err
	}
	img := job.Run()
	Logger().Debug("exported", "state", job.state.String(),
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// ExportResult is delivered by ExportAsync.
type ExportResult struct {
	Image *image.NRGBA
	Err   error
}

// ExportAsync snapshots the session and runs the export on its own
// goroutine. The returned channel receives exactly one result and is then
// closed. Callers that lose interest may simply stop listening.
func (s *Session) ExportAsync() <-chan ExportResult {
	ch := make(chan ExportResult, 1)
	job, err := s.ExportJob()
	if err != nil {
		ch <- ExportResult{Err: err}
		close(ch)
		return ch
	}
	go func() {
		defer close(ch)
		ch <- ExportResult{Image: job.Run()}
	}()
	return ch
}
