package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/photo-editor-mcp/internal/adjust"
	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/ironsheep/photo-editor-mcp/internal/imaging"
	"github.com/ironsheep/photo-editor-mcp/internal/ocr"
	"github.com/ironsheep/photo-editor-mcp/internal/project"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_load", "editor_adjust").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Calls are serialized: every handler runs with the server lock held, so the
// session sees one operation at a time.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	// Session
	case "editor_load":
		return s.handleEditorLoad(args)
	case "editor_state":
		return s.stateResult(), nil

	// Adjustments
	case "editor_adjust":
		return s.handleEditorAdjust(args)
	case "editor_reset":
		return s.handleEditorReset()

	// Geometry
	case "editor_rotate":
		return s.handleEditorRotate()
	case "editor_crop":
		return s.handleEditorCrop(args)

	// History
	case "editor_undo":
		return s.handleEditorUndo()
	case "editor_redo":
		return s.handleEditorRedo()

	// Rendering
	case "editor_preview":
		return s.handleEditorPreview(args)
	case "editor_sample_color":
		return s.handleEditorSampleColor(args)
	case "editor_histogram":
		return s.handleEditorHistogram(args)
	case "editor_read_text":
		return s.handleEditorReadText(args)

	// Projects
	case "editor_export":
		return s.handleEditorExport()
	case "project_list":
		return s.handleProjectList()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Missing arguments leave v
// at whatever defaults the caller filled in.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// StateResult is returned by every tool that reads or changes the session.
type StateResult struct {
	HasImage  bool             `json:"has_image"`
	Source    string           `json:"source,omitempty"`
	Width     int              `json:"width,omitempty"`
	Height    int              `json:"height,omitempty"`
	State     editor.EditState `json:"state"`
	CanUndo   bool             `json:"can_undo"`
	CanRedo   bool             `json:"can_redo"`
	UndoDepth int              `json:"undo_depth"`
	RedoDepth int              `json:"redo_depth"`

	// Changed is set by undo and redo.
	Changed *bool `json:"changed,omitempty"`
}

func (s *Server) stateResult() *StateResult {
	w, h, ok := s.session.ImageSize()
	r := &StateResult{
		HasImage:  ok,
		Width:     w,
		Height:    h,
		State:     s.session.State(),
		CanUndo:   s.session.CanUndo(),
		CanRedo:   s.session.CanRedo(),
		UndoDepth: s.session.UndoDepth(),
		RedoDepth: s.session.RedoDepth(),
	}
	if ok {
		r.Source = s.sourcePath
	}
	return r
}

// === Session Handlers ===

type editorLoadArgs struct {
	Path string `json:"path"`
}

type editorLoadResult struct {
	Info *imaging.ImageInfo `json:"info"`
	*StateResult
}

func (s *Server) handleEditorLoad(args json.RawMessage) (interface{}, error) {
	var a editorLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	img, info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}

	s.session.LoadImage(img)
	if s.sourcePath != "" && s.sourcePath != a.Path {
		s.cache.Evict(s.sourcePath)
	}
	s.sourcePath = a.Path

	return &editorLoadResult{Info: info, StateResult: s.stateResult()}, nil
}

// === Adjustment Handlers ===

type editorAdjustArgs struct {
	Field  string   `json:"field"`
	Value  *float64 `json:"value"`
	Commit bool     `json:"commit"`
}

func (s *Server) handleEditorAdjust(args json.RawMessage) (interface{}, error) {
	var a editorAdjustArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	field, err := editor.ParseAdjustment(a.Field)
	if err != nil {
		return nil, err
	}
	if a.Value == nil {
		return nil, errors.New("value is required")
	}

	if a.Commit {
		s.session.CommitAdjustment(field, *a.Value)
	} else {
		s.session.SetAdjustmentField(field, *a.Value)
	}
	return s.stateResult(), nil
}

func (s *Server) handleEditorReset() (interface{}, error) {
	s.session.ResetAdjustments()
	return s.stateResult(), nil
}

// === Geometry Handlers ===

func (s *Server) handleEditorRotate() (interface{}, error) {
	s.session.RotateQuarterTurn()
	return s.stateResult(), nil
}

type editorCropArgs struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (s *Server) handleEditorCrop(args json.RawMessage) (interface{}, error) {
	var a editorCropArgs
	a.Left, a.Top, a.Right, a.Bottom = s.session.State().Crop()
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	s.session.SetCrop(a.Left, a.Top, a.Right, a.Bottom)
	return s.stateResult(), nil
}

// === History Handlers ===

func (s *Server) handleEditorUndo() (interface{}, error) {
	changed := s.session.Undo()
	r := s.stateResult()
	r.Changed = &changed
	return r, nil
}

func (s *Server) handleEditorRedo() (interface{}, error) {
	changed := s.session.Redo()
	r := s.stateResult()
	r.Changed = &changed
	return r, nil
}

// === Rendering Handlers ===

type editorPreviewArgs struct {
	Scale      float64 `json:"scale"`
	Guides     bool    `json:"guides"`
	Thirds     bool    `json:"thirds"`
	GuideColor string  `json:"guide_color"`
}

type editorPreviewResult struct {
	*imaging.EncodedImage

	// Crop is the crop rectangle in the returned frame's pixel space,
	// before scaling. Set only when guides are drawn.
	Crop *cropBounds `json:"crop,omitempty"`

	Transform [20]float64 `json:"color_matrix"`
}

type cropBounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (s *Server) handleEditorPreview(args json.RawMessage) (interface{}, error) {
	a := editorPreviewArgs{Scale: 1.0, Thirds: true, GuideColor: imaging.DefaultGuideColor}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	if !a.Guides {
		preview, err := s.session.RenderPreview()
		if err != nil {
			return nil, err
		}
		encoded, err := imaging.EncodePNG(preview.Flatten(), a.Scale)
		if err != nil {
			return nil, err
		}
		return &editorPreviewResult{
			EncodedImage: encoded,
			Transform:    preview.Transform.RowMajor4x5(),
		}, nil
	}

	frame, err := s.session.RenderCropFrame()
	if err != nil {
		return nil, err
	}
	colored := adjust.Bake(frame.Pixels, frame.Transform)
	guided := imaging.CropGuides(colored, frame.Crop, imaging.GuideOptions{
		LineColor: a.GuideColor,
		Dim:       0.5,
		Thirds:    a.Thirds,
	})
	encoded, err := imaging.EncodePNG(guided, a.Scale)
	if err != nil {
		return nil, err
	}
	return &editorPreviewResult{
		EncodedImage: encoded,
		Crop: &cropBounds{
			X1: frame.Crop.Min.X,
			Y1: frame.Crop.Min.Y,
			X2: frame.Crop.Max.X,
			Y2: frame.Crop.Max.Y,
		},
		Transform: frame.Transform.RowMajor4x5(),
	}, nil
}

// flattened renders the current state the way export would.
func (s *Server) flattened(op string) (*image.NRGBA, error) {
	preview, err := s.session.RenderPreview()
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return preview.Flatten(), nil
}

type editorSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleEditorSampleColor(args json.RawMessage) (interface{}, error) {
	var a editorSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.flattened("sample color")
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type editorHistogramArgs struct {
	Bins int `json:"bins"`
}

func (s *Server) handleEditorHistogram(args json.RawMessage) (interface{}, error) {
	a := editorHistogramArgs{Bins: 32}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.flattened("compute histogram")
	if err != nil {
		return nil, err
	}
	return imaging.Histogram(img, a.Bins)
}

type editorReadTextArgs struct {
	Language string      `json:"language"`
	Region   *cropBounds `json:"region"`
}

func (s *Server) handleEditorReadText(args json.RawMessage) (interface{}, error) {
	a := editorReadTextArgs{Language: ocr.DefaultLanguage}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.flattened("read text")
	if err != nil {
		return nil, err
	}
	if a.Region != nil {
		r := image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
		return ocr.ExtractTextFromRegion(img, r, a.Language)
	}
	return ocr.ExtractText(img, a.Language)
}

// === Project Handlers ===

type editorExportResult struct {
	Project *project.Project `json:"project"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	State   editor.EditState `json:"state"`
}

func (s *Server) handleEditorExport() (interface{}, error) {
	state := s.session.State()

	var res editor.ExportResult
	select {
	case res = <-s.exportAsync():
	case <-time.After(s.exportTimeout):
		return nil, fmt.Errorf("export timed out after %s", s.exportTimeout)
	}
	if res.Err != nil {
		return nil, res.Err
	}

	p, err := s.store.Save(res.Image)
	if err != nil {
		return nil, err
	}

	b := res.Image.Bounds()
	return &editorExportResult{
		Project: p,
		Width:   b.Dx(),
		Height:  b.Dy(),
		State:   state,
	}, nil
}

type projectListResult struct {
	Dir      string            `json:"dir"`
	Projects []project.Project `json:"projects"`
	Count    int               `json:"count"`
}

func (s *Server) handleProjectList() (interface{}, error) {
	projects, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return &projectListResult{
		Dir:      s.store.Dir,
		Projects: projects,
		Count:    len(projects),
	}, nil
}
