package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "editor_load",
			Description: "Load a photo into the editor. Resets all adjustments, rotation, crop and history. Returns image metadata and the edit state.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editor_state",
			Description: "Return the current edit state, image size and undo/redo availability.",
			InputSchema: emptySchema(),
		},

		// Adjustments
		{
			Name:        "editor_adjust",
			Description: "Set one color adjustment. Values outside the field's range are clamped. By default this does not create an undo checkpoint, like dragging a slider; pass commit=true to make it undoable.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"field": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"brightness", "contrast", "saturation", "warmth"},
						"description": "Adjustment to change",
					},
					"value": map[string]interface{}{
						"type":        "number",
						"description": "New value. brightness and warmth: -1..1 (0 neutral); contrast: 0.5..1.5 and saturation: 0..2 (1 neutral)",
					},
					"commit": map[string]interface{}{
						"type":        "boolean",
						"description": "Record an undo checkpoint before changing the value. Default false",
						"default":     false,
					},
				},
				"required": []string{"field", "value"},
			},
		},
		{
			Name:        "editor_reset",
			Description: "Restore every adjustment, rotation and crop to its default. Undoable.",
			InputSchema: emptySchema(),
		},

		// Geometry
		{
			Name:        "editor_rotate",
			Description: "Rotate the photo 90 degrees clockwise. Undoable.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "editor_crop",
			Description: "Set the crop rectangle as fractions (0..1) of the rotated image. Omitted edges keep their current value. Values are clamped. Does not create an undo checkpoint.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"left": map[string]interface{}{
						"type":        "number",
						"description": "Left edge fraction (0 = left border)",
					},
					"top": map[string]interface{}{
						"type":        "number",
						"description": "Top edge fraction (0 = top border)",
					},
					"right": map[string]interface{}{
						"type":        "number",
						"description": "Right edge fraction (1 = right border)",
					},
					"bottom": map[string]interface{}{
						"type":        "number",
						"description": "Bottom edge fraction (1 = bottom border)",
					},
				},
			},
		},

		// History
		{
			Name:        "editor_undo",
			Description: "Restore the state before the most recent checkpoint. Returns changed=false when there is nothing to undo.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "editor_redo",
			Description: "Re-apply the most recently undone state. Returns changed=false when there is nothing to redo.",
			InputSchema: emptySchema(),
		},

		// Rendering
		{
			Name:        "editor_preview",
			Description: "Render the edited photo as base64-encoded PNG. With guides=true the uncropped rotated frame is shown with the area outside the crop dimmed and the crop outlined.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the returned image. Default 1.0",
						"default":     1.0,
					},
					"guides": map[string]interface{}{
						"type":        "boolean",
						"description": "Show crop guides on the uncropped frame. Default false",
						"default":     false,
					},
					"thirds": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw rule-of-thirds lines inside the crop when guides are shown. Default true",
						"default":     true,
					},
					"guide_color": map[string]interface{}{
						"type":        "string",
						"description": "Guide line color as hex (#RRGGBB or #RRGGBBAA). Default #FFFFFFCC",
						"default":     "#FFFFFFCC",
					},
				},
			},
		},
		{
			Name:        "editor_sample_color",
			Description: "Get the color of a pixel in the edited photo, after rotation, crop and color adjustments.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "editor_histogram",
			Description: "Compute red, green and blue histograms of the edited photo, with mean values and clipping counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"bins": map[string]interface{}{
						"type":        "integer",
						"description": "Number of bins; must divide 256. Default 32",
						"default":     32,
					},
				},
			},
		},
		{
			Name:        "editor_read_text",
			Description: "Run OCR over the edited photo. Optionally limit it to a region in edited-photo pixel coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default 'eng'",
						"default":     "eng",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region {x1,y1,x2,y2}; x2 and y2 are exclusive",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
				},
			},
		},

		// Projects
		{
			Name:        "editor_export",
			Description: "Flatten the edited photo (crop, rotation and color applied) and save it as a new JPEG project.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "project_list",
			Description: "List saved projects, newest first.",
			InputSchema: emptySchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
