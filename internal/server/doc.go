// Package server implements the MCP (Model Context Protocol) server that
// hosts a photo editing session.
//
// The server owns exactly one editor.Session. Clients load a photo, adjust
// colors, rotate and crop it, step through undo and redo, render previews
// and finally export the result as a new project file.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - editor_load: Load a photo and reset state and history
//   - editor_state: Current state and undo/redo availability
//
// Adjustments and geometry:
//   - editor_adjust: Set brightness, contrast, saturation or warmth
//   - editor_reset: Restore defaults (undoable)
//   - editor_rotate: Quarter turn clockwise (undoable)
//   - editor_crop: Set the normalized crop rectangle
//
// History:
//   - editor_undo, editor_redo
//
// Rendering:
//   - editor_preview: Base64 PNG of the edited photo, optionally with crop guides
//   - editor_sample_color: Color of one edited pixel
//   - editor_histogram: Per-channel histogram of the edited photo
//   - editor_read_text: OCR over the edited photo
//
// Projects:
//   - editor_export: Flatten and save as a new JPEG project
//   - project_list: Saved projects, newest first
//
// # Concurrency
//
// Tool calls are serialized by a server-wide lock. Export snapshots the
// session and renders on a separate goroutine; the handler waits for the
// result up to Config.ExportTimeout.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Out-of-range numbers are clamped rather than rejected. Operations that
// need an image fail with "no image loaded" until editor_load succeeds.
//
// # Usage
//
//	srv := server.New(server.Config{ProjectDir: dir, JPEGQuality: 90})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
