package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/ironsheep/photo-editor-mcp/internal/imaging"
	"github.com/ironsheep/photo-editor-mcp/internal/project"
)

// DefaultExportTimeout bounds how long editor_export waits for a render.
const DefaultExportTimeout = 2 * time.Minute

// Config holds the settings the server needs from its host process.
type Config struct {
	// ProjectDir is where exported projects are written.
	ProjectDir string

	// JPEGQuality is the export quality, 1-100.
	JPEGQuality int

	// ExportTimeout bounds a single export. Zero means DefaultExportTimeout.
	ExportTimeout time.Duration

	// Version is reported in serverInfo.
	Version string
}

// Server handles MCP protocol communication and owns the single editing
// session that tool calls act on.
type Server struct {
	// mu serializes tool calls; the editor session is not safe for
	// concurrent use.
	mu sync.Mutex

	cache   *imaging.ImageCache
	session *editor.Session
	store   *project.Store

	// sourcePath is the file currently loaded into the session.
	sourcePath string

	// exportAsync starts a flattened render of the session.
	exportAsync func() <-chan editor.ExportResult

	exportTimeout time.Duration
	version       string
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a new MCP server instance
func New(cfg Config) *Server {
	timeout := cfg.ExportTimeout
	if timeout <= 0 {
		timeout = DefaultExportTimeout
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	dir := cfg.ProjectDir
	if dir == "" {
		dir = DefaultProjectDir()
	}

	s := &Server{
		cache:         imaging.NewImageCache(),
		session:       editor.NewSession(),
		store:         project.NewStore(dir, cfg.JPEGQuality),
		exportTimeout: timeout,
		version:       version,
	}
	s.exportAsync = s.session.ExportAsync
	return s
}

// DefaultProjectDir returns $HOME/Pictures/LUMIQ, or a directory under the
// system temp dir when no home directory is known.
func DefaultProjectDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "LUMIQ")
	}
	return filepath.Join(home, "Pictures", "LUMIQ")
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r and writes
// responses to w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "photo-editor-mcp",
				"version": s.version,
			},
		},
	}
}
