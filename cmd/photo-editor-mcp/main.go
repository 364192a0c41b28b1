package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/ironsheep/photo-editor-mcp/internal/project"
	"github.com/ironsheep/photo-editor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("photo-editor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("photo-editor-mcp - MCP server for non-destructive photo editing")
			fmt.Println()
			fmt.Println("Usage: photo-editor-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PHOTO_EDITOR_LOG_LEVEL=debug       Enable debug logging")
			fmt.Println("  PHOTO_EDITOR_PROJECT_DIR=<dir>     Where exports are saved (default ~/Pictures/LUMIQ)")
			fmt.Println("  PHOTO_EDITOR_JPEG_QUALITY=<1-100>  Export JPEG quality (default 90)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("PHOTO_EDITOR_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Photo Editor MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		editor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := server.Config{
		ProjectDir:  os.Getenv("PHOTO_EDITOR_PROJECT_DIR"),
		JPEGQuality: project.DefaultQuality,
		Version:     Version,
	}
	if q := os.Getenv("PHOTO_EDITOR_JPEG_QUALITY"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 100 {
			log.Printf("Ignoring PHOTO_EDITOR_JPEG_QUALITY=%q: want an integer 1-100", q)
		} else {
			cfg.JPEGQuality = n
		}
	}
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = server.DefaultProjectDir()
	}
	if logLevel == "debug" {
		log.Printf("Projects in %s, JPEG quality %d", cfg.ProjectDir, cfg.JPEGQuality)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
