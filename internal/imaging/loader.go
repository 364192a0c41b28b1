package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded source photos so that
// reopening the same file for a new editing session skips the decode.
//
// Entries are keyed by path and remember the file's modification time and
// size; a file that changed on disk since it was cached is decoded again.
//
// Images are stored as *image.NRGBA with EXIF orientation already applied.
// The cached buffers are shared; callers must treat them as read-only. The
// editor session copies whatever it is given, so handing a cached image to
// editor.Session.LoadImage is safe.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	session.LoadImage(img)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cacheEntry
}

type cacheEntry struct {
	img     *image.NRGBA
	modTime time.Time
	size    int64
}

func (e cacheEntry) matches(fi os.FileInfo) bool {
	return e.size == fi.Size() && e.modTime.Equal(fi.ModTime())
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cacheEntry),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG files are
// rotated according to their EXIF orientation tag so that the editor sees
// the photo the way the camera user framed it.
func (c *ImageCache) Load(path string) (*image.NRGBA, error) {
	img, _, err := c.load(path)
	return img, err
}

func (c *ImageCache) load(path string) (*image.NRGBA, os.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		c.Evict(path)
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok && entry.matches(fi) {
		return entry.img, fi, nil
	}

	img, err := Decode(path)
	if err != nil {
		c.Evict(path)
		return nil, nil, err
	}

	c.mu.Lock()
	c.images[path] = cacheEntry{img: img, modTime: fi.ModTime(), size: fi.Size()}
	c.mu.Unlock()

	return img, fi, nil
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Decode opens and decodes an image file into a non-premultiplied buffer,
// bypassing any cache.
func Decode(path string) (*image.NRGBA, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba, nil
	}
	return imaging.Clone(src), nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels, after EXIF orientation.
	Width int `json:"width"`

	// Height is the image height in pixels, after EXIF orientation.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// "bmp", "tiff", "webp" or "unknown".
	Format string `json:"format"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*image.NRGBA, *ImageInfo, error) {
	img, stat, err := cache.load(path)
	if err != nil {
		return nil, nil, err
	}

	bounds := img.Bounds()
	return img, &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatFromPath(path),
		HasAlpha:      !img.Opaque(),
		FileSizeBytes: stat.Size(),
	}, nil
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	}
	return "unknown"
}
