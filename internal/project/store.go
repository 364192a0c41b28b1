package project

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// DefaultPrefix starts the name of every exported project.
	DefaultPrefix = "LUMIQ_"

	// DefaultQuality is the JPEG quality used for exports.
	DefaultQuality = 90
)

// Project describes one exported file.
type Project struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

// Store saves and lists exported projects in Dir.
type Store struct {
	Dir     string
	Quality int
	Prefix  string

	// now is replaced in tests.
	now func() time.Time
}

// NewStore creates a store rooted at dir. A quality outside 1-100 falls
// back to DefaultQuality.
func NewStore(dir string, quality int) *Store {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Store{
		Dir:     dir,
		Quality: quality,
		Prefix:  DefaultPrefix,
		now:     time.Now,
	}
}

// Save writes img as a new JPEG project and returns its description.
// The directory is created if it does not exist.
func (s *Store) Save(img image.Image) (*Project, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("cannot save empty image")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}

	name := s.fileName()
	path := filepath.Join(s.Dir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(s.Quality)); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat project: %w", err)
	}

	return &Project{
		Name:    name,
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}, nil
}

// List returns the projects in Dir, newest first. A missing directory is
// not an error; it simply has no projects.
func (s *Store) List() ([]Project, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Project{}, nil
		}
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}

	projects := make([]Project, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), s.Prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		projects = append(projects, Project{
			Name:    e.Name(),
			Path:    filepath.Join(s.Dir, e.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].ModTime.Equal(projects[j].ModTime) {
			return projects[i].Name > projects[j].Name
		}
		return projects[i].ModTime.After(projects[j].ModTime)
	})

	return projects, nil
}

func (s *Store) fileName() string {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d_%s.jpg", s.Prefix, now().UnixMilli(), suffix)
}
