package source

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every markdown file below the posts directory.
const DefaultPattern = "**/*.md"

// FSConfig describes a posts directory exposed as an fs.FS.
type FSConfig struct {
	IndexFile string
	// Discover lists files matching Pattern when the index file is absent.
	Discover bool
	Pattern  string
}

// FSSource reads content from an fs.FS, typically os.DirFS(contentDir).
type FSSource struct {
	fsys      fs.FS
	indexFile string
	discover  bool
	pattern   string
}

var _ Source = (*FSSource)(nil)

// NewFSSource returns a source reading from fsys.
func NewFSSource(fsys fs.FS, cfg FSConfig) *FSSource {
	indexFile := strings.TrimSpace(cfg.IndexFile)
	if indexFile == "" {
		indexFile = DefaultIndexFile
	}
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &FSSource{
		fsys:      fsys,
		indexFile: indexFile,
		discover:  cfg.Discover,
		pattern:   pattern,
	}
}

// Manifest reads the index file, falling back to discovery when enabled.
func (s *FSSource) Manifest(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, s.indexFile)
	switch {
	case errors.Is(err, fs.ErrNotExist) && s.discover:
		return Discover(s.fsys, s.pattern)
	case errors.Is(err, fs.ErrNotExist):
		return nil, notFoundError(s.indexFile)
	case err != nil:
		return nil, unavailableError(err, s.indexFile)
	}
	return DecodeManifest(data)
}

// Document reads file relative to the filesystem root.
func (s *FSSource) Document(ctx context.Context, file string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(strings.TrimPrefix(file, "/"))
	if !fs.ValidPath(name) {
		return nil, notFoundError(file)
	}
	data, err := fs.ReadFile(s.fsys, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, notFoundError(file)
	case err != nil:
		return nil, unavailableError(err, file)
	}
	return data, nil
}

// Discover globs fsys with pattern and returns matching files, sorted.
func Discover(fsys fs.FS, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, unavailableError(err, pattern)
	}
	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if info, err := fs.Stat(fsys, match); err == nil && info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	sort.Strings(files)
	return files, nil
}
