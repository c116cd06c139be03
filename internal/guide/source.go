package guide

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Source provides guides by ID.
type Source interface {
	// Get returns the guide with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Guide, error)

	// List returns the available guides, newest first.
	List(ctx context.Context) ([]Summary, error)
}

// FileSource reads guides from JSON files in a directory. A guide's ID is
// its file name without the .json extension unless the document carries
// its own id.
type FileSource struct {
	Dir string
}

var _ Source = FileSource{}

// ReadFile parses the guide stored at path.
func ReadFile(path string) (*Guide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read guide: %w", err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if g.ID == "" {
		g.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if g.Title == "" {
		g.Title = g.ID
	}
	return g, nil
}

func (s FileSource) Get(ctx context.Context, id string) (*Guide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, id+".json")
	if g, err := ReadFile(path); !errors.Is(err, ErrNotFound) {
		return g, err
	}
	// The document's own id may differ from its file name.
	return s.readByID(id)
}

func (s FileSource) readByID(id string) (*Guide, error) {
	paths, err := s.paths()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		g, err := ReadFile(p)
		if err == nil && g.ID == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("guide %q: %w", id, ErrNotFound)
}

// List parses every guide file in the directory. Files that fail to parse
// are skipped with a warning.
func (s FileSource) List(ctx context.Context) ([]Summary, error) {
	paths, err := s.paths()
	if err != nil {
		return nil, err
	}
	var out []Summary
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := ReadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %v\n", err)
			continue
		}
		out = append(out, Summary{
			ID:        g.ID,
			Title:     g.Title,
			Type:      g.Type,
			CourseID:  g.CourseID,
			CreatedAt: g.CreatedAt,
		})
	}
	slices.SortStableFunc(out, func(a, b Summary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s FileSource) paths() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	slices.Sort(paths)
	return paths, nil
}
