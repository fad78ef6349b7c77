package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// D2Sink is a render surface that keeps a D2 file in sync with the graph.
// The file is rewritten on Flush, and only when its content changed.
type D2Sink struct {
	*Graph
	Path    string
	Options Options
	// AfterWrite, when set, runs after each rewrite (e.g. to render SVG).
	AfterWrite func(path string) error

	last string
}

// NewD2Sink creates a D2Sink writing to path.
func NewD2Sink(path string, opts Options) *D2Sink {
	return &D2Sink{Graph: NewGraph(), Path: path, Options: opts}
}

func (s *D2Sink) Flush() error {
	content := RenderD2(s.Graph, s.Options)
	if content == s.last {
		return nil
	}
	if err := writeFileAtomic(s.Path, []byte(content)); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	s.last = content
	if s.AfterWrite != nil {
		return s.AfterWrite(s.Path)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
