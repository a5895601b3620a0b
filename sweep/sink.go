package sweep

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Artifact is a named, serialized part.
type Artifact struct {
	Name  string
	Bytes []byte
}

// Sink creates the destination of an artifact. Create may be called
// concurrently with distinct names.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink writes artifacts as files under Dir, creating it if missing.
type DirSink struct {
	Dir string
}

func (s DirSink) Create(name string) (io.WriteCloser, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(dir, name))
}

// Path returns the path of the artifact called name.
func (s DirSink) Path(name string) string {
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// MemSink keeps artifacts in memory. The zero value is ready to use.
type MemSink struct {
	mu        sync.Mutex
	artifacts map[string][]byte
}

func (s *MemSink) Create(name string) (io.WriteCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artifacts[name]; ok {
		return nil, fmt.Errorf("artifact %q already exists", name)
	}
	if s.artifacts == nil {
		s.artifacts = make(map[string][]byte)
	}
	s.artifacts[name] = nil
	return &memFile{sink: s, name: name}, nil
}

// Artifacts returns the closed artifacts sorted by name.
func (s *MemSink) Artifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Artifact, 0, len(s.artifacts))
	for name, b := range s.artifacts {
		out = append(out, Artifact{Name: name, Bytes: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type memFile struct {
	bytes.Buffer
	sink *MemSink
	name string
}

func (f *memFile) Close() error {
	f.sink.mu.Lock()
	f.sink.artifacts[f.name] = f.Bytes()
	f.sink.mu.Unlock()
	return nil
}
