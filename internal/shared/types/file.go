package types

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// File is a readable local file handed in by the user (an uploaded icon)
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type localFile struct {
	path string
}

// NewLocalFile wraps a path on disk
func NewLocalFile(path string) File {
	return &localFile{path: path}
}

func (f *localFile) Name() string { return filepath.Base(f.path) }

func (f *localFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }

type memoryFile struct {
	name string
	data []byte
}

// NewMemoryFile wraps bytes already in memory, e.g. a multipart upload
func NewMemoryFile(name string, data []byte) File {
	return &memoryFile{name: name, data: data}
}

func (f *memoryFile) Name() string { return f.name }

func (f *memoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
