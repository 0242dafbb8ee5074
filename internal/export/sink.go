// Package export stores generated export files, either in a local directory
// or in an Azure Blob Storage container.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink stores a named export and returns where it was written.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// LocalSink writes exports into a directory.
type LocalSink struct {
	dir string
}

// NewLocalSink creates a sink rooted at dir. The directory is created on
// first write.
func NewLocalSink(dir string) *LocalSink {
	return &LocalSink{dir: dir}
}

// Put writes data to dir/name.
func (s *LocalSink) Put(_ context.Context, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid export name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
