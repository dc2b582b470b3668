package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Source yields the raw JSON text of a schema.
type Source interface {
	Location() string
	Read(ctx context.Context) ([]byte, error)
}

type fileSource struct {
	path string
}

// SourceFromFile reads a schema from the local filesystem.
func SourceFromFile(path string) Source {
	return fileSource{path: strings.TrimSpace(path)}
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, errors.New("orchestrator: source path is required")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read %s: %w", s.path, err)
	}
	return data, nil
}

type fsSource struct {
	fsys fs.FS
	path string
}

// SourceFromFS reads a schema from an fs.FS, typically an embed.FS.
func SourceFromFS(fsys fs.FS, path string) Source {
	return fsSource{fsys: fsys, path: strings.TrimSpace(path)}
}

func (s fsSource) Location() string { return s.path }

func (s fsSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.fsys == nil {
		return nil, errors.New("orchestrator: source filesystem is nil")
	}
	data, err := fs.ReadFile(s.fsys, s.path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read %s: %w", s.path, err)
	}
	return data, nil
}

type bytesSource []byte

// SourceFromBytes wraps schema text already in memory.
func SourceFromBytes(data []byte) Source {
	return bytesSource(append([]byte(nil), data...))
}

func (s bytesSource) Location() string { return "inline" }

func (s bytesSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(s), nil
}
