package compiler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSourceNotFound is returned by providers when a name has no source.
var ErrSourceNotFound = errors.New("source not found")

// SourceProvider supplies source text by name.
type SourceProvider interface {
	ReadSource(name string) (string, error)
}

// FileSource reads sources from the file system, relative to Dir when the
// name is not absolute. The name "-" reads from Stdin.
type FileSource struct {
	Dir   string
	Stdin io.Reader
}

func (f FileSource) ReadSource(name string) (string, error) {
	if name == "-" {
		if f.Stdin == nil {
			return "", fmt.Errorf("read stdin: %w", ErrSourceNotFound)
		}
		b, err := io.ReadAll(f.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	path := name
	if f.Dir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(f.Dir, name)
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", path, ErrSourceNotFound)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MapSource serves sources held in memory.
type MapSource map[string]string

func (m MapSource) ReadSource(name string) (string, error) {
	src, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrSourceNotFound)
	}
	return src, nil
}
