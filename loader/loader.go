package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/format"
)

// Loader reads configuration files.
type Loader struct {
	goos string
}

// Option customises a Loader.
type Option func(*Loader)

// WithGOOS overrides the operating system used to normalise paths when
// detecting extends cycles.
func WithGOOS(goos string) Option {
	return func(l *Loader) { l.goos = goos }
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{goos: runtime.GOOS}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path and resolves its extends chain. It returns a nil tree and a
// nil error when path does not exist, leaving it to the caller to decide
// whether that is fatal. Errors raised while following extends match
// cfgerr.ErrExtends.
func (l *Loader) Load(path string) (map[string]any, error) {
	tree, err := readFile(path)
	if err != nil || tree == nil {
		return nil, err
	}
	return l.Resolve(tree, path)
}

// Load reads path with a default Loader.
func Load(path string) (map[string]any, error) {
	return New().Load(path)
}

// readFile parses the file at path. A missing file yields nil, nil.
func readFile(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, cfgerr.File(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, cfgerr.File(path, fmt.Errorf("not a regular file"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cfgerr.File(path, fmt.Errorf("failed to read: %w", err))
	}
	tree, err := format.Parse(path, data)
	if err != nil {
		return nil, cfgerr.File(path, fmt.Errorf("failed to parse: %w", err))
	}
	return tree, nil
}
