package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/internal/platform"
	"github.com/leynos/ortho-config-sub000/merge"
)

// ExtendsKey is the reserved top-level key naming a base file.
const ExtendsKey = "extends"

type visitState int

const (
	onStack visitState = iota + 1
	resolved
)

// chain tracks the files entered during one resolution call.
type chain struct {
	visited map[string]visitState
	stack   []string
}

func newChain() *chain {
	return &chain{visited: map[string]visitState{}}
}

func (c *chain) push(key, path string) {
	c.visited[key] = onStack
	c.stack = append(c.stack, path)
}

func (c *chain) pop(key string) {
	c.visited[key] = resolved
	c.stack = c.stack[:len(c.stack)-1]
}

// Resolve follows the extends directive of tree, which was read from
// currentPath, and returns the fully merged tree without the extends key.
// Failures match cfgerr.ErrExtends.
func (l *Loader) Resolve(tree map[string]any, currentPath string) (map[string]any, error) {
	merged, err := l.resolve(tree, currentPath, newChain())
	if err != nil {
		return nil, cfgerr.Extends(err)
	}
	return merged, nil
}

func (l *Loader) resolve(tree map[string]any, currentPath string, c *chain) (map[string]any, error) {
	key := l.key(currentPath)
	if c.visited[key] == onStack {
		return nil, cfgerr.CyclicExtends(append(c.stack, currentPath))
	}
	c.push(key, currentPath)

	raw, ok := tree[ExtendsKey]
	if !ok {
		c.pop(key)
		return tree, nil
	}
	ref, ok := raw.(string)
	if !ok || strings.TrimSpace(ref) == "" {
		return nil, &cfgerr.Error{Kind: cfgerr.KindFile, Path: currentPath, Field: ExtendsKey, Err: cfgerr.ErrInvalidExtends}
	}

	basePath, err := resolvePath(currentPath, ref)
	if err != nil {
		return nil, err
	}
	if c.visited[l.key(basePath)] == onStack {
		return nil, cfgerr.CyclicExtends(append(append([]string(nil), c.stack...), basePath))
	}

	info, err := os.Stat(basePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &cfgerr.Error{
			Kind:   cfgerr.KindFile,
			Path:   basePath,
			Detail: fmt.Sprintf("extended by %s", currentPath),
			Err:    cfgerr.ErrNotFound,
		}
	case err != nil:
		return nil, cfgerr.File(basePath, err)
	case !info.Mode().IsRegular():
		return nil, &cfgerr.Error{
			Kind:   cfgerr.KindFile,
			Path:   basePath,
			Detail: fmt.Sprintf("extended by %s", currentPath),
			Err:    fmt.Errorf("not a regular file"),
		}
	}

	baseTree, err := readFile(basePath)
	if err != nil {
		return nil, err
	}
	base, err := l.resolve(baseTree, basePath, c)
	if err != nil {
		return nil, err
	}

	child := make(map[string]any, len(tree))
	for k, v := range tree {
		if k != ExtendsKey {
			child[k] = v
		}
	}
	merged := merge.Deep(base, child)
	c.pop(key)
	return merged, nil
}

// resolvePath interprets ref relative to the directory of currentPath.
func resolvePath(currentPath, ref string) (string, error) {
	if filepath.IsAbs(ref) {
		return ref, nil
	}
	if currentPath == "" {
		return "", &cfgerr.Error{
			Kind:   cfgerr.KindFile,
			Field:  ExtendsKey,
			Detail: fmt.Sprintf("cannot resolve %q without a parent directory", ref),
		}
	}
	return filepath.Join(filepath.Dir(currentPath), ref), nil
}

// key normalises path for cycle detection. Case is folded and separators
// unified on platforms whose filesystems ignore case.
func (l *Loader) key(path string) string {
	p := path
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	p = filepath.Clean(p)
	if platform.CaseInsensitivePaths(l.goos) {
		p = strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
	}
	return p
}
