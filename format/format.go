package format

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Parser turns file contents into a generic tree.
type Parser func(data []byte) (any, error)

// Group is a family of related file extensions handled together during
// candidate generation.
type Group struct {
	Name       string
	Extensions []string
}

// groupOrder fixes the position of each family in candidate lists.
var groupOrder = []string{"toml", "json", "yaml"}

var (
	mu      sync.RWMutex
	groups  = map[string]Group{}
	parsers = map[string]Parser{}
)

// register adds a format family. It is called from init functions of the
// per-format files.
func register(g Group, ps map[string]Parser) {
	mu.Lock()
	defer mu.Unlock()
	groups[g.Name] = g
	for ext, p := range ps {
		parsers[ext] = p
	}
}

// Groups returns the compiled-in format families in candidate order.
func Groups() []Group {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Group, 0, len(groups))
	for _, name := range groupOrder {
		if g, ok := groups[name]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Extensions returns every supported extension, without the leading dot, in
// candidate order.
func Extensions() []string {
	var exts []string
	for _, g := range Groups() {
		exts = append(exts, g.Extensions...)
	}
	return exts
}

// Supported reports whether ext (with or without a leading dot) has a parser.
func Supported(ext string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := parsers[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// ForPath returns the parser for path's extension. Unknown extensions are
// read as TOML.
func ForPath(path string) Parser {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	mu.RLock()
	defer mu.RUnlock()
	if p, ok := parsers[ext]; ok {
		return p
	}
	return parsers["toml"]
}

// Parse decodes data using the parser selected by path and returns the root
// object. An empty document yields an empty object.
func Parse(path string, data []byte) (map[string]any, error) {
	raw, err := ForPath(path)(data)
	if err != nil {
		return nil, err
	}
	switch root := Normalize(raw).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return root, nil
	default:
		return nil, fmt.Errorf("document root must be a table, found %s", KindOf(root))
	}
}
