package env

import (
	"sort"
	"strings"

	"github.com/leynos/ortho-config-sub000/format"
)

// Separator splits a variable name into nested keys.
const Separator = "__"

// Collect builds the object contributed by every variable whose name starts
// with prefix. Variables with nothing after the prefix are ignored, as are
// names listed in skip.
func Collect(src Source, prefix string, skip ...string) map[string]any {
	ignored := make(map[string]struct{}, len(skip))
	for _, name := range skip {
		ignored[name] = struct{}{}
	}

	vars := append([]string(nil), src.Environ()...)
	sort.Strings(vars)

	out := map[string]any{}
	for _, kv := range vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, skipped := ignored[name]; skipped {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		if rest == "" {
			continue
		}
		path := splitKey(rest)
		if path == nil {
			continue
		}
		insert(out, path, format.ParseLiteral(value))
	}
	return out
}

func splitKey(rest string) []string {
	parts := strings.Split(strings.ToLower(rest), Separator)
	for _, p := range parts {
		if p == "" {
			return nil
		}
	}
	return parts
}

// insert places value at path, creating intermediate objects. A scalar
// already sitting on the path is replaced by an object.
func insert(root map[string]any, path []string, value any) {
	cur := root
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}
