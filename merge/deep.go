package merge

// Deep returns a new object holding base with overlay merged over it. Nested
// objects are merged recursively; any other overlay value replaces the base
// value. Null overlay values leave the base untouched. Neither input is
// modified.
func Deep(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = clone(v)
	}
	for k, v := range overlay {
		if v == nil {
			continue
		}
		if src, ok := v.(map[string]any); ok {
			if dst, ok := out[k].(map[string]any); ok {
				out[k] = Deep(dst, src)
				continue
			}
		}
		out[k] = clone(v)
	}
	return out
}

// clone copies objects and arrays so merged trees never share structure with
// their inputs.
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = clone(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = clone(x)
		}
		return out
	default:
		return v
	}
}

// isEmpty reports whether v contributes nothing to a Replace field.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
