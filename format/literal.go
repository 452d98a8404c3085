package format

import "strings"

// Literal is a scalar read from text, such as an environment variable, that
// parsed as something other than a string. Raw keeps the original text so a
// string field receives "1.10" rather than the float 1.1.
type Literal struct {
	Raw   string
	Value any
}

// ParseLiteral is ParseValue for sources where every value starts out as
// text. Arrays, tables and strings come back as ParseValue returns them;
// other scalars are wrapped in a Literal.
func ParseLiteral(raw string) any {
	v := ParseValue(raw)
	switch t := v.(type) {
	case map[string]any, []any:
		return v
	case string:
		if t == raw || quoted(raw) {
			return t
		}
	}
	return Literal{Raw: raw, Value: v}
}

func quoted(raw string) bool {
	s := strings.TrimSpace(raw)
	return strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'")
}

// Plain replaces every Literal in v with its parsed value.
func Plain(v any) any {
	switch t := v.(type) {
	case Literal:
		return t.Value
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = Plain(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = Plain(x)
		}
		return out
	default:
		return v
	}
}
