package merge

import (
	"sort"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/format"
)

// State is the accumulated result of folding layers. Append buffers only
// grow; replace buffers hold the latest non-empty contribution.
type State struct {
	Value map[string]any

	appendBuffers  map[string][]any
	replaceBuffers map[string]any
}

func newState() *State {
	return &State{
		Value:          map[string]any{},
		appendBuffers:  map[string][]any{},
		replaceBuffers: map[string]any{},
	}
}

// Appended returns the values collected so far for an Append field.
func (s *State) Appended(field string) []any {
	return s.appendBuffers[field]
}

// Replaced returns the current value of a Replace field.
func (s *State) Replaced(field string) (any, bool) {
	v, ok := s.replaceBuffers[field]
	return v, ok
}

// Finalize returns the composed tree with collection buffers written over it.
func (s *State) Finalize() map[string]any {
	out := clone(s.Value).(map[string]any)
	for _, name := range sortedKeys(s.appendBuffers) {
		if buf := s.appendBuffers[name]; len(buf) > 0 {
			out[name] = clone(buf)
		}
	}
	for _, name := range sortedKeys(s.replaceBuffers) {
		out[name] = clone(s.replaceBuffers[name])
	}
	return out
}

// Compose folds layers, which must be ordered by ascending precedence.
func Compose(layers []Layer, descriptors []Descriptor) (*State, error) {
	layers, err := applyCLIDefaultAsAbsent(layers, descriptors)
	if err != nil {
		return nil, err
	}

	st := newState()
	for _, l := range layers {
		obj, err := object(l)
		if err != nil {
			return nil, err
		}
		obj = clone(obj).(map[string]any)

		for _, d := range descriptors {
			v, present := obj[d.Name]
			switch d.Strategy {
			case Append:
				delete(obj, d.Name)
				if present {
					st.appendBuffers[d.Name] = append(st.appendBuffers[d.Name], elements(v)...)
				}
			case Replace:
				delete(obj, d.Name)
				if present && !isEmpty(v) {
					st.replaceBuffers[d.Name] = v
				}
			}
		}

		st.Value = Deep(st.Value, obj)
	}
	return st, nil
}

// Resolve composes layers and returns the finalised tree.
func Resolve(layers []Layer, descriptors []Descriptor) (map[string]any, error) {
	st, err := Compose(layers, descriptors)
	if err != nil {
		return nil, err
	}
	return st.Finalize(), nil
}

func object(l Layer) (map[string]any, error) {
	obj, ok := l.value.(map[string]any)
	if !ok {
		return nil, cfgerr.MergeShape(l.provenance.String(), format.KindOf(l.value), l.path)
	}
	return obj, nil
}

// elements normalises a contribution to an Append field into a list.
func elements(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// applyCLIDefaultAsAbsent strips non-explicit values of CLIDefaultAsAbsent
// fields from CLI layers. A stripped value still serves as the field's
// default when no defaults layer provides one.
func applyCLIDefaultAsAbsent(layers []Layer, descriptors []Descriptor) ([]Layer, error) {
	var absent []Descriptor
	for _, d := range descriptors {
		if d.CLIDefaultAsAbsent {
			absent = append(absent, d)
		}
	}
	if len(absent) == 0 {
		return layers, nil
	}

	defaulted := map[string]bool{}
	for _, l := range layers {
		if l.provenance != FromDefaults {
			continue
		}
		if obj, ok := l.value.(map[string]any); ok {
			for k, v := range obj {
				if v != nil {
					defaulted[k] = true
				}
			}
		}
	}

	parserDefaults := map[string]any{}
	out := make([]Layer, 0, len(layers)+1)
	for _, l := range layers {
		if l.provenance != FromCLI {
			out = append(out, l)
			continue
		}
		obj, err := object(l)
		if err != nil {
			return nil, err
		}
		trimmed, copied := obj, false
		for _, d := range absent {
			v, present := obj[d.Name]
			if !present || l.Explicit(d.Name) {
				continue
			}
			if !copied {
				trimmed, copied = clone(obj).(map[string]any), true
			}
			delete(trimmed, d.Name)
			if !defaulted[d.Name] && v != nil {
				parserDefaults[d.Name] = v
			}
		}
		l.value = trimmed
		out = append(out, l)
	}

	if len(parserDefaults) == 0 {
		return out, nil
	}
	return append([]Layer{NewLayer(FromDefaults, parserDefaults, "")}, out...), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
