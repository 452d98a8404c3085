package cliflags

import (
	"reflect"
	"strings"

	"github.com/leynos/ortho-config-sub000/merge"
)

// fieldIndex maps flag names to descriptor names.
type fieldIndex map[string]string

func indexDescriptors(descriptors []merge.Descriptor) fieldIndex {
	idx := make(fieldIndex, len(descriptors)*2)
	for _, d := range descriptors {
		idx[d.Flag()] = d.Name
		if d.CLIShort != "" {
			idx[d.CLIShort] = d.Name
		}
	}
	return idx
}

// field returns the descriptor name bound to any of names.
func (idx fieldIndex) field(names ...string) (string, bool) {
	for _, n := range names {
		if f, ok := idx[strings.TrimLeft(n, "-")]; ok {
			return f, true
		}
	}
	return "", false
}

type collected struct {
	values   map[string]any
	explicit []string
}

func (c *collected) add(field string, value any, explicit bool) {
	if c.values == nil {
		c.values = map[string]any{}
	}
	if explicit {
		c.values[field] = value
		c.explicit = append(c.explicit, field)
		return
	}
	if !isZero(value) {
		c.values[field] = value
	}
}

func (c *collected) layer() merge.Layer {
	if c.values == nil {
		c.values = map[string]any{}
	}
	return merge.NewCLILayer(c.values, c.explicit)
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}
