package merge

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/format"
)

// Decode deserialises a composed tree into out, which must be a pointer.
// Field names match case-insensitively, ignoring underscores and dashes, so a
// Go field MaxCount accepts the key max_count. Strings are converted to
// numbers, booleans, durations and comma separated lists where the target requires it.
// A format.Literal decodes as its original text into string and
// TextUnmarshaler fields and as its parsed value elsewhere.
func Decode(tree map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		MatchName:        matchName,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			literalHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return cfgerr.Merge(err)
	}
	if err := dec.Decode(tree); err != nil {
		return cfgerr.Merge(err)
	}
	return nil
}

var textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func literalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	lit, ok := data.(format.Literal)
	if !ok {
		if to.Kind() == reflect.Interface {
			return format.Plain(data), nil
		}
		return data, nil
	}
	if to.Kind() == reflect.String || reflect.PointerTo(to).Implements(textUnmarshaler) {
		return lit.Raw, nil
	}
	return lit.Value, nil
}

func matchName(mapKey, fieldName string) bool {
	return squash(mapKey) == squash(fieldName)
}

func squash(s string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(s))
}

// Missing returns the names of required descriptors with no value in tree,
// in descriptor order.
func Missing(tree map[string]any, descriptors []Descriptor) []string {
	var out []string
	for _, d := range descriptors {
		if !d.Required {
			continue
		}
		if v, ok := tree[d.Name]; !ok || v == nil {
			out = append(out, d.Name)
		}
	}
	return out
}
