package orthoconfig

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/leynos/ortho-config-sub000/format"
	"github.com/leynos/ortho-config-sub000/merge"
)

// Describe derives the descriptor table for the struct type T.
//
// Recognised tags:
//
//	mapstructure:"name"   key used in files and the merged tree
//	default:"value"       default, parsed like an environment value
//	ortho:"merge=append,cli_default_as_absent,required,cli_long=name,cli_short=n"
//
// Slice fields default to the append strategy; all others are keyed. A field
// tagged ortho:"-" or mapstructure:"-" is left out.
func Describe[T any]() ([]merge.Descriptor, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("configuration type %s is not a struct", t)
	}

	var out []merge.Descriptor
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("ortho") == "-" {
			continue
		}
		name := fieldName(f)
		if name == "" {
			continue
		}

		d := merge.Descriptor{Name: name}
		if f.Type.Kind() == reflect.Slice && f.Type.Elem().Kind() != reflect.Uint8 {
			d.Strategy = merge.Append
		}
		if raw, ok := f.Tag.Lookup("default"); ok {
			d.Default = format.ParseValue(raw)
		}
		if err := applyOrthoTag(&d, f.Tag.Get("ortho")); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("mapstructure"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return snakeCase(f.Name)
}

func applyOrthoTag(d *merge.Descriptor, tag string) error {
	if tag == "" {
		return nil
	}
	for _, opt := range strings.Split(tag, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch key {
		case "":
		case "merge":
			s, err := merge.ParseStrategy(value)
			if err != nil {
				return err
			}
			d.Strategy = s
		case "cli_default_as_absent":
			d.CLIDefaultAsAbsent = true
		case "required":
			d.Required = true
		case "cli_long":
			d.CLILong = value
		case "cli_short":
			d.CLIShort = value
		default:
			return fmt.Errorf("unknown ortho tag option %q", key)
		}
	}
	return nil
}

// snakeCase converts a Go identifier to snake_case, keeping acronyms
// together: MaxCount -> max_count, HTTPProxy -> http_proxy.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
