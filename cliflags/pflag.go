package cliflags

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/merge"
)

// FromPFlags builds a CLI layer from a parsed pflag set, as used by cobra
// commands (cmd.Flags()).
func FromPFlags(fs *pflag.FlagSet, descriptors []merge.Descriptor) (merge.Layer, error) {
	idx := indexDescriptors(descriptors)
	var out collected
	var firstErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if firstErr != nil {
			return
		}
		field, ok := idx.field(f.Name, f.Shorthand)
		if !ok {
			return
		}
		v, err := pflagValue(fs, f)
		if err != nil {
			firstErr = cfgerr.Gathering(merge.FromCLI.String(), fmt.Errorf("flag --%s: %w", f.Name, err))
			return
		}
		out.add(field, v, f.Changed)
	})
	if firstErr != nil {
		return merge.Layer{}, firstErr
	}
	return out.layer(), nil
}

func pflagValue(fs *pflag.FlagSet, f *pflag.Flag) (any, error) {
	switch f.Value.Type() {
	case "string":
		return fs.GetString(f.Name)
	case "bool":
		return fs.GetBool(f.Name)
	case "int":
		return fs.GetInt(f.Name)
	case "int64":
		return fs.GetInt64(f.Name)
	case "uint":
		return fs.GetUint(f.Name)
	case "float64":
		return fs.GetFloat64(f.Name)
	case "duration":
		d, err := fs.GetDuration(f.Name)
		if err != nil || d == 0 {
			return "", err
		}
		return d.String(), nil
	case "stringSlice":
		return fs.GetStringSlice(f.Name)
	case "stringArray":
		return fs.GetStringArray(f.Name)
	case "intSlice":
		return fs.GetIntSlice(f.Name)
	default:
		return f.Value.String(), nil
	}
}
