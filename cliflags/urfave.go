package cliflags

import (
	"github.com/urfave/cli/v2"

	"github.com/leynos/ortho-config-sub000/merge"
)

// FromURFave builds a CLI layer from flags parsed into c. Pass the flags of
// the command whose action is running.
func FromURFave(c *cli.Context, flags []cli.Flag, descriptors []merge.Descriptor) merge.Layer {
	idx := indexDescriptors(descriptors)
	var out collected
	for _, f := range flags {
		names := f.Names()
		if len(names) == 0 {
			continue
		}
		field, ok := idx.field(names...)
		if !ok {
			continue
		}
		name := names[0]
		out.add(field, urfaveValue(c, f, name), c.IsSet(name))
	}
	return out.layer()
}

func urfaveValue(c *cli.Context, f cli.Flag, name string) any {
	switch f.(type) {
	case *cli.StringFlag:
		return c.String(name)
	case *cli.PathFlag:
		return c.Path(name)
	case *cli.BoolFlag:
		return c.Bool(name)
	case *cli.IntFlag:
		return c.Int(name)
	case *cli.Int64Flag:
		return c.Int64(name)
	case *cli.UintFlag:
		return c.Uint(name)
	case *cli.Float64Flag:
		return c.Float64(name)
	case *cli.DurationFlag:
		if d := c.Duration(name); d != 0 {
			return d.String()
		}
		return ""
	case *cli.StringSliceFlag:
		return c.StringSlice(name)
	case *cli.IntSliceFlag:
		return c.IntSlice(name)
	case *cli.Float64SliceFlag:
		return c.Float64Slice(name)
	default:
		return c.Value(name)
	}
}
