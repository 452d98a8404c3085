package format

import (
	"github.com/BurntSushi/toml"
)

func init() {
	register(Group{Name: "toml", Extensions: []string{"toml"}}, map[string]Parser{
		"toml": parseTOML,
	})
}

func parseTOML(data []byte) (any, error) {
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseValue interprets a single scalar written the way it would appear on the
// right-hand side of a TOML assignment: "5" is an integer, "true" a boolean,
// "[1, 2]" an array and "'x'" a string. Anything that is not a valid TOML value
// is returned unchanged as a string.
func ParseValue(raw string) any {
	var holder struct {
		V any `toml:"v"`
	}
	if _, err := toml.Decode("v = "+raw, &holder); err != nil || holder.V == nil {
		return raw
	}
	return Normalize(holder.V)
}
