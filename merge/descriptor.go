package merge

import (
	"fmt"
	"strings"
)

// Strategy selects how a field combines across layers.
type Strategy int

const (
	// Keyed deep-merges the field like any undeclared field.
	Keyed Strategy = iota
	// Append concatenates contributions from every layer.
	Append
	// Replace keeps the last non-empty contribution.
	Replace
)

func (s Strategy) String() string {
	switch s {
	case Keyed:
		return "keyed"
	case Append:
		return "append"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts "append", "replace" or "keyed".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "append":
		return Append, nil
	case "replace":
		return Replace, nil
	case "keyed", "":
		return Keyed, nil
	default:
		return Keyed, fmt.Errorf("unknown merge strategy %q", s)
	}
}

// Descriptor describes one top-level configuration field.
type Descriptor struct {
	// Name is the key used in files and the composed tree.
	Name string
	// Default is contributed by the defaults layer when non-nil.
	Default any
	// Strategy governs how the field combines across layers.
	Strategy Strategy
	// CLIDefaultAsAbsent drops command-line values the user did not supply.
	CLIDefaultAsAbsent bool
	// Required fields must have a value once all layers are composed.
	Required bool
	// CLILong overrides the long flag name derived from Name.
	CLILong string
	// CLIShort is an optional one-letter flag alias.
	CLIShort string
}

// Flag returns the long command-line flag name for the field.
func (d Descriptor) Flag() string {
	if d.CLILong != "" {
		return d.CLILong
	}
	return strings.ReplaceAll(d.Name, "_", "-")
}

// Defaults builds the defaults layer value from descriptors.
func Defaults(descriptors []Descriptor) map[string]any {
	out := map[string]any{}
	for _, d := range descriptors {
		if d.Default != nil {
			out[d.Name] = d.Default
		}
	}
	return out
}
