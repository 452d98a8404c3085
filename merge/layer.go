package merge

import (
	"github.com/leynos/ortho-config-sub000/format"
)

// Provenance records where a layer came from.
type Provenance int

const (
	// FromDefaults is the lowest precedence layer.
	FromDefaults Provenance = iota
	// FromFile is a configuration file (after extends resolution).
	FromFile
	// FromEnvironment is built from prefixed environment variables.
	FromEnvironment
	// FromCLI is built from parsed command-line input.
	FromCLI
)

func (p Provenance) String() string {
	switch p {
	case FromDefaults:
		return "defaults"
	case FromFile:
		return "file"
	case FromEnvironment:
		return "environment"
	case FromCLI:
		return "cli"
	default:
		return "unknown"
	}
}

// Layer is one contribution to the composed configuration. Layers are
// immutable once built.
type Layer struct {
	value      any
	provenance Provenance
	path       string
	explicit   map[string]struct{}
}

// NewLayer builds a layer from value, which is normalised into a JSON-like
// tree. path names the originating file and may be empty.
func NewLayer(p Provenance, value any, path string) Layer {
	return Layer{value: format.Normalize(value), provenance: p, path: path}
}

// NewCLILayer builds a command-line layer. explicit lists the fields the user
// actually supplied; other values are treated as parser defaults.
func NewCLILayer(value any, explicit []string) Layer {
	l := NewLayer(FromCLI, value, "")
	l.explicit = make(map[string]struct{}, len(explicit))
	for _, name := range explicit {
		l.explicit[name] = struct{}{}
	}
	return l
}

// Value returns the layer's tree. Callers must not modify it.
func (l Layer) Value() any { return l.value }

// Provenance returns where the layer came from.
func (l Layer) Provenance() Provenance { return l.provenance }

// Path returns the originating file, if any.
func (l Layer) Path() string { return l.path }

// Explicit reports whether field was supplied by the user on a CLI layer.
func (l Layer) Explicit(field string) bool {
	_, ok := l.explicit[field]
	return ok
}
