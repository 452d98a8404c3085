package env

import (
	"os"
	"sort"
	"strings"
)

// Source provides environment variables.
type Source interface {
	LookupEnv(key string) (string, bool)
	Environ() []string
}

// OS is the process environment.
var OS Source = osSource{}

type osSource struct{}

func (osSource) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (osSource) Environ() []string                   { return os.Environ() }

// Map is a fixed environment, mostly useful in tests.
type Map map[string]string

// LookupEnv returns the value stored for key.
func (m Map) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Environ returns the variables as sorted KEY=value pairs.
func (m Map) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// NonEmpty returns the value of key when it is set to a non-empty string.
func NonEmpty(src Source, key string) (string, bool) {
	v, ok := src.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SubcommandPrefix returns the variable prefix used for a subcommand's
// settings: "<prefix>CMDS_<NAME>_" with dashes in the name turned into
// underscores.
func SubcommandPrefix(prefix, name string) string {
	upper := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return prefix + "CMDS_" + upper + "_"
}

// VarName returns the variable that sets a top-level field under prefix.
func VarName(prefix, field string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(field, "-", "_"))
}
