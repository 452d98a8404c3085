// Package env reads configuration from environment variables.
//
// Access goes through the Source interface so that discovery and layer
// building can be tested without mutating the process environment. OS reads
// the real environment; Map serves a fixed set of variables.
//
// Variables are selected by prefix. The remainder of the name is lower-cased
// and split on "__" into nested keys, so with prefix "APP_" the variable
// APP_DB__HOST=localhost contributes {"db": {"host": "localhost"}}. Values are
// interpreted as TOML values where possible. Numbers and booleans keep their
// original text (see format.ParseLiteral) so string fields decode it as typed.
package env
