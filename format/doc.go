// Package format parses configuration files into JSON-like trees.
//
// Parsers are grouped by format family. TOML is always available; the JSON
// family (.json, .json5) and the YAML family (.yaml, .yml) can be left out of
// a build with the ortho_nojson and ortho_noyaml build tags. Groups reports the
// families that are compiled in, always in the order TOML, JSON, YAML, which
// is the order used when generating candidate file names.
//
// Every parser output is passed through Normalize so that callers only ever
// see map[string]any, []any, string, bool, int64 and float64 values.
package format
