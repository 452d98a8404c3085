// Package merge composes provenance-tagged configuration layers into a single
// tree.
//
// Layers are folded in ascending precedence: defaults, files, environment,
// command line. Objects are merged key by key with later layers winning;
// scalars and arrays are replaced. Fields described by a Descriptor can opt
// into a collection strategy instead:
//
//   - Append concatenates the field's values from every layer, in layer
//     order. A scalar counts as a one-element list.
//   - Replace keeps the value of the last layer that set the field to
//     something non-empty.
//   - Keyed merges the field like any other object, key by key.
//
// A Descriptor marked CLIDefaultAsAbsent ignores command-line values the user
// did not type, so a parser default does not mask a file or environment value.
package merge
