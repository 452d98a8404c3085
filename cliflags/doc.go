// Package cliflags turns parsed command-line flags into a configuration layer.
//
// The adapters only read flags that correspond to a field descriptor. A flag
// the user typed is recorded as explicit; a flag left at a non-zero parser
// default is still contributed, but fields marked CLIDefaultAsAbsent will then
// yield to file and environment values.
package cliflags
