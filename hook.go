package orthoconfig

// MergeContext describes the resolution that produced a value.
type MergeContext struct {
	// Prefix is the environment prefix in effect.
	Prefix string
	// Subcommand is set when resolving a subcommand's configuration.
	Subcommand string
	// Files lists the configuration files that contributed, in precedence order.
	Files []string
	// HasCLI reports whether a command-line layer was supplied.
	HasCLI bool
}

// PostMergeHook is implemented by configuration types that adjust or
// validate themselves once all layers are merged. The method must have a
// pointer receiver.
type PostMergeHook interface {
	PostMerge(ctx MergeContext) error
}
