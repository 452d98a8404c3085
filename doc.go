// Package orthoconfig resolves an application's configuration from
// defaults, configuration files, environment variables and command-line
// flags.
//
// # Usage
//
// Describe the configuration as a struct. Field keys come from the
// mapstructure tag, or the snake_case form of the Go name. The ortho tag sets
// the merge behaviour and the default tag a default value:
//
//	type Settings struct {
//	    Recipient   string   `mapstructure:"recipient" default:"World"`
//	    Salutations []string `mapstructure:"salutations" ortho:"merge=append"`
//	    Punctuation string   `mapstructure:"punctuation" ortho:"cli_default_as_absent"`
//	}
//
//	loader, err := orthoconfig.New[Settings](orthoconfig.Options{AppName: "hello"})
//	res, err := loader.Load(cliflags.FromURFave(c, c.Command.Flags, loader.Descriptors()))
//	fmt.Println(res.Config.Recipient)
//
// # Precedence
//
// Layers are applied lowest first:
//
//  1. Defaults from the descriptor table
//  2. The first configuration file found (after resolving extends)
//  3. Environment variables, e.g. HELLO_RECIPIENT
//  4. Command-line flags
//
// Subcommands read the cmds.<name> table of every discovered file and
// variables prefixed with HELLO_CMDS_<NAME>_. See LoadSubcommand.
//
// # Errors
//
// All failures are reported through the cfgerr package. Failures of required
// configuration files are kept in Result.RequiredErrors even when a later
// optional file loads, so callers can warn about them.
package orthoconfig
