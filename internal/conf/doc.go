// Package conf holds the configuration of the hello-world example program.
//
// # Usage
//
// Build a ConfigSource and read the configuration for the root command or
// one of its subcommands:
//
//	cs := &conf.ConfigSource{ConfigPath: c.String("config")}
//	cfg, err := cs.Read(cliflags.FromURFave(c, c.App.Flags, conf.Descriptors()))
//
// # Load Order
//
// Values are applied in four layers, lowest first:
//
//  1. Embedded defaults (defaults.toml)
//  2. The first configuration file found, e.g. ~/.config/hello_world/config.toml
//     or .hello_world.toml in the working directory
//  3. HELLO_WORLD_* environment variables
//  4. Command-line flags
//
// Salutations accumulate across all layers rather than replacing each other.
package conf
