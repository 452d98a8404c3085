package conf

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	orthoconfig "github.com/leynos/ortho-config-sub000"
	"github.com/leynos/ortho-config-sub000/env"
	"github.com/leynos/ortho-config-sub000/format"
	"github.com/leynos/ortho-config-sub000/merge"
)

const (
	// AppName names the configuration directory and dotfile.
	AppName = "hello_world"
	// EnvPrefix is prepended to every environment variable.
	EnvPrefix = "HELLO_WORLD_"
)

// defaultConfig contains the embedded default configuration file.
// It is compiled into the binary and forms the base layer beneath
// configuration files, the environment and flags.
//
//go:embed defaults.toml
var defaultConfig string

// ErrInvalidCount is returned when count is below one.
var ErrInvalidCount = errors.New("count must be at least 1")

// HelloWorld is the configuration of the root command.
type HelloWorld struct {
	Recipient   string   `mapstructure:"recipient" ortho:"cli_short=r"`
	Salutations []string `mapstructure:"salutations" ortho:"merge=append,cli_long=salutation,cli_short=s"`
	Punctuation string   `mapstructure:"punctuation" ortho:"cli_default_as_absent"`
	Count       int      `mapstructure:"count" ortho:"merge=replace"`
	IsExcited   bool     `mapstructure:"is_excited"`
	LogLevel    string   `mapstructure:"log_level"`
}

// PostMerge normalises the merged configuration.
func (h *HelloWorld) PostMerge(orthoconfig.MergeContext) error {
	h.Recipient = strings.TrimSpace(h.Recipient)
	if h.Count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, h.Count)
	}
	return nil
}

// Greeting renders the message described by the configuration.
func (h HelloWorld) Greeting() string {
	salutation := strings.Join(h.Salutations, ", ")
	msg := fmt.Sprintf("%s, %s%s", salutation, h.Recipient, h.Punctuation)
	if h.IsExcited {
		msg = strings.ToUpper(msg)
	}
	return msg
}

// GreetCommand is the configuration of the greet subcommand.
type GreetCommand struct {
	Preamble    string `mapstructure:"preamble"`
	Punctuation string `mapstructure:"punctuation" default:"!" ortho:"cli_default_as_absent"`
}

// TakeLeaveCommand is the configuration of the take-leave subcommand.
type TakeLeaveCommand struct {
	Parting   string   `mapstructure:"parting" default:"Goodbye"`
	Gifts     []string `mapstructure:"gifts" ortho:"cli_long=gift"`
	Wave      bool     `mapstructure:"wave"`
	Recipient string   `mapstructure:"recipient" ortho:"required"`
}

// Descriptors returns the descriptor table of HelloWorld with the embedded
// defaults applied.
func Descriptors() []merge.Descriptor {
	descriptors, err := orthoconfig.Describe[HelloWorld]()
	if err != nil {
		panic(fmt.Sprintf("invalid HelloWorld descriptors: %v", err))
	}
	defaults, err := parseDefaults(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded defaults: %v", err))
	}
	for i := range descriptors {
		if v, ok := defaults[descriptors[i].Name]; ok {
			descriptors[i].Default = v
		}
	}
	return descriptors
}

// parseDefaults parses the embedded TOML defaults.
func parseDefaults(data string) (map[string]any, error) {
	tree, err := format.Parse("defaults.toml", []byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return tree, nil
}

// ConfigSource orchestrates loading the example's configuration.
// See the Read methods.
type ConfigSource struct {
	// ConfigPath is a file named with --config. It must exist.
	ConfigPath string
	// ProjectRoots overrides the working directory as the project root.
	ProjectRoots []string
	// Env overrides the process environment.
	Env env.Source
	// HomeDir overrides the home directory lookup.
	HomeDir func() (string, error)
	Logger  *slog.Logger
}

func (cs *ConfigSource) options(descriptors []merge.Descriptor) orthoconfig.Options {
	opts := orthoconfig.Options{
		AppName:      AppName,
		Prefix:       EnvPrefix,
		ProjectRoots: cs.ProjectRoots,
		Descriptors:  descriptors,
		Env:          cs.Env,
		HomeDir:      cs.HomeDir,
		Logger:       cs.Logger,
	}
	if cs.ConfigPath != "" {
		opts.RequiredPaths = []string{cs.ConfigPath}
	}
	return opts
}

// Read loads and returns the root command configuration by merging all
// layers. A --config file that cannot be used is an error even when another
// file was found.
func (cs *ConfigSource) Read(cli ...merge.Layer) (HelloWorld, error) {
	res, err := orthoconfig.Load[HelloWorld](cs.options(Descriptors()), cli...)
	if err != nil {
		return HelloWorld{}, err
	}
	if len(res.RequiredErrors) > 0 {
		return HelloWorld{}, fmt.Errorf("failed to load %s: %w", cs.ConfigPath, errors.Join(res.RequiredErrors...))
	}
	return *res.Config, nil
}

// ReadGreet loads the greet subcommand configuration.
func (cs *ConfigSource) ReadGreet(cli ...merge.Layer) (GreetCommand, error) {
	return readSubcommand[GreetCommand](cs, "greet", cli)
}

// ReadTakeLeave loads the take-leave subcommand configuration.
func (cs *ConfigSource) ReadTakeLeave(cli ...merge.Layer) (TakeLeaveCommand, error) {
	return readSubcommand[TakeLeaveCommand](cs, "take-leave", cli)
}

func readSubcommand[T any](cs *ConfigSource, name string, cli []merge.Layer) (T, error) {
	var zero T
	l, err := orthoconfig.New[T](cs.options(nil))
	if err != nil {
		return zero, err
	}
	res, err := l.LoadSubcommand(name, cli...)
	if err != nil {
		return zero, fmt.Errorf("failed to load %s configuration: %w", name, err)
	}
	if len(res.RequiredErrors) > 0 {
		return zero, fmt.Errorf("failed to load %s: %w", cs.ConfigPath, errors.Join(res.RequiredErrors...))
	}
	return *res.Config, nil
}

// SubcommandDescriptors returns the descriptor table of a subcommand
// configuration type.
func SubcommandDescriptors[T any]() []merge.Descriptor {
	descriptors, err := orthoconfig.Describe[T]()
	if err != nil {
		panic(fmt.Sprintf("invalid descriptors: %v", err))
	}
	return descriptors
}
