package orthoconfig

import (
	"log/slog"
	"strings"

	"github.com/leynos/ortho-config-sub000/discovery"
	"github.com/leynos/ortho-config-sub000/env"
	"github.com/leynos/ortho-config-sub000/merge"
)

// Options configures a Loader.
type Options struct {
	// AppName identifies the application for file discovery.
	AppName string
	// Prefix is prepended to environment variable names. Defaults to the
	// upper-cased AppName followed by an underscore.
	Prefix string
	// ConfigPathEnv names the variable holding an explicit configuration file.
	// Defaults to Prefix + "CONFIG_PATH".
	ConfigPathEnv string

	// ConfigFileName, DotfileName and ProjectFileName override the file names
	// searched during discovery. See discovery.Identity.
	ConfigFileName  string
	DotfileName     string
	ProjectFileName string
	// ProjectRoots are searched after the platform directories. Defaults to
	// the working directory.
	ProjectRoots []string

	// RequiredPaths must exist, e.g. a path given with --config.
	RequiredPaths []string
	// OptionalPaths are tried before any discovered location.
	OptionalPaths []string

	// Descriptors replaces the table derived from the target struct.
	Descriptors []merge.Descriptor

	// Env supplies environment variables. Defaults to the process environment.
	Env env.Source
	// HomeDir and WorkingDir override the platform lookups used during
	// discovery.
	HomeDir    func() (string, error)
	WorkingDir func() (string, error)

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) prefix() string {
	if o.Prefix != "" {
		return o.Prefix
	}
	if o.AppName == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(o.AppName, "-", "_")) + "_"
}

func (o Options) configPathEnv() string {
	if o.ConfigPathEnv != "" {
		return o.ConfigPathEnv
	}
	if p := o.prefix(); p != "" {
		return p + "CONFIG_PATH"
	}
	return ""
}

func (o Options) env() env.Source {
	if o.Env != nil {
		return o.Env
	}
	return env.OS
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) discoverer() *discovery.Discoverer {
	id := discovery.Identity{
		AppName:         o.AppName,
		ConfigFileName:  o.ConfigFileName,
		DotfileName:     o.DotfileName,
		ProjectFileName: o.ProjectFileName,
		ProjectRoots:    o.ProjectRoots,
		EnvVar:          o.configPathEnv(),
		RequiredPaths:   o.RequiredPaths,
		OptionalPaths:   o.OptionalPaths,
	}
	opts := []discovery.Option{discovery.WithEnv(o.env())}
	if o.HomeDir != nil {
		opts = append(opts, discovery.WithHomeDir(o.HomeDir))
	}
	if o.WorkingDir != nil {
		opts = append(opts, discovery.WithWorkingDir(o.WorkingDir))
	}
	return discovery.New(id, opts...)
}
