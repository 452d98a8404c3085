package orthoconfig

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/discovery"
	"github.com/leynos/ortho-config-sub000/env"
	"github.com/leynos/ortho-config-sub000/internal/l10n"
	"github.com/leynos/ortho-config-sub000/loader"
	"github.com/leynos/ortho-config-sub000/merge"
)

// Result is a resolved configuration.
type Result[T any] struct {
	Config *T
	// Files lists the configuration files that contributed, in precedence
	// order. It is empty when no file was found.
	Files []string
	// RequiredErrors holds failures of required files that did not prevent
	// resolution.
	RequiredErrors []error
}

// Loader resolves configurations of type T.
type Loader[T any] struct {
	opts        Options
	descriptors []merge.Descriptor
	files       *loader.Loader
	logger      *slog.Logger
}

// New creates a Loader for T. The descriptor table comes from
// Options.Descriptors or, when that is nil, from Describe[T].
func New[T any](opts Options) (*Loader[T], error) {
	descriptors := opts.Descriptors
	if descriptors == nil {
		var err error
		descriptors, err = Describe[T]()
		if err != nil {
			return nil, err
		}
	}
	return &Loader[T]{
		opts:        opts,
		descriptors: descriptors,
		files:       loader.New(),
		logger:      opts.logger(),
	}, nil
}

// Load resolves T with a new Loader. See Loader.Load.
func Load[T any](opts Options, cli ...merge.Layer) (*Result[T], error) {
	l, err := New[T](opts)
	if err != nil {
		return nil, err
	}
	return l.Load(cli...)
}

// Descriptors returns the descriptor table in use. Pass it to the cliflags
// adapters so flags map onto the same fields.
func (l *Loader[T]) Descriptors() []merge.Descriptor {
	return l.descriptors
}

// Load resolves the configuration from defaults, the first configuration
// file found, the environment and the given command-line layers.
func (l *Loader[T]) Load(cli ...merge.Layer) (*Result[T], error) {
	candidates := l.opts.discoverer().Candidates()
	l.logger.Debug("searching for configuration", "candidates", len(candidates))

	outcome := discovery.DiscoverFirst(candidates, l.files.Load, func(_ string, tree map[string]any) (map[string]any, error) {
		return tree, nil
	})
	if !outcome.Found {
		if err := outcome.Err(); err != nil {
			l.logger.Error("failed to load configuration", "error", err)
			return nil, err
		}
	}
	for _, err := range outcome.RequiredErrors {
		l.logger.Warn("required configuration file could not be used", "error", err)
	}
	for _, err := range outcome.OptionalErrors {
		l.logger.Debug("skipped configuration file", "error", err)
	}

	layers := []merge.Layer{merge.NewLayer(merge.FromDefaults, merge.Defaults(l.descriptors), "")}
	var files []string
	if outcome.Found {
		l.logger.Debug("loaded configuration file", "path", outcome.Path)
		layers = append(layers, merge.NewLayer(merge.FromFile, outcome.Value, outcome.Path))
		files = append(files, outcome.Path)
	}
	prefix := l.opts.prefix()
	layers = append(layers, l.envLayer(prefix))
	layers = append(layers, cli...)

	cfg, err := l.build(layers, MergeContext{Prefix: prefix, Files: files, HasCLI: len(cli) > 0})
	if err != nil {
		return nil, err
	}
	return &Result[T]{Config: cfg, Files: files, RequiredErrors: outcome.RequiredErrors}, nil
}

func (l *Loader[T]) envLayer(prefix string) merge.Layer {
	if prefix == "" {
		return merge.NewLayer(merge.FromEnvironment, map[string]any{}, "")
	}
	return merge.NewLayer(merge.FromEnvironment, env.Collect(l.opts.env(), prefix, l.opts.configPathEnv()), "")
}

// build composes layers, checks required fields, decodes T and runs the
// post-merge hook.
func (l *Loader[T]) build(layers []merge.Layer, ctx MergeContext) (*T, error) {
	tree, err := merge.Resolve(layers, l.descriptors)
	if err != nil {
		return nil, err
	}
	if missing := merge.Missing(tree, l.descriptors); len(missing) > 0 {
		return nil, l.missingError(missing, ctx)
	}

	cfg := new(T)
	if err := merge.Decode(tree, cfg); err != nil {
		return nil, err
	}

	if hook, ok := any(cfg).(PostMergeHook); ok {
		if err := hook.PostMerge(ctx); err != nil {
			var cerr *cfgerr.Error
			if errors.As(err, &cerr) {
				return nil, err
			}
			return nil, cfgerr.Validation("", l10n.T("post-merge hook failed"), err)
		}
	}
	return cfg, nil
}

func (l *Loader[T]) missingError(missing []string, ctx MergeContext) error {
	envPrefix := ctx.Prefix
	if ctx.Subcommand != "" {
		envPrefix = env.SubcommandPrefix(ctx.Prefix, ctx.Subcommand)
	}
	byName := make(map[string]merge.Descriptor, len(l.descriptors))
	for _, d := range l.descriptors {
		byName[d.Name] = d
	}

	errs := make([]error, 0, len(missing))
	for _, name := range missing {
		d := byName[name]
		key := name
		if ctx.Subcommand != "" {
			key = fmt.Sprintf("cmds.%s.%s", ctx.Subcommand, name)
		}
		hint := l10n.T("set --%s, %s or %q in a configuration file", d.Flag(), env.VarName(envPrefix, name), key)
		errs = append(errs, cfgerr.Validation(name, l10n.T("missing required value"), errors.New(hint)))
	}
	return cfgerr.Aggregate(errs...)
}
