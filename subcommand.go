package orthoconfig

import (
	"errors"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/env"
	"github.com/leynos/ortho-config-sub000/format"
	"github.com/leynos/ortho-config-sub000/merge"
)

// commandsKey holds per-subcommand tables in configuration files.
const commandsKey = "cmds"

// LoadSubcommand resolves the configuration of subcommand name. Every
// discovered file that loads contributes its cmds.<name> table. The tables
// are folded in discovery order, but unlike the layer merge the earlier file
// wins a conflict: discovery order is priority order, so a file Load would
// pick over another also takes precedence here. Later files only fill keys
// the earlier ones leave unset. Environment variables are read with the
// prefix <PREFIX>CMDS_<NAME>_. A broken extends chain in any file aborts
// resolution.
func (l *Loader[T]) LoadSubcommand(name string, cli ...merge.Layer) (*Result[T], error) {
	candidates := l.opts.discoverer().Candidates()

	var (
		scoped            map[string]any
		files             []string
		required, optional []error
	)
	for _, c := range candidates {
		tree, err := l.files.Load(c.Path)
		if errors.Is(err, cfgerr.ErrExtends) {
			l.logger.Error("failed to load subcommand configuration", "subcommand", name, "error", err)
			return nil, err
		}
		if err == nil && tree == nil {
			if c.Required {
				err = cfgerr.NotFound(c.Path)
			} else {
				continue
			}
		}
		var section map[string]any
		if err == nil {
			section, err = scope(tree, name, c.Path)
		}
		if err != nil {
			if c.Required {
				required = append(required, err)
			} else {
				optional = append(optional, err)
			}
			continue
		}

		files = append(files, c.Path)
		if scoped == nil {
			scoped = section
		} else {
			// section is the lower-priority file; scoped overlays it.
			scoped = merge.Deep(section, scoped)
		}
	}

	if len(files) == 0 {
		if err := cfgerr.Aggregate(append(required, optional...)...); err != nil {
			l.logger.Error("failed to load subcommand configuration", "subcommand", name, "error", err)
			return nil, err
		}
	}
	for _, err := range required {
		l.logger.Warn("required configuration file could not be used", "subcommand", name, "error", err)
	}
	for _, err := range optional {
		l.logger.Debug("skipped configuration file", "subcommand", name, "error", err)
	}

	prefix := l.opts.prefix()
	layers := []merge.Layer{merge.NewLayer(merge.FromDefaults, merge.Defaults(l.descriptors), "")}
	if len(files) > 0 {
		layers = append(layers, merge.NewLayer(merge.FromFile, scoped, files[0]))
	}
	if prefix != "" {
		layers = append(layers, merge.NewLayer(merge.FromEnvironment, env.Collect(l.opts.env(), env.SubcommandPrefix(prefix, name)), ""))
	}
	layers = append(layers, cli...)

	cfg, err := l.build(layers, MergeContext{Prefix: prefix, Subcommand: name, Files: files, HasCLI: len(cli) > 0})
	if err != nil {
		return nil, err
	}
	return &Result[T]{Config: cfg, Files: files, RequiredErrors: required}, nil
}

// scope returns the cmds.<name> table of tree, or an empty object when the
// file has none.
func scope(tree map[string]any, name, path string) (map[string]any, error) {
	raw, ok := tree[commandsKey]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}
	cmds, ok := raw.(map[string]any)
	if !ok {
		return nil, cfgerr.MergeShape(merge.FromFile.String(), format.KindOf(raw), path)
	}
	section, ok := cmds[name]
	if !ok || section == nil {
		return map[string]any{}, nil
	}
	obj, ok := section.(map[string]any)
	if !ok {
		return nil, cfgerr.MergeShape(merge.FromFile.String(), format.KindOf(section), path)
	}
	return obj, nil
}
