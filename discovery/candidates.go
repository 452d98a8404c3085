package discovery

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/leynos/ortho-config-sub000/env"
	"github.com/leynos/ortho-config-sub000/format"
	"github.com/leynos/ortho-config-sub000/internal/platform"
)

// defaultConfigFileName is searched for inside "<dir>/<app>/".
const defaultConfigFileName = "config.toml"

// Candidate is a path that may hold configuration.
type Candidate struct {
	Path string
	// Required candidates must exist; a missing required file is an error.
	Required bool
}

// Identity describes where an application keeps its configuration.
type Identity struct {
	// AppName names the per-application directory and the dotfile.
	AppName string
	// ConfigFileName is looked up as "<dir>/<app>/<ConfigFileName>".
	// Defaults to "config.toml".
	ConfigFileName string
	// DotfileName is looked up directly inside each directory.
	// Defaults to ".<app>.toml".
	DotfileName string
	// ProjectFileName is joined with each project root.
	// Defaults to DotfileName.
	ProjectFileName string
	// ProjectRoots are searched last. When empty the working directory is used.
	ProjectRoots []string
	// EnvVar names a variable holding an explicit configuration path.
	EnvVar string
	// RequiredPaths must exist, e.g. the value of a --config flag.
	RequiredPaths []string
	// OptionalPaths are searched before any discovered location.
	OptionalPaths []string
}

func (id Identity) configFileName() string {
	if id.ConfigFileName != "" {
		return id.ConfigFileName
	}
	return defaultConfigFileName
}

func (id Identity) dotfileName() string {
	if id.DotfileName != "" {
		return id.DotfileName
	}
	if id.AppName == "" {
		return ""
	}
	return "." + id.AppName + ".toml"
}

func (id Identity) projectFileName() string {
	if id.ProjectFileName != "" {
		return id.ProjectFileName
	}
	return id.dotfileName()
}

// Discoverer generates candidate paths for an Identity.
type Discoverer struct {
	id      Identity
	env     env.Source
	goos    string
	homeDir func() (string, error)
	getwd   func() (string, error)
}

// Option customises a Discoverer.
type Option func(*Discoverer)

// WithEnv sets the environment consulted for directory variables.
func WithEnv(src env.Source) Option {
	return func(d *Discoverer) { d.env = src }
}

// WithGOOS overrides the operating system used to pick directories and to
// normalise paths.
func WithGOOS(goos string) Option {
	return func(d *Discoverer) { d.goos = goos }
}

// WithHomeDir overrides the platform home directory lookup used when neither
// HOME nor USERPROFILE is set.
func WithHomeDir(fn func() (string, error)) Option {
	return func(d *Discoverer) { d.homeDir = fn }
}

// WithWorkingDir overrides the working directory used as the default project
// root.
func WithWorkingDir(fn func() (string, error)) Option {
	return func(d *Discoverer) { d.getwd = fn }
}

// New creates a Discoverer reading the process environment unless told
// otherwise.
func New(id Identity, opts ...Option) *Discoverer {
	d := &Discoverer{
		id:      id,
		env:     env.OS,
		goos:    runtime.GOOS,
		homeDir: os.UserHomeDir,
		getwd:   os.Getwd,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Candidates returns the ordered, deduplicated candidate list. Required
// candidates always come first.
func (d *Discoverer) Candidates() []Candidate {
	c := &collector{goos: d.goos, seen: map[string]struct{}{}}

	for _, p := range d.id.RequiredPaths {
		c.add(p, true)
	}
	for _, p := range d.id.OptionalPaths {
		c.add(p, false)
	}
	if d.id.EnvVar != "" {
		if p, ok := env.NonEmpty(d.env, d.id.EnvVar); ok {
			c.add(p, false)
		}
	}

	if d.id.AppName != "" {
		for _, base := range d.platformDirs() {
			d.addBase(c, base)
		}
		if home, ok := d.home(); ok {
			for _, p := range d.variants(filepath.Join(home, ".config", d.id.AppName, d.id.configFileName())) {
				c.add(p, false)
			}
			for _, p := range d.variants(filepath.Join(home, d.id.dotfileName())) {
				c.add(p, false)
			}
		}
	}

	if name := d.id.projectFileName(); name != "" {
		for _, root := range d.projectRoots() {
			c.add(filepath.Join(root, name), false)
		}
	}

	return c.out
}

// addBase probes "<base>/<app>/<config file>" then "<base>/<dotfile>".
func (d *Discoverer) addBase(c *collector, base string) {
	for _, p := range d.variants(filepath.Join(base, d.id.AppName, d.id.configFileName())) {
		c.add(p, false)
	}
	for _, p := range d.variants(filepath.Join(base, d.id.dotfileName())) {
		c.add(p, false)
	}
}

// platformDirs lists XDG, APPDATA and LOCALAPPDATA directories in search
// order.
func (d *Discoverer) platformDirs() []string {
	var dirs []string
	if xdg, ok := env.NonEmpty(d.env, "XDG_CONFIG_HOME"); ok {
		dirs = append(dirs, xdg)
	} else if platform.UsesXDGDirs(d.goos) {
		list, ok := env.NonEmpty(d.env, "XDG_CONFIG_DIRS")
		if !ok {
			list = "/etc/xdg"
		}
		for _, dir := range strings.Split(list, ":") {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}

	for _, v := range []struct {
		name   string
		folder platform.Folder
	}{
		{"APPDATA", platform.RoamingAppData},
		{"LOCALAPPDATA", platform.LocalAppData},
	} {
		if dir, ok := env.NonEmpty(d.env, v.name); ok {
			dirs = append(dirs, dir)
		} else if d.goos == platform.Windows {
			if dir, ok := platform.KnownFolder(v.folder); ok {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

func (d *Discoverer) home() (string, bool) {
	for _, name := range []string{"HOME", "USERPROFILE"} {
		if dir, ok := env.NonEmpty(d.env, name); ok {
			return dir, true
		}
	}
	if d.homeDir == nil {
		return "", false
	}
	dir, err := d.homeDir()
	if err != nil || dir == "" {
		return "", false
	}
	return dir, true
}

func (d *Discoverer) projectRoots() []string {
	if len(d.id.ProjectRoots) > 0 {
		return d.id.ProjectRoots
	}
	if d.getwd == nil {
		return nil
	}
	wd, err := d.getwd()
	if err != nil || wd == "" {
		return nil
	}
	return []string{wd}
}

// variants expands path into one candidate per compiled-in extension, in
// format group order. Paths whose extension is not a known format are
// returned unchanged.
func (d *Discoverer) variants(path string) []string {
	ext := filepath.Ext(path)
	if ext == "" || !format.Supported(ext) {
		return []string{path}
	}
	stem := strings.TrimSuffix(path, ext)
	exts := format.Extensions()
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		out = append(out, stem+"."+e)
	}
	return out
}

type collector struct {
	goos string
	seen map[string]struct{}
	out  []Candidate
}

func (c *collector) add(path string, required bool) {
	if path == "" {
		return
	}
	key := Key(path, c.goos)
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.out = append(c.out, Candidate{Path: path, Required: required})
}

// Key returns the deduplication key for path on goos. Paths compare
// case-sensitively everywhere except Windows, where case is folded and
// backslashes are treated as slashes.
func Key(path, goos string) string {
	if goos == platform.Windows {
		p := strings.ToLower(strings.ReplaceAll(path, `\`, "/"))
		if len(p) > 1 {
			p = strings.TrimSuffix(p, "/")
		}
		return p
	}
	return filepath.Clean(path)
}
