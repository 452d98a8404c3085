package discovery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/leynos/ortho-config-sub000/env"
)

func fixed(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func failing() (string, error) {
	return "", errors.New("unavailable")
}

func paths(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Path
	}
	return out
}

func allExts(stem string) []string {
	return []string{stem + ".toml", stem + ".json", stem + ".json5", stem + ".yaml", stem + ".yml"}
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestCandidatesOrder(t *testing.T) {
	d := New(Identity{
		AppName:       "app",
		EnvVar:        "APP_CONFIG_PATH",
		RequiredPaths: []string{"/req.toml"},
		OptionalPaths: []string{"/opt.toml"},
	},
		WithGOOS("linux"),
		WithEnv(env.Map{
			"APP_CONFIG_PATH": "/explicit.toml",
			"XDG_CONFIG_HOME": "/xdg",
			"HOME":            "/home/u",
		}),
		WithWorkingDir(fixed("/proj")),
	)

	got := d.Candidates()
	want := concat(
		[]string{"/req.toml", "/opt.toml", "/explicit.toml"},
		allExts("/xdg/app/config"),
		allExts("/xdg/.app"),
		allExts("/home/u/.config/app/config"),
		allExts("/home/u/.app"),
		[]string{"/proj/.app.toml"},
	)
	assert.Equal(t, want, paths(got))
	assert.True(t, got[0].Required)
	for _, c := range got[1:] {
		assert.False(t, c.Required, c.Path)
	}
}

func TestCandidatesXDGConfigDirs(t *testing.T) {
	tests := []struct {
		name string
		vars env.Map
		want []string
	}{
		{
			name: "defaults to /etc/xdg",
			vars: env.Map{},
			want: concat(allExts("/etc/xdg/app/config"), allExts("/etc/xdg/.app")),
		},
		{
			name: "empty dirs fall back to /etc/xdg",
			vars: env.Map{"XDG_CONFIG_DIRS": ""},
			want: concat(allExts("/etc/xdg/app/config"), allExts("/etc/xdg/.app")),
		},
		{
			name: "every entry in order",
			vars: env.Map{"XDG_CONFIG_DIRS": "/a::/b"},
			want: concat(allExts("/a/app/config"), allExts("/a/.app"), allExts("/b/app/config"), allExts("/b/.app")),
		},
		{
			name: "config home wins over dirs",
			vars: env.Map{"XDG_CONFIG_HOME": "/h", "XDG_CONFIG_DIRS": "/a"},
			want: concat(allExts("/h/app/config"), allExts("/h/.app")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Identity{AppName: "app"},
				WithGOOS("linux"),
				WithEnv(tt.vars),
				WithHomeDir(failing),
				WithWorkingDir(failing),
			)
			assert.Equal(t, tt.want, paths(d.Candidates()))
		})
	}
}

func TestCandidatesWindows(t *testing.T) {
	d := New(Identity{AppName: "app", DotfileName: ".app.toml"},
		WithGOOS("windows"),
		WithEnv(env.Map{
			"APPDATA":         `C:\Users\U\AppData\Roaming`,
			"LOCALAPPDATA":    `c:\users\u\appdata\roaming`,
			"XDG_CONFIG_DIRS": "/ignored",
		}),
		WithHomeDir(failing),
		WithWorkingDir(failing),
	)

	got := paths(d.Candidates())
	// LOCALAPPDATA folds to the same directory and is dropped.
	require.Len(t, got, 10)
	assert.Equal(t, `C:\Users\U\AppData\Roaming/app/config.toml`, got[0])
	assert.Equal(t, `C:\Users\U\AppData\Roaming/.app.toml`, got[5])
	for _, p := range got {
		assert.NotContains(t, p, "ignored")
	}
}

func TestCandidatesHomeFallbacks(t *testing.T) {
	base := []Option{WithGOOS("darwin"), WithWorkingDir(failing)}

	d := New(Identity{AppName: "app"}, append(base, WithEnv(env.Map{"XDG_CONFIG_DIRS": "/x", "USERPROFILE": "/profile"}))...)
	assert.Contains(t, paths(d.Candidates()), "/profile/.app.toml")

	d = New(Identity{AppName: "app"}, append(base, WithEnv(env.Map{"XDG_CONFIG_DIRS": "/x"}), WithHomeDir(fixed("/fallback")))...)
	assert.Contains(t, paths(d.Candidates()), "/fallback/.config/app/config.toml")
}

func TestCandidatesProjectRoots(t *testing.T) {
	d := New(Identity{AppName: "app", ProjectFileName: "app.yaml", ProjectRoots: []string{"/one", "/two"}},
		WithGOOS("linux"),
		WithEnv(env.Map{"XDG_CONFIG_HOME": "/x"}),
		WithHomeDir(failing),
		WithWorkingDir(fixed("/cwd")),
	)
	got := paths(d.Candidates())
	assert.Equal(t, []string{"/one/app.yaml", "/two/app.yaml"}, got[len(got)-2:])
	assert.NotContains(t, got, "/cwd/app.yaml")
}

func TestCandidatesWithoutAppName(t *testing.T) {
	d := New(Identity{OptionalPaths: []string{"/a.toml"}, ProjectFileName: "local.toml"},
		WithGOOS("linux"),
		WithEnv(env.Map{"HOME": "/home/u"}),
		WithWorkingDir(fixed("/cwd")),
	)
	assert.Equal(t, []string{"/a.toml", "/cwd/local.toml"}, paths(d.Candidates()))
}

func TestCandidatesDeduplicate(t *testing.T) {
	d := New(Identity{
		AppName:       "app",
		RequiredPaths: []string{"/home/u/.app.toml"},
		OptionalPaths: []string{"/home/u/./.app.toml", "/proj/.app.toml"},
	},
		WithGOOS("linux"),
		WithEnv(env.Map{"XDG_CONFIG_HOME": "/x", "HOME": "/home/u"}),
		WithWorkingDir(fixed("/proj")),
	)
	got := d.Candidates()
	assert.Equal(t, Candidate{Path: "/home/u/.app.toml", Required: true}, got[0])
	assert.Equal(t, "/proj/.app.toml", got[1].Path)

	seen := map[string]int{}
	for _, c := range got {
		seen[Key(c.Path, "linux")]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, k)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		path, goos, want string
	}{
		{`C:\Users\Me\App\`, "windows", "c:/users/me/app"},
		{`\\server\share\x.toml`, "windows", "//server/share/x.toml"},
		{"/", "windows", "/"},
		{"/Home/Me/../Me/x.toml", "linux", "/Home/Me/x.toml"},
		{"/Home/Me/x.toml", "darwin", "/Home/Me/x.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.path, tt.goos))
		})
	}
}

func TestCollectorProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		goos := rapid.SampledFrom([]string{"linux", "windows", "darwin"}).Draw(t, "goos")
		segment := rapid.SampledFrom([]string{"a", "A", "b", "B", ".", "x.toml", "X.TOML"})
		n := rapid.IntRange(0, 20).Draw(t, "n")

		var input []Candidate
		for i := 0; i < n; i++ {
			depth := rapid.IntRange(1, 3).Draw(t, fmt.Sprintf("depth%d", i))
			p := ""
			for j := 0; j < depth; j++ {
				p += "/" + segment.Draw(t, fmt.Sprintf("seg%d_%d", i, j))
			}
			input = append(input, Candidate{Path: p, Required: rapid.Bool().Draw(t, fmt.Sprintf("req%d", i))})
		}

		dedup := func(in []Candidate) []Candidate {
			c := &collector{goos: goos, seen: map[string]struct{}{}}
			for _, cand := range in {
				c.add(cand.Path, cand.Required)
			}
			return c.out
		}

		once := dedup(input)
		keys := map[string]bool{}
		for _, c := range once {
			k := Key(c.Path, goos)
			if keys[k] {
				t.Fatalf("duplicate key %q in %v", k, once)
			}
			keys[k] = true
		}
		for _, c := range input {
			if !keys[Key(c.Path, goos)] {
				t.Fatalf("path %q lost", c.Path)
			}
		}

		twice := dedup(once)
		if len(twice) != len(once) {
			t.Fatalf("not idempotent: %v then %v", once, twice)
		}
		for i := range once {
			if once[i] != twice[i] {
				t.Fatalf("order changed at %d: %v vs %v", i, once[i], twice[i])
			}
		}
	})
}

func TestCandidatesStable(t *testing.T) {
	d := New(Identity{AppName: "app", OptionalPaths: []string{"/a.toml", "/a.toml"}},
		WithGOOS("linux"),
		WithEnv(env.Map{"XDG_CONFIG_DIRS": "/x:/y:/x", "HOME": "/home/u"}),
		WithWorkingDir(fixed("/home/u")),
	)
	first := d.Candidates()
	second := d.Candidates()
	assert.Equal(t, first, second)
	// /home/u/.app.toml is both a home and a project candidate.
	assert.Equal(t, "/home/u/.app.yml", first[len(first)-1].Path)
}
