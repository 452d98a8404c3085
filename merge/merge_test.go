package merge

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/format"
)

func TestDeep(t *testing.T) {
	base := map[string]any{
		"a": int64(1),
		"obj": map[string]any{
			"x": "base",
			"y": []any{"keep"},
		},
		"list": []any{int64(1), int64(2)},
	}
	overlay := map[string]any{
		"obj":  map[string]any{"x": "overlay", "z": nil},
		"list": []any{int64(3)},
		"a":    nil,
		"new":  map[string]any{"k": "v"},
	}

	got := Deep(base, overlay)
	expected := map[string]any{
		"a": int64(1),
		"obj": map[string]any{
			"x": "overlay",
			"y": []any{"keep"},
		},
		"list": []any{int64(3)},
		"new":  map[string]any{"k": "v"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Deep() mismatch (-want +got):\n%s", diff)
	}

	// Neither input is modified and the result shares no structure.
	if base["obj"].(map[string]any)["x"] != "base" {
		t.Error("base was modified")
	}
	got["new"].(map[string]any)["k"] = "changed"
	if overlay["new"].(map[string]any)["k"] != "v" {
		t.Error("result shares structure with overlay")
	}
	got["obj"].(map[string]any)["y"].([]any)[0] = "changed"
	if base["obj"].(map[string]any)["y"].([]any)[0] != "keep" {
		t.Error("result shares structure with base")
	}
}

func TestDeepScalarReplacesObject(t *testing.T) {
	got := Deep(map[string]any{"a": map[string]any{"b": 1}}, map[string]any{"a": "flat"})
	if diff := cmp.Diff(map[string]any{"a": "flat"}, got); diff != "" {
		t.Errorf("Deep() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in       string
		expected Strategy
		wantErr  bool
	}{
		{in: "append", expected: Append},
		{in: "Replace", expected: Replace},
		{in: " keyed ", expected: Keyed},
		{in: "", expected: Keyed},
		{in: "merge", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDescriptorFlag(t *testing.T) {
	if got := (Descriptor{Name: "log_level"}).Flag(); got != "log-level" {
		t.Errorf("expected log-level, got %s", got)
	}
	if got := (Descriptor{Name: "salutations", CLILong: "salutation"}).Flag(); got != "salutation" {
		t.Errorf("expected salutation, got %s", got)
	}
}

func TestDefaults(t *testing.T) {
	got := Defaults([]Descriptor{
		{Name: "a", Default: int64(1)},
		{Name: "b"},
		{Name: "c", Default: "x"},
	})
	if diff := cmp.Diff(map[string]any{"a": int64(1), "c": "x"}, got); diff != "" {
		t.Errorf("Defaults() mismatch (-want +got):\n%s", diff)
	}
}

func TestMissing(t *testing.T) {
	descriptors := []Descriptor{
		{Name: "host", Required: true},
		{Name: "port", Required: true},
		{Name: "user", Required: true},
		{Name: "debug"},
	}
	got := Missing(map[string]any{"port": int64(1), "user": nil}, descriptors)
	if diff := cmp.Diff([]string{"host", "user"}, got); diff != "" {
		t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
	}
}

func TestProvenanceString(t *testing.T) {
	for p, expected := range map[Provenance]string{
		FromDefaults:    "defaults",
		FromFile:        "file",
		FromEnvironment: "environment",
		FromCLI:         "cli",
	} {
		if p.String() != expected {
			t.Errorf("expected %s, got %s", expected, p.String())
		}
	}
}

func TestLayerExplicit(t *testing.T) {
	l := NewCLILayer(map[string]any{"a": 1, "b": 2}, []string{"a"})
	if !l.Explicit("a") || l.Explicit("b") {
		t.Errorf("unexpected explicit set for %v", l.Value())
	}
	if l.Provenance() != FromCLI {
		t.Errorf("expected cli provenance, got %v", l.Provenance())
	}
	if NewLayer(FromFile, map[string]any{}, "/x").Path() != "/x" {
		t.Error("path not recorded")
	}
}

type server struct {
	Host     string
	MaxConns int           `mapstructure:"max_conns"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Tags     []string      `mapstructure:"tags"`
	TLS      struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"tls"`
	LogLevel string
}

func TestDecode(t *testing.T) {
	tree := map[string]any{
		"host":      "localhost",
		"max_conns": "8",
		"timeout":   "1m30s",
		"tags":      "a,b",
		"tls":       map[string]any{"enabled": "true"},
		"log-level": "debug",
		"unknown":   "ignored",
	}

	var got server
	if err := Decode(tree, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := server{
		Host:     "localhost",
		MaxConns: 8,
		Timeout:  90 * time.Second,
		Tags:     []string{"a", "b"},
		LogLevel: "debug",
	}
	expected.TLS.Enabled = true
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

type literals struct {
	Version  string         `mapstructure:"version"`
	Name     *string        `mapstructure:"name"`
	Port     int            `mapstructure:"port"`
	Ratio    float64        `mapstructure:"ratio"`
	Enabled  bool           `mapstructure:"enabled"`
	Aliases  []string       `mapstructure:"aliases"`
	Extra    map[string]any `mapstructure:"extra"`
	Anything any            `mapstructure:"anything"`
}

func TestDecodeLiteral(t *testing.T) {
	tree := map[string]any{
		"version":  format.Literal{Raw: "1.10", Value: 1.1},
		"name":     format.Literal{Raw: "true", Value: true},
		"port":     format.Literal{Raw: "8080", Value: int64(8080)},
		"ratio":    format.Literal{Raw: "0.50", Value: 0.5},
		"enabled":  format.Literal{Raw: "true", Value: true},
		"aliases":  []any{format.Literal{Raw: "2.0", Value: 2.0}},
		"extra":    map[string]any{"n": format.Literal{Raw: "3", Value: int64(3)}},
		"anything": map[string]any{"on": format.Literal{Raw: "true", Value: true}},
	}

	var got literals
	if err := Decode(tree, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "true"
	expected := literals{
		Version:  "1.10",
		Name:     &name,
		Port:     8080,
		Ratio:    0.5,
		Enabled:  true,
		Aliases:  []string{"2.0"},
		Extra:    map[string]any{"n": int64(3)},
		Anything: map[string]any{"on": true},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeError(t *testing.T) {
	var got server
	err := Decode(map[string]any{"max_conns": "many"}, &got)
	if !errors.Is(err, cfgerr.ErrMerge) {
		t.Errorf("expected merge error, got %v", err)
	}
}
