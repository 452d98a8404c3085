package orthoconfig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leynos/ortho-config-sub000/merge"
)

type described struct {
	Name      string            `mapstructure:"name" default:"anon"`
	MaxCount  int               `default:"3" ortho:"merge=replace,cli_short=m"`
	Tags      []string          `ortho:"cli_long=tag"`
	Raw       []byte            `mapstructure:"raw"`
	Labels    map[string]string `ortho:"merge=keyed"`
	Mark      string            `mapstructure:"mark,omitempty" ortho:"cli_default_as_absent,required"`
	Skipped   string            `ortho:"-"`
	Ignored   string            `mapstructure:"-"`
	HTTPProxy string
	hidden    string
}

func TestDescribe(t *testing.T) {
	got, err := Describe[described]()
	require.NoError(t, err)

	expected := []merge.Descriptor{
		{Name: "name", Default: "anon"},
		{Name: "max_count", Default: int64(3), Strategy: merge.Replace, CLIShort: "m"},
		{Name: "tags", Strategy: merge.Append, CLILong: "tag"},
		{Name: "raw"},
		{Name: "labels"},
		{Name: "mark", CLIDefaultAsAbsent: true, Required: true},
		{Name: "http_proxy"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}

type badStrategy struct {
	Field string `ortho:"merge=sideways"`
}

type badOption struct {
	Field string `ortho:"frobnicate"`
}

func TestDescribeErrors(t *testing.T) {
	_, err := Describe[badStrategy]()
	assert.ErrorContains(t, err, "sideways")

	_, err = Describe[badOption]()
	assert.ErrorContains(t, err, "frobnicate")

	_, err = Describe[string]()
	assert.Error(t, err)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":       "name",
		"MaxCount":   "max_count",
		"HTTPProxy":  "http_proxy",
		"APIKey":     "api_key",
		"UserID":     "user_id",
		"Level2Name": "level2_name",
		"already":    "already",
	}
	for in, expected := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, expected, snakeCase(in))
		})
	}
}
