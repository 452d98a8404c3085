//go:build !ortho_noyaml

package format

import (
	"gopkg.in/yaml.v3"
)

func init() {
	register(Group{Name: "yaml", Extensions: []string{"yaml", "yml"}}, map[string]Parser{
		"yaml": parseYAML,
		"yml":  parseYAML,
	})
}

func parseYAML(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
