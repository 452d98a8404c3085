//go:build !ortho_nojson

package format

import (
	"bytes"
	"encoding/json"

	"github.com/titanous/json5"
)

func init() {
	register(Group{Name: "json", Extensions: []string{"json", "json5"}}, map[string]Parser{
		"json":  parseJSON,
		"json5": parseJSON5,
	})
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func parseJSON5(data []byte) (any, error) {
	var out any
	if err := json5.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
