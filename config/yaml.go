package config

import (
	"github.com/ZacxDev/crank/content"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// decodeYAML reads a YAML mapping into configuration values. An empty
// document is an empty configuration.
func decodeYAML(data []byte) (content.Values, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return content.Values{}, nil
	}
	if _, ok := raw.(map[any]any); !ok {
		return nil, errors.Errorf("expected a mapping, got %T", raw)
	}
	v, err := content.FromAny(raw)
	if err != nil {
		return nil, err
	}
	return v.(content.Values), nil
}
