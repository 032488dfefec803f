// Package config loads the site-wide configuration every page starts from.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/crank/content"
	"github.com/pkg/errors"
)

// DefaultFile is the config file name looked up in the output directory
// when no path is given.
const DefaultFile = "config.json"

// Defaults is the configuration used when the config file does not exist.
func Defaults() content.Values {
	return content.Values{
		"baseURL": content.String(""),
		"title":   content.String(""),
	}
}

// Load reads the site configuration at path. A missing file yields
// Defaults; an unreadable or malformed one is an error. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON.
func Load(path string) (content.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, errors.Wrapf(err, "reading site config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		conf, err := decodeYAML(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing site config %s", path)
		}
		return conf, nil
	}

	conf, rest, err := content.DecodeObject(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing site config %s", path)
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		return nil, errors.Errorf("parsing site config %s: unexpected data after JSON object", path)
	}
	return conf, nil
}
