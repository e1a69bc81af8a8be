package config

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/fixturegen/errors"
)

// Output formats accepted by Encode
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode renders v in the named format. v is any value carrying toml, json
// and yaml tags, typically a *Config or a []SettingInfo.
func Encode(v interface{}, format string) ([]byte, error) {
	switch format {
	case FormatTOML, "":
		return toml.Marshal(v)
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	}
	return nil, errors.WithHintf(
		errors.NewInvalidConfigError("unknown format %q", format),
		"use %s, %s or %s", FormatTOML, FormatJSON, FormatYAML)
}
