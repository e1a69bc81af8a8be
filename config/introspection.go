package config

import (
	"os"
	"sort"
	"strings"
)

// Source represents where a configuration value came from
type Source string

const (
	SourceDefault     Source = "default"
	SourceUser        Source = "user"        // ~/.fixturegen/config.toml
	SourceProject     Source = "project"     // nearest fixturegen.toml
	SourceEnvironment Source = "environment" // FIXTUREGEN_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source Source
	Path   string // file path or environment variable name
}

// SettingInfo is one effective setting and its origin
type SettingInfo struct {
	Key        string      `json:"key" yaml:"key"`
	Value      interface{} `json:"value" yaml:"value"`
	Source     Source      `json:"source" yaml:"source"`
	SourcePath string      `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// Settings returns every effective setting, sorted by key, with the source
// that set it.
func Settings() ([]SettingInfo, error) {
	mu.Lock()
	defer mu.Unlock()

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	all := v.AllSettings()
	keys := flattenKeys(all, "")
	out := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sources[key]; ok {
			info = si
		}
		if env := envKey(key); os.Getenv(env) != "" {
			info = SourceInfo{Source: SourceEnvironment, Path: env}
		}
		out = append(out, SettingInfo{Key: key, Value: v.Get(key), Source: info.Source, SourcePath: info.Path})
	}
	return out, nil
}

func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// flattenKeys returns the dotted leaf keys of settings, sorted.
func flattenKeys(settings map[string]interface{}, prefix string) []string {
	var keys []string
	for k, value := range settings {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, flattenKeys(nested, full)...)
			continue
		}
		keys = append(keys, full)
	}
	sort.Strings(keys)
	return keys
}
