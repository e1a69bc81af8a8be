package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/fixturegen/errors"
)

// EnvPrefix prefixes environment overrides: FIXTUREGEN_GENERATE_FACTORY.
const EnvPrefix = "FIXTUREGEN"

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	sources       map[string]SourceInfo
)

// Load reads the fixturegen configuration from every source, caching the result.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance backing Load.
func GetViper() (*viper.Viper, error) {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads defaults plus one specific file, ignoring every other source.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	fileSettings, err := readFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := v.MergeConfigMap(fileSettings); err != nil {
		return nil, errors.Wrapf(err, "failed to merge config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return cfg, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	sources = nil
}

func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	tracked, err := mergeConfigFiles(v)
	if err != nil {
		return nil, err
	}

	viperInstance = v
	sources = tracked
	return v, nil
}

// UserConfigPath returns ~/.fixturegen/config.toml, or "" without a home directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDirName, UserFileName)
}

// FindProjectConfig searches for fixturegen.toml by walking up the directory
// tree from dir. Returns "" when none is found.
func FindProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Files returns the configuration files Load reads, lowest precedence first.
func Files() []SourceInfo {
	return configFiles()
}

// configFiles returns the existing configuration files, lowest precedence first.
func configFiles() []SourceInfo {
	var files []SourceInfo
	if user := UserConfigPath(); user != "" {
		files = append(files, SourceInfo{Source: SourceUser, Path: user})
	}
	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			files = append(files, SourceInfo{Source: SourceProject, Path: project})
		}
	}

	existing := files[:0]
	for _, f := range files {
		if _, err := os.Stat(f.Path); err == nil {
			existing = append(existing, f)
		}
	}
	return existing
}

// mergeConfigFiles merges the configuration files into v in precedence order
// and records which file set each key. A file that exists but does not parse
// is an error.
func mergeConfigFiles(v *viper.Viper) (map[string]SourceInfo, error) {
	tracked := map[string]SourceInfo{}
	for _, f := range configFiles() {
		settings, err := readFile(f.Path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, errors.Wrapf(err, "failed to merge config file %s", f.Path)
		}
		for _, key := range flattenKeys(settings, "") {
			tracked[key] = f
		}
	}
	return tracked, nil
}

func readFile(path string) (map[string]interface{}, error) {
	tmp := viper.New()
	tmp.SetConfigFile(path)
	tmp.SetConfigType("toml")
	if err := tmp.ReadInConfig(); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "failed to read config file %s: %v", path, err),
			"check the file is valid TOML")
	}
	return tmp.AllSettings(), nil
}
