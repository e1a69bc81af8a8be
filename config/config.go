// Package config loads fixturegen configuration.
//
// Sources, lowest precedence first: built-in defaults, the user file
// ~/.fixturegen/config.toml, the nearest fixturegen.toml found walking up
// from the working directory, FIXTUREGEN_* environment variables. CLI flags
// are applied on top by the commands.
package config

import (
	"fmt"

	"github.com/teranos/fixturegen/compiled"
)

// Config represents the fixturegen configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" yaml:"generate" json:"generate"`
	Types    TypesConfig    `mapstructure:"types" toml:"types" yaml:"types" json:"types"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`

	// Requires is a semver constraint on the fixturegen version, e.g. ">= 0.3".
	Requires string `mapstructure:"requires" toml:"requires,omitempty" yaml:"requires,omitempty" json:"requires,omitempty"`
}

// GenerateConfig configures builder generation
type GenerateConfig struct {
	BuilderName string `mapstructure:"builder_name" toml:"builder_name" yaml:"builder_name" json:"builder_name"` // receiver of value calls (default: someBuilder)
	Factory     string `mapstructure:"factory" toml:"factory" yaml:"factory" json:"factory"`                     // some | literal
	Header      string `mapstructure:"header" toml:"header" yaml:"header" json:"header"`                         // emitted before the first builder
	OutputDir   string `mapstructure:"output_dir" toml:"output_dir" yaml:"output_dir" json:"output_dir"`         // empty = stdout
	Suffix      string `mapstructure:"suffix" toml:"suffix" yaml:"suffix" json:"suffix"`                         // output file suffix
	Parallelism int    `mapstructure:"parallelism" toml:"parallelism" yaml:"parallelism" json:"parallelism"`     // 0 = GOMAXPROCS
}

// TypesConfig declares names the type mapper resolves specially
type TypesConfig struct {
	Elementary []string     `mapstructure:"elementary" toml:"elementary" yaml:"elementary" json:"elementary"`
	Enums      []EnumConfig `mapstructure:"enums" toml:"enums" yaml:"enums" json:"enums"`
}

// EnumConfig is one enum table entry. Enums are a list rather than a map
// because configuration keys are case-insensitive and enum names are not.
type EnumConfig struct {
	Name   string   `mapstructure:"name" toml:"name" yaml:"name" json:"name"`
	Values []string `mapstructure:"values" toml:"values" yaml:"values" json:"values"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
}

// File names and permissions
const (
	ProjectFileName = "fixturegen.toml"
	UserDirName     = ".fixturegen"
	UserFileName    = "config.toml"

	DefaultDirPermissions  = 0o755
	DefaultFilePermissions = 0o644
)

// Tables returns the resolution tables declared in the configuration.
func (c *Config) Tables() *compiled.Tables {
	enums := make(map[string][]string, len(c.Types.Enums))
	for _, e := range c.Types.Enums {
		enums[e.Name] = e.Values
	}
	return compiled.NewTables(c.Types.Elementary, enums)
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Generate: {Factory: %s, BuilderName: %s, OutputDir: %q}, Types: {Elementary: %d, Enums: %d}}",
		c.Generate.Factory, c.Generate.BuilderName, c.Generate.OutputDir, len(c.Types.Elementary), len(c.Types.Enums))
}
