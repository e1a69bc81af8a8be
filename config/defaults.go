package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/fixturegen/builder"
)

// Default values
const (
	DefaultSuffix = ".builder.ts"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.builder_name", builder.DefaultReceiver)
	v.SetDefault("generate.factory", builder.FactorySome)
	v.SetDefault("generate.header", "")
	v.SetDefault("generate.output_dir", "")
	v.SetDefault("generate.suffix", DefaultSuffix)
	v.SetDefault("generate.parallelism", 0)

	v.SetDefault("types.elementary", []string{})
	v.SetDefault("types.enums", []EnumConfig{})

	v.SetDefault("log.json", false)

	v.SetDefault("requires", "")
}

// Default returns the configuration made of defaults only.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}
