package config

import (
	"strings"

	"github.com/teranos/fixturegen/builder"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/version"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := builder.NewFactory(c.Generate.Factory, c.Generate.BuilderName); err != nil {
		return err
	}

	if c.Generate.Parallelism < 0 {
		return errors.NewInvalidConfigError("generate.parallelism must be >= 0, got %d", c.Generate.Parallelism)
	}

	if !strings.HasSuffix(c.Generate.Suffix, ".ts") {
		return errors.WithHint(
			errors.NewInvalidConfigError("generate.suffix must end in .ts, got %q", c.Generate.Suffix),
			"the default is "+DefaultSuffix)
	}

	seen := make(map[string]bool, len(c.Types.Enums))
	for i, e := range c.Types.Enums {
		if e.Name == "" {
			return errors.NewInvalidConfigError("types.enums[%d] has no name", i)
		}
		if seen[e.Name] {
			return errors.NewInvalidConfigError("types.enums: %s declared twice", e.Name)
		}
		seen[e.Name] = true
	}

	for _, name := range c.Types.Elementary {
		if name == "" {
			return errors.NewInvalidConfigError("types.elementary contains an empty name")
		}
	}

	return version.Check(c.Requires, version.Version)
}
