package config

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/fixturegen/compiled"
	"github.com/teranos/fixturegen/errors"
)

// tablesFile is the layout of a standalone tables file:
//
//	elementary = ["Money", "Decimal"]
//
//	[enums]
//	Colour = ["Colour.red", "Colour.green"]
type tablesFile struct {
	Elementary []string            `toml:"elementary"`
	Enums      map[string][]string `toml:"enums"`
}

// LoadTablesFile reads resolution tables from a TOML file. Unknown keys are
// rejected so that a misspelt section is not silently ignored.
func LoadTablesFile(path string) (*compiled.Tables, error) {
	var f tablesFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "failed to read tables file %s: %v", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "tables file %s has unknown keys: %s", path, strings.Join(keys, ", ")),
			"a tables file holds only 'elementary' and an [enums] table")
	}

	return compiled.NewTables(f.Elementary, f.Enums), nil
}
