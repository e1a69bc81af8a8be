package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/compiled"
	"github.com/teranos/fixturegen/config"
	"github.com/teranos/fixturegen/pipeline"
)

// DeclsCmd dumps the declarations extracted from each unit
var DeclsCmd = &cobra.Command{
	Use:   "decls <unit>...",
	Short: "Show the declarations extracted from units",
	Long: `Show the classes, interfaces and functions extracted from each unit,
with every type resolved against the configured tables.

Examples:
  fixturegen decls src/models.ts
  fixturegen decls src/models.ts --format yaml
  fixturegen decls src/models.ts --tables types.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecls,
}

func init() {
	DeclsCmd.Flags().String("tables", "", "TOML file with elementary classes and enums")
	DeclsCmd.Flags().String("format", config.FormatJSON, "Output format: json, yaml")
}

// unitDecls is one entry of the decls output
type unitDecls struct {
	Unit         string `json:"unit" yaml:"unit"`
	Declarations []any  `json:"declarations" yaml:"declarations"`
}

func runDecls(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(cmd, cfg)
	if err != nil {
		return err
	}
	// decls never writes
	opts.OutputDir = ""

	results, err := pipeline.ProcessUnits(commandContext(cmd), args, opts)
	if err != nil {
		return err
	}

	out := make([]unitDecls, len(results))
	for i, r := range results {
		out[i] = unitDecls{Unit: r.Unit, Declarations: compiled.DescribeAll(r.Declarations)}
	}

	format, _ := cmd.Flags().GetString("format")
	if format == config.FormatTOML {
		format = config.FormatJSON
	}
	data, err := config.Encode(out, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
