package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/pipeline"
)

// CheckCmd verifies that written builders match a fresh generation
var CheckCmd = &cobra.Command{
	Use:   "check <unit>...",
	Short: "Verify generated builders are up to date",
	Long: `Regenerate every unit in memory and compare against the files in the
output directory. Exits non-zero when any file is missing or differs.

Examples:
  fixturegen check src/*.ts -o test/builders`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	addGenerateFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(cmd, cfg)
	if err != nil {
		return err
	}

	res, err := pipeline.Check(commandContext(cmd), args, opts)
	if res != nil {
		for _, path := range res.Stale {
			pterm.Warning.Printf("Out of date: %s\n", path)
		}
		if res.UpToDate {
			pterm.Success.Printf("%d unit(s) up to date\n", len(args))
		}
	}
	return err
}
