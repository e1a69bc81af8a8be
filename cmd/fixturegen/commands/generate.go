package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/logger"
	"github.com/teranos/fixturegen/pipeline"
)

// GenerateCmd writes builders for the given compilation units
var GenerateCmd = &cobra.Command{
	Use:   "generate <unit>...",
	Short: "Generate builders for TypeScript units",
	Long: `Generate a builder class for every interface declared in each unit.

Without -o the builders of all units are printed to stdout in argument order.
With -o each unit gets its own file named <unit><suffix> in that directory;
units that declare no interface produce no file.

Examples:
  fixturegen generate src/models.ts
  fixturegen generate src/*.ts -o test/builders
  fixturegen generate src/*.ts -o test/builders --factory literal
  fixturegen generate src/models.ts -o test/builders --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(GenerateCmd)
	GenerateCmd.Flags().BoolP("watch", "w", false, "Regenerate units as they change (requires -o)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if opts.OutputDir == "" {
			return errors.WithHint(
				errors.NewInvalidConfigError("--watch needs an output directory"),
				"pass -o <dir>")
		}
		pterm.Info.Printf("Watching %d unit(s), press Ctrl+C to stop\n", len(args))
		return pipeline.Watch(ctx, args, opts, func(r *pipeline.UnitResult, err error) {
			if err != nil {
				pterm.Error.Println(err.Error())
				return
			}
			reportWritten(r)
		})
	}

	start := time.Now()
	results, err := pipeline.ProcessUnits(ctx, args, opts)
	if err != nil {
		return err
	}

	if opts.OutputDir == "" {
		for _, r := range results {
			fmt.Print(r.Source())
		}
		return nil
	}

	written := 0
	for _, r := range results {
		ok, err := pipeline.Write(r)
		if err != nil {
			return err
		}
		if ok {
			written++
			reportWritten(r)
		} else {
			logger.Infow("No builders, nothing written", logger.FieldUnit, r.Unit)
		}
		reportSkipped(r)
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputTiming) {
		pterm.Success.Printf("Generated %d file(s) from %d unit(s) in %dms\n",
			written, len(results), time.Since(start).Milliseconds())
	} else {
		pterm.Success.Printf("Generated %d file(s) from %d unit(s)\n", written, len(results))
	}
	return nil
}

// reportSkipped lists declarations that produced no builder (-vv).
func reportSkipped(r *pipeline.UnitResult) {
	if !logger.ShouldOutput(logger.Verbosity, logger.OutputSkipped) {
		return
	}
	for _, s := range r.Builders.Skipped {
		pterm.Info.Printf("%s: skipped %s %s (%s)\n", r.Unit, s.Kind, s.Name, s.Reason)
	}
}

func reportWritten(r *pipeline.UnitResult) {
	if r == nil || len(r.Builders.Builders) == 0 {
		return
	}
	pterm.Success.Printf("%s -> %s (%d builder(s))\n", r.Unit, r.Output, len(r.Builders.Builders))
}
