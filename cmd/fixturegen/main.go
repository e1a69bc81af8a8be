package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/cmd/fixturegen/commands"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/logger"
	"github.com/teranos/fixturegen/syntax/parser"
)

var rootCmd = &cobra.Command{
	Use:   "fixturegen",
	Short: "Generate test-data builders from TypeScript declarations",
	Long: `fixturegen reads TypeScript compilation units, extracts their classes,
interfaces and function bindings, and writes a builder class per interface
that produces a ready-to-use sample instance for test fixtures.

Available commands:
  generate - Write builders for one or more units
  decls    - Dump the extracted declarations
  check    - Fail when written builders are out of date
  config   - Show, validate or initialize configuration
  version  - Show version information

Examples:
  fixturegen generate src/models.ts                 # Print builders to stdout
  fixturegen generate src/*.ts -o test/builders     # Write one file per unit
  fixturegen generate src/models.ts -o out --watch  # Regenerate on change
  fixturegen decls src/models.ts --format yaml      # Inspect what was extracted
  fixturegen check src/*.ts -o test/builders        # CI staleness check`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file only")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.DeclsCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintln(os.Stderr, perr.FormatError(parser.ErrorContextTerminal))
		return
	}

	pterm.Error.WithWriter(os.Stderr).Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.WithWriter(os.Stderr).Println(hint)
	}
}
