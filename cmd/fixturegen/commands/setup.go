package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/builder"
	"github.com/teranos/fixturegen/config"
	"github.com/teranos/fixturegen/logger"
	"github.com/teranos/fixturegen/pipeline"
	"github.com/teranos/fixturegen/version"
)

// loadConfig loads configuration from --config when given, otherwise from
// every source, then applies the command's own flag overrides and validates.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	// work on a copy; Load caches its result
	c := *cfg
	flags := cmd.Flags()
	if flags.Changed("output") {
		c.Generate.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("factory") {
		c.Generate.Factory, _ = flags.GetString("factory")
	}
	if flags.Changed("builder-name") {
		c.Generate.BuilderName, _ = flags.GetString("builder-name")
	}
	if flags.Changed("parallelism") {
		c.Generate.Parallelism, _ = flags.GetInt("parallelism")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Log.JSON && !logger.JSONOutput {
		if err := logger.Initialize(true, logger.Verbosity); err != nil {
			return nil, err
		}
	}

	logger.Debugw("Configuration loaded",
		logger.FieldConfig, c.String(),
		logger.FieldFactory, c.Generate.Factory,
		logger.FieldVersion, version.Version)
	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		pterm.Info.Printf("Verbosity: %s, %s\n", logger.LevelName(logger.Verbosity), c.String())
	}
	return &c, nil
}

// pipelineOptions builds the pass options for cfg. Enums from the --tables
// file win over configured ones.
func pipelineOptions(cmd *cobra.Command, cfg *config.Config) (pipeline.Options, error) {
	tables := cfg.Tables()
	if f := cmd.Flags().Lookup("tables"); f != nil && f.Value.String() != "" {
		fromFile, err := config.LoadTablesFile(f.Value.String())
		if err != nil {
			return pipeline.Options{}, err
		}
		tables = fromFile.Merge(tables)
	}

	factory, err := builder.NewFactory(cfg.Generate.Factory, cfg.Generate.BuilderName)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Tables: tables,
		Generator: builder.NewGenerator(
			builder.WithFactory(factory),
			builder.WithHeader(cfg.Generate.Header),
			builder.WithLogger(logger.ComponentLogger("builder")),
		),
		OutputDir:   cfg.Generate.OutputDir,
		Suffix:      cfg.Generate.Suffix,
		Parallelism: cfg.Generate.Parallelism,
		Logger:      logger.ComponentLogger("pipeline"),
	}, nil
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output directory (default: stdout)")
	cmd.Flags().String("tables", "", "TOML file with elementary classes and enums")
	cmd.Flags().String("factory", "", "Value factory: some, literal")
	cmd.Flags().String("builder-name", "", "Object generated values are requested from (factory 'some')")
	cmd.Flags().IntP("parallelism", "j", 0, "Units processed concurrently (0 = GOMAXPROCS)")
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
