package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/config"
	"github.com/teranos/fixturegen/errors"
)

// ConfigCmd inspects and initializes configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, validate or initialize configuration",
	Long: `Manage fixturegen configuration.

Configuration is read from, lowest precedence first:
  built-in defaults
  ~/.fixturegen/config.toml
  the nearest fixturegen.toml, searching up from the working directory
  FIXTUREGEN_* environment variables (e.g. FIXTUREGEN_GENERATE_FACTORY)
Command-line flags override all of them.

Examples:
  fixturegen config show                 # Effective configuration as TOML
  fixturegen config show --sources       # Every setting and where it came from
  fixturegen config where                # Configuration files in use
  fixturegen config validate
  fixturegen config init                 # Write ./fixturegen.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		withSources, _ := cmd.Flags().GetBool("sources")

		var v interface{}
		if withSources {
			settings, err := config.Settings()
			if err != nil {
				return err
			}
			if format == config.FormatTOML {
				// go-toml cannot encode a top-level array
				v = map[string]interface{}{"settings": settings}
			} else {
				v = settings
			}
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			v = cfg
		}

		data, err := config.Encode(v, format)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "List the configuration files in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		files := config.Files()
		if len(files) == 0 {
			pterm.Info.Println("No configuration files found, using defaults")
			return nil
		}
		for _, f := range files {
			fmt.Printf("%-8s %s\n", f.Source, f.Path)
		}
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		pterm.Success.Println("Configuration is valid")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a fixturegen.toml with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it (a backup is kept)")
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		pterm.Success.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configShowCmd.Flags().String("format", config.FormatTOML, "Output format: toml, json, yaml")
	configShowCmd.Flags().Bool("sources", false, "List every setting with its source")

	configInitCmd.Flags().String("path", config.ProjectFileName, "File to write")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configInitCmd)
}
