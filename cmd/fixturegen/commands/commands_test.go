package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/config"
	"github.com/teranos/fixturegen/errors"
)

// isolate keeps user and project configuration out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	config.Reset()
	t.Cleanup(config.Reset)
	return dir
}

func newCmd(run func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{RunE: run}
	addGenerateFlags(cmd)
	return cmd
}

const unitSource = `
enum Level { low, high }
export interface Job { name: string; level: Level; retries: number }
`

func TestGenerate_WritesFiles(t *testing.T) {
	dir := isolate(t)
	unit := filepath.Join(dir, "job.ts")
	require.NoError(t, os.WriteFile(unit, []byte(unitSource), 0o644))

	cmd := newCmd(runGenerate)
	cmd.Flags().Bool("watch", false, "")
	require.NoError(t, cmd.Flags().Set("output", "out"))
	require.NoError(t, cmd.Flags().Set("factory", "literal"))

	require.NoError(t, runGenerate(cmd, []string{unit}))

	data, err := os.ReadFile(filepath.Join(dir, "out", "job.builder.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export class JobBuilder {")
	assert.Contains(t, string(data), `    name: "name",`)
	assert.Contains(t, string(data), "    level: Level.low,")

	// a fresh check agrees with what was written
	check := newCmd(runCheck)
	require.NoError(t, check.Flags().Set("output", "out"))
	require.NoError(t, check.Flags().Set("factory", "literal"))
	assert.NoError(t, runCheck(check, []string{unit}))

	// a different factory makes the files stale
	check = newCmd(runCheck)
	require.NoError(t, check.Flags().Set("output", "out"))
	err = runCheck(check, []string{unit})
	assert.True(t, errors.Is(err, errors.ErrStaleOutput))
}

func TestGenerate_InvalidFactory(t *testing.T) {
	isolate(t)
	cmd := newCmd(runGenerate)
	cmd.Flags().Bool("watch", false, "")
	require.NoError(t, cmd.Flags().Set("factory", "random"))

	err := runGenerate(cmd, []string{"job.ts"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestGenerate_WatchNeedsOutput(t *testing.T) {
	isolate(t)
	cmd := newCmd(runGenerate)
	cmd.Flags().Bool("watch", false, "")
	require.NoError(t, cmd.Flags().Set("watch", "true"))

	err := runGenerate(cmd, []string{"job.ts"})
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestPipelineOptions_TablesFile(t *testing.T) {
	dir := isolate(t)
	tables := filepath.Join(dir, "types.toml")
	require.NoError(t, os.WriteFile(tables, []byte(`
elementary = ["Money"]

[enums]
Level = ["Level.high"]
`), 0o644))

	cmd := newCmd(runGenerate)
	require.NoError(t, cmd.Flags().Set("tables", tables))
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	opts, err := pipelineOptions(cmd, cfg)
	require.NoError(t, err)
	assert.True(t, opts.Tables.IsElementary("Money"))
	values, ok := opts.Tables.EnumValues("Level")
	assert.True(t, ok)
	assert.Equal(t, []string{"Level.high"}, values)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ProjectFileName), []byte(`
[generate]
builder_name = "fromFile"
parallelism = 2
`), 0o644))

	cmd := newCmd(runGenerate)
	require.NoError(t, cmd.Flags().Set("parallelism", "4"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "fromFile", cfg.Generate.BuilderName)
	assert.Equal(t, 4, cfg.Generate.Parallelism)

	// the cached configuration is untouched
	cached, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cached.Generate.Parallelism)
}
