package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/fixturegen/builder"
	"github.com/teranos/fixturegen/compiled"
	"github.com/teranos/fixturegen/errors"
)

func quiet(opts Options) Options {
	opts.Logger = zap.NewNop().Sugar()
	return opts
}

func writeUnit(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestProcessUnit_Eg(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "eg.builder.ts"))
	require.NoError(t, err)

	r, err := ProcessUnit(context.Background(), filepath.Join("testdata", "eg.ts"), quiet(Options{}))
	require.NoError(t, err)

	assert.Equal(t, string(want), r.Source())
	require.Len(t, r.Declarations, 2)
	assert.Equal(t, "Logger", r.Declarations[0].DeclName())
	assert.Equal(t, "MockHandler", r.Declarations[1].DeclName())
	assert.Equal(t, "", r.Output)
}

func TestProcessUnit_ConfiguredTablesWin(t *testing.T) {
	dir := t.TempDir()
	unit := writeUnit(t, dir, "a.ts", `
enum Colour { red, green }
export interface A { c: Colour; m: Money }
`)
	opts := quiet(Options{
		Tables:    compiled.NewTables([]string{"Money"}, map[string][]string{"Colour": {"Colour.blue"}}),
		Generator: builder.NewGenerator(builder.WithFactory(builder.Literal{})),
	})

	r, err := ProcessUnit(context.Background(), unit, opts)
	require.NoError(t, err)
	assert.Contains(t, r.Source(), "    c: Colour.blue,")
	assert.Contains(t, r.Source(), "    m: new MoneyBuilder().to(),")
}

func TestProcessUnits_Order(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		paths = append(paths, writeUnit(t, dir, fmt.Sprintf("u%02d.ts", i),
			fmt.Sprintf("export interface I%d { n: number }\n", i)))
	}

	results, err := ProcessUnits(context.Background(), paths, quiet(Options{Parallelism: 3, OutputDir: "out"}))
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Unit)
		assert.Contains(t, r.Source(), fmt.Sprintf("class I%dBuilder", i))
		assert.Equal(t, filepath.Join("out", fmt.Sprintf("u%02d.builder.ts", i)), r.Output)
	}
}

func TestProcessUnits_Failure(t *testing.T) {
	dir := t.TempDir()
	good := writeUnit(t, dir, "good.ts", "export interface A { n: number }")

	_, err := ProcessUnits(context.Background(), []string{good, filepath.Join(dir, "missing.ts")}, quiet(Options{}))
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedUnit(err))

	bad := writeUnit(t, dir, "bad.ts", "interface {")
	_, err = ProcessUnits(context.Background(), []string{bad}, quiet(Options{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.ts:1:")
}

func TestProcessUnits_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessUnits(ctx, []string{filepath.Join("testdata", "eg.ts")}, quiet(Options{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessUnits_OutputCollision(t *testing.T) {
	_, err := ProcessUnits(context.Background(),
		[]string{"a/eg.ts", "b/eg.ts"}, quiet(Options{OutputDir: "out"}))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.Contains(t, err.Error(), "would both write")
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		unit, suffix, want string
	}{
		{"src/eg.ts", "", filepath.Join("out", "eg.builder.ts")},
		{"src/eg.d.ts", "", filepath.Join("out", "eg.builder.ts")},
		{"view.tsx", "", filepath.Join("out", "view.builder.ts")},
		{"models.ts", ".fixtures.ts", filepath.Join("out", "models.fixtures.ts")},
		{"README", "", filepath.Join("out", "README.builder.ts")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.unit, "out", tt.suffix), tt.unit)
	}
}

func TestWriteAndCheck(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "builders")
	a := writeUnit(t, src, "a.ts", "export interface A { n: number }")
	empty := writeUnit(t, src, "empty.ts", "export class C { constructor(x: string) {} }")
	opts := quiet(Options{OutputDir: out})
	ctx := context.Background()

	// nothing written yet
	res, err := Check(ctx, []string{a, empty}, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStaleOutput))
	assert.False(t, res.UpToDate)
	assert.Equal(t, []string{filepath.Join(out, "a.builder.ts")}, res.Stale)

	results, err := ProcessUnits(ctx, []string{a, empty}, opts)
	require.NoError(t, err)
	written, err := Write(results[0])
	require.NoError(t, err)
	assert.True(t, written)
	written, err = Write(results[1])
	require.NoError(t, err)
	assert.False(t, written, "no builders, no file")
	assert.NoFileExists(t, filepath.Join(out, "empty.builder.ts"))

	res, err = Check(ctx, []string{a, empty}, opts)
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
	assert.Empty(t, res.Stale)

	// the unit gains a field
	writeUnit(t, src, "a.ts", "export interface A { n: number; s: string }")
	res, err = Check(ctx, []string{a, empty}, opts)
	assert.True(t, errors.Is(err, errors.ErrStaleOutput))
	assert.Equal(t, []string{filepath.Join(out, "a.builder.ts")}, res.Stale)
}

func TestCheck_NeedsOutputDir(t *testing.T) {
	_, err := Check(context.Background(), []string{"a.ts"}, quiet(Options{}))
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestWrite_NoOutput(t *testing.T) {
	_, err := Write(&UnitResult{Builders: &builder.Result{}})
	assert.Error(t, err)
}

func TestWatcher(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	unit := writeUnit(t, src, "w.ts", "export interface W { n: number }")

	events := make(chan *UnitResult, 8)
	w, err := NewWatcher([]string{unit}, quiet(Options{OutputDir: out}), func(r *UnitResult, err error) {
		assert.NoError(t, err)
		events <- r
	})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher a moment to start reading events
	time.Sleep(50 * time.Millisecond)
	writeUnit(t, src, "w.ts", "export interface W { n: number; flag: boolean }")
	writeUnit(t, src, "other.ts", "export interface Ignored { n: number }")

	select {
	case r := <-events:
		assert.Equal(t, unit, r.Unit)
		assert.Contains(t, r.Source(), "withFlag(flag: boolean): this {")
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after write")
	}

	data, err := os.ReadFile(filepath.Join(out, "w.builder.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "withFlag")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_RemovesOutputWithoutBuilders(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	unit := writeUnit(t, src, "r.ts", "export interface R { n: number }")
	output := filepath.Join(out, "r.builder.ts")

	events := make(chan *UnitResult, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{unit}, quiet(Options{OutputDir: out}), func(r *UnitResult, err error) {
			assert.NoError(t, err)
			events <- r
		})
	}()

	// initial pass writes the builder
	select {
	case r := <-events:
		assert.Len(t, r.Builders.Builders, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial pass")
	}
	assert.FileExists(t, output)

	time.Sleep(50 * time.Millisecond)
	writeUnit(t, src, "r.ts", "export class R { constructor(n: number) {} }")

	select {
	case r := <-events:
		assert.Empty(t, r.Builders.Builders)
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after write")
	}
	assert.NoFileExists(t, output)

	// the directory now agrees with a fresh check
	res, err := Check(context.Background(), []string{unit}, quiet(Options{OutputDir: out}))
	require.NoError(t, err)
	assert.True(t, res.UpToDate)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
