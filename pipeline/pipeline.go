// Package pipeline runs the per-unit pass (load, extract, generate) over one
// or many compilation units, and the check and watch modes built on it.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/fixturegen/builder"
	"github.com/teranos/fixturegen/compiled"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/frontend"
	"github.com/teranos/fixturegen/logger"
)

// DefaultSuffix is appended to a unit's base name to name its output file.
const DefaultSuffix = ".builder.ts"

// Options configures a pass.
type Options struct {
	// Tables holds configured resolution tables. Enums declared in each
	// unit are added per unit; configured enums win on a name clash.
	Tables    *compiled.Tables
	Generator *builder.Generator

	// OutputDir receives one output file per unit. Empty means results are
	// returned but not written.
	OutputDir string
	Suffix    string

	// Parallelism bounds concurrent unit passes. 0 means GOMAXPROCS.
	Parallelism int

	Logger *zap.SugaredLogger
}

func (o Options) withDefaults() Options {
	if o.Tables == nil {
		o.Tables = compiled.EmptyTables()
	}
	if o.Generator == nil {
		o.Generator = builder.NewGenerator()
	}
	if o.Suffix == "" {
		o.Suffix = DefaultSuffix
	}
	if o.Parallelism <= 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = logger.ComponentLogger("pipeline")
	}
	return o
}

// UnitResult is the outcome of one unit pass.
type UnitResult struct {
	Unit         string
	Declarations []compiled.Declaration
	Builders     *builder.Result

	// Output is the file the builders belong in, or "" without an OutputDir.
	Output string
}

// Source returns the generated builder text.
func (r *UnitResult) Source() string {
	return r.Builders.String()
}

// ProcessUnit runs one pass over the unit at path.
func ProcessUnit(ctx context.Context, path string, opts Options) (*UnitResult, error) {
	opts = opts.withDefaults()
	return processUnit(ctx, path, opts)
}

func processUnit(ctx context.Context, path string, opts Options) (*UnitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := logger.LoggerFromContext(logger.WithUnit(ctx, path), opts.Logger)

	file, err := frontend.Load(path)
	if err != nil {
		return nil, err
	}

	decls := compiled.Extract(file, frontend.Tables(file, opts.Tables))
	res := &UnitResult{
		Unit:         path,
		Declarations: decls,
		Builders:     opts.Generator.Build(decls),
	}
	if opts.OutputDir != "" {
		res.Output = OutputPath(path, opts.OutputDir, opts.Suffix)
	}

	log.Infow("Unit processed",
		logger.FieldCount, len(decls),
		logger.FieldBuilders, len(res.Builders.Builders),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res, nil
}

// ProcessUnits runs one independent pass per unit, concurrently, and returns
// the results in input order. The first failure cancels the remaining passes.
func ProcessUnits(ctx context.Context, paths []string, opts Options) ([]*UnitResult, error) {
	opts = opts.withDefaults()
	if err := checkOutputCollisions(paths, opts); err != nil {
		return nil, err
	}

	results := make([]*UnitResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			r, err := processUnit(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	opts.Logger.Debugw("Units processed", logger.FieldTotalCount, len(paths))
	return results, nil
}

// OutputPath names the output file of unit in dir: src/eg.ts -> dir/eg.builder.ts.
func OutputPath(unit, dir, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	base := filepath.Base(unit)
	for _, ext := range []string{".d.ts", ".tsx", ".ts"} {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	return filepath.Join(dir, base+suffix)
}

func checkOutputCollisions(paths []string, opts Options) error {
	if opts.OutputDir == "" {
		return nil
	}
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		out := OutputPath(p, opts.OutputDir, opts.Suffix)
		if prev, ok := seen[out]; ok && prev != p {
			return errors.WithHint(
				errors.NewInvalidConfigError("%s and %s would both write %s", prev, p, out),
				"generate them into different output directories")
		}
		seen[out] = p
	}
	return nil
}

// Write writes the result to its Output file. Units that produced no
// builders are not written. It reports whether a file was written.
func Write(r *UnitResult) (bool, error) {
	if r.Output == "" {
		return false, errors.New("unit result has no output path")
	}
	src := r.Source()
	if src == "" {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.Output), 0o755); err != nil {
		return false, errors.Wrapf(err, "failed to create %s", filepath.Dir(r.Output))
	}
	if err := os.WriteFile(r.Output, []byte(src), 0o644); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", r.Output)
	}
	return true, nil
}
