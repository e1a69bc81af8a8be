package pipeline

import (
	"bytes"
	"context"
	"os"

	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/logger"
)

// CheckResult reports whether written builders match a fresh generation.
type CheckResult struct {
	UpToDate bool
	// Stale lists output files that are missing or differ, in unit order.
	Stale []string
}

// Check regenerates every unit in memory and compares the text with the
// files under opts.OutputDir. A unit that yields no builders is up to date
// when its output file is absent. When anything is stale the returned error
// wraps errors.ErrStaleOutput.
func Check(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	if opts.OutputDir == "" {
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("check needs an output directory"),
			"pass -o or set generate.output_dir")
	}

	results, err := ProcessUnits(ctx, paths, opts)
	if err != nil {
		return nil, err
	}

	log := opts.withDefaults().Logger
	res := &CheckResult{UpToDate: true}
	for _, r := range results {
		stale, err := isStale(r)
		if err != nil {
			return nil, err
		}
		if stale {
			log.Debugw("Output is stale", logger.FieldUnit, r.Unit, logger.FieldOutput, r.Output)
			res.Stale = append(res.Stale, r.Output)
		}
	}

	if len(res.Stale) > 0 {
		res.UpToDate = false
		return res, errors.WithHint(
			errors.Wrapf(errors.ErrStaleOutput, "%d of %d builder files", len(res.Stale), len(results)),
			"run 'fixturegen generate' to regenerate them")
	}
	return res, nil
}

func isStale(r *UnitResult) (bool, error) {
	want := []byte(r.Source())
	got, err := os.ReadFile(r.Output)
	if os.IsNotExist(err) {
		return len(want) > 0, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", r.Output)
	}
	return !bytes.Equal(got, want), nil
}
