package logger

// OutputCategory is a kind of CLI output that is enabled from a minimum
// verbosity upwards, independently of log severity.
//
//	0 (default) - generated files written, staleness, errors with hints
//	1 (-v)      - + per-unit progress, configuration summary
//	2 (-vv)     - + skipped declarations, timing
//	3 (-vvv)    - + declaration dumps
type OutputCategory int

const (
	// Level 0 - always shown
	OutputResults OutputCategory = iota
	OutputErrors

	// Level 1 (-v)
	OutputProgress
	OutputConfig

	// Level 2 (-vv)
	OutputSkipped
	OutputTiming

	// Level 3 (-vvv)
	OutputDeclarations
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:      VerbosityUser,
	OutputErrors:       VerbosityUser,
	OutputProgress:     VerbosityInfo,
	OutputConfig:       VerbosityInfo,
	OutputSkipped:      VerbosityDebug,
	OutputTiming:       VerbosityDebug,
	OutputDeclarations: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputProgress:     "progress",
	OutputConfig:       "config",
	OutputSkipped:      "skipped",
	OutputTiming:       "timing",
	OutputDeclarations: "declarations",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
