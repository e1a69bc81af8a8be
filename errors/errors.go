// Package errors provides error handling for fixturegen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to CLI failures
//   - Assertion failures for unreachable type-model cases
//
// Usage:
//
//	// Wrap with context
//	if err := parseUnit(path); err != nil {
//	    return errors.Wrapf(err, "failed to parse %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'fixturegen config init' to create a config file")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnresolvedUnit) {
//	    // the front-end could not read the compilation unit
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions. The type model is a closed variant set; a switch that falls
// through to its default branch is a programming defect, reported with
// AssertionFailedf.
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors. Wrap these with errors.Wrap() to add context while
// preserving the type.
var (
	// ErrUnresolvedUnit indicates the front-end could not turn a compilation
	// unit identifier into a syntax tree (missing or unreadable file).
	ErrUnresolvedUnit = New("unresolved compilation unit")

	// ErrInvalidConfig indicates configuration values failed validation
	ErrInvalidConfig = New("invalid configuration")

	// ErrStaleOutput indicates generated builders on disk differ from a fresh generation
	ErrStaleOutput = New("generated output is out of date")
)

// IsUnresolvedUnit checks if an error is or wraps ErrUnresolvedUnit
func IsUnresolvedUnit(err error) bool {
	return err != nil && Is(err, ErrUnresolvedUnit)
}

// IsInvalidConfig checks if an error is or wraps ErrInvalidConfig
func IsInvalidConfig(err error) bool {
	return err != nil && Is(err, ErrInvalidConfig)
}

// WrapUnresolvedUnit wraps an error as an unresolved-unit error naming the unit
func WrapUnresolvedUnit(err error, unit string) error {
	return Wrapf(Wrap(ErrUnresolvedUnit, err.Error()), "unit %s", unit)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}
