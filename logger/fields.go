package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Compilation units and their declarations
	FieldUnit        = "unit"
	FieldFile        = "file"
	FieldOutput      = "output"
	FieldDeclaration = "declaration"
	FieldKind        = "kind"
	FieldBuilders    = "builders"
	FieldReason      = "reason"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount      = "count"
	FieldTotalCount = "total_count"

	// Configuration
	FieldConfig  = "config"
	FieldFactory = "factory"
	FieldVersion = "version"
)

type contextKey string

const (
	unitKey      contextKey = "logger_unit"
	componentKey contextKey = "logger_component"
)

// WithUnit adds a compilation unit path to the context for logging
func WithUnit(ctx context.Context, unit string) context.Context {
	return context.WithValue(ctx, unitKey, unit)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if unit, ok := ctx.Value(unitKey).(string); ok && unit != "" {
		fields = append(fields, FieldUnit, unit)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns base with the fields carried by ctx attached.
func LoggerFromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	w := &Watcher{logger: logger.ComponentLogger("pipeline.watch")}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
