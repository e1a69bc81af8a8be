// Package builder synthesizes TypeScript test-data builders from extracted
// declarations.
//
// One builder class is generated per interface that has at least one field.
// It holds a default instance whose field values come from Synth, a `withX`
// mutator per field and a `to()` terminal returning the instance. Classes
// and function bindings never produce builders.
package builder

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/fixturegen/compiled"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/logger"
	"github.com/teranos/fixturegen/tmpl"
	"github.com/teranos/fixturegen/ttype"
)

// Generator renders builders for a declaration list.
type Generator struct {
	factory ValueFactory
	header  string
	logger  *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithFactory sets the value factory. The default is NewSomeBuilder("").
func WithFactory(f ValueFactory) Option {
	return func(g *Generator) { g.factory = f }
}

// WithHeader sets the text emitted before the first builder. Empty by default.
func WithHeader(header string) Option {
	return func(g *Generator) { g.header = header }
}

// WithLogger sets the logger used for per-declaration debug output.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator returns a Generator with the given options applied.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		factory: NewSomeBuilder(""),
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Builder is one generated builder class.
type Builder struct {
	// Name is the interface the builder was generated for.
	Name       string
	FieldCount int
	Source     string
}

// Skipped records a declaration that produced no builder.
type Skipped struct {
	Name   string
	Kind   compiled.DeclKind
	Reason string
}

// Result is the outcome of one Build call.
type Result struct {
	Header   string
	Builders []Builder
	Skipped  []Skipped
}

// String returns the generated source: the header followed by every builder,
// or "" when no builder was generated.
func (r *Result) String() string {
	if len(r.Builders) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.Header)
	for _, bl := range r.Builders {
		b.WriteString(bl.Source)
	}
	return b.String()
}

// Generate returns the generated source for decls.
func (g *Generator) Generate(decls []compiled.Declaration) string {
	return g.Build(decls).String()
}

// Build generates a builder for each qualifying declaration, in order.
func (g *Generator) Build(decls []compiled.Declaration) *Result {
	start := time.Now()
	res := &Result{Header: g.header, Builders: []Builder{}}
	for _, d := range decls {
		switch d := d.(type) {
		case compiled.Interface:
			if len(d.Fields) == 0 {
				res.Skipped = append(res.Skipped, Skipped{Name: d.Name, Kind: d.DeclKind(), Reason: "no fields"})
				continue
			}
			res.Builders = append(res.Builders, g.interfaceBuilder(d))
		case compiled.Class, compiled.Function:
			res.Skipped = append(res.Skipped, Skipped{Name: d.DeclName(), Kind: d.DeclKind(), Reason: "not an interface"})
		default:
			panic(errors.AssertionFailedf("builder.Build: unhandled declaration %T", d))
		}
	}

	for _, s := range res.Skipped {
		g.logger.Debugw("No builder generated",
			logger.FieldDeclaration, s.Name,
			logger.FieldKind, s.Kind.String(),
			logger.FieldReason, s.Reason)
	}
	g.logger.Debugw("Builders generated",
		logger.FieldCount, len(res.Builders),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res
}

func (g *Generator) interfaceBuilder(d compiled.Interface) Builder {
	lowerName := lowerFirst(d.Name)
	pairs := make([]string, 0, len(d.Fields))
	mutators := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		pairs = append(pairs, tmpl.Fill(valuePairTemplate, map[string]string{
			"fieldName": f.Name,
			"value":     Synth(f.Type, f.Name, g.factory),
		}))
		mutators = append(mutators, tmpl.Fill(mutatorTemplate, map[string]string{
			"upperFieldName": upperFirst(f.Name),
			"fieldName":      f.Name,
			"fieldType":      ttype.Render(f.Type),
			"lowerClassName": lowerName,
		}))
	}

	g.logger.Debugw("Builder generated",
		logger.FieldDeclaration, d.Name,
		logger.FieldCount, len(d.Fields))

	return Builder{
		Name:       d.Name,
		FieldCount: len(d.Fields),
		Source: tmpl.Fill(builderTemplate, map[string]string{
			"className":  d.Name,
			"lowerName":  lowerName,
			"valuePairs": strings.Join(pairs, "\n"),
			"methods":    strings.Join(mutators, "\n"),
		}),
	}
}
