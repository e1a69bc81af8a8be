package builder

import (
	"fmt"
	"strconv"

	"github.com/teranos/fixturegen/errors"
)

// DefaultReceiver is the value-factory object generated code calls into
// unless configured otherwise.
const DefaultReceiver = "someBuilder"

// ValueFactory produces the expression text for leaf values. Synthesis
// decides which producer applies; the factory decides how the value is
// written in the generated source.
type ValueFactory interface {
	// String returns a string value. fieldName traces the value back to the
	// field (or call shape) it was generated for.
	String(fieldName string) string
	Number() string
	Boolean() string
	Date() string
	// Enum returns a value of enum enumName, whose value names are the
	// pre-resolved names such as "Colour.red".
	Enum(enumName string, valueNames []string) string
	// Builder returns a nested builder invocation for typeName.
	Builder(typeName string) string
}

// SomeBuilder writes values as calls on a sampling object, e.g.
// `someBuilder.string("name")`, leaving the actual values to the test
// support library that object comes from.
type SomeBuilder struct {
	Receiver string
}

// NewSomeBuilder returns a SomeBuilder calling receiver, or DefaultReceiver
// when receiver is empty.
func NewSomeBuilder(receiver string) SomeBuilder {
	if receiver == "" {
		receiver = DefaultReceiver
	}
	return SomeBuilder{Receiver: receiver}
}

func (s SomeBuilder) String(fieldName string) string {
	return fmt.Sprintf("%s.string(%s)", s.Receiver, strconv.Quote(fieldName))
}

func (s SomeBuilder) Number() string  { return s.Receiver + ".number()" }
func (s SomeBuilder) Boolean() string { return s.Receiver + ".boolean()" }
func (s SomeBuilder) Date() string    { return s.Receiver + ".date()" }

func (s SomeBuilder) Enum(enumName string, _ []string) string {
	return fmt.Sprintf("%s.enum(%s)", s.Receiver, enumName)
}

func (s SomeBuilder) Builder(typeName string) string {
	return nestedBuilder(typeName)
}

// Literal writes fixed literal values, for projects without a sampling
// library: strings are the field name, numbers are 0, enums take their first
// value. An enum with no known values is cast from undefined so the field
// still type-checks as the enum type.
type Literal struct{}

func (Literal) String(fieldName string) string { return strconv.Quote(fieldName) }
func (Literal) Number() string                 { return "0" }
func (Literal) Boolean() string                { return "false" }
func (Literal) Date() string                   { return "new Date(0)" }

func (Literal) Enum(enumName string, valueNames []string) string {
	if len(valueNames) == 0 {
		return "undefined as unknown as " + enumName
	}
	return valueNames[0]
}

func (Literal) Builder(typeName string) string {
	return nestedBuilder(typeName)
}

func nestedBuilder(typeName string) string {
	return fmt.Sprintf("new %sBuilder().to()", typeName)
}

// Factory names accepted by NewFactory.
const (
	FactorySome    = "some"
	FactoryLiteral = "literal"
)

// NewFactory returns the value factory registered under name.
func NewFactory(name, receiver string) (ValueFactory, error) {
	switch name {
	case FactorySome, "":
		return NewSomeBuilder(receiver), nil
	case FactoryLiteral:
		return Literal{}, nil
	}
	return nil, errors.WithHintf(
		errors.Wrapf(errors.ErrInvalidConfig, "unknown value factory %q", name),
		"use %q or %q", FactorySome, FactoryLiteral)
}
