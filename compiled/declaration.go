// Package compiled extracts declaration records from a parsed compilation
// unit and maps their type annotations into the ttype model.
package compiled

import (
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/ttype"
)

// DeclKind identifies the variant of a Declaration.
type DeclKind int

const (
	KindClass DeclKind = iota
	KindInterface
	KindFunction
)

// String returns the discriminant used in declaration dumps.
func (k DeclKind) String() string {
	switch k {
	case KindClass:
		return "ClassType"
	case KindInterface:
		return "InterfaceType"
	case KindFunction:
		return "FunctionType"
	default:
		return "Invalid"
	}
}

// Declaration is one extracted shape.
type Declaration interface {
	DeclKind() DeclKind
	// DeclName returns the declared name, "unknown" when it had none.
	DeclName() string
	declaration()
}

// Class is one constructor signature of an exported class.
type Class struct {
	Name              string
	GenericParameters []ttype.GenericParameter
	ConstructorParams []ttype.Param
}

// Interface is an interface's fields and methods in source order.
type Interface struct {
	Name              string
	GenericParameters []ttype.GenericParameter
	Fields            []Field
	Methods           []Method
}

// Function is an exported variable bound to a function literal. Result is
// always Unknown; no inference is done.
type Function struct {
	Name   string
	Params []ttype.Param
	Result ttype.Type
}

// Field is an interface property.
type Field struct {
	Name string
	Type ttype.Type
}

// Method is an interface method signature.
type Method struct {
	Name              string
	GenericParameters []ttype.GenericParameter
	Params            []ttype.Param
	Result            ttype.Type
}

func (Class) DeclKind() DeclKind     { return KindClass }
func (Interface) DeclKind() DeclKind { return KindInterface }
func (Function) DeclKind() DeclKind  { return KindFunction }

func (c Class) DeclName() string     { return c.Name }
func (i Interface) DeclName() string { return i.Name }
func (f Function) DeclName() string  { return f.Name }

func (Class) declaration()     {}
func (Interface) declaration() {}
func (Function) declaration()  {}

// Describe returns a plain tree of maps and slices for d with a "type"
// discriminant, suitable for JSON or YAML encoding.
func Describe(d Declaration) map[string]any {
	node := map[string]any{"type": d.DeclKind().String(), "name": d.DeclName()}
	switch d := d.(type) {
	case Class:
		node["genericParameters"] = ttype.DescribeGenericParameters(d.GenericParameters)
		node["parameters"] = ttype.DescribeParams(d.ConstructorParams)
	case Interface:
		node["genericParameters"] = ttype.DescribeGenericParameters(d.GenericParameters)
		fields := make([]any, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = map[string]any{"name": f.Name, "resultType": ttype.Describe(f.Type)}
		}
		node["fields"] = fields
		methods := make([]any, len(d.Methods))
		for i, m := range d.Methods {
			methods[i] = map[string]any{
				"name":              m.Name,
				"genericParameters": ttype.DescribeGenericParameters(m.GenericParameters),
				"parameters":        ttype.DescribeParams(m.Params),
				"resultType":        ttype.Describe(m.Result),
			}
		}
		node["methods"] = methods
	case Function:
		node["parameters"] = ttype.DescribeParams(d.Params)
		node["resultType"] = ttype.Describe(d.Result)
	default:
		panic(errors.AssertionFailedf("compiled.Describe: unhandled declaration %T", d))
	}
	return node
}

// DescribeAll describes each declaration in order.
func DescribeAll(decls []Declaration) []any {
	out := make([]any, len(decls))
	for i, d := range decls {
		out[i] = Describe(d)
	}
	return out
}
