package ttype

import (
	"strings"

	"github.com/teranos/fixturegen/errors"
)

// Render returns the canonical TypeScript text for t. The result is embedded
// verbatim as the declared type of generated fields and mutator parameters.
func Render(t Type) string {
	switch t := t.(type) {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Enum:
		return t.Name
	case BuiltInClass:
		return t.TypeName
	case UserClass:
		if len(t.Generics) > 0 {
			return t.Name + "<" + renderGenerics(t.Generics) + ">"
		}
		return t.Name
	case GenericArgument:
		if len(t.Generics) > 0 {
			return Render(t.Type) + "<" + renderGenerics(t.Generics) + ">"
		}
		return Render(t.Type)
	case Array:
		return Render(t.Element) + "[]"
	case Tuple:
		// Tuple slots are joined without a space: [number,string]
		return "[" + renderAll(t.Elements, ",") + "]"
	case Union:
		return renderAll(t.Elements, " | ")
	case Intersection:
		return renderAll(t.Elements, " & ")
	case Arrow:
		return "(" + RenderParams(t.Parameters) + ") => " + Render(t.Result)
	case Void:
		return "void"
	case Unknown:
		return "unknown"
	}
	panic(errors.AssertionFailedf("ttype.Render: unhandled type %T", t))
}

// RenderParam returns "name: Type".
func RenderParam(p Param) string {
	return p.Name + ": " + Render(p.Type)
}

// RenderParams returns the comma-separated rendering of params.
func RenderParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = RenderParam(p)
	}
	return strings.Join(parts, ", ")
}

// ParamNames returns the comma-separated parameter names, e.g. "a, b".
func ParamNames(params []Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func renderGenerics(generics []GenericArgument) string {
	parts := make([]string, len(generics))
	for i, g := range generics {
		parts[i] = Render(g)
	}
	return strings.Join(parts, ", ")
}

func renderAll(types []Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = Render(t)
	}
	return strings.Join(parts, sep)
}
