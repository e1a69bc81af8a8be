package builder

import (
	"strings"

	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/ttype"
)

// Synth returns the expression text of a default value of type t for the
// field fieldName. Types with no sensible default (void, unknown, bare
// generic arguments) synthesize to the empty string.
func Synth(t ttype.Type, fieldName string, f ValueFactory) string {
	switch t := t.(type) {
	case ttype.String:
		return f.String(fieldName)
	case ttype.Number:
		return f.Number()
	case ttype.Boolean:
		return f.Boolean()
	case ttype.Enum:
		return f.Enum(t.Name, t.Values)
	case ttype.BuiltInClass:
		if t.TypeName == "Date" {
			return f.Date()
		}
		return f.Builder(t.TypeName)
	case ttype.UserClass:
		return f.Builder(t.Name)
	case ttype.GenericArgument:
		return ""
	case ttype.Array:
		return "[" + Synth(t.Element, fieldName, f) + "]"
	case ttype.Tuple:
		values := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			values[i] = Synth(e, fieldName, f)
		}
		return "[" + strings.Join(values, ", ") + "]"
	case ttype.Union:
		return synthFirst(t.Elements, fieldName, f)
	case ttype.Intersection:
		return synthFirst(t.Elements, fieldName, f)
	case ttype.Arrow:
		call := fieldName + "(" + ttype.ParamNames(t.Parameters) + ")"
		return "(" + ttype.RenderParams(t.Parameters) + ") => " + Synth(t.Result, call, f)
	case ttype.Void, ttype.Unknown:
		return ""
	default:
		panic(errors.AssertionFailedf("builder.Synth: unhandled type %T", t))
	}
}

// synthFirst synthesizes the left-most member only, even when it yields
// nothing.
func synthFirst(elements []ttype.Type, fieldName string, f ValueFactory) string {
	if len(elements) == 0 {
		return ""
	}
	return Synth(elements[0], fieldName, f)
}
