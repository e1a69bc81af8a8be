package compiled

import (
	"reflect"

	"github.com/teranos/fixturegen/syntax"
	"github.com/teranos/fixturegen/ttype"
)

// MapType maps a type annotation into the type model. It never fails: a nil
// node (no annotation), a nil pointer node and every form the model does not
// decompose map to Unknown. A nil tables resolves nothing.
func MapType(node syntax.TypeNode, tables *Tables) ttype.Type {
	if absent(node) {
		return ttype.Unknown{}
	}
	switch n := node.(type) {
	case *syntax.KeywordType:
		return mapKeyword(n.Keyword)
	case *syntax.TypeReference:
		return mapReference(n, tables)
	case *syntax.FunctionType:
		return ttype.NewArrow(MapParams(n.Parameters, tables), MapType(n.Type, tables))
	case *syntax.UnionType:
		return ttype.NewUnion(mapElements(n.Types, tables)...)
	case *syntax.IntersectionType:
		return ttype.NewIntersection(mapElements(n.Types, tables)...)
	case *syntax.ArrayType:
		return ttype.NewArray(MapType(n.ElementType, tables))
	case *syntax.TupleType:
		return ttype.NewTuple(mapElements(n.Elements, tables)...)
	default:
		return ttype.Unknown{}
	}
}

func mapKeyword(keyword string) ttype.Type {
	switch keyword {
	case "string":
		return ttype.String{}
	case "number":
		return ttype.Number{}
	case "boolean":
		return ttype.Boolean{}
	case "void":
		return ttype.Void{}
	case "symbol":
		return ttype.NewBuiltInClass("Symbol")
	case "object", "any":
		return ttype.NewUserClass(keyword)
	default:
		return ttype.Unknown{}
	}
}

// mapReference resolves a named reference: built-in or elementary first,
// then the enum table, otherwise a user class with its type arguments.
func mapReference(ref *syntax.TypeReference, tables *Tables) ttype.Type {
	name := syntax.IdentifierText(ref.Name)
	if IsBuiltIn(name) || tables.IsElementary(name) {
		return ttype.NewBuiltInClass(name)
	}
	if values, ok := tables.EnumValues(name); ok {
		return ttype.NewEnum(name, values)
	}
	return ttype.NewUserClass(name, mapGenericArguments(ref.TypeArguments, tables)...)
}

func mapGenericArguments(args []syntax.TypeNode, tables *Tables) []ttype.GenericArgument {
	out := make([]ttype.GenericArgument, 0, len(args))
	for _, t := range mapElements(args, tables) {
		out = append(out, ttype.NewGenericArgument(t))
	}
	return out
}

// mapElements maps a list of member types in order, dropping absent entries.
func mapElements(nodes []syntax.TypeNode, tables *Tables) []ttype.Type {
	out := make([]ttype.Type, 0, len(nodes))
	for _, n := range nodes {
		if absent(n) {
			continue
		}
		out = append(out, MapType(n, tables))
	}
	return out
}

// absent reports whether node is nil, either as an interface or as a nil
// pointer of some node type.
func absent(node syntax.TypeNode) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// MapParams maps parameters to (name, type) pairs. Destructured parameters
// are named "unknown"; parameters without an annotation have type Unknown.
func MapParams(params []*syntax.Parameter, tables *Tables) []ttype.Param {
	out := make([]ttype.Param, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		out = append(out, ttype.Param{
			Name: syntax.IdentifierText(p.Name),
			Type: MapType(p.Type, tables),
		})
	}
	return out
}

// MapGenericParameters keeps the names of declared type parameters.
func MapGenericParameters(params []*syntax.TypeParameter) []ttype.GenericParameter {
	out := make([]ttype.GenericParameter, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		out = append(out, ttype.GenericParameter{Name: syntax.IdentifierText(p.Name)})
	}
	return out
}
