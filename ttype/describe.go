package ttype

import "github.com/teranos/fixturegen/errors"

// Describe returns a plain tree of maps and slices for t, with a "kind"
// discriminant on every node. It is the machine-readable form written by
// `fixturegen decls` as JSON or YAML.
func Describe(t Type) map[string]any {
	node := map[string]any{"kind": t.Kind().String()}
	switch t := t.(type) {
	case String, Number, Boolean, Void, Unknown:
	case Enum:
		node["enumName"] = t.Name
		node["resolvedValueNames"] = append([]string{}, t.Values...)
	case BuiltInClass:
		node["typeName"] = t.TypeName
	case UserClass:
		node["name"] = t.Name
		node["generics"] = describeGenerics(t.Generics)
	case GenericArgument:
		node["type"] = Describe(t.Type)
		node["generics"] = describeGenerics(t.Generics)
	case Array:
		node["elementType"] = Describe(t.Element)
	case Tuple:
		node["elements"] = describeAll(t.Elements)
	case Union:
		node["elements"] = describeAll(t.Elements)
	case Intersection:
		node["elements"] = describeAll(t.Elements)
	case Arrow:
		node["parameters"] = DescribeParams(t.Parameters)
		node["resultType"] = Describe(t.Result)
	default:
		panic(errors.AssertionFailedf("ttype.Describe: unhandled type %T", t))
	}
	return node
}

// DescribeParams describes each parameter as {name, type}.
func DescribeParams(params []Param) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = map[string]any{"name": p.Name, "type": Describe(p.Type)}
	}
	return out
}

// DescribeGenericParameters describes each generic parameter as {name}.
func DescribeGenericParameters(params []GenericParameter) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = map[string]any{"name": p.Name}
	}
	return out
}

func describeGenerics(generics []GenericArgument) []any {
	out := make([]any, len(generics))
	for i, g := range generics {
		out[i] = Describe(g)
	}
	return out
}

func describeAll(types []Type) []any {
	out := make([]any, len(types))
	for i, t := range types {
		out[i] = Describe(t)
	}
	return out
}
