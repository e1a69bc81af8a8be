package compiled

import (
	"github.com/teranos/fixturegen/syntax"
	"github.com/teranos/fixturegen/ttype"
)

// Extract walks the top-level statements of file in order and returns the
// declarations builders can be generated from:
//
//   - an exported class yields one Class per constructor it declares, and
//     none when it declares no constructor;
//   - every interface, exported or not, yields an Interface of its property
//     and method signatures;
//   - an exported variable statement whose first declarator is initialized
//     with a function literal yields a Function.
//
// Everything else is ignored.
func Extract(file *syntax.SourceFile, tables *Tables) []Declaration {
	decls := []Declaration{}
	for _, stmt := range file.Statements {
		switch s := stmt.(type) {
		case *syntax.ClassDeclaration:
			if s.Modifiers.IsExported() {
				decls = append(decls, extractClass(s, tables)...)
			}
		case *syntax.InterfaceDeclaration:
			decls = append(decls, extractInterface(s, tables))
		case *syntax.VariableStatement:
			if s.Modifiers.IsExported() {
				if fn, ok := extractFunction(s, tables); ok {
					decls = append(decls, fn)
				}
			}
		}
	}
	return decls
}

func extractClass(c *syntax.ClassDeclaration, tables *Tables) []Declaration {
	var out []Declaration
	name := syntax.IdentifierText(c.Name)
	generics := MapGenericParameters(c.TypeParameters)
	for _, m := range c.Members {
		ctor, ok := m.(*syntax.Constructor)
		if !ok {
			continue
		}
		out = append(out, Class{
			Name:              name,
			GenericParameters: generics,
			ConstructorParams: MapParams(ctor.Parameters, tables),
		})
	}
	return out
}

func extractInterface(i *syntax.InterfaceDeclaration, tables *Tables) Interface {
	decl := Interface{
		Name:              syntax.IdentifierText(i.Name),
		GenericParameters: MapGenericParameters(i.TypeParameters),
		Fields:            []Field{},
		Methods:           []Method{},
	}
	for _, m := range i.Members {
		switch m := m.(type) {
		case *syntax.PropertySignature:
			decl.Fields = append(decl.Fields, Field{
				Name: syntax.IdentifierText(m.Name),
				Type: MapType(m.Type, tables),
			})
		case *syntax.MethodSignature:
			decl.Methods = append(decl.Methods, Method{
				Name:              syntax.IdentifierText(m.Name),
				GenericParameters: MapGenericParameters(m.TypeParameters),
				Params:            MapParams(m.Parameters, tables),
				Result:            MapType(m.Type, tables),
			})
		}
	}
	return decl
}

func extractFunction(v *syntax.VariableStatement, tables *Tables) (Function, bool) {
	if len(v.Declarations) == 0 {
		return Function{}, false
	}
	first := v.Declarations[0]

	var params []*syntax.Parameter
	switch init := first.Initializer.(type) {
	case *syntax.ArrowFunction:
		params = init.Parameters
	case *syntax.FunctionExpression:
		params = init.Parameters
	default:
		return Function{}, false
	}
	return Function{
		Name:   syntax.IdentifierText(first.Name),
		Params: MapParams(params, tables),
		Result: ttype.Unknown{},
	}, true
}
