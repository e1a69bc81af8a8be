// Package ttype is the closed type model that declaration extraction maps
// TypeScript type syntax into, and that builder synthesis walks.
//
// Type is a sealed interface: only the fourteen variants in this package
// implement it, and every consumer switches on Kind (or the concrete type)
// with an explicit case per variant. Values are immutable once built; the
// constructors copy the slices they are given.
package ttype

import "golang.org/x/exp/slices"

// Kind identifies the variant of a Type.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindEnum
	KindBuiltInClass
	KindUserClass
	KindGenericArgument
	KindArray
	KindTuple
	KindUnion
	KindIntersection
	KindArrow
	KindVoid
	KindUnknown
)

// Kinds lists every variant, in declaration order.
var Kinds = []Kind{
	KindString, KindNumber, KindBoolean, KindEnum, KindBuiltInClass,
	KindUserClass, KindGenericArgument, KindArray, KindTuple, KindUnion,
	KindIntersection, KindArrow, KindVoid, KindUnknown,
}

// String returns the variant name used in declaration dumps.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	case KindEnum:
		return "Enum"
	case KindBuiltInClass:
		return "BuiltInClass"
	case KindUserClass:
		return "UserClass"
	case KindGenericArgument:
		return "GenericArgument"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindUnion:
		return "Union"
	case KindIntersection:
		return "Intersection"
	case KindArrow:
		return "Arrow"
	case KindVoid:
		return "Void"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Type is a node of the type model.
type Type interface {
	// Kind returns the variant discriminant for switching.
	Kind() Kind
	sealed()
}

type base struct{}

func (base) sealed() {}

// String is the `string` keyword type.
type String struct{ base }

// Number is the `number` keyword type.
type Number struct{ base }

// Boolean is the `boolean` keyword type.
type Boolean struct{ base }

// Enum is a reference to a caller-declared enum. Values holds the enum's
// resolved value names (e.g. "Colour.red") so synthesis never re-derives them.
type Enum struct {
	base
	Name   string
	Values []string
}

// BuiltInClass is an opaque built-in or elementary class, kept by name only.
type BuiltInClass struct {
	base
	TypeName string
}

// UserClass is any other named type reference, with its type arguments.
type UserClass struct {
	base
	Name     string
	Generics []GenericArgument
}

// GenericArgument is an actual type bound to a generic parameter.
type GenericArgument struct {
	base
	Type     Type
	Generics []GenericArgument
}

// Array is `T[]`.
type Array struct {
	base
	Element Type
}

// Tuple is `[A, B, ...]`.
type Tuple struct {
	base
	Elements []Type
}

// Union is `A | B | ...`.
type Union struct {
	base
	Elements []Type
}

// Intersection is `A & B & ...`.
type Intersection struct {
	base
	Elements []Type
}

// Arrow is a function type `(a: A, b: B) => R`.
type Arrow struct {
	base
	Parameters []Param
	Result     Type
}

// Void is the `void` keyword type.
type Void struct{ base }

// Unknown stands for absent annotations and every unsupported form.
type Unknown struct{ base }

func (String) Kind() Kind          { return KindString }
func (Number) Kind() Kind          { return KindNumber }
func (Boolean) Kind() Kind         { return KindBoolean }
func (Enum) Kind() Kind            { return KindEnum }
func (BuiltInClass) Kind() Kind    { return KindBuiltInClass }
func (UserClass) Kind() Kind       { return KindUserClass }
func (GenericArgument) Kind() Kind { return KindGenericArgument }
func (Array) Kind() Kind           { return KindArray }
func (Tuple) Kind() Kind           { return KindTuple }
func (Union) Kind() Kind           { return KindUnion }
func (Intersection) Kind() Kind    { return KindIntersection }
func (Arrow) Kind() Kind           { return KindArrow }
func (Void) Kind() Kind            { return KindVoid }
func (Unknown) Kind() Kind         { return KindUnknown }

// Param is a named, typed parameter of a function type, method or constructor.
type Param struct {
	Name string
	Type Type
}

// GenericParameter is a declared type parameter such as the T in Logger<T>.
type GenericParameter struct {
	Name string
}

// NewEnum returns an Enum owning a copy of values.
func NewEnum(name string, values []string) Enum {
	return Enum{Name: name, Values: cloneOrEmpty(values)}
}

// NewBuiltInClass returns a BuiltInClass for typeName.
func NewBuiltInClass(typeName string) BuiltInClass {
	return BuiltInClass{TypeName: typeName}
}

// NewUserClass returns a UserClass owning a copy of generics.
func NewUserClass(name string, generics ...GenericArgument) UserClass {
	return UserClass{Name: name, Generics: cloneOrEmpty(generics)}
}

// NewGenericArgument wraps t as a generic argument with its own arguments.
func NewGenericArgument(t Type, generics ...GenericArgument) GenericArgument {
	return GenericArgument{Type: t, Generics: cloneOrEmpty(generics)}
}

// NewArray returns an Array of element.
func NewArray(element Type) Array {
	return Array{Element: element}
}

// NewTuple returns a Tuple owning a copy of elements.
func NewTuple(elements ...Type) Tuple {
	return Tuple{Elements: cloneOrEmpty(elements)}
}

// NewUnion returns a Union owning a copy of elements.
func NewUnion(elements ...Type) Union {
	return Union{Elements: cloneOrEmpty(elements)}
}

// NewIntersection returns an Intersection owning a copy of elements.
func NewIntersection(elements ...Type) Intersection {
	return Intersection{Elements: cloneOrEmpty(elements)}
}

// NewArrow returns an Arrow owning a copy of params.
func NewArrow(params []Param, result Type) Arrow {
	return Arrow{Parameters: cloneOrEmpty(params), Result: result}
}

// cloneOrEmpty copies s, turning nil into an empty slice so that "no
// generics" always reads the same way in dumps and comparisons.
func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
