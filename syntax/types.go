package syntax

// TypeNode is a type annotation. The set mirrors the TypeScript type grammar;
// the extractor decomposes only some kinds and treats the rest as unknown.
type TypeNode interface {
	Node
	typeNode()
}

// KeywordType is a predefined type keyword: string, number, boolean, void,
// symbol, object, any, unknown, never, undefined, null, bigint, this.
type KeywordType struct {
	Base
	Keyword string
}

// TypeReference is `Name` or `ns.Name<A, B>`. TypeArguments is nil when no
// argument list was written.
type TypeReference struct {
	Base
	Name          *Identifier
	TypeArguments []TypeNode
}

// FunctionType is `<T>(params) => R`.
type FunctionType struct {
	Base
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

// ConstructorType is `new (params) => R`.
type ConstructorType struct {
	Base
	Parameters []*Parameter
	Type       TypeNode
}

// UnionType is `A | B`.
type UnionType struct {
	Base
	Types []TypeNode
}

// IntersectionType is `A & B`.
type IntersectionType struct {
	Base
	Types []TypeNode
}

// ArrayType is `T[]`.
type ArrayType struct {
	Base
	ElementType TypeNode
}

// TupleType is `[A, B]`. Elements may be NamedTupleMember, OptionalType or RestType.
type TupleType struct {
	Base
	Elements []TypeNode
}

// NamedTupleMember is `name?: T` or `...name: T` inside a tuple.
type NamedTupleMember struct {
	Base
	Name     *Identifier
	Optional bool
	Rest     bool
	Type     TypeNode
}

// OptionalType is `T?` inside a tuple.
type OptionalType struct {
	Base
	Type TypeNode
}

// RestType is `...T` inside a tuple.
type RestType struct {
	Base
	Type TypeNode
}

// ParenthesizedType is `(T)`.
type ParenthesizedType struct {
	Base
	Type TypeNode
}

// LiteralType is a string, number, boolean or template literal type. Text is
// the literal as written.
type LiteralType struct {
	Base
	Text string
}

// TypeLiteral is an inline object type `{ a: string }`.
type TypeLiteral struct {
	Base
	Members []TypeElement
}

// MappedType is `{ [K in keyof T]: V }`.
type MappedType struct {
	Base
	TypeParameter *TypeParameter
	Type          TypeNode
}

// ConditionalType is `C extends E ? T : F`.
type ConditionalType struct {
	Base
	CheckType   TypeNode
	ExtendsType TypeNode
	TrueType    TypeNode
	FalseType   TypeNode
}

// TypeOperator is `keyof T`, `unique symbol` or `readonly T[]`.
type TypeOperator struct {
	Base
	Operator string
	Type     TypeNode
}

// IndexedAccessType is `T[K]`.
type IndexedAccessType struct {
	Base
	ObjectType TypeNode
	IndexType  TypeNode
}

// TypeQuery is `typeof expr`.
type TypeQuery struct {
	Base
	ExprName *Identifier
}

// InferType is `infer T` inside a conditional type.
type InferType struct {
	Base
	TypeParameter *TypeParameter
}

// TypePredicate is `x is T` or `asserts x` in a return position.
type TypePredicate struct {
	Base
	ParameterName string
	Type          TypeNode
}

func (*KeywordType) typeNode()       {}
func (*TypeReference) typeNode()     {}
func (*FunctionType) typeNode()      {}
func (*ConstructorType) typeNode()   {}
func (*UnionType) typeNode()         {}
func (*IntersectionType) typeNode()  {}
func (*ArrayType) typeNode()         {}
func (*TupleType) typeNode()         {}
func (*NamedTupleMember) typeNode()  {}
func (*OptionalType) typeNode()      {}
func (*RestType) typeNode()          {}
func (*ParenthesizedType) typeNode() {}
func (*LiteralType) typeNode()       {}
func (*TypeLiteral) typeNode()       {}
func (*MappedType) typeNode()        {}
func (*ConditionalType) typeNode()   {}
func (*TypeOperator) typeNode()      {}
func (*IndexedAccessType) typeNode() {}
func (*TypeQuery) typeNode()         {}
func (*InferType) typeNode()         {}
func (*TypePredicate) typeNode()     {}

// IdentifierText returns id's text, or "unknown" when id is nil or empty.
func IdentifierText(id *Identifier) string {
	if id == nil || id.Text == "" {
		return "unknown"
	}
	return id.Text
}

// NewIdentifier returns an identifier with the given text.
func NewIdentifier(text string) *Identifier {
	return &Identifier{Text: text}
}
