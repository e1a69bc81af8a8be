// Package syntax defines the parsed declaration tree of one TypeScript
// compilation unit: the input the declaration extractor consumes.
//
// The tree covers the declaration subset builders are generated from
// (interfaces, classes, variable statements, enums, type aliases, function
// declarations) and the full type-annotation grammar. Statements and type
// forms the extractor does not care about are still represented, as
// OtherStatement or as their own TypeNode kinds, so that consumers can decide
// what to ignore.
package syntax

// Node is implemented by every tree node.
type Node interface {
	// Span returns the source range the node was parsed from.
	Span() Range
}

// Base carries the source range of a node. Every node type embeds it.
type Base struct {
	Rng Range
}

// Span implements Node.
func (b Base) Span() Range { return b.Rng }

// ModifierFlags is a set of declaration modifiers.
type ModifierFlags uint16

const (
	ModifierExport ModifierFlags = 1 << iota
	ModifierDefault
	ModifierDeclare
	ModifierAbstract
	ModifierConst
	ModifierAsync
	ModifierPublic
	ModifierPrivate
	ModifierProtected
	ModifierReadonly
	ModifierStatic
	ModifierOverride
)

// Has reports whether all of the given flags are set.
func (m ModifierFlags) Has(flags ModifierFlags) bool {
	return m&flags == flags
}

// IsExported reports whether the export modifier is present.
func (m ModifierFlags) IsExported() bool {
	return m.Has(ModifierExport)
}

// ModifierFromKeyword maps a modifier keyword to its flag, or 0.
func ModifierFromKeyword(kw string) ModifierFlags {
	switch kw {
	case "export":
		return ModifierExport
	case "default":
		return ModifierDefault
	case "declare":
		return ModifierDeclare
	case "abstract":
		return ModifierAbstract
	case "const":
		return ModifierConst
	case "async":
		return ModifierAsync
	case "public":
		return ModifierPublic
	case "private":
		return ModifierPrivate
	case "protected":
		return ModifierProtected
	case "readonly":
		return ModifierReadonly
	case "static":
		return ModifierStatic
	case "override":
		return ModifierOverride
	}
	return 0
}

// SourceFile is the root of a compilation unit.
type SourceFile struct {
	Base
	FileName   string
	Statements []Statement
}

// ---------------------------------------------------------------------------
// Statements

// Statement is a top-level statement.
type Statement interface {
	Node
	statementNode()
}

// InterfaceDeclaration is `interface Name<T> extends A, B { ... }`.
type InterfaceDeclaration struct {
	Base
	Modifiers      ModifierFlags
	Name           *Identifier
	TypeParameters []*TypeParameter
	Extends        []TypeNode
	Members        []TypeElement
}

// ClassDeclaration is `class Name<T> extends A implements B { ... }`.
// Name is nil for anonymous default-exported classes.
type ClassDeclaration struct {
	Base
	Modifiers      ModifierFlags
	Name           *Identifier
	TypeParameters []*TypeParameter
	Extends        TypeNode
	Implements     []TypeNode
	Members        []ClassElement
}

// VariableStatement is `const a = ..., b = ...;` (also let / var).
type VariableStatement struct {
	Base
	Modifiers    ModifierFlags
	Keyword      string
	Declarations []*VariableDeclaration
}

// VariableDeclaration is one declarator. Name is nil for binding patterns.
type VariableDeclaration struct {
	Base
	Name        *Identifier
	Type        TypeNode
	Initializer Expression
}

// EnumDeclaration is `enum Name { a = 'a', b }`.
type EnumDeclaration struct {
	Base
	Modifiers ModifierFlags
	Name      *Identifier
	Members   []*EnumMember
}

// EnumMember is one enum member. Initializer is the raw initializer text.
type EnumMember struct {
	Base
	Name        string
	Initializer string
}

// FunctionDeclaration is `function name<T>(params): R { ... }`.
type FunctionDeclaration struct {
	Base
	Modifiers      ModifierFlags
	Name           *Identifier
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

// TypeAliasDeclaration is `type Name<T> = T;`.
type TypeAliasDeclaration struct {
	Base
	Modifiers      ModifierFlags
	Name           *Identifier
	TypeParameters []*TypeParameter
	Type           TypeNode
}

// OtherStatement is any statement outside the declaration subset (imports,
// re-exports, expression statements, namespaces ...). Keyword is the first
// token of the statement.
type OtherStatement struct {
	Base
	Keyword string
}

func (*InterfaceDeclaration) statementNode() {}
func (*ClassDeclaration) statementNode()     {}
func (*VariableStatement) statementNode()    {}
func (*EnumDeclaration) statementNode()      {}
func (*FunctionDeclaration) statementNode()  {}
func (*TypeAliasDeclaration) statementNode() {}
func (*OtherStatement) statementNode()       {}

// ---------------------------------------------------------------------------
// Interface members

// TypeElement is a member of an interface body or type literal.
type TypeElement interface {
	Node
	typeElementNode()
}

// PropertySignature is `name?: T`.
type PropertySignature struct {
	Base
	Modifiers ModifierFlags
	Name      *Identifier
	Optional  bool
	Type      TypeNode
}

// MethodSignature is `name<T>(params): R`.
type MethodSignature struct {
	Base
	Name           *Identifier
	Optional       bool
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

// CallSignature is `<T>(params): R` or, when Construct is set, `new (params): R`.
type CallSignature struct {
	Base
	Construct      bool
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

// IndexSignature is `[key: K]: V`.
type IndexSignature struct {
	Base
	Parameters []*Parameter
	Type       TypeNode
}

// AccessorSignature is `get name(): T` or `set name(v: T)`.
type AccessorSignature struct {
	Base
	Setter     bool
	Name       *Identifier
	Parameters []*Parameter
	Type       TypeNode
}

func (*PropertySignature) typeElementNode() {}
func (*MethodSignature) typeElementNode()   {}
func (*CallSignature) typeElementNode()     {}
func (*IndexSignature) typeElementNode()    {}
func (*AccessorSignature) typeElementNode() {}

// ---------------------------------------------------------------------------
// Class members

// ClassElement is a member of a class body.
type ClassElement interface {
	Node
	classElementNode()
}

// Constructor is `constructor(params) { ... }`.
type Constructor struct {
	Base
	Modifiers  ModifierFlags
	Parameters []*Parameter
}

// PropertyDeclaration is `name?: T = init`.
type PropertyDeclaration struct {
	Base
	Modifiers ModifierFlags
	Name      *Identifier
	Type      TypeNode
}

// MethodDeclaration is `name<T>(params): R { ... }`, including accessors.
type MethodDeclaration struct {
	Base
	Modifiers      ModifierFlags
	Name           *Identifier
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

// OtherClassElement is an index signature, static block or stray semicolon.
type OtherClassElement struct {
	Base
}

func (*Constructor) classElementNode()         {}
func (*PropertyDeclaration) classElementNode() {}
func (*MethodDeclaration) classElementNode()   {}
func (*OtherClassElement) classElementNode()   {}

// ---------------------------------------------------------------------------
// Shared pieces

// Identifier is a declared or referenced name. Text holds the escaped text;
// for qualified references (a.b.C) it holds the dotted form. Member names
// written as string, numeric or computed keys have no Identifier.
type Identifier struct {
	Base
	Text string
}

// Parameter is a function, method or constructor parameter. Name is nil for
// destructuring patterns.
type Parameter struct {
	Base
	Modifiers ModifierFlags
	Name      *Identifier
	Rest      bool
	Optional  bool
	Type      TypeNode
}

// TypeParameter is a declared generic parameter `T extends C = D`.
type TypeParameter struct {
	Base
	Name       *Identifier
	Constraint TypeNode
	Default    TypeNode
}

// ---------------------------------------------------------------------------
// Expressions (initializers only)

// Expression is a variable initializer.
type Expression interface {
	Node
	expressionNode()
}

// ArrowFunction is `async <T>(params): R => body`.
type ArrowFunction struct {
	Base
	Modifiers      ModifierFlags
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

// FunctionExpression is `function name<T>(params): R { ... }` in expression position.
type FunctionExpression struct {
	Base
	Modifiers      ModifierFlags
	Name           *Identifier
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

// OtherExpression is any other initializer, skipped by the parser.
type OtherExpression struct {
	Base
}

func (*ArrowFunction) expressionNode()      {}
func (*FunctionExpression) expressionNode() {}
func (*OtherExpression) expressionNode()    {}

// IsFunctionLike reports whether e is a function literal.
func IsFunctionLike(e Expression) bool {
	switch e.(type) {
	case *ArrowFunction, *FunctionExpression:
		return true
	}
	return false
}
