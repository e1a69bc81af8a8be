// Package parser reads TypeScript source into the syntax tree.
//
// It is a recursive-descent parser for the declaration surface of the
// language: interfaces, classes, variable statements, enums, type aliases,
// function declarations and the whole type grammar. Function bodies,
// initializers and statements outside that surface are skipped by bracket
// matching, honouring automatic semicolon insertion, so ordinary modules parse
// without a full expression grammar.
package parser

import (
	"github.com/teranos/fixturegen/syntax"
)

type parser struct {
	lx      *lexer
	file    string
	tok     Token   // current token
	ahead   []Token // lookahead buffer
	last    Token   // last consumed token
	prevEnd syntax.Position
}

// bailout carries the first error out of the recursive descent
type bailout struct{ err *ParseError }

func newParser(fileName, src string) *parser {
	return &parser{lx: newLexer(src), file: fileName}
}

// ParseFile parses one compilation unit. The first syntax error aborts the
// parse and is returned as a *ParseError.
func ParseFile(fileName string, src []byte) (_ *syntax.SourceFile, err error) {
	p := newParser(fileName, string(src))
	defer p.recover(&err)
	p.advance()
	return p.parseSourceFile(), nil
}

// ParseType parses a single type annotation such as `Map<string, T[]>`.
func ParseType(src string) (_ syntax.TypeNode, err error) {
	p := newParser("", src)
	defer p.recover(&err)
	p.advance()
	t := p.parseType()
	if p.tok.Type != EOF {
		p.fail("unexpected token after type")
	}
	return t, nil
}

func (p *parser) recover(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

// ---------------------------------------------------------------------------
// Token handling

func (p *parser) scan() Token {
	t := p.lx.Next()
	if p.lx.err != nil {
		panic(bailout{p.lx.err.WithFile(p.file)})
	}
	return t
}

// advance consumes the current token and returns it.
func (p *parser) advance() Token {
	t := p.tok
	if t.Type != EOF || t.Text != "" {
		p.last = t
		p.prevEnd = t.End
	}
	if len(p.ahead) > 0 {
		p.tok = p.ahead[0]
		p.ahead = p.ahead[1:]
	} else {
		p.tok = p.scan()
	}
	return t
}

// peek returns the n-th token after the current one.
func (p *parser) peek(n int) Token {
	for len(p.ahead) < n {
		p.ahead = append(p.ahead, p.scan())
	}
	return p.ahead[n-1]
}

// at returns the token at offset i from the current one.
func (p *parser) at(i int) Token {
	if i == 0 {
		return p.tok
	}
	return p.peek(i)
}

func (p *parser) is(text string) bool {
	return p.tok.Is(text)
}

func (p *parser) got(text string) bool {
	if p.is(text) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(text string) Token {
	if !p.is(text) {
		p.fail("'" + text + "' expected")
	}
	return p.advance()
}

func (p *parser) fail(msg string) {
	panic(bailout{NewParseError(ErrorKindSyntax, msg).WithToken(p.tok).WithFile(p.file)})
}

func (p *parser) node(start syntax.Position) syntax.Base {
	return syntax.Base{Rng: syntax.RangeFromPositions(start, p.prevEnd)}
}

func (p *parser) canParseSemicolon() bool {
	return p.is(";") || p.is("}") || p.tok.Type == EOF || p.tok.NewlineBefore
}

func (p *parser) parseSemicolon() {
	if p.got(";") || p.canParseSemicolon() {
		return
	}
	p.fail("';' expected")
}

// ---------------------------------------------------------------------------
// Statements

func (p *parser) parseSourceFile() *syntax.SourceFile {
	start := p.tok.Start
	stmts := []syntax.Statement{}
	for p.tok.Type != EOF {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return &syntax.SourceFile{Base: p.node(start), FileName: p.file, Statements: stmts}
}

func (p *parser) parseStatement() syntax.Statement {
	start := p.tok.Start
	if p.got(";") {
		return nil
	}
	p.skipDecorators()
	first := p.tok.Text
	mods := p.parseStatementModifiers()

	switch {
	case p.is("interface") && p.peek(1).Type == Ident:
		return p.parseInterface(start, mods)
	case p.is("class"):
		return p.parseClass(start, mods)
	case p.is("enum") && p.peek(1).Type == Ident:
		return p.parseEnum(start, mods)
	case p.is("const") || p.is("var"), p.is("let") && p.startsBinding(p.peek(1)):
		return p.parseVariableStatement(start, mods)
	case p.is("function"):
		return p.parseFunctionDeclaration(start, mods)
	case p.is("type") && p.peek(1).Type == Ident && !p.peek(1).NewlineBefore:
		return p.parseTypeAlias(start, mods)
	}

	p.skipStatement()
	return &syntax.OtherStatement{Base: p.node(start), Keyword: first}
}

func (p *parser) startsBinding(t Token) bool {
	return t.Type == Ident || t.Is("{") || t.Is("[")
}

func (p *parser) parseStatementModifiers() syntax.ModifierFlags {
	var mods syntax.ModifierFlags
	for {
		next := p.peek(1)
		switch {
		case p.is("export") && next.Type == Ident && next.Text != "as":
		case p.is("default") && mods.IsExported():
		case p.is("declare") && next.Type == Ident && !next.NewlineBefore:
		case p.is("abstract") && next.Is("class") && !next.NewlineBefore:
		case p.is("const") && next.Is("enum"):
		case p.is("async") && next.Is("function") && !next.NewlineBefore:
		default:
			return mods
		}
		mods |= syntax.ModifierFromKeyword(p.advance().Text)
	}
}

func (p *parser) parseInterface(start syntax.Position, mods syntax.ModifierFlags) *syntax.InterfaceDeclaration {
	p.expect("interface")
	decl := &syntax.InterfaceDeclaration{Modifiers: mods}
	decl.Name = p.parseIdentifier()
	decl.TypeParameters = p.parseTypeParametersOpt()
	if p.got("extends") {
		for {
			decl.Extends = append(decl.Extends, p.parseTypeReference())
			if !p.got(",") {
				break
			}
		}
	}
	decl.Members = p.parseTypeMembers()
	decl.Base = p.node(start)
	return decl
}

func (p *parser) parseClass(start syntax.Position, mods syntax.ModifierFlags) *syntax.ClassDeclaration {
	p.expect("class")
	decl := &syntax.ClassDeclaration{Modifiers: mods}
	if p.tok.Type == Ident && !p.is("extends") && !p.is("implements") {
		decl.Name = p.parseIdentifier()
	}
	decl.TypeParameters = p.parseTypeParametersOpt()
	if p.got("extends") {
		decl.Extends = p.parseClassHeritage()
	}
	if p.got("implements") {
		for {
			decl.Implements = append(decl.Implements, p.parseTypeReference())
			if !p.got(",") {
				break
			}
		}
	}
	decl.Members = p.parseClassMembers()
	decl.Base = p.node(start)
	return decl
}

// parseClassHeritage parses the extends clause. A plain (possibly generic)
// reference becomes a TypeReference; any other expression is skipped.
func (p *parser) parseClassHeritage() syntax.TypeNode {
	if p.tok.Type == Ident {
		ref := p.parseTypeReference()
		if p.is("{") || p.is("implements") {
			return ref
		}
	}
	for p.tok.Type != EOF && !p.is("{") && !p.is("implements") {
		if p.is("(") || p.is("[") {
			p.skipBalanced()
			continue
		}
		p.advance()
	}
	return nil
}

func (p *parser) parseEnum(start syntax.Position, mods syntax.ModifierFlags) *syntax.EnumDeclaration {
	p.expect("enum")
	decl := &syntax.EnumDeclaration{Modifiers: mods, Members: []*syntax.EnumMember{}}
	decl.Name = p.parseIdentifier()
	p.expect("{")
	for !p.is("}") {
		mstart := p.tok.Start
		var name string
		switch {
		case p.tok.Type == Ident || p.tok.Type == String || p.tok.Type == Number:
			name = p.advance().Text
		case p.is("["):
			s := p.tok.Start.Offset
			p.skipBalanced()
			name = p.lx.src[s:p.prevEnd.Offset]
		default:
			p.fail("enum member name expected")
		}
		var init string
		if p.got("=") {
			s := p.tok.Start.Offset
			p.skipExpression()
			init = p.lx.src[s:p.prevEnd.Offset]
		}
		decl.Members = append(decl.Members, &syntax.EnumMember{Base: p.node(mstart), Name: name, Initializer: init})
		if !p.got(",") {
			break
		}
	}
	p.expect("}")
	decl.Base = p.node(start)
	return decl
}

func (p *parser) parseVariableStatement(start syntax.Position, mods syntax.ModifierFlags) *syntax.VariableStatement {
	stmt := &syntax.VariableStatement{Modifiers: mods, Keyword: p.advance().Text}
	for {
		d := p.parseVariableDeclaration()
		if d == nil {
			break
		}
		stmt.Declarations = append(stmt.Declarations, d)
		if !p.got(",") {
			break
		}
	}
	// Expressions the skipper cannot delimit (generic calls `f<A, B>()`)
	// leave tokens behind; drop the rest of the statement.
	if !p.got(";") && !p.canParseSemicolon() {
		p.skipStatement()
	}
	stmt.Base = p.node(start)
	return stmt
}

func (p *parser) parseVariableDeclaration() *syntax.VariableDeclaration {
	start := p.tok.Start
	d := &syntax.VariableDeclaration{}
	switch {
	case p.tok.Type == Ident:
		d.Name = p.parseIdentifier()
	case p.is("{") || p.is("["):
		p.skipBalanced()
	default:
		return nil
	}
	p.got("!")
	if p.got(":") {
		d.Type = p.parseType()
	}
	if p.got("=") {
		d.Initializer = p.parseInitializer()
	}
	d.Base = p.node(start)
	return d
}

func (p *parser) parseFunctionDeclaration(start syntax.Position, mods syntax.ModifierFlags) *syntax.FunctionDeclaration {
	p.expect("function")
	p.got("*")
	decl := &syntax.FunctionDeclaration{Modifiers: mods}
	if p.tok.Type == Ident {
		decl.Name = p.parseIdentifier()
	}
	decl.TypeParameters = p.parseTypeParametersOpt()
	decl.Parameters = p.parseParameters()
	if p.got(":") {
		decl.Type = p.parseReturnType()
	}
	p.parseFunctionBody()
	decl.Base = p.node(start)
	return decl
}

func (p *parser) parseTypeAlias(start syntax.Position, mods syntax.ModifierFlags) *syntax.TypeAliasDeclaration {
	p.expect("type")
	decl := &syntax.TypeAliasDeclaration{Modifiers: mods}
	decl.Name = p.parseIdentifier()
	decl.TypeParameters = p.parseTypeParametersOpt()
	p.expect("=")
	decl.Type = p.parseType()
	p.parseSemicolon()
	decl.Base = p.node(start)
	return decl
}

// parseFunctionBody skips a `{ ... }` body, or accepts the semicolon that ends
// an overload or ambient signature.
func (p *parser) parseFunctionBody() {
	if p.is("{") {
		p.skipBalanced()
		return
	}
	p.parseSemicolon()
}

// ---------------------------------------------------------------------------
// Initializers

func (p *parser) parseInitializer() syntax.Expression {
	start := p.tok.Start
	var mods syntax.ModifierFlags
	if p.is("async") {
		next := p.peek(1)
		if !next.NewlineBefore && (next.Is("function") || next.Is("(") || next.Is("<") ||
			(next.Type == Ident && p.peek(2).Is("=>"))) {
			p.advance()
			mods |= syntax.ModifierAsync
		}
	}

	switch {
	case p.is("function"):
		return p.parseFunctionExpression(start, mods)
	case p.is("(") && p.arrowAhead():
		return p.parseArrowFunction(start, mods)
	case p.is("<") && p.genericArrowAhead():
		return p.parseArrowFunction(start, mods)
	case p.tok.Type == Ident && p.peek(1).Is("=>") && !p.peek(1).NewlineBefore:
		return p.parseArrowFunction(start, mods)
	}
	p.skipExpression()
	return &syntax.OtherExpression{Base: p.node(start)}
}

func (p *parser) arrowAhead() bool {
	j := p.matching(0)
	if j < 0 {
		return false
	}
	after := p.at(j + 1)
	return after.Is("=>") || after.Is(":")
}

func (p *parser) genericArrowAhead() bool {
	j := p.matchingAngle(0)
	return j > 0 && p.at(j+1).Is("(")
}

func (p *parser) parseArrowFunction(start syntax.Position, mods syntax.ModifierFlags) *syntax.ArrowFunction {
	fn := &syntax.ArrowFunction{Modifiers: mods}
	if p.tok.Type == Ident {
		pstart := p.tok.Start
		name := p.parseIdentifier()
		fn.Parameters = []*syntax.Parameter{{Base: p.node(pstart), Name: name}}
	} else {
		fn.TypeParameters = p.parseTypeParametersOpt()
		fn.Parameters = p.parseParameters()
		if p.got(":") {
			fn.Type = p.parseReturnType()
		}
	}
	p.expect("=>")
	if p.is("{") {
		p.skipBalanced()
	} else {
		p.skipExpression()
	}
	fn.Base = p.node(start)
	return fn
}

func (p *parser) parseFunctionExpression(start syntax.Position, mods syntax.ModifierFlags) *syntax.FunctionExpression {
	p.expect("function")
	p.got("*")
	fn := &syntax.FunctionExpression{Modifiers: mods}
	if p.tok.Type == Ident {
		fn.Name = p.parseIdentifier()
	}
	fn.TypeParameters = p.parseTypeParametersOpt()
	fn.Parameters = p.parseParameters()
	if p.got(":") {
		fn.Type = p.parseReturnType()
	}
	if p.is("{") {
		p.skipBalanced()
	}
	fn.Base = p.node(start)
	return fn
}

// ---------------------------------------------------------------------------
// Interface and type literal members

func (p *parser) parseTypeMembers() []syntax.TypeElement {
	p.expect("{")
	members := []syntax.TypeElement{}
	for !p.is("}") {
		if p.tok.Type == EOF {
			p.fail("'}' expected")
		}
		if p.got(";") || p.got(",") {
			continue
		}
		members = append(members, p.parseTypeMember())
		if !p.got(";") && !p.got(",") && !p.is("}") && !p.tok.NewlineBefore && p.tok.Type != EOF {
			p.fail("';' expected")
		}
	}
	p.expect("}")
	return members
}

func (p *parser) parseTypeMember() syntax.TypeElement {
	start := p.tok.Start
	if p.is("(") || p.is("<") {
		return p.parseCallSignature(start, false)
	}
	if p.is("new") && (p.peek(1).Is("(") || p.peek(1).Is("<")) {
		p.advance()
		return p.parseCallSignature(start, true)
	}

	var mods syntax.ModifierFlags
	if p.is("readonly") && p.modifierFollows() {
		p.advance()
		mods |= syntax.ModifierReadonly
	}
	if (p.is("get") || p.is("set")) && p.modifierFollows() {
		setter := p.advance().Text == "set"
		sig := &syntax.AccessorSignature{Setter: setter}
		sig.Name = p.parsePropertyName()
		sig.Parameters = p.parseParameters()
		if p.got(":") {
			sig.Type = p.parseReturnType()
		}
		sig.Base = p.node(start)
		return sig
	}
	if p.is("[") && p.indexSignatureAhead() {
		return p.parseIndexSignature(start)
	}

	name := p.parsePropertyName()
	optional := p.got("?")
	if p.is("(") || p.is("<") {
		sig := &syntax.MethodSignature{Name: name, Optional: optional}
		sig.TypeParameters = p.parseTypeParametersOpt()
		sig.Parameters = p.parseParameters()
		if p.got(":") {
			sig.Type = p.parseReturnType()
		}
		sig.Base = p.node(start)
		return sig
	}
	prop := &syntax.PropertySignature{Modifiers: mods, Name: name, Optional: optional}
	if p.got(":") {
		prop.Type = p.parseType()
	}
	prop.Base = p.node(start)
	return prop
}

func (p *parser) parseCallSignature(start syntax.Position, construct bool) *syntax.CallSignature {
	sig := &syntax.CallSignature{Construct: construct}
	sig.TypeParameters = p.parseTypeParametersOpt()
	sig.Parameters = p.parseParameters()
	if p.got(":") {
		sig.Type = p.parseReturnType()
	}
	sig.Base = p.node(start)
	return sig
}

func (p *parser) indexSignatureAhead() bool {
	return p.peek(1).Type == Ident && p.peek(2).Is(":")
}

func (p *parser) parseIndexSignature(start syntax.Position) *syntax.IndexSignature {
	p.expect("[")
	sig := &syntax.IndexSignature{}
	for !p.is("]") {
		sig.Parameters = append(sig.Parameters, p.parseParameter())
		if !p.got(",") {
			break
		}
	}
	p.expect("]")
	if p.got(":") {
		sig.Type = p.parseType()
	}
	sig.Base = p.node(start)
	return sig
}

// parsePropertyName parses a member name. Only identifier names produce an
// Identifier; string, numeric and computed keys are consumed and yield nil.
func (p *parser) parsePropertyName() *syntax.Identifier {
	switch {
	case p.tok.Type == Ident:
		return p.parseIdentifier()
	case p.tok.Type == String || p.tok.Type == Number:
		p.advance()
		return nil
	case p.is("["):
		p.skipBalanced()
		return nil
	}
	p.fail("property name expected")
	return nil
}

// modifierFollows reports whether the token after a modifier keyword starts a
// member name, so that `readonly: T` stays a property called readonly.
func (p *parser) modifierFollows() bool {
	next := p.peek(1)
	return next.Type == Ident || next.Type == String || next.Type == Number ||
		next.Is("[") || next.Is("*") || next.Is("{")
}

// ---------------------------------------------------------------------------
// Class members

var memberModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "static": true,
	"readonly": true, "abstract": true, "override": true, "declare": true,
	"accessor": true, "async": true,
}

func (p *parser) parseClassMembers() []syntax.ClassElement {
	p.expect("{")
	members := []syntax.ClassElement{}
	for !p.is("}") {
		if p.tok.Type == EOF {
			p.fail("'}' expected")
		}
		if p.got(";") {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect("}")
	return members
}

func (p *parser) parseClassMember() syntax.ClassElement {
	start := p.tok.Start
	p.skipDecorators()
	if p.is("static") && p.peek(1).Is("{") {
		p.advance()
		p.skipBalanced()
		return &syntax.OtherClassElement{Base: p.node(start)}
	}

	var mods syntax.ModifierFlags
	for p.tok.Type == Ident && memberModifiers[p.tok.Text] && p.modifierFollows() {
		mods |= syntax.ModifierFromKeyword(p.advance().Text)
	}
	if (p.is("get") || p.is("set")) && p.modifierFollows() {
		p.advance()
	}
	p.got("*")

	if p.is("constructor") && p.peek(1).Is("(") {
		p.advance()
		ctor := &syntax.Constructor{Modifiers: mods}
		ctor.Parameters = p.parseParameters()
		p.parseFunctionBody()
		ctor.Base = p.node(start)
		return ctor
	}
	if p.is("[") && p.indexSignatureAhead() {
		p.parseIndexSignature(start)
		p.parseSemicolon()
		return &syntax.OtherClassElement{Base: p.node(start)}
	}

	name := p.parsePropertyName()
	if !p.got("?") {
		p.got("!")
	}
	if p.is("(") || p.is("<") {
		m := &syntax.MethodDeclaration{Modifiers: mods, Name: name}
		m.TypeParameters = p.parseTypeParametersOpt()
		m.Parameters = p.parseParameters()
		if p.got(":") {
			m.Type = p.parseReturnType()
		}
		p.parseFunctionBody()
		m.Base = p.node(start)
		return m
	}

	prop := &syntax.PropertyDeclaration{Modifiers: mods, Name: name}
	if p.got(":") {
		prop.Type = p.parseType()
	}
	if p.got("=") {
		p.skipExpression()
	}
	p.parseSemicolon()
	prop.Base = p.node(start)
	return prop
}

// ---------------------------------------------------------------------------
// Shared pieces

func (p *parser) parseIdentifier() *syntax.Identifier {
	if p.tok.Type != Ident {
		p.fail("identifier expected")
	}
	t := p.advance()
	return &syntax.Identifier{Base: syntax.Base{Rng: t.Range()}, Text: t.Text}
}

// parseEntityName parses `a.b.C` into a single identifier with dotted text.
func (p *parser) parseEntityName() *syntax.Identifier {
	start := p.tok.Start
	id := p.parseIdentifier()
	text := id.Text
	for p.is(".") && p.peek(1).Type == Ident {
		p.advance()
		text += "." + p.advance().Text
	}
	return &syntax.Identifier{Base: p.node(start), Text: text}
}

var parameterModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "readonly": true, "override": true,
}

func (p *parser) parseParameters() []*syntax.Parameter {
	p.expect("(")
	params := []*syntax.Parameter{}
	for !p.is(")") {
		params = append(params, p.parseParameter())
		if !p.got(",") {
			break
		}
	}
	p.expect(")")
	return params
}

func (p *parser) parseParameter() *syntax.Parameter {
	start := p.tok.Start
	p.skipDecorators()
	param := &syntax.Parameter{}
	for p.tok.Type == Ident && parameterModifiers[p.tok.Text] && p.startsBinding(p.peek(1)) {
		param.Modifiers |= syntax.ModifierFromKeyword(p.advance().Text)
	}
	param.Rest = p.got("...")
	switch {
	case p.tok.Type == Ident:
		param.Name = p.parseIdentifier()
	case p.is("{") || p.is("["):
		p.skipBalanced()
	default:
		p.fail("parameter name expected")
	}
	param.Optional = p.got("?")
	if p.got(":") {
		param.Type = p.parseType()
	}
	if p.got("=") {
		p.skipExpression()
	}
	param.Base = p.node(start)
	return param
}

func (p *parser) parseTypeParametersOpt() []*syntax.TypeParameter {
	if !p.is("<") {
		return nil
	}
	p.advance()
	tps := []*syntax.TypeParameter{}
	for !p.is(">") {
		start := p.tok.Start
		for (p.is("const") || p.is("in") || p.is("out")) && p.peek(1).Type == Ident {
			p.advance()
		}
		tp := &syntax.TypeParameter{Name: p.parseIdentifier()}
		if p.got("extends") {
			tp.Constraint = p.parseType()
		}
		if p.got("=") {
			tp.Default = p.parseType()
		}
		tp.Base = p.node(start)
		tps = append(tps, tp)
		if !p.got(",") {
			break
		}
	}
	p.expect(">")
	return tps
}

func (p *parser) skipDecorators() {
	for p.got("@") {
		p.parseEntityName()
		if p.is("(") {
			p.skipBalanced()
		}
	}
}
