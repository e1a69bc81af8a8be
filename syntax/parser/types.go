package parser

import (
	"github.com/teranos/fixturegen/syntax"
)

var predefinedTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "void": true,
	"symbol": true, "object": true, "any": true, "unknown": true,
	"never": true, "undefined": true, "null": true, "bigint": true,
	"this": true, "intrinsic": true,
}

func (p *parser) parseType() syntax.TypeNode {
	start := p.tok.Start
	if p.functionTypeAhead() {
		return p.parseFunctionType(start)
	}
	if p.is("new") || (p.is("abstract") && p.peek(1).Is("new")) {
		return p.parseConstructorType(start)
	}
	t := p.parseUnionType()
	if p.is("extends") && !p.tok.NewlineBefore {
		p.advance()
		cond := &syntax.ConditionalType{CheckType: t}
		cond.ExtendsType = p.parseUnionType()
		p.expect("?")
		cond.TrueType = p.parseType()
		p.expect(":")
		cond.FalseType = p.parseType()
		cond.Base = p.node(start)
		return cond
	}
	return t
}

func (p *parser) functionTypeAhead() bool {
	if p.is("<") {
		return true
	}
	if !p.is("(") {
		return false
	}
	j := p.matching(0)
	return j > 0 && p.at(j+1).Is("=>")
}

func (p *parser) parseFunctionType(start syntax.Position) *syntax.FunctionType {
	fn := &syntax.FunctionType{}
	fn.TypeParameters = p.parseTypeParametersOpt()
	fn.Parameters = p.parseParameters()
	p.expect("=>")
	fn.Type = p.parseReturnType()
	fn.Base = p.node(start)
	return fn
}

func (p *parser) parseConstructorType(start syntax.Position) *syntax.ConstructorType {
	p.got("abstract")
	p.expect("new")
	p.parseTypeParametersOpt()
	ct := &syntax.ConstructorType{}
	ct.Parameters = p.parseParameters()
	p.expect("=>")
	ct.Type = p.parseReturnType()
	ct.Base = p.node(start)
	return ct
}

// parseReturnType parses a return annotation, which may be a type predicate.
func (p *parser) parseReturnType() syntax.TypeNode {
	start := p.tok.Start
	if p.is("asserts") && p.peek(1).Type == Ident && !p.peek(1).NewlineBefore {
		p.advance()
		pred := &syntax.TypePredicate{ParameterName: p.advance().Text}
		if p.got("is") {
			pred.Type = p.parseType()
		}
		pred.Base = p.node(start)
		return pred
	}
	if p.tok.Type == Ident && p.peek(1).Is("is") && !p.peek(1).NewlineBefore {
		pred := &syntax.TypePredicate{ParameterName: p.advance().Text}
		p.advance()
		pred.Type = p.parseType()
		pred.Base = p.node(start)
		return pred
	}
	return p.parseType()
}

func (p *parser) parseUnionType() syntax.TypeNode {
	start := p.tok.Start
	p.got("|")
	first := p.parseIntersectionType()
	if !p.is("|") {
		return first
	}
	types := []syntax.TypeNode{first}
	for p.got("|") {
		types = append(types, p.parseIntersectionType())
	}
	return &syntax.UnionType{Base: p.node(start), Types: types}
}

func (p *parser) parseIntersectionType() syntax.TypeNode {
	start := p.tok.Start
	p.got("&")
	first := p.parseTypeOperator()
	if !p.is("&") {
		return first
	}
	types := []syntax.TypeNode{first}
	for p.got("&") {
		types = append(types, p.parseTypeOperator())
	}
	return &syntax.IntersectionType{Base: p.node(start), Types: types}
}

func startsType(t Token) bool {
	switch t.Type {
	case Ident, String, Number, Template:
		return true
	case Punct:
		return t.Text == "(" || t.Text == "[" || t.Text == "{" || t.Text == "-" || t.Text == "<"
	}
	return false
}

func (p *parser) parseTypeOperator() syntax.TypeNode {
	start := p.tok.Start
	switch {
	case (p.is("keyof") || p.is("unique") || p.is("readonly")) && startsType(p.peek(1)):
		op := &syntax.TypeOperator{Operator: p.advance().Text}
		op.Type = p.parseTypeOperator()
		op.Base = p.node(start)
		return op
	case p.is("infer") && p.peek(1).Type == Ident:
		p.advance()
		tp := &syntax.TypeParameter{Name: p.parseIdentifier()}
		if p.is("extends") && !p.tok.NewlineBefore {
			p.advance()
			tp.Constraint = p.parseUnionType()
		}
		tp.Base = p.node(start)
		return &syntax.InferType{Base: p.node(start), TypeParameter: tp}
	}
	return p.parsePostfixType()
}

func (p *parser) parsePostfixType() syntax.TypeNode {
	t := p.parseNonArrayType()
	for p.is("[") && !p.tok.NewlineBefore {
		start := t.Span().Start
		p.advance()
		if p.got("]") {
			t = &syntax.ArrayType{Base: p.node(start), ElementType: t}
			continue
		}
		idx := p.parseType()
		p.expect("]")
		t = &syntax.IndexedAccessType{Base: p.node(start), ObjectType: t, IndexType: idx}
	}
	return t
}

func (p *parser) parseNonArrayType() syntax.TypeNode {
	start := p.tok.Start
	switch p.tok.Type {
	case Ident:
		switch {
		case predefinedTypes[p.tok.Text] && !p.peek(1).Is("."):
			return &syntax.KeywordType{Keyword: p.advance().Text, Base: p.node(start)}
		case p.is("true") || p.is("false"):
			return &syntax.LiteralType{Text: p.advance().Text, Base: p.node(start)}
		case p.is("typeof") && !p.peek(1).Is("."):
			p.advance()
			q := &syntax.TypeQuery{ExprName: p.parseEntityName()}
			if p.is("<") && !p.tok.NewlineBefore {
				p.parseTypeArguments()
			}
			q.Base = p.node(start)
			return q
		}
		return p.parseTypeReference()
	case String, Number, Template:
		return &syntax.LiteralType{Text: p.advance().Text, Base: p.node(start)}
	case Punct:
		switch {
		case p.is("-") && p.peek(1).Type == Number:
			p.advance()
			return &syntax.LiteralType{Text: "-" + p.advance().Text, Base: p.node(start)}
		case p.is("("):
			p.advance()
			inner := p.parseType()
			p.expect(")")
			return &syntax.ParenthesizedType{Base: p.node(start), Type: inner}
		case p.is("["):
			return p.parseTupleType(start)
		case p.is("{"):
			if p.mappedTypeAhead() {
				return p.parseMappedType(start)
			}
			members := p.parseTypeMembers()
			return &syntax.TypeLiteral{Base: p.node(start), Members: members}
		}
	}
	p.fail("type expected")
	return nil
}

func (p *parser) parseTypeReference() *syntax.TypeReference {
	start := p.tok.Start
	ref := &syntax.TypeReference{Name: p.parseEntityName()}
	if p.is("<") && !p.tok.NewlineBefore {
		ref.TypeArguments = p.parseTypeArguments()
	}
	ref.Base = p.node(start)
	return ref
}

func (p *parser) parseTypeArguments() []syntax.TypeNode {
	p.expect("<")
	args := []syntax.TypeNode{}
	for !p.is(">") {
		args = append(args, p.parseType())
		if !p.got(",") {
			break
		}
	}
	p.expect(">")
	return args
}

func (p *parser) parseTupleType(start syntax.Position) *syntax.TupleType {
	p.expect("[")
	elems := []syntax.TypeNode{}
	for !p.is("]") {
		elems = append(elems, p.parseTupleElement())
		if !p.got(",") {
			break
		}
	}
	p.expect("]")
	return &syntax.TupleType{Base: p.node(start), Elements: elems}
}

func (p *parser) parseTupleElement() syntax.TypeNode {
	start := p.tok.Start
	if p.is("...") {
		if p.peek(1).Type == Ident && p.peek(2).Is(":") {
			p.advance()
			m := &syntax.NamedTupleMember{Rest: true, Name: p.parseIdentifier()}
			p.expect(":")
			m.Type = p.parseType()
			m.Base = p.node(start)
			return m
		}
		p.advance()
		inner := p.parseType()
		return &syntax.RestType{Base: p.node(start), Type: inner}
	}
	if p.tok.Type == Ident && (p.peek(1).Is(":") || (p.peek(1).Is("?") && p.peek(2).Is(":"))) {
		m := &syntax.NamedTupleMember{Name: p.parseIdentifier()}
		m.Optional = p.got("?")
		p.expect(":")
		m.Type = p.parseType()
		m.Base = p.node(start)
		return m
	}
	t := p.parseType()
	if p.got("?") {
		return &syntax.OptionalType{Base: p.node(start), Type: t}
	}
	return t
}

func (p *parser) mappedTypeAhead() bool {
	i := 1
	if p.at(i).Is("+") || p.at(i).Is("-") {
		i++
	}
	if p.at(i).Is("readonly") {
		i++
	}
	return p.at(i).Is("[") && p.at(i+1).Type == Ident && p.at(i+2).Is("in")
}

func (p *parser) parseMappedType(start syntax.Position) *syntax.MappedType {
	p.expect("{")
	if !p.got("+") {
		p.got("-")
	}
	p.got("readonly")
	p.expect("[")
	tpStart := p.tok.Start
	tp := &syntax.TypeParameter{Name: p.parseIdentifier()}
	p.expect("in")
	tp.Constraint = p.parseType()
	tp.Base = p.node(tpStart)
	if p.got("as") {
		p.parseType()
	}
	p.expect("]")
	if !p.got("+") {
		p.got("-")
	}
	p.got("?")
	mt := &syntax.MappedType{TypeParameter: tp}
	if p.got(":") {
		mt.Type = p.parseType()
	}
	if !p.got(";") {
		p.got(",")
	}
	p.expect("}")
	mt.Base = p.node(start)
	return mt
}
