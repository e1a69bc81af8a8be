package parser

var closerOf = map[string]string{"(": ")", "[": "]", "{": "}"}

func isOpener(t Token) bool {
	return t.Type == Punct && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

func isCloser(t Token) bool {
	return t.Type == Punct && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// tokens that cannot start a statement or member, so a line break before
// them does not end the expression being skipped
var continuationTokens = map[string]bool{
	".": true, "?.": true, "?": true, ":": true, "=>": true, "=": true,
	"&&": true, "||": true, "??": true, "==": true, "===": true, "!=": true,
	"!==": true, "*": true, "/": true, "%": true, "|": true, "&": true,
	"^": true, ">": true, "<=": true, "**": true,
}

// skipBalanced consumes the bracket group starting at the current token.
func (p *parser) skipBalanced() {
	var stack []string
	for {
		t := p.tok
		switch {
		case t.Type == EOF:
			p.fail("'" + stack[len(stack)-1] + "' expected")
		case isOpener(t):
			stack = append(stack, closerOf[t.Text])
		case isCloser(t):
			if len(stack) == 0 || stack[len(stack)-1] != t.Text {
				p.fail("unbalanced '" + t.Text + "'")
			}
			stack = stack[:len(stack)-1]
		}
		p.advance()
		if len(stack) == 0 {
			return
		}
	}
}

// matching returns the offset of the closer matching the opener at offset i,
// or -1.
func (p *parser) matching(i int) int {
	depth := 0
	for ; ; i++ {
		t := p.at(i)
		switch {
		case t.Type == EOF:
			return -1
		case isOpener(t):
			depth++
		case isCloser(t):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
}

// matchingAngle returns the offset of the '>' closing the '<' at offset i, or
// -1 when the list runs into a statement boundary or an enclosing closer first.
func (p *parser) matchingAngle(i int) int {
	depth, brackets := 0, 0
	for ; ; i++ {
		t := p.at(i)
		switch {
		case t.Type == EOF, t.Is(";"):
			return -1
		case isOpener(t):
			brackets++
		case isCloser(t):
			brackets--
			if brackets < 0 {
				return -1
			}
		case t.Is("<"):
			depth++
		case t.Is(">"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
}

func (p *parser) continuesExpression() bool {
	if p.last.Type == Punct && !isCloser(p.last) {
		return true
	}
	return p.tok.Type == Punct && continuationTokens[p.tok.Text]
}

// skipStatement consumes a statement outside the declaration subset, up to
// and including its semicolon, or up to the line break that ends it.
func (p *parser) skipStatement() {
	first := true
	for {
		t := p.tok
		switch {
		case t.Type == EOF:
			return
		case !first && t.NewlineBefore && !p.continuesExpression():
			return
		case t.Is(";"):
			p.advance()
			return
		case isOpener(t):
			p.skipBalanced()
		case isCloser(t) && !first:
			return
		default:
			p.advance()
		}
		first = false
	}
}

// skipExpression consumes an expression, stopping before a ',' ';' or
// unmatched closer, or at a line break that ends the expression.
func (p *parser) skipExpression() {
	first := true
	for {
		t := p.tok
		switch {
		case t.Type == EOF:
			return
		case !first && t.NewlineBefore && !p.continuesExpression():
			return
		case t.Is(",") || t.Is(";") || isCloser(t):
			return
		case isOpener(t):
			p.skipBalanced()
		case t.Is("<"):
			p.skipTypeArguments()
		default:
			p.advance()
		}
		first = false
	}
}

// skipTypeArguments consumes `<A, B>` when it is the type argument list of a
// call (`f<A, B>(x)`), otherwise just the '<'.
func (p *parser) skipTypeArguments() {
	j := p.matchingAngle(0)
	if j < 0 || !p.at(j+1).Is("(") {
		p.advance()
		return
	}
	for ; j >= 0; j-- {
		p.advance()
	}
}
