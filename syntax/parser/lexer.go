package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
	"golang.org/x/exp/slices"

	"github.com/teranos/fixturegen/syntax"
)

const eof = -1

// lexer turns TypeScript source into tokens, skipping whitespace and comments.
type lexer struct {
	src     string
	pos     int // byte offset of ch
	ch      rune
	width   int
	tracker *syntax.PositionTracker
	prev    Token
	err     *ParseError
}

func newLexer(src string) *lexer {
	l := &lexer{src: src, tracker: syntax.NewPositionTracker()}
	l.ch, l.width = l.decode(0)
	return l
}

func (l *lexer) decode(at int) (rune, int) {
	if at >= len(l.src) {
		return eof, 0
	}
	r, w := utf8.DecodeRuneInString(l.src[at:])
	return r, w
}

func (l *lexer) next() {
	if l.ch == eof {
		return
	}
	l.tracker.AdvanceRune(l.ch, l.width)
	l.pos += l.width
	l.ch, l.width = l.decode(l.pos)
}

func (l *lexer) peek() rune {
	r, _ := l.decode(l.pos + l.width)
	return r
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ch == '$' || (ch >= 0 && xid.Start(ch))
}

func isIdentContinue(ch rune) bool {
	return ch == '$' || ch == '\u200c' || ch == '\u200d' || (ch >= 0 && xid.Continue(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Next returns the next token. After an Illegal token the lexer keeps
// returning EOF.
func (l *lexer) Next() Token {
	newline := l.skipTrivia()
	start := l.tracker.CurrentPosition()
	startOff := l.pos

	var typ TokenType
	switch {
	case l.err != nil || l.ch == eof:
		typ = EOF
	case isIdentStart(l.ch) || l.ch == '\\':
		l.lexIdent()
		typ = Ident
	case l.ch == '#' && isIdentStart(l.peek()):
		l.next()
		l.lexIdent()
		typ = Ident
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peek())):
		l.lexNumber()
		typ = Number
	case l.ch == '"' || l.ch == '\'':
		typ = l.lexString(l.ch)
	case l.ch == '`':
		typ = l.lexTemplate()
	case l.ch == '/' && l.regexAllowed():
		typ = l.lexRegex()
	default:
		l.lexPunct()
		typ = Punct
	}

	tok := Token{
		Type:          typ,
		Text:          l.src[startOff:l.pos],
		Start:         start,
		End:           l.tracker.CurrentPosition(),
		NewlineBefore: newline,
	}
	if typ == Illegal && l.err != nil {
		l.err.Range = &syntax.Range{Start: start, End: tok.End}
	}
	if typ != EOF {
		l.prev = tok
	}
	return tok
}

// skipTrivia skips whitespace and comments, reporting whether a line
// terminator was crossed.
func (l *lexer) skipTrivia() bool {
	newline := false
	for {
		switch {
		case l.ch == '\n' || l.ch == '\r' || l.ch == '\u2028' || l.ch == '\u2029':
			newline = true
			l.next()
		case l.ch != eof && unicode.IsSpace(l.ch), l.ch == '\ufeff':
			l.next()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != eof && l.ch != '\n' {
				l.next()
			}
		case l.ch == '/' && l.peek() == '*':
			l.next()
			l.next()
			for !(l.ch == '*' && l.peek() == '/') {
				if l.ch == eof {
					l.fail("unterminated block comment")
					return newline
				}
				if l.ch == '\n' {
					newline = true
				}
				l.next()
			}
			l.next()
			l.next()
		default:
			return newline
		}
	}
}

func (l *lexer) lexIdent() {
	for {
		if l.ch == '\\' {
			// unicode escape inside an identifier: \uXXXX or \u{...}
			l.next()
			l.next()
			if l.ch == '{' {
				for l.ch != '}' && l.ch != eof {
					l.next()
				}
				l.next()
			} else {
				for i := 0; i < 4 && l.ch != eof; i++ {
					l.next()
				}
			}
			continue
		}
		if !isIdentContinue(l.ch) {
			return
		}
		l.next()
	}
}

func (l *lexer) lexNumber() {
	start := l.pos
	for isIdentContinue(l.ch) || l.ch == '.' {
		if l.ch == '.' && l.peek() == '.' {
			return
		}
		radix := strings.HasPrefix(l.src[start:], "0x") || strings.HasPrefix(l.src[start:], "0X")
		if (l.ch == 'e' || l.ch == 'E') && !radix && (l.peek() == '+' || l.peek() == '-') {
			l.next()
		}
		l.next()
	}
}

func (l *lexer) lexString(quote rune) TokenType {
	l.next()
	for l.ch != quote {
		switch l.ch {
		case eof, '\n':
			l.fail("unterminated string literal")
			return Illegal
		case '\\':
			l.next()
		}
		l.next()
	}
	l.next()
	return String
}

// lexTemplate consumes a whole template literal, including nested
// substitutions, as one token.
func (l *lexer) lexTemplate() TokenType {
	l.next()
	for l.ch != '`' {
		switch l.ch {
		case eof:
			l.fail("unterminated template literal")
			return Illegal
		case '\\':
			l.next()
		case '$':
			if l.peek() == '{' {
				l.next()
				l.next()
				if !l.skipSubstitution() {
					return Illegal
				}
				continue
			}
		}
		l.next()
	}
	l.next()
	return Template
}

// skipSubstitution skips the expression of a ${...} template part and its
// closing brace.
func (l *lexer) skipSubstitution() bool {
	depth := 0
	for {
		switch l.ch {
		case eof:
			l.fail("unterminated template substitution")
			return false
		case '{':
			depth++
		case '}':
			if depth == 0 {
				l.next()
				return true
			}
			depth--
		case '"', '\'':
			if l.lexString(l.ch) == Illegal {
				return false
			}
			continue
		case '`':
			if l.lexTemplate() == Illegal {
				return false
			}
			continue
		}
		l.next()
	}
}

func (l *lexer) regexAllowed() bool {
	if l.peek() == '/' || l.peek() == '*' {
		return false
	}
	if l.prev.Type == EOF && l.prev.Text == "" {
		return true
	}
	switch l.prev.Type {
	case Punct, Ident:
		return regexPrecedes[l.prev.Text]
	}
	return false
}

func (l *lexer) lexRegex() TokenType {
	l.next()
	inClass := false
	for {
		switch l.ch {
		case eof, '\n':
			l.fail("unterminated regular expression literal")
			return Illegal
		case '\\':
			l.next()
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.next()
				for isIdentContinue(l.ch) {
					l.next()
				}
				return Regex
			}
		}
		l.next()
	}
}

func (l *lexer) lexPunct() {
	rest := l.src[l.pos:]
	i := slices.IndexFunc(punctuators, func(p string) bool {
		return strings.HasPrefix(rest, p)
	})
	n := 1
	if i >= 0 {
		n = len(punctuators[i])
	}
	for j := 0; j < n; j++ {
		l.next()
	}
}

func (l *lexer) fail(msg string) {
	if l.err == nil {
		l.err = NewParseError(ErrorKindLexical, msg)
	}
}
