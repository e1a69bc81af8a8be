package parser

import (
	"fmt"

	"github.com/teranos/fixturegen/syntax"
)

// TokenType classifies a token.
type TokenType int

const (
	EOF TokenType = iota
	Ident
	String
	Number
	Template
	Regex
	Punct
	Illegal
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case String:
		return "String"
	case Number:
		return "Number"
	case Template:
		return "Template"
	case Regex:
		return "Regex"
	case Punct:
		return "Punct"
	case Illegal:
		return "Illegal"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token. Keywords are Ident tokens; the parser decides by
// text whether an identifier acts as a keyword in context.
type Token struct {
	Type  TokenType
	Text  string
	Start syntax.Position
	End   syntax.Position
	// NewlineBefore is set when a line break separates this token from the
	// previous one. The parser uses it for automatic semicolon insertion.
	NewlineBefore bool
}

// Is reports whether the token is a punctuator or identifier with the given text.
func (t Token) Is(text string) bool {
	return (t.Type == Punct || t.Type == Ident) && t.Text == text
}

// Range returns the token's source range.
func (t Token) Range() syntax.Range {
	return syntax.RangeFromPositions(t.Start, t.End)
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.Text)
}

// multi-character punctuators, longest first. '>' is always a single token
// so that nested type argument lists (Array<Array<T>>) close one at a time.
var punctuators = []string{
	"...", "===", "!==", "**=", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**",
}

// tokens after which a '/' starts a regular expression rather than a division
var regexPrecedes = map[string]bool{
	"(": true, ",": true, "=": true, ":": true, "[": true, "!": true,
	"&": true, "|": true, "?": true, "{": true, "}": true, ";": true,
	"&&": true, "||": true, "??": true, "=>": true, "==": true, "===": true,
	"!=": true, "!==": true, "+": true, "-": true, "*": true, "%": true,
	"<": true, ">": true, "return": true, "typeof": true, "case": true,
	"do": true, "else": true, "in": true, "of": true, "new": true,
	"delete": true, "void": true, "throw": true, "yield": true, "await": true,
}
