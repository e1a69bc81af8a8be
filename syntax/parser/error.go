package parser

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/fixturegen/syntax"
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	ErrorKindLexical ErrorKind = "lexical" // Malformed token (unterminated string, comment ...)
	ErrorKindSyntax  ErrorKind = "syntax"  // Token sequence the grammar does not accept
)

// ErrorContext selects how an error is rendered
type ErrorContext int

const (
	ErrorContextPlain    ErrorContext = iota // Single line, for logs and wrapped errors
	ErrorContextTerminal                     // Colored, multi-line, for the CLI
)

// ParseError is a structured parser error with source location
type ParseError struct {
	Kind        ErrorKind
	Message     string
	FileName    string
	Found       string        // Text of the offending token, if any
	Range       *syntax.Range // Source range of the offending token
	Suggestions []string
}

// Error implements error using the plain format
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextTerminal {
		return e.formatTerminalError()
	}
	return e.formatPlainError()
}

func (e *ParseError) location() string {
	var parts []string
	if e.FileName != "" {
		parts = append(parts, e.FileName)
	}
	if e.Range != nil {
		parts = append(parts, e.Range.Start.String())
	}
	return strings.Join(parts, ":")
}

func (e *ParseError) formatPlainError() string {
	msg := e.Message
	if e.Found != "" {
		msg += fmt.Sprintf(", found %s", e.Found)
	}
	if loc := e.location(); loc != "" {
		msg = loc + ": " + msg
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (%s)", strings.Join(e.Suggestions, "; "))
	}
	return msg
}

func (e *ParseError) formatTerminalError() string {
	var b strings.Builder
	b.WriteString(pterm.Red(e.Message))

	b.WriteString("\n\n" + pterm.LightCyan("Context:"))
	if loc := e.location(); loc != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s", pterm.Yellow("At:"), loc))
	}
	if e.Found != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s", pterm.Yellow("Found:"), e.Found))
	}
	b.WriteString(fmt.Sprintf("\n  %s %s", pterm.Yellow("Kind:"), e.Kind))

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\n" + pterm.Green("Suggestions:"))
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}
	return b.String()
}

// NewParseError creates a new ParseError with the given kind and message
func NewParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{Kind: kind, Message: message}
}

// WithToken records the offending token and its range
func (e *ParseError) WithToken(tok Token) *ParseError {
	e.Found = tok.String()
	r := tok.Range()
	e.Range = &r
	return e
}

// WithRange sets the source range
func (e *ParseError) WithRange(r syntax.Range) *ParseError {
	e.Range = &r
	return e
}

// WithFile sets the file name used in the location prefix
func (e *ParseError) WithFile(name string) *ParseError {
	e.FileName = name
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}
