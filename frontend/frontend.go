// Package frontend turns a compilation unit identifier into a parsed syntax
// tree and collects the enum declarations the tree carries.
package frontend

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/smasher164/xid"

	"github.com/teranos/fixturegen/compiled"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/syntax"
	"github.com/teranos/fixturegen/syntax/parser"
)

// Load reads and parses the unit at path. A missing or unreadable file is
// reported as errors.ErrUnresolvedUnit; a syntax error as *parser.ParseError.
func Load(path string) (*syntax.SourceFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(errors.WrapUnresolvedUnit(err, path),
			"pass the path of an existing .ts file")
	}
	return LoadSource(path, src)
}

// LoadSource parses src as the unit named name.
func LoadSource(name string, src []byte) (*syntax.SourceFile, error) {
	file, err := parser.ParseFile(name, src)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Enums returns the enum table declared by file: enum name to value names in
// member order. Identifier-like members resolve as `Colour.red`, others with
// index syntax such as `Status['in-progress']`.
func Enums(file *syntax.SourceFile) map[string][]string {
	enums := map[string][]string{}
	for _, st := range file.Statements {
		decl, ok := st.(*syntax.EnumDeclaration)
		if !ok || decl.Name == nil {
			continue
		}
		name := decl.Name.Text
		values := make([]string, 0, len(decl.Members))
		for _, m := range decl.Members {
			values = append(values, memberValue(name, m.Name))
		}
		enums[name] = values
	}
	return enums
}

// Tables returns base extended with the enums declared in file. Enums in
// base take precedence over discovered ones of the same name.
func Tables(file *syntax.SourceFile, base *compiled.Tables) *compiled.Tables {
	if base == nil {
		base = compiled.EmptyTables()
	}
	return base.Merge(compiled.NewTables(nil, Enums(file)))
}

func memberValue(enum, member string) string {
	key := member
	if isQuoted(member) {
		key = member[1 : len(member)-1]
	}
	if isIdentifierName(key) {
		return enum + "." + key
	}
	if strings.HasPrefix(member, "[") {
		return enum + member
	}
	return enum + "[" + member + "]"
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"') && s[len(s)-1] == q
}

func isIdentifierName(s string) bool {
	if s == "" || strings.ContainsRune(s, '\\') {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if r == '$' || r == '_' {
			continue
		}
		if i == 0 && !xid.Start(r) || i > 0 && !xid.Continue(r) {
			return false
		}
	}
	return true
}
