package builder

import (
	"unicode"
	"unicode/utf8"
)

// lowerFirst lower-cases the first rune of s: "Logger" -> "logger".
func lowerFirst(s string) string {
	return mapFirst(s, unicode.ToLower)
}

// upperFirst upper-cases the first rune of s: "genericIdentifier" -> "GenericIdentifier".
func upperFirst(s string) string {
	return mapFirst(s, unicode.ToUpper)
}

func mapFirst(s string, f func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(f(r)) + s[size:]
}
