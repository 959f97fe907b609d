// Package sanitize neutralizes markup in free-text form fields before they
// are stored or rendered back.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// entityRef matches an HTML character or entity reference at the start of a
// string. An '&' that already begins one is left alone, which keeps Escape
// stable under repeated application.
var entityRef = regexp.MustCompile(`^&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[a-zA-Z][a-zA-Z0-9]{1,31});`)

var replacements = map[rune]string{
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#x27;",
	'/':  "&#x2F;",
	'\\': "&#x5C;",
	'`':  "&#96;",
}

// Text trims surrounding whitespace, normalizes to NFC and escapes s.
func Text(s string) string {
	return Escape(norm.NFC.String(strings.TrimSpace(s)))
}

// Strings applies Text to every element, returning a new slice.
func Strings(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Text(s)
	}
	return out
}

// Escape replaces markup-significant characters with entity references.
// Escape(Escape(s)) == Escape(s).
func Escape(s string) string {
	if !strings.ContainsAny(s, "<>\"'/\\`&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i, r := range s {
		if r == '&' {
			if entityRef.MatchString(s[i:]) {
				b.WriteRune(r)
			} else {
				b.WriteString("&amp;")
			}
			continue
		}
		if rep, ok := replacements[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
