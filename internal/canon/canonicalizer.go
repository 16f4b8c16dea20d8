// Package canon normalizes untrusted chat text for display: markup
// characters are escaped first, then shorthand tokens are substituted
// with their display symbols. Both steps are pure string transforms.
package canon

import "strings"

// escaper rewrites the five markup-significant characters in a single
// left-to-right, non-overlapping pass. The ampersand mapping is safe
// because Replacer never rescans replacement text.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Canonicalize derives display text from raw input. Escaping runs
// before substitution so symbols inserted by the table are never
// re-escaped. The result is not idempotent under re-canonicalization
// when a substituted symbol sits next to text that re-forms a token;
// callers canonicalize exactly once, at message construction.
func Canonicalize(raw string) string {
	return Substitute(Escape(raw))
}

// Escape replaces &, <, >, " and ' with their entity equivalents.
func Escape(raw string) string {
	return escaper.Replace(raw)
}

// Substitute replaces every case-insensitive, non-overlapping
// occurrence of each shorthand token with its symbol, in table
// declaration order. Each replacement consumes its matched span;
// already-substituted text is never rescanned for the same token.
func Substitute(s string) string {
	for _, e := range shorthands {
		s = replaceFold(s, e.Token, e.Symbol)
	}
	return s
}

// replaceFold is a case-insensitive strings.ReplaceAll. Tokens are
// ASCII, so byte-offset slicing around EqualFold comparisons is safe.
func replaceFold(s, token, symbol string) string {
	n := len(token)
	if n == 0 || len(s) < n {
		return s
	}
	var b strings.Builder
	last := 0
	for i := 0; i+n <= len(s); {
		if strings.EqualFold(s[i:i+n], token) {
			b.WriteString(s[last:i])
			b.WriteString(symbol)
			i += n
			last = i
			continue
		}
		i++
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}
