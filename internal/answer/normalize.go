// Package answer canonicalizes free-text answers and decides whether a
// learner's input matches one of the accepted forms of a question.
package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	fullwidthFirst   = '\uFF01'
	fullwidthLast    = '\uFF5E'
	fullwidthOffset  = 0xFEE0
	ideographicSpace = '\u3000'
)

// toHalfWidthASCII maps the full-width forms of '!'..'~' and the
// ideographic space onto their ASCII counterparts. Everything else,
// including full-width katakana, is left untouched.
func toHalfWidthASCII(r rune) rune {
	switch {
	case r >= fullwidthFirst && r <= fullwidthLast:
		return r - fullwidthOffset
	case r == ideographicSpace:
		return ' '
	default:
		return r
	}
}

func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Normalize returns the comparison form of s: full-width ASCII folded to
// half-width, surrounding whitespace trimmed, lower-cased.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(runes.Map(toHalfWidthASCII), cases.Lower(language.Und))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.ToLower(strings.Map(toHalfWidthASCII, s))
	}
	return strings.TrimFunc(out, isTrimSpace)
}

// NormalizePtr treats a missing value as the empty answer.
func NormalizePtr(s *string) string {
	if s == nil {
		return ""
	}
	return Normalize(*s)
}
