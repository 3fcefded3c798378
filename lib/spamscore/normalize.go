package spamscore

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// zeroWidth covers zero-width space, non-joiner, joiner and byte-order mark
var zeroWidth = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200B, Hi: 0x200D, Stride: 1},
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1},
	},
}

var (
	reNonWord    = regexp.MustCompile(`[^\w\s@:./-]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Normalize returns a canonical comparison form of a message: lowercased, with invisible
// characters removed, punctuation outside of @:./- replaced by spaces, whitespace collapsed and trimmed.
// It is total and deterministic.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToLower(raw)
	s = stripZeroWidth(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripZeroWidth removes zero-width characters anywhere in the string
func stripZeroWidth(s string) string {
	res, _, err := transform.String(runes.Remove(runes.In(zeroWidth)), s)
	if err != nil {
		return s
	}
	return res
}
