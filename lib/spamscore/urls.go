package spamscore

import (
	"regexp"
	"strings"
)

// MaxURLs is the maximum number of urls extracted from a single message.
// Scanning stops as soon as this many are collected.
const MaxURLs = 11

var (
	// whitespace class includes non-ascii spaces, so "example dot com" is caught too
	reDotWord = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+dot[\s\v\p{Z}\x{FEFF}]+`)
	// matched on lowercased text, letter classes are ascii only
	reURL     = regexp.MustCompile(`(?:https?://)?(?:[a-z0-9-]+\.)+[a-z]{2,}[/?=&\w.-]*`)
)

// ExtractURLs finds url-like substrings in a raw message, with or without scheme.
// The "example dot com" form is de-obfuscated before matching. Matches are lowercase,
// non-overlapping, in order of occurrence, and never more than MaxURLs.
func ExtractURLs(raw string) []string {
	text := reDotWord.ReplaceAllString(strings.ToLower(raw), ".")

	res := []string{}
	for pos := 0; pos < len(text) && len(res) < MaxURLs; {
		loc := reURL.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		res = append(res, text[pos+loc[0]:pos+loc[1]])
		pos += loc[1]
	}
	return res
}
