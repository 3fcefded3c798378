// Package spamcheck defines the value types produced by the message scorer and
// shared between the scoring library and its consumers.
package spamcheck

import (
	"fmt"
	"strings"
)

// Label is a binary classification of a message.
type Label string

// enum of verdict labels
const (
	LabelSpam Label = "SPAM"
	LabelSafe Label = "SAFE"
)

// reason tags, reported in this order
const (
	ReasonURLs          = "Contains URL(s)"
	ReasonKeywords      = "Spammy keywords/phrases"
	ReasonRepetition    = "Repeated characters"
	ReasonMultipleLinks = "Multiple links"
)

// SubScores is a set of independent detector scores, each clamped to its own bound.
type SubScores struct {
	Repetition int `json:"repetition"` // repeated characters, 0-80
	Caps       int `json:"caps"`       // uppercase ratio, 0-100
	Keywords   int `json:"keywords"`   // spam keywords and phrases, 0-100
	URL        int `json:"url"`        // links and suspicious domains, 0-100
}

// Result is a result of message scoring. Never mutated after construction.
type Result struct {
	Score     int       `json:"score"`   // aggregate score, 0-100
	Reasons   []string  `json:"reasons"` // distinct reason tags
	SubScores SubScores `json:"sub_scores"`
	URLs      []string  `json:"urls"` // extracted urls, in order of occurrence
}

// Verdict is a label with human-readable description, derived from a score only.
type Verdict struct {
	Label       Label  `json:"label"`
	Description string `json:"description"`
}

// Spam returns true for SPAM verdict
func (v Verdict) Spam() bool { return v.Label == LabelSpam }

func (v Verdict) String() string {
	return fmt.Sprintf("%s — %s", v.Label, v.Description)
}

func (r *Result) String() string {
	return fmt.Sprintf("score:%d, reasons:%s, rep:%d, caps:%d, keywords:%d, url:%d, urls:%d",
		r.Score, ReasonsToString(r.Reasons), r.SubScores.Repetition, r.SubScores.Caps,
		r.SubScores.Keywords, r.SubScores.URL, len(r.URLs))
}

// HasReason checks if the result contains a given reason tag
func (r *Result) HasReason(reason string) bool {
	for _, rs := range r.Reasons {
		if rs == reason {
			return true
		}
	}
	return false
}

// ReasonsToString converts a slice of reasons to a string
func ReasonsToString(reasons []string) string {
	elems := make([]string, 0, len(reasons))
	for _, r := range reasons {
		elems = append(elems, "{"+r+"}")
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}
