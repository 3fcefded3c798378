package spamscore

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ashu-suve/chat/lib/spamcheck"
)

// contextual bonuses
const (
	shortMessageLen = 40 // trimmed message shorter than this with a link gets shortLinkBonus
	shortLinkBonus  = 18
	webTokenBonus   = 8 // normalized text mentions http, https, www, .com, .net or .org as a word
)

// verdict descriptions
const (
	spamDescription = "Likely spam — message blocked."
	safeDescription = "Allowed."
)

var reWebToken = regexp.MustCompile(`\b(?:http|https|www|\.com|\.net|\.org)\b`)

// Scorer is a rule-based message scorer. It is immutable after construction and safe for concurrent use.
type Scorer struct {
	keywords  []string
	domains   []string
	weights   Weights
	threshold int
}

var defaultScorer = NewScorer(DefaultConfig())

// NewScorer makes a Scorer from a config. Keywords are normalized the same way as messages,
// domains are lowercased; empty and duplicate entries are dropped. The config is copied.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{
		keywords:  uniqPhrases(cfg.Keywords, Normalize),
		domains:   uniqPhrases(cfg.SuspiciousDomains, func(s string) string { return strings.TrimSpace(strings.ToLower(s)) }),
		weights:   cfg.Weights,
		threshold: cfg.Threshold,
	}
}

// ScoreMessage scores a message with the default configuration.
func ScoreMessage(raw string) spamcheck.Result {
	return defaultScorer.ScoreMessage(raw)
}

// Classify maps a score to a verdict with the default threshold.
func Classify(score int) spamcheck.Verdict {
	return defaultScorer.Classify(score)
}

// Config returns a copy of the effective configuration
func (s *Scorer) Config() Config {
	return Config{
		Keywords:          append([]string{}, s.keywords...),
		SuspiciousDomains: append([]string{}, s.domains...),
		Weights:           s.weights,
		Threshold:         s.threshold,
	}
}

// ScoreMessage computes sub-scores of a raw message, combines them into a weighted score in [0,100]
// and collects reasons. It has no side effects, the same input always gives the same result.
func (s *Scorer) ScoreMessage(raw string) spamcheck.Result {
	norm := Normalize(raw)
	urls := ExtractURLs(raw)
	sub := spamcheck.SubScores{
		Repetition: RepetitionScore(raw),
		Caps:       CapsScore(raw),
		Keywords:   s.KeywordsScore(norm),
		URL:        s.URLScore(urls),
	}

	score := float64(sub.URL)*s.weights.URL +
		float64(sub.Keywords)*s.weights.Keywords +
		float64(sub.Repetition)*s.weights.Repetition +
		float64(sub.Caps)*s.weights.Caps

	if len(urls) > 0 && utf8.RuneCountInString(trimSpace(raw)) < shortMessageLen {
		score += shortLinkBonus
	}
	if reWebToken.MatchString(norm) {
		score += webTokenBonus
	}

	if math.IsNaN(score) {
		score = 0 // only with non-finite weights, rejected by Config.Validate
	}

	return spamcheck.Result{
		Score:     roundHalfUp(math.Max(0, math.Min(MaxSubScore, score))),
		Reasons:   reasons(sub, len(urls)),
		SubScores: sub,
		URLs:      urls,
	}
}

// Classify maps a score to SPAM if it reaches the threshold, SAFE otherwise.
func (s *Scorer) Classify(score int) spamcheck.Verdict {
	if score >= s.threshold {
		return spamcheck.Verdict{Label: spamcheck.LabelSpam, Description: spamDescription}
	}
	return spamcheck.Verdict{Label: spamcheck.LabelSafe, Description: safeDescription}
}

// reasons makes reason tags in fixed order, each tag at most once
func reasons(sub spamcheck.SubScores, urlsCount int) []string {
	res := []string{}
	if urlsCount > 0 {
		res = append(res, spamcheck.ReasonURLs)
	}
	if sub.Keywords >= keywordReasonMin {
		res = append(res, spamcheck.ReasonKeywords)
	}
	if sub.Repetition >= repeatReasonMin {
		res = append(res, spamcheck.ReasonRepetition)
	}
	if urlsCount > 1 {
		res = append(res, spamcheck.ReasonMultipleLinks)
	}
	return res
}

// trimSpace trims white space and byte-order marks on both ends
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' })
}
