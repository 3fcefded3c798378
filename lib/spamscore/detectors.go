package spamscore

import (
	"math"
	"strings"

	"github.com/dlclark/regexp2"
)

// detector bounds and constants
const (
	MaxRepetitionScore = 80  // upper bound of repetition sub-score
	MaxSubScore        = 100 // upper bound of caps, keywords and url sub-scores

	minRunLen          = 5   // shortest run of a single character counted as repetition
	maxRunContribution = 50  // contribution cap of a single run
	minCapsLetters     = 6   // fewer letters than this gives no caps signal
	capsRatioFloor     = 0.6 // uppercase ratio below this is not suspicious

	keywordHit       = 15 // per distinct keyword present
	domainHit        = 30 // per url and suspicious domain match
	urlVolumeHit     = 10 // per extracted url
	maxURLVolume     = 30 // cap of volume contribution
	longURLLen       = 60 // url longer than this is suspicious
	longURLHit       = 12
	keywordReasonMin = 12
	repeatReasonMin  = 10
)

// reRepeat matches a run of one character repeated at least minRunLen times, line breaks excluded.
// RE2 has no backreferences, hence regexp2.
var reRepeat = regexp2.MustCompile(`([^\n\r\u2028\u2029])\1{4,}`, regexp2.None)

// RepetitionScore scores runs of a single repeated character in the raw message.
// Each run adds min(len-4, 50), scanning stops once the total exceeds 80. Result is in [0,80].
func RepetitionScore(raw string) int {
	score := 0
	m, err := reRepeat.FindStringMatch(raw)
	for ; m != nil && err == nil; m, err = reRepeat.FindNextMatch(m) {
		score += min(m.Length-(minRunLen-1), maxRunContribution)
		if score > MaxRepetitionScore {
			break
		}
	}
	return min(score, MaxRepetitionScore)
}

// CapsScore scores the share of uppercase ascii letters above 60%, in [0,100].
// Messages with fewer than 6 letters get 0.
func CapsScore(raw string) int {
	letters, upper := 0, 0
	for i := 0; i < len(raw); i++ { // ascii letters never appear inside multibyte sequences
		switch c := raw[i]; {
		case c >= 'A' && c <= 'Z':
			letters++
			upper++
		case c >= 'a' && c <= 'z':
			letters++
		}
	}
	if letters < minCapsLetters {
		return 0
	}
	ratio := float64(upper) / float64(letters)
	return clamp(roundHalfUp(math.Max(0, ratio-capsRatioFloor)*100), 0, MaxSubScore)
}

// KeywordsScore adds 15 for every distinct configured keyword found in the normalized text, in [0,100].
// Repeated occurrences of the same keyword don't add more.
func (s *Scorer) KeywordsScore(normalized string) int {
	score := 0
	for _, k := range s.keywords {
		if strings.Contains(normalized, k) {
			score += keywordHit
		}
	}
	return min(score, MaxSubScore)
}

// URLScore scores extracted urls, in [0,100]. It adds 30 for every url and suspicious domain pair
// where the domain is a substring of the url, 10 per url up to 30, and 12 if any url is longer than 60.
func (s *Scorer) URLScore(urls []string) int {
	score := 0
	for _, u := range urls {
		for _, dom := range s.domains {
			if strings.Contains(u, dom) {
				score += domainHit
			}
		}
	}

	score += min(maxURLVolume, len(urls)*urlVolumeHit)

	for _, u := range urls {
		if len(u) > longURLLen {
			score += longURLHit
			break
		}
	}
	return min(score, MaxSubScore)
}

// roundHalfUp rounds to the nearest integer, halves toward positive infinity
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
