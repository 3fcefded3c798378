// Package spamscore provides a deterministic, rule-based scorer of short chat messages. The primary
// type in this package is the Scorer, which turns a message into a score in [0,100], a list of
// human-readable reasons and a SPAM/SAFE verdict. It is initialized with a static Config.
//
// The Scorer is immutable and supports concurrent usage without locking. Every call is a pure
// function of the message and the config, no state is kept between calls.
//
// A message is scored by four independent detectors:
//
//   - RepetitionScore: runs of a single character repeated 5+ times ("!!!!!", "soooooo"), in [0,80].
//     Each run adds min(len-4, 50) and scanning stops once the total exceeds 80.
//
//   - CapsScore: share of uppercase letters above 60%, messages with less than 6 letters are ignored.
//
//   - Scorer.KeywordsScore: 15 for each distinct configured keyword found in Normalize-d text.
//
//   - Scorer.URLScore: urls found by ExtractURLs (up to MaxURLs, "example dot com" included),
//     30 for each suspicious domain hit, 10 per url up to 30, and 12 for an url longer than 60.
//
// The sub-scores are combined with Config.Weights, a short message with a link gets 18 more,
// a message mentioning http, https, www, .com, .net or .org gets 8 more. The result is rounded
// and clamped to [0,100] and Scorer.Classify compares it with Config.Threshold.
//
// ScoreMessage and Classify package functions use DefaultConfig.
//
// Config can be loaded from yaml with LoadConfig, keyword and domain lists can be loaded with LoadPhrases,
// one phrase per line:
//
//	buy now
//	limited time
//	exclusive offer
package spamscore
