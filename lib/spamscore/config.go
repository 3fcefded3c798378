package spamscore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// DefaultThreshold is a minimal score classified as spam
const DefaultThreshold = 55

// Config is a static classification configuration. It is copied into a Scorer and never changed afterward.
type Config struct {
	Keywords          []string `yaml:"keywords"`           // spam keywords and phrases, matched on normalized text
	SuspiciousDomains []string `yaml:"suspicious_domains"` // domain substrings, matched on extracted urls
	Weights           Weights  `yaml:"weights"`            // per-signal weights of the aggregate score
	Threshold         int      `yaml:"threshold"`          // minimal aggregate score classified as spam
}

// Weights defines how much each sub-score contributes to the aggregate score
type Weights struct {
	URL        float64 `yaml:"url"`
	Keywords   float64 `yaml:"keywords"`
	Repetition float64 `yaml:"repetition"`
	Caps       float64 `yaml:"caps"`
}

// DefaultConfig returns the built-in keyword and domain lists, weights and threshold.
func DefaultConfig() Config {
	return Config{
		Keywords: []string{
			"buy now", "click here", "free", "discount", "win", "winner",
			"congratulations", "urgent", "limited time", "act now",
			"order now", "visit", "claim", "act fast", "exclusive offer", "prize",
		},
		SuspiciousDomains: []string{"bit.ly", "tinyurl", "goo.gl", "spam.example", "freegift", "getfree"},
		Weights:           Weights{URL: 0.9, Keywords: 0.8, Repetition: 0.6, Caps: 0.2},
		Threshold:         DefaultThreshold,
	}
}

// LoadConfig reads yaml overlay on top of DefaultConfig. Keys missing in the yaml keep default values,
// lists present in the yaml replace default lists. Empty input returns defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("can't decode classifier config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadPhrases reads phrases from readers, one per line. Blank lines are skipped, phrases are lowercased.
func LoadPhrases(readers ...io.Reader) ([]string, error) {
	res := []string{}
	for _, reader := range readers {
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			phrase := strings.ToLower(strings.Trim(scanner.Text(), " \n\r\t"))
			if phrase != "" {
				res = append(res, phrase)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read phrases: %w", err)
		}
	}
	return res, nil
}

// Validate checks the config for invalid threshold and negative or non-finite weights, all problems reported at once.
func (c Config) Validate() error {
	errs := new(multierror.Error)
	if c.Threshold < 0 || c.Threshold > MaxSubScore {
		errs = multierror.Append(errs, fmt.Errorf("threshold %d out of range [0,100]", c.Threshold))
	}
	weights := map[string]float64{"url": c.Weights.URL, "keywords": c.Weights.Keywords,
		"repetition": c.Weights.Repetition, "caps": c.Weights.Caps}
	for _, name := range []string{"url", "keywords", "repetition", "caps"} {
		switch w := weights[name]; {
		case math.IsNaN(w) || math.IsInf(w, 0):
			errs = multierror.Append(errs, fmt.Errorf("non-finite %s weight %v", name, w))
		case w < 0:
			errs = multierror.Append(errs, fmt.Errorf("negative %s weight %v", name, w))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("invalid classifier config: %w", err)
	}
	return nil
}

// String returns a short summary of the config, for logging
func (c Config) String() string {
	return fmt.Sprintf("keywords:%d, domains:%d, weights:{url:%v, keywords:%v, repetition:%v, caps:%v}, threshold:%d",
		len(c.Keywords), len(c.SuspiciousDomains), c.Weights.URL, c.Weights.Keywords,
		c.Weights.Repetition, c.Weights.Caps, c.Threshold)
}

// uniqPhrases normalizes phrases with norm, drops empty results and duplicates, keeping the original order
func uniqPhrases(phrases []string, norm func(string) string) []string {
	seen := make(map[string]struct{}, len(phrases))
	res := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = norm(p)
		if _, ok := seen[p]; ok || p == "" {
			continue
		}
		seen[p] = struct{}{}
		res = append(res, p)
	}
	return res
}
