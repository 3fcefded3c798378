package spamscore

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("empty input gives defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("partial overlay", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("threshold: 70\nkeywords: [crypto, giveaway]\nweights:\n  caps: 0.5\n"))
		require.NoError(t, err)
		assert.Equal(t, 70, cfg.Threshold)
		assert.Equal(t, []string{"crypto", "giveaway"}, cfg.Keywords)
		assert.Equal(t, DefaultConfig().SuspiciousDomains, cfg.SuspiciousDomains)
		assert.Equal(t, Weights{URL: 0.9, Keywords: 0.8, Repetition: 0.6, Caps: 0.5}, cfg.Weights)
	})

	t.Run("invalid values reported together", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("threshold: 120\nweights: {url: -1, caps: -0.1}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid classifier config")
		assert.Contains(t, err.Error(), "threshold 120 out of range")
		assert.Contains(t, err.Error(), "negative url weight")
		assert.Contains(t, err.Error(), "negative caps weight")
	})

	t.Run("non-finite weights", func(t *testing.T) {
		tests := []struct {
			yaml     string
			contains string
		}{
			{yaml: "weights: {url: .nan}", contains: "non-finite url weight NaN"},
			{yaml: "weights: {caps: .inf}", contains: "non-finite caps weight +Inf"},
			{yaml: "weights: {keywords: -.inf}", contains: "non-finite keywords weight -Inf"},
			{yaml: "weights: {repetition: .NaN}", contains: "non-finite repetition weight NaN"},
		}
		for _, tt := range tests {
			t.Run(tt.yaml, func(t *testing.T) {
				_, err := LoadConfig(strings.NewReader(tt.yaml))
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.contains)
			})
		}
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("keywords: [a, b"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't decode classifier config")
	})
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{Threshold: 0}.Validate())
	assert.NoError(t, Config{Threshold: 100}.Validate())
	assert.Error(t, Config{Threshold: -1}.Validate())
	assert.Error(t, Config{Threshold: 50, Weights: Weights{Repetition: -0.5}}.Validate())
	assert.Error(t, Config{Threshold: 50, Weights: Weights{URL: math.NaN()}}.Validate())
	assert.Error(t, Config{Threshold: 50, Weights: Weights{Caps: math.Inf(1)}}.Validate())
}

func TestConfig_String(t *testing.T) {
	assert.Equal(t, "keywords:16, domains:6, weights:{url:0.9, keywords:0.8, repetition:0.6, caps:0.2}, threshold:55",
		DefaultConfig().String())
}

func TestLoadPhrases(t *testing.T) {
	t.Run("several readers", func(t *testing.T) {
		res, err := LoadPhrases(strings.NewReader("Buy Now\n\n  free  \r\nprize"), strings.NewReader("bit.ly\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"buy now", "free", "prize", "bit.ly"}, res)
	})

	t.Run("no readers", func(t *testing.T) {
		res, err := LoadPhrases()
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("read error", func(t *testing.T) {
		_, err := LoadPhrases(errReader{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read phrases")
	})
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }
