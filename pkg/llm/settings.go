package llm

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.4
	DefaultMaxTokens   = 500

	MinTemperature = 0.0
	MaxTemperature = 1.0
	MinMaxTokens   = 50
	MaxMaxTokens   = 2000
)

// Settings are the effective generation parameters after clamping.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// ResolveSettings parses raw configuration strings. Unparseable values fall
// back to the defaults and parsed values are clamped into their ranges.
func ResolveSettings(model, temperature, maxTokens string) Settings {
	s := Settings{
		Model:       strings.TrimSpace(model),
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}

	if t, err := strconv.ParseFloat(strings.TrimSpace(temperature), 64); err == nil && !math.IsNaN(t) {
		s.Temperature = clampFloat(t, MinTemperature, MaxTemperature)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(maxTokens)); err == nil {
		s.MaxTokens = clampInt(n, MinMaxTokens, MaxMaxTokens)
	}

	return s
}

// Options converts the settings into provider call options.
func (s Settings) Options() []Option {
	return []Option{
		WithModel(s.Model),
		WithTemperature(s.Temperature),
		WithMaxTokens(s.MaxTokens),
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
