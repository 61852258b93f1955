package insights

import (
	"strconv"
	"strings"
	"time"
)

// Policy holds the fixed thresholds used by the analyzer, the sufficiency
// gate and the payload builder. DefaultPolicy is the only production value;
// tests substitute their own.
type Policy struct {
	// FoodLookback is how far before a symptom a food event may sit and still
	// be associated with it.
	FoodLookback time.Duration
	// MedicationLookback is the same window for medication events.
	MedicationLookback time.Duration
	// SafeFoodLookahead is how far after a meal symptoms are inspected when
	// deciding whether the meal was safe.
	SafeFoodLookahead time.Duration
	// SpikeMargin is added to the baseline severity to get the spike threshold.
	SpikeMargin float64

	MinSeveritySamples int
	MinTagCount        int
	MinSignals         int

	DisplayTopN   int
	EvidenceTopN  int
	MixedFoodsCap int

	// FetchLimit caps rows per stream for prediction and correlations.
	FetchLimit int

	// ActivityTopN is the length of the personal-insights top lists.
	ActivityTopN int
	// TrackerNamesPerDay caps medication names shown per tracker day.
	TrackerNamesPerDay int
	// TrackerNameMaxChars is the longest tracker name before truncation.
	TrackerNameMaxChars int
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{
		FoodLookback:       12 * time.Hour,
		MedicationLookback: 24 * time.Hour,
		SafeFoodLookahead:  12 * time.Hour,
		SpikeMargin:        1,
		MinSeveritySamples: 2,
		MinTagCount:        2,
		MinSignals:         3,
		DisplayTopN:        3,
		EvidenceTopN:       5,
		MixedFoodsCap:      3,
		FetchLimit:         500,

		ActivityTopN:        5,
		TrackerNamesPerDay:  2,
		TrackerNameMaxChars: 80,
	}
}

// WindowRange describes the accepted range of a day-window parameter.
type WindowRange struct {
	Default int
	Min     int
	Max     int
}

var (
	// PredictionWindow bounds prediction and correlations requests.
	PredictionWindow = WindowRange{Default: 14, Min: 1, Max: 90}
	// ActivityWindow bounds personal-insights requests.
	ActivityWindow = WindowRange{Default: 7, Min: 1, Max: 365}
	// FrequentItemsWindow bounds frequent-items requests.
	FrequentItemsWindow = WindowRange{Default: 30, Min: 1, Max: 365}
)

// Clamp pins days into [Min, Max].
func (r WindowRange) Clamp(days int) int {
	if days < r.Min {
		return r.Min
	}
	if days > r.Max {
		return r.Max
	}
	return days
}

// Parse reads a raw query value. Missing or non-numeric input yields the
// default; numeric input is clamped.
func (r WindowRange) Parse(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r.Default
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return r.Default
	}
	return r.Clamp(days)
}

// Contains reports whether days is inside the range.
func (r WindowRange) Contains(days int) bool {
	return days >= r.Min && days <= r.Max
}

// Normalize replaces an out-of-range value with the default. The engine
// calls this on every entry point so callers that skipped Parse still get a
// sane window.
func (r WindowRange) Normalize(days int) int {
	if !r.Contains(days) {
		return r.Default
	}
	return days
}
