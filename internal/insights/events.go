package insights

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// PlaceholderMedication is the reserved name front ends store when the user
// did not pick a medication. It is noise for every computation.
const PlaceholderMedication = "unknown medication"

// RiskTagKeys is the closed riskTags vocabulary in canonical order. Tag
// counting walks this slice so ties resolve the same way on every run.
var RiskTagKeys = []string{
	"containsDairy",
	"containsGluten",
	"highFibre",
	"spicy",
	"highFat",
	"caffeine",
	"alcohol",
	"highSugar",
	"highSodium",
	"highIron",
}

var riskTagLabels = map[string]string{
	"containsDairy":  "dairy",
	"containsGluten": "gluten",
	"highFibre":      "high-fibre",
	"spicy":          "spicy",
	"highFat":        "high-fat",
	"caffeine":       "caffeine",
	"alcohol":        "alcohol",
	"highSugar":      "high-sugar",
	"highSodium":     "high-sodium",
	"highIron":       "high-iron",
}

// SymptomEvent is a single symptom log. Severity is nil when the stored value
// was missing or outside 1..10.
type SymptomEvent struct {
	ID         string
	Name       string
	Severity   *int
	OccurredAt time.Time
	Notes      string
}

// FoodEvent is a single food log.
type FoodEvent struct {
	ID           string
	Name         string
	Brand        string
	Notes        string
	ExternalID   string
	CaloriesKcal *float64
	ConsumedAt   time.Time
	// RiskTags holds only the tags that were explicitly set. Absent keys are
	// "unset"; false is kept distinct from unset.
	RiskTags map[string]bool
}

// MedicationEvent is a single medication log.
type MedicationEvent struct {
	ID      string
	Name    string
	TakenAt time.Time
}

// Streams bundles the three event streams for one user and window.
type Streams struct {
	Symptoms    []SymptomEvent
	Foods       []FoodEvent
	Medications []MedicationEvent
}

// Severity validates a raw severity value.
func Severity(v int) *int {
	if v < 1 || v > 10 {
		return nil
	}
	return &v
}

// Calories validates a raw calorie value. NaN and infinities are treated as
// missing.
func Calories(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseRiskTags decodes a stored riskTags document. Anything that is not a
// JSON object yields nil; unknown keys and non-boolean values are dropped.
func ParseRiskTags(raw []byte) map[string]bool {
	if len(raw) == 0 {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	var tags map[string]bool
	for _, key := range RiskTagKeys {
		v, ok := doc[key].(bool)
		if !ok {
			continue
		}
		if tags == nil {
			tags = make(map[string]bool)
		}
		tags[key] = v
	}
	return tags
}

// IsPlaceholderMedication reports whether name is the reserved placeholder or
// blank.
func IsPlaceholderMedication(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed == "" || strings.EqualFold(trimmed, PlaceholderMedication)
}

// FilterMedicationNoise drops placeholder medication events. Applying it to
// an already filtered slice returns an equal slice.
func FilterMedicationNoise(meds []MedicationEvent) []MedicationEvent {
	out := make([]MedicationEvent, 0, len(meds))
	for _, m := range meds {
		if IsPlaceholderMedication(m.Name) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func validTime(t time.Time) bool {
	return !t.IsZero()
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
