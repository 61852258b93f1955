package insights

import (
	"fmt"
	"math"
	"strings"
)

// Confidence is a coarse label derived from the number of supporting events.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// ConfidenceFor maps a supporting-event count to a label.
func ConfidenceFor(events int) Confidence {
	switch {
	case events >= 5:
		return ConfidenceHigh
	case events >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Evidence exposes the raw counts a card was derived from.
type Evidence struct {
	MealsCount          int `json:"mealsCount"`
	SymptomLogsCount    int `json:"symptomLogsCount"`
	MedicationLogsCount int `json:"medicationLogsCount"`
	Days                int `json:"days"`
}

// Card is a single insight card.
type Card struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Evidence   Evidence   `json:"evidence"`
	Confidence Confidence `json:"confidence"`
	NextStep   string     `json:"nextStep"`
	Disclaimer string     `json:"disclaimer,omitempty"`
}

const (
	CardTriggerFoods  = "trigger-foods"
	CardSafeFoods     = "safe-foods"
	CardUnclearFoods  = "unclear-foods"
	CardMedConsistent = "med-consistency"
	CardFlareRisk     = "flare-risk"
)

// RiskLabel buckets a flare-risk percentage.
func RiskLabel(pct int) string {
	switch {
	case pct >= 65:
		return "elevated"
	case pct >= 35:
		return "moderate"
	default:
		return "low"
	}
}

// RiskPercent converts a probability into a whole percentage, clamping it to
// [0, 1] first.
func RiskPercent(score float64) int {
	return int(math.Round(math.Max(0, math.Min(1, score)) * 100))
}

// BuildCards synthesizes the ordered insight cards. meta may be nil and
// riskScore is nil whenever no score was obtained.
func BuildCards(meta *FoodClassification, counts Counts, windowDays int, riskScore *float64) []Card {
	cards := make([]Card, 0, 5)
	evidence := Evidence{
		MealsCount:          counts.FoodLogs,
		SymptomLogsCount:    counts.Symptoms,
		MedicationLogsCount: counts.MedicationLogs,
		Days:                windowDays,
	}
	if meta == nil {
		meta = &FoodClassification{}
	}

	if len(meta.RiskFoods) > 0 {
		cards = append(cards, Card{
			ID:         CardTriggerFoods,
			Title:      "Top trigger foods",
			Summary:    fmt.Sprintf("These foods are often followed by higher symptoms: %s.", strings.Join(meta.RiskFoods, ", ")),
			Evidence:   evidence,
			Confidence: ConfidenceFor(len(meta.RiskFoods)),
			NextStep:   "Try a 7-day break from one item and compare how you feel.",
		})
	}

	if len(meta.SafeFoods) > 0 {
		cards = append(cards, Card{
			ID:         CardSafeFoods,
			Title:      "Top safe foods",
			Summary:    fmt.Sprintf("These foods were not followed by higher symptoms within 12 hours: %s.", strings.Join(meta.SafeFoods, ", ")),
			Evidence:   evidence,
			Confidence: ConfidenceFor(len(meta.SafeFoods)),
			NextStep:   "Keep these as go-to options on flare-prone days.",
		})
	}

	if len(meta.MixedFoods) > 0 {
		// mixed signals never earn more than LOW
		cards = append(cards, Card{
			ID:         CardUnclearFoods,
			Title:      "Unclear foods",
			Summary:    fmt.Sprintf("These foods are sometimes fine and sometimes not: %s.", strings.Join(meta.MixedFoods, ", ")),
			Evidence:   evidence,
			Confidence: ConfidenceLow,
			NextStep:   "Log portion size and time for 2 weeks to clarify the pattern.",
		})
	}

	if counts.MedicationLogs > 0 {
		cards = append(cards, Card{
			ID:         CardMedConsistent,
			Title:      "Medication consistency",
			Summary:    fmt.Sprintf("You logged medication %d time(s) in the last %d days.", counts.MedicationLogs, windowDays),
			Evidence:   evidence,
			Confidence: ConfidenceFor(counts.MedicationLogs),
			NextStep:   "Aim for steady timing and fewer missed days if you can.",
			Disclaimer: "This isn't medical advice. Talk to your clinician before changing medication.",
		})
	}

	if riskScore != nil {
		pct := RiskPercent(*riskScore)
		cards = append(cards, Card{
			ID:         CardFlareRisk,
			Title:      "Flare risk",
			Summary:    fmt.Sprintf("Your flare risk looks %s right now (about %d%%).", RiskLabel(pct), pct),
			Evidence:   evidence,
			Confidence: ConfidenceFor(counts.Symptoms),
			NextStep:   "Choose safe foods, drink water, and avoid known triggers today.",
		})
	}

	return cards
}
