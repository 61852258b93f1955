package types

import "github.com/chronicpal/backend/internal/insights"

// PredictionStatus distinguishes the three prediction outcomes.
type PredictionStatus string

const (
	StatusOK                PredictionStatus = "ok"
	StatusInsufficientData  PredictionStatus = "insufficient_data"
	StatusScorerUnavailable PredictionStatus = "scorer_unavailable"
)

// PredictionResponse is returned by POST /ai/predict. RiskScore and Model are
// null unless Status is ok.
type PredictionResponse struct {
	Status             PredictionStatus   `json:"status"`
	Message            string             `json:"message,omitempty"`
	WindowDays         int                `json:"windowDays"`
	Counts             insights.Counts    `json:"counts"`
	RiskScore          *float64           `json:"riskScore"`
	Model              *string            `json:"model"`
	FeaturesUsed       map[string]any     `json:"featuresUsed"`
	AICards            []insights.Card    `json:"aiCards"`
	CorrelationSummary []insights.Finding `json:"correlationSummary"`
	Notes              []string           `json:"notes"`
}

// TimingEvidence lists the strongest spike associations with their counts.
type TimingEvidence struct {
	RiskFoods       []insights.Entry `json:"riskFoods"`
	RiskMedications []insights.Entry `json:"riskMedications"`
}

// CorrelationsResponse is returned by GET /ai/correlations.
type CorrelationsResponse struct {
	Status             PredictionStatus          `json:"status"`
	WindowDays         int                       `json:"windowDays"`
	Counts             insights.Counts           `json:"counts"`
	NutritionSummary   insights.NutritionSummary `json:"nutritionSummary"`
	TopFoods           []insights.Entry          `json:"topFoods"`
	TopMedications     []insights.Entry          `json:"topMedications"`
	TopSymptoms        []insights.Entry          `json:"topSymptoms"`
	TimingEvidence     TimingEvidence            `json:"timingEvidence"`
	CorrelationSummary []insights.Finding        `json:"correlationSummary"`
	Notes              []string                  `json:"notes"`
}

// PersonalInsightsResponse is returned by GET /ai/personal-insights.
type PersonalInsightsResponse struct {
	Days     int                     `json:"days"`
	Insights insights.ActivityReport `json:"insights"`
}

// FrequentItemsResponse is returned by GET /frequent-items.
type FrequentItemsResponse struct {
	Days  int                     `json:"days"`
	Type  insights.ItemKind       `json:"type"`
	Items []insights.FrequentItem `json:"items"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
