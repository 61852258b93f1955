package service

import (
	"context"
	"time"

	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/types"
	"github.com/google/uuid"
)

// EventStore is the read-only boundary to persisted logs. Every fetch returns
// events for one user at or after since, newest first. A limit <= 0 means
// uncapped.
type EventStore interface {
	FetchSymptoms(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.SymptomEvent, error)
	FetchFoods(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.FoodEvent, error)
	FetchMedications(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.MedicationEvent, error)
}

// RiskScorer sends an anonymized payload to the external flare-risk model.
type RiskScorer interface {
	Predict(ctx context.Context, payload insights.AnonymizedPayload) (*ScoreResult, error)
}

// IInsightService defines the operations exposed to the HTTP layer
type IInsightService interface {
	Predict(ctx context.Context, userID uuid.UUID, windowDays int) (*types.PredictionResponse, error)
	Correlations(ctx context.Context, userID uuid.UUID, windowDays int) (*types.CorrelationsResponse, error)
	PersonalInsights(ctx context.Context, userID uuid.UUID, days int) (*types.PersonalInsightsResponse, error)
	FrequentItems(ctx context.Context, userID uuid.UUID, days int, kind insights.ItemKind) (*types.FrequentItemsResponse, error)
}

// ITokenService validates bearer tokens issued by the auth service
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}
