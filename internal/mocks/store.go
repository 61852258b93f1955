package mocks

import (
	"context"
	"time"

	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventStore is a mock implementation of service.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) FetchSymptoms(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.SymptomEvent, error) {
	args := m.Called(ctx, userID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]insights.SymptomEvent), args.Error(1)
}

func (m *MockEventStore) FetchFoods(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.FoodEvent, error) {
	args := m.Called(ctx, userID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]insights.FoodEvent), args.Error(1)
}

func (m *MockEventStore) FetchMedications(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.MedicationEvent, error) {
	args := m.Called(ctx, userID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]insights.MedicationEvent), args.Error(1)
}

// MockRiskScorer is a mock implementation of service.RiskScorer
type MockRiskScorer struct {
	mock.Mock
}

func (m *MockRiskScorer) Predict(ctx context.Context, payload insights.AnonymizedPayload) (*service.ScoreResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScoreResult), args.Error(1)
}
