package mocks

import (
	"context"

	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockInsightService is a mock implementation of service.IInsightService
type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) Predict(ctx context.Context, userID uuid.UUID, windowDays int) (*types.PredictionResponse, error) {
	args := m.Called(ctx, userID, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PredictionResponse), args.Error(1)
}

func (m *MockInsightService) Correlations(ctx context.Context, userID uuid.UUID, windowDays int) (*types.CorrelationsResponse, error) {
	args := m.Called(ctx, userID, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CorrelationsResponse), args.Error(1)
}

func (m *MockInsightService) PersonalInsights(ctx context.Context, userID uuid.UUID, days int) (*types.PersonalInsightsResponse, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PersonalInsightsResponse), args.Error(1)
}

func (m *MockInsightService) FrequentItems(ctx context.Context, userID uuid.UUID, days int, kind insights.ItemKind) (*types.FrequentItemsResponse, error) {
	args := m.Called(ctx, userID, days, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FrequentItemsResponse), args.Error(1)
}

// MockTokenService is a mock implementation of service.ITokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockTokenService) GenerateToken(claims *types.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}
