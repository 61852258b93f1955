package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/middleware"
	"github.com/chronicpal/backend/internal/mocks"
	"github.com/chronicpal/backend/internal/types"
)

func setupInsightsRouter(userID uuid.UUID) (*gin.Engine, *mocks.MockInsightService) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.MockInsightService)
	h := NewInsightsHandler(svc)

	router := gin.New()
	router.GET("/health", HealthCheck)
	authed := router.Group("/api/v1", func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	})
	h.RegisterAIRoutes(authed.Group("/ai"))
	authed.GET("/frequent-items", h.FrequentItems)
	return router, svc
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupInsightsRouter(uuid.Nil)
	w := perform(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestPredictHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		query    string
		wantDays int
	}{
		{"default window", "", 14},
		{"explicit window", "?days=30", 30},
		{"clamped high", "?days=500", 90},
		{"clamped low", "?days=0", 1},
		{"non-numeric", "?days=abc", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupInsightsRouter(userID)
			svc.On("Predict", mock.Anything, userID, tt.wantDays).Return(&types.PredictionResponse{
				Status:     types.StatusInsufficientData,
				WindowDays: tt.wantDays,
				AICards:    []insights.Card{},
			}, nil)

			w := perform(router, http.MethodPost, "/api/v1/ai/predict"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var resp types.PredictionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, types.StatusInsufficientData, resp.Status)
			assert.Equal(t, tt.wantDays, resp.WindowDays)
			svc.AssertExpectations(t)
		})
	}
}

func TestPredictHandler_ServiceError(t *testing.T) {
	userID := uuid.New()
	router, svc := setupInsightsRouter(userID)
	svc.On("Predict", mock.Anything, userID, 14).Return(nil, errors.New("pq: connection refused"))

	w := perform(router, http.MethodPost, "/api/v1/ai/predict")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to generate prediction"}`, w.Body.String())
}

func TestPredictHandler_Unauthenticated(t *testing.T) {
	router, svc := setupInsightsRouter(uuid.Nil)

	w := perform(router, http.MethodPost, "/api/v1/ai/predict")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything, mock.Anything)
}

func TestCorrelationsHandler(t *testing.T) {
	userID := uuid.New()
	router, svc := setupInsightsRouter(userID)
	svc.On("Correlations", mock.Anything, userID, 7).Return(&types.CorrelationsResponse{
		Status:     types.StatusOK,
		WindowDays: 7,
		TopFoods:   []insights.Entry{{Name: "Oats (Brand)", Count: 2}},
	}, nil)

	w := perform(router, http.MethodGet, "/api/v1/ai/correlations?days=7")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.CorrelationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []insights.Entry{{Name: "Oats (Brand)", Count: 2}}, resp.TopFoods)
}

func TestPersonalInsightsHandler(t *testing.T) {
	userID := uuid.New()
	router, svc := setupInsightsRouter(userID)
	svc.On("PersonalInsights", mock.Anything, userID, 365).Return(&types.PersonalInsightsResponse{Days: 365}, nil)
	svc.On("PersonalInsights", mock.Anything, userID, 7).Return(nil, errors.New("timeout"))

	w := perform(router, http.MethodGet, "/api/v1/ai/personal-insights?days=9999")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"days":365`)

	w = perform(router, http.MethodGet, "/api/v1/ai/personal-insights")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to compute personal insights"}`, w.Body.String())
}

func TestFrequentItemsHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("defaults", func(t *testing.T) {
		router, svc := setupInsightsRouter(userID)
		svc.On("FrequentItems", mock.Anything, userID, 30, insights.KindAll).Return(&types.FrequentItemsResponse{
			Days:  30,
			Type:  insights.KindAll,
			Items: []insights.FrequentItem{{Name: "Rice", Count: 4, Type: insights.KindFood}},
		}, nil)

		w := perform(router, http.MethodGet, "/api/v1/frequent-items")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"days":30,"type":"all","items":[{"name":"Rice","count":4,"type":"food"}]}`, w.Body.String())
	})

	t.Run("explicit type and days", func(t *testing.T) {
		router, svc := setupInsightsRouter(userID)
		svc.On("FrequentItems", mock.Anything, userID, 90, insights.KindMedication).
			Return(&types.FrequentItemsResponse{Days: 90, Type: insights.KindMedication, Items: []insights.FrequentItem{}}, nil)

		w := perform(router, http.MethodGet, "/api/v1/frequent-items?days=90&type=medication")
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	for _, query := range []string{"?days=0", "?days=366", "?days=ten", "?type=drink"} {
		t.Run("rejects "+query, func(t *testing.T) {
			router, svc := setupInsightsRouter(userID)
			w := perform(router, http.MethodGet, "/api/v1/frequent-items"+query)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "FrequentItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
