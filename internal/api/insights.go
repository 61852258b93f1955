package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/service"
)

// InsightsHandler serves the prediction, correlation and aggregate endpoints.
type InsightsHandler struct {
	service service.IInsightService
}

func NewInsightsHandler(svc service.IInsightService) *InsightsHandler {
	return &InsightsHandler{service: svc}
}

// RegisterAIRoutes mounts the patient AI routes. Auth, role and rate limit
// middleware are applied by the caller.
func (h *InsightsHandler) RegisterAIRoutes(ai *gin.RouterGroup) {
	ai.POST("/predict", h.Predict)
	ai.GET("/correlations", h.Correlations)
	ai.GET("/personal-insights", h.PersonalInsights)
}

// Predict handles POST /api/v1/ai/predict?days=N
func (h *InsightsHandler) Predict(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	days := insights.PredictionWindow.Parse(c.Query("days"))
	resp, err := h.service.Predict(c.Request.Context(), userID, days)
	if err != nil {
		slog.Error("prediction failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to generate prediction")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Correlations handles GET /api/v1/ai/correlations?days=N
func (h *InsightsHandler) Correlations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	days := insights.PredictionWindow.Parse(c.Query("days"))
	resp, err := h.service.Correlations(c.Request.Context(), userID, days)
	if err != nil {
		slog.Error("correlations failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to compute correlations")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PersonalInsights handles GET /api/v1/ai/personal-insights?days=N
func (h *InsightsHandler) PersonalInsights(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	days := insights.ActivityWindow.Parse(c.Query("days"))
	resp, err := h.service.PersonalInsights(c.Request.Context(), userID, days)
	if err != nil {
		slog.Error("personal insights failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to compute personal insights")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FrequentItems handles GET /api/v1/frequent-items?days=N&type=T. Unlike the
// AI routes it rejects bad input instead of clamping it.
func (h *InsightsHandler) FrequentItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	days := insights.FrequentItemsWindow.Default
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !insights.FrequentItemsWindow.Contains(n) {
			abortWithError(c, http.StatusBadRequest, "days must be an integer between 1 and 365")
			return
		}
		days = n
	}

	kind, err := insights.ParseItemKind(c.Query("type"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "type must be one of food, medication, symptom, all")
		return
	}

	resp, err := h.service.FrequentItems(c.Request.Context(), userID, days, kind)
	if err != nil {
		slog.Error("frequent items failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch frequent items")
		return
	}

	c.JSON(http.StatusOK, resp)
}
