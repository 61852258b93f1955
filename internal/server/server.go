package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chronicpal/backend/config"
	"github.com/chronicpal/backend/internal/api"
	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/middleware"
	"github.com/chronicpal/backend/internal/router"
	"github.com/chronicpal/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New wires the store, scorer, services and routes. redisClient may be nil,
// in which case the AI routes run without rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	store := service.NewGormEventStore(db)
	scorer := service.NewHTTPRiskScorer(cfg.MLBaseURL, cfg.MLInternalToken,
		service.WithScorerTimeout(cfg.MLTimeout),
	)
	insightService := service.NewInsightService(store, scorer, insights.DefaultPolicy(),
		service.WithPredictTimeout(cfg.MLTimeout),
		service.WithLogger(slog.Default().With("component", "insights")),
	)
	tokens := service.NewTokenService(cfg.JWTSecret)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewAIRateLimiter(redisClient, cfg.RateLimitPerMinute)
	} else {
		slog.Warn("redis unavailable, AI routes are not rate limited")
	}

	r := router.SetupRouter(router.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Insights:       api.NewInsightsHandler(insightService),
		Validator:      tokens,
		Limiter:        limiter,
		DB:             db,
	})

	return &Server{
		router: r,
		db:     db,
		redis:  redisClient,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			slog.Warn("failed to close redis client", "error", cerr)
		}
	}
	if sqlDB, derr := s.db.DB(); derr == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Warn("failed to close database", "error", cerr)
		}
	}
	return err
}
