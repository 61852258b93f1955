package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	msgInsufficient      = "More data required to generate reliable AI insights."
	msgInsufficientHint  = "Log more symptoms (severity), foods, and medications to enable flare up predictions and correlations."
	msgScorerUnavailable = "Flare risk prediction is temporarily unavailable. Correlations below are based on your own logs."
	notePrediction       = "Predictions are based on your recent symptom, food, and medication history. Correlations improve as you log more data."
	noteNoCalories       = "Calories were not provided for food entries in this time window."
)

// InsightService orchestrates store reads, the local engine and the
// external risk scorer.
type InsightService struct {
	store      EventStore
	scorer     RiskScorer
	policy     insights.Policy
	analyzer   *insights.Analyzer
	aggregator *insights.Aggregator
	timeout    time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// InsightOption configures an InsightService.
type InsightOption func(*InsightService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) InsightOption {
	return func(s *InsightService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPredictTimeout bounds a single scorer call.
func WithPredictTimeout(d time.Duration) InsightOption {
	return func(s *InsightService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) InsightOption {
	return func(s *InsightService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDayLocation sets the zone personal insights are bucketed in.
func WithDayLocation(loc *time.Location) InsightOption {
	return func(s *InsightService) {
		s.aggregator = insights.NewAggregator(insights.WithLocation(loc), insights.WithPolicy(s.policy))
	}
}

func NewInsightService(store EventStore, scorer RiskScorer, policy insights.Policy, opts ...InsightOption) *InsightService {
	s := &InsightService{
		store:      store,
		scorer:     scorer,
		policy:     policy,
		analyzer:   insights.NewAnalyzer(policy),
		aggregator: insights.NewAggregator(insights.WithPolicy(policy)),
		timeout:    3 * time.Second,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fetch loads the three streams concurrently. The first failure cancels the
// remaining reads.
func (s *InsightService) fetch(ctx context.Context, userID uuid.UUID, days, limit int) (insights.Streams, error) {
	since := s.now().AddDate(0, 0, -days)

	var streams insights.Streams
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		streams.Symptoms, err = s.store.FetchSymptoms(gctx, userID, since, limit)
		return err
	})
	g.Go(func() error {
		var err error
		streams.Foods, err = s.store.FetchFoods(gctx, userID, since, limit)
		return err
	})
	g.Go(func() error {
		var err error
		streams.Medications, err = s.store.FetchMedications(gctx, userID, since, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return insights.Streams{}, err
	}
	return streams, nil
}

// Predict runs the full prediction pipeline. The scorer is never called for
// insufficient data, and a scorer failure degrades to a scorer_unavailable
// result that still carries the local correlation summary.
func (s *InsightService) Predict(ctx context.Context, userID uuid.UUID, windowDays int) (*types.PredictionResponse, error) {
	start := s.now()
	days := insights.PredictionWindow.Normalize(windowDays)

	streams, err := s.fetch(ctx, userID, days, s.policy.FetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs for prediction: %w", err)
	}

	built := insights.BuildPayload(days, streams)
	counts := built.Payload.Counts

	if !s.policy.Sufficient(built.Payload) {
		s.logger.Info("prediction skipped",
			"status", types.StatusInsufficientData,
			"window_days", days,
			"events", counts.Total(),
		)
		return &types.PredictionResponse{
			Status:       types.StatusInsufficientData,
			Message:      msgInsufficient,
			WindowDays:   days,
			Counts:       counts,
			FeaturesUsed: map[string]any{},
			AICards:      []insights.Card{},
			CorrelationSummary: []insights.Finding{
				{Type: insights.FindingInfo, Message: msgInsufficientHint},
			},
			Notes: []string{},
		}, nil
	}

	findings := s.analyzer.Analyze(built.Rows())
	meta := insights.MetaOf(findings)

	scoreCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.scorer.Predict(scoreCtx, built.Payload)
	if err != nil {
		var statusErr *ScorerStatusError
		attrs := []any{"window_days", days, "error", err}
		if errors.As(err, &statusErr) {
			attrs = append(attrs, "status_code", statusErr.StatusCode)
		}
		s.logger.Warn("risk scorer failed", attrs...)

		return &types.PredictionResponse{
			Status:             types.StatusScorerUnavailable,
			Message:            msgScorerUnavailable,
			WindowDays:         days,
			Counts:             counts,
			FeaturesUsed:       map[string]any{},
			AICards:            insights.BuildCards(meta, counts, days, nil),
			CorrelationSummary: findings,
			Notes:              []string{},
		}, nil
	}

	score := result.RiskScore
	model := result.Model
	features := result.FeaturesUsed
	if features == nil {
		features = map[string]any{}
	}

	s.logger.Info("prediction completed",
		"status", types.StatusOK,
		"window_days", days,
		"symptoms", counts.Symptoms,
		"food_logs", counts.FoodLogs,
		"medication_logs", counts.MedicationLogs,
		"model", model,
		"duration", s.now().Sub(start),
	)

	return &types.PredictionResponse{
		Status:             types.StatusOK,
		WindowDays:         days,
		Counts:             counts,
		RiskScore:          &score,
		Model:              &model,
		FeaturesUsed:       features,
		AICards:            insights.BuildCards(meta, counts, days, &score),
		CorrelationSummary: findings,
		Notes:              []string{notePrediction},
	}, nil
}

// Correlations computes the local correlation summary without calling the
// scorer.
func (s *InsightService) Correlations(ctx context.Context, userID uuid.UUID, windowDays int) (*types.CorrelationsResponse, error) {
	days := insights.PredictionWindow.Normalize(windowDays)

	streams, err := s.fetch(ctx, userID, days, s.policy.FetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs for correlations: %w", err)
	}

	built := insights.BuildPayload(days, streams)
	rows := built.Rows()
	highlights := insights.Highlight(rows, s.policy.EvidenceTopN)
	calories := insights.SummarizeCalories(rows.Foods)

	evidence := types.TimingEvidence{
		RiskFoods:       []insights.Entry{},
		RiskMedications: []insights.Entry{},
	}
	var findings []insights.Finding
	if report, ok := s.analyzer.Report(rows); ok {
		evidence.RiskFoods = report.EvidenceFoods()
		evidence.RiskMedications = report.EvidenceMedications()
		findings = report.Findings()
	} else {
		findings = s.analyzer.Analyze(rows)
	}

	notes := []string{fmt.Sprintf("Summary based on your last %d days of logged data.", days)}
	if calories.Average != nil {
		notes = append(notes, fmt.Sprintf("Average calories (based on %d entries): %.0f kcal.", calories.Entries, *calories.Average))
	} else {
		notes = append(notes, noteNoCalories)
	}

	s.logger.Info("correlations computed",
		"window_days", days,
		"symptoms", built.Payload.Counts.Symptoms,
		"food_logs", built.Payload.Counts.FoodLogs,
		"medication_logs", built.Payload.Counts.MedicationLogs,
	)

	return &types.CorrelationsResponse{
		Status:             types.StatusOK,
		WindowDays:         days,
		Counts:             built.Payload.Counts,
		NutritionSummary:   calories.Nutrition(),
		TopFoods:           highlights.TopFoods,
		TopMedications:     highlights.TopMedications,
		TopSymptoms:        highlights.TopSymptoms,
		TimingEvidence:     evidence,
		CorrelationSummary: findings,
		Notes:              notes,
	}, nil
}

// PersonalInsights aggregates every log in the window. Fetches are uncapped.
func (s *InsightService) PersonalInsights(ctx context.Context, userID uuid.UUID, days int) (*types.PersonalInsightsResponse, error) {
	days = insights.ActivityWindow.Normalize(days)

	streams, err := s.fetch(ctx, userID, days, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs for personal insights: %w", err)
	}

	return &types.PersonalInsightsResponse{
		Days:     days,
		Insights: s.aggregator.Aggregate(days, streams),
	}, nil
}

// FrequentItems ranks the most logged names for quick-log suggestions.
func (s *InsightService) FrequentItems(ctx context.Context, userID uuid.UUID, days int, kind insights.ItemKind) (*types.FrequentItemsResponse, error) {
	days = insights.FrequentItemsWindow.Normalize(days)
	if kind == "" {
		kind = insights.KindAll
	}

	streams, err := s.fetch(ctx, userID, days, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs for frequent items: %w", err)
	}

	return &types.FrequentItemsResponse{
		Days:  days,
		Type:  kind,
		Items: insights.FrequentItems(streams, kind, insights.FrequentItemsLimit),
	}, nil
}
