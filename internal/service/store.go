package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chronicpal/backend/internal/insights"
	"github.com/chronicpal/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventStore reads symptom, food and medication logs through gorm.
type GormEventStore struct {
	db *gorm.DB
}

func NewGormEventStore(db *gorm.DB) *GormEventStore {
	return &GormEventStore{db: db}
}

func (s *GormEventStore) query(ctx context.Context, userID uuid.UUID, column string, since time.Time, limit int) *gorm.DB {
	q := s.db.WithContext(ctx).
		Where("user_id = ? AND "+column+" >= ?", userID, since).
		Order(column + " DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func (s *GormEventStore) FetchSymptoms(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.SymptomEvent, error) {
	var rows []models.SymptomLog
	if err := s.query(ctx, userID, "logged_at", since, limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch symptom logs: %w", err)
	}

	events := make([]insights.SymptomEvent, 0, len(rows))
	for _, r := range rows {
		var severity *int
		if r.Severity != nil {
			severity = insights.Severity(*r.Severity)
		}
		events = append(events, insights.SymptomEvent{
			ID:         r.ID.String(),
			Name:       r.SymptomName,
			Severity:   severity,
			OccurredAt: r.LoggedAt,
			Notes:      r.Notes,
		})
	}
	return events, nil
}

func (s *GormEventStore) FetchFoods(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.FoodEvent, error) {
	var rows []models.FoodLog
	if err := s.query(ctx, userID, "consumed_at", since, limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch food logs: %w", err)
	}

	events := make([]insights.FoodEvent, 0, len(rows))
	for _, r := range rows {
		var calories *float64
		if r.CaloriesKcal != nil {
			calories = insights.Calories(*r.CaloriesKcal)
		}
		events = append(events, insights.FoodEvent{
			ID:           r.ID.String(),
			Name:         r.Name,
			Brand:        r.Brand,
			Notes:        r.Notes,
			ExternalID:   r.ExternalID,
			CaloriesKcal: calories,
			ConsumedAt:   r.ConsumedAt,
			RiskTags:     insights.ParseRiskTags(r.RiskTags),
		})
	}
	return events, nil
}

func (s *GormEventStore) FetchMedications(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]insights.MedicationEvent, error) {
	var rows []models.MedicationLog
	if err := s.query(ctx, userID, "taken_at", since, limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch medication logs: %w", err)
	}

	events := make([]insights.MedicationEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, insights.MedicationEvent{
			ID:      r.ID.String(),
			Name:    r.MedicationName,
			TakenAt: r.TakenAt,
		})
	}
	return events, nil
}
