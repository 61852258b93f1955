package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SymptomLog is a patient-reported symptom with an optional 1-10 severity.
type SymptomLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_symptom_logs_user_logged_at,priority:1" json:"user_id"`
	SymptomName string         `gorm:"not null" json:"symptom_name"`
	Severity    *int           `json:"severity"`
	LoggedAt    time.Time      `gorm:"not null;index:idx_symptom_logs_user_logged_at,priority:2" json:"logged_at"`
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the SymptomLog model
func (SymptomLog) TableName() string {
	return "symptom_logs"
}

// FoodLog is a single meal or snack entry.
type FoodLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_food_logs_user_consumed_at,priority:1" json:"user_id"`
	Name         string         `gorm:"not null" json:"name"`
	Brand        string         `json:"brand"`
	ExternalID   string         `json:"external_id"`
	CaloriesKcal *float64       `json:"calories_kcal"`
	ConsumedAt   time.Time      `gorm:"not null;index:idx_food_logs_user_consumed_at,priority:2" json:"consumed_at"`
	RiskTags     datatypes.JSON `json:"risk_tags"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the FoodLog model
func (FoodLog) TableName() string {
	return "food_logs"
}

// MedicationLog records a dose taken.
type MedicationLog struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_medication_logs_user_taken_at,priority:1" json:"user_id"`
	MedicationName string         `gorm:"not null" json:"medication_name"`
	TakenAt        time.Time      `gorm:"not null;index:idx_medication_logs_user_taken_at,priority:2" json:"taken_at"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the MedicationLog model
func (MedicationLog) TableName() string {
	return "medication_logs"
}

func (l *SymptomLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *FoodLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *MedicationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// All lists every model managed by auto-migration.
func All() []interface{} {
	return []interface{}{
		&SymptomLog{},
		&FoodLog{},
		&MedicationLog{},
	}
}
