package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chronicpal/backend/config"
	"github.com/chronicpal/backend/internal/database"
	"github.com/chronicpal/backend/internal/logging"
	"github.com/chronicpal/backend/internal/models"
	"github.com/chronicpal/backend/internal/service"
	"github.com/chronicpal/backend/internal/types"
)

type seedFood struct {
	name     string
	brand    string
	calories float64
	tags     string
}

var foods = []seedFood{
	{"Oatmeal", "", 310, `{"highFibre":true}`},
	{"Greek yogurt", "Fage", 190, `{"containsDairy":true}`},
	{"Chicken curry", "", 640, `{"spicy":true,"highFat":true}`},
	{"White rice", "", 240, `{}`},
	{"Espresso", "Corner Cafe", 5, `{"caffeine":true}`},
	{"Sourdough toast", "", 180, `{"containsGluten":true}`},
	{"Banana", "", 105, `{"highSugar":true}`},
}

var symptoms = []string{"Abdominal pain", "Bloating", "Fatigue", "Nausea"}

var medications = []string{"Mesalamine", "Budesonide"}

func main() {
	days := flag.Int("days", 21, "number of days of history to generate")
	userFlag := flag.String("user", "", "patient user id (random when empty)")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	logging.Init(false, slog.LevelInfo)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Init(false, logging.ParseLevel(cfg.LogLevel))

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			slog.Error("invalid user id", "error", err)
			os.Exit(1)
		}
	}

	n, err := seedHistory(db, userID, *days, rand.New(rand.NewSource(*seed)))
	if err != nil {
		slog.Error("failed to seed logs", "error", err)
		os.Exit(1)
	}

	token, err := service.NewTokenService(cfg.JWTSecret).GenerateToken(&types.TokenClaims{
		UserID: userID,
		Role:   types.RolePatient,
	})
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}

	slog.Info("seeded demo patient", "rows", n, "days", *days)
	fmt.Printf("user_id=%s\ntoken=%s\n", userID, token)
}

// seedHistory writes three meals, one dose and a few symptoms per day. Curry
// is followed by a severe flare so the correlation endpoints have something
// to find.
func seedHistory(db *gorm.DB, userID uuid.UUID, days int, rng *rand.Rand) (int, error) {
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	rows := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		for d := 0; d < days; d++ {
			day := start.AddDate(0, 0, d)

			for _, hour := range []int{8, 13, 19} {
				f := foods[rng.Intn(len(foods))]
				consumed := day.Add(time.Duration(hour) * time.Hour)
				calories := f.calories
				if err := tx.Create(&models.FoodLog{
					UserID:       userID,
					Name:         f.name,
					Brand:        f.brand,
					CaloriesKcal: &calories,
					ConsumedAt:   consumed,
					RiskTags:     datatypes.JSON(f.tags),
				}).Error; err != nil {
					return err
				}
				rows++

				severity := 1 + rng.Intn(3)
				if f.name == "Chicken curry" {
					severity = 7 + rng.Intn(3)
				}
				if err := tx.Create(&models.SymptomLog{
					UserID:      userID,
					SymptomName: symptoms[rng.Intn(len(symptoms))],
					Severity:    &severity,
					LoggedAt:    consumed.Add(time.Duration(2+rng.Intn(4)) * time.Hour),
				}).Error; err != nil {
					return err
				}
				rows++
			}

			if err := tx.Create(&models.MedicationLog{
				UserID:         userID,
				MedicationName: medications[d%len(medications)],
				TakenAt:        day.Add(7 * time.Hour),
			}).Error; err != nil {
				return err
			}
			rows++
		}
		return nil
	})
	return rows, err
}
