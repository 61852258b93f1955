package insights

import "time"

// Counts summarises the size of each stream after noise filtering.
type Counts struct {
	Symptoms       int `json:"symptoms"`
	FoodLogs       int `json:"foodLogs"`
	MedicationLogs int `json:"medicationLogs"`
}

// Total returns the number of events across all streams.
func (c Counts) Total() int {
	return c.Symptoms + c.FoodLogs + c.MedicationLogs
}

// PayloadSymptom is the anonymized form of a SymptomEvent.
type PayloadSymptom struct {
	Name       string     `json:"name"`
	Severity   *int       `json:"severity"`
	OccurredAt *time.Time `json:"occurredAt"`
}

// PayloadFood is the anonymized form of a FoodEvent.
type PayloadFood struct {
	Name         string     `json:"name"`
	CaloriesKcal *float64   `json:"caloriesKcal"`
	ConsumedAt   *time.Time `json:"consumedAt"`
}

// PayloadMedication is the anonymized form of a MedicationEvent.
type PayloadMedication struct {
	Name    string     `json:"name"`
	TakenAt *time.Time `json:"takenAt"`
}

// AnonymizedPayload is what leaves the process towards the risk scorer. It
// carries no user identifier, row identifier, brand, notes or external id.
type AnonymizedPayload struct {
	WindowDays     int                 `json:"windowDays"`
	Counts         Counts              `json:"counts"`
	Symptoms       []PayloadSymptom    `json:"symptoms"`
	FoodLogs       []PayloadFood       `json:"foodLogs"`
	MedicationLogs []PayloadMedication `json:"medicationLogs"`
}

// BuiltPayload pairs the anonymized payload with the filtered raw rows it
// was derived from. The rows stay server side and feed the analyzer.
type BuiltPayload struct {
	Payload AnonymizedPayload
	rows    Streams
}

// Rows returns the filtered, non-anonymized streams.
func (b *BuiltPayload) Rows() Streams {
	return b.rows
}

// BuildPayload shapes the streams into an AnonymizedPayload. Stream order is
// preserved (newest first as fetched) and placeholder medications are
// dropped from both the payload and the retained rows.
func BuildPayload(windowDays int, s Streams) *BuiltPayload {
	meds := FilterMedicationNoise(s.Medications)

	p := AnonymizedPayload{
		WindowDays: PredictionWindow.Normalize(windowDays),
		Counts: Counts{
			Symptoms:       len(s.Symptoms),
			FoodLogs:       len(s.Foods),
			MedicationLogs: len(meds),
		},
		Symptoms:       make([]PayloadSymptom, 0, len(s.Symptoms)),
		FoodLogs:       make([]PayloadFood, 0, len(s.Foods)),
		MedicationLogs: make([]PayloadMedication, 0, len(meds)),
	}

	for _, e := range s.Symptoms {
		var sev *int
		if e.Severity != nil {
			sev = Severity(*e.Severity)
		}
		p.Symptoms = append(p.Symptoms, PayloadSymptom{
			Name:       e.Name,
			Severity:   sev,
			OccurredAt: timePtr(e.OccurredAt),
		})
	}
	for _, e := range s.Foods {
		var kcal *float64
		if e.CaloriesKcal != nil {
			kcal = Calories(*e.CaloriesKcal)
		}
		p.FoodLogs = append(p.FoodLogs, PayloadFood{
			Name:         e.Name,
			CaloriesKcal: kcal,
			ConsumedAt:   timePtr(e.ConsumedAt),
		})
	}
	for _, e := range meds {
		p.MedicationLogs = append(p.MedicationLogs, PayloadMedication{
			Name:    e.Name,
			TakenAt: timePtr(e.TakenAt),
		})
	}

	return &BuiltPayload{
		Payload: p,
		rows: Streams{
			Symptoms:    s.Symptoms,
			Foods:       s.Foods,
			Medications: meds,
		},
	}
}

func timePtr(t time.Time) *time.Time {
	if !validTime(t) {
		return nil
	}
	return &t
}
