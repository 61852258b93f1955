package insights

import "time"

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func sev(v int) *int { return &v }

func kcal(v float64) *float64 { return &v }

func symptom(name string, severity int, at time.Time) SymptomEvent {
	return SymptomEvent{Name: name, Severity: sev(severity), OccurredAt: at}
}

func food(name string, at time.Time) FoodEvent {
	return FoodEvent{Name: name, ConsumedAt: at}
}

func med(name string, at time.Time) MedicationEvent {
	return MedicationEvent{Name: name, TakenAt: at}
}
