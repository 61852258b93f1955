package insights

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload_StripsIdentifyingFields(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{{ID: "s-1", Name: "Cramps", Severity: sev(6), OccurredAt: base, Notes: "after lunch at work"}},
		Foods: []FoodEvent{{
			ID: "f-1", Name: "Yogurt", Brand: "Acme", Notes: "ate fast", ExternalID: "off:123",
			CaloriesKcal: kcal(150), ConsumedAt: base.Add(-time.Hour),
			RiskTags: map[string]bool{"containsDairy": true},
		}},
		Medications: []MedicationEvent{{ID: "m-1", Name: "Mesalazine", TakenAt: base.Add(-2 * time.Hour)}},
	}

	built := BuildPayload(14, streams)
	raw, err := json.Marshal(built.Payload)
	require.NoError(t, err)

	var doc struct {
		Symptoms       []map[string]any `json:"symptoms"`
		FoodLogs       []map[string]any `json:"foodLogs"`
		MedicationLogs []map[string]any `json:"medicationLogs"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	require.Len(t, doc.Symptoms, 1)
	assert.ElementsMatch(t, []string{"name", "severity", "occurredAt"}, keys(doc.Symptoms[0]))
	require.Len(t, doc.FoodLogs, 1)
	assert.ElementsMatch(t, []string{"name", "caloriesKcal", "consumedAt"}, keys(doc.FoodLogs[0]))
	require.Len(t, doc.MedicationLogs, 1)
	assert.ElementsMatch(t, []string{"name", "takenAt"}, keys(doc.MedicationLogs[0]))

	assert.NotContains(t, string(raw), "Acme")
	assert.NotContains(t, string(raw), "after lunch")
	assert.NotContains(t, string(raw), "off:123")
	assert.NotContains(t, string(raw), "riskTags")
}

func TestBuildPayload_FiltersPlaceholderMedications(t *testing.T) {
	streams := Streams{
		Medications: []MedicationEvent{
			med("Unknown medication", base),
			med("  UNKNOWN MEDICATION ", base),
			med("", base),
			med("Prednisolone", base),
		},
	}

	built := BuildPayload(7, streams)

	assert.Equal(t, 1, built.Payload.Counts.MedicationLogs)
	require.Len(t, built.Payload.MedicationLogs, 1)
	assert.Equal(t, "Prednisolone", built.Payload.MedicationLogs[0].Name)
	assert.Len(t, built.Rows().Medications, 1)
	assert.Equal(t, 7, built.Payload.WindowDays)
}

func TestFilterMedicationNoise_Idempotent(t *testing.T) {
	meds := []MedicationEvent{
		med("Unknown medication", base),
		med("Budesonide", base),
		med("unknown medication", base),
		med("Iron", base),
	}

	once := FilterMedicationNoise(meds)
	twice := FilterMedicationNoise(once)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 2)
}

func TestBuildPayload_MalformedValuesBecomeNull(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{{Name: "Pain", Severity: sev(42)}},
		Foods:    []FoodEvent{{Name: "Soup", CaloriesKcal: kcal(math.Inf(1))}},
	}

	built := BuildPayload(200, streams)

	assert.Nil(t, built.Payload.Symptoms[0].Severity)
	assert.Nil(t, built.Payload.Symptoms[0].OccurredAt)
	assert.Nil(t, built.Payload.FoodLogs[0].CaloriesKcal)
	assert.Equal(t, 14, built.Payload.WindowDays)
}

func TestParseRiskTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]bool
	}{
		{"empty", "", nil},
		{"array", `["spicy"]`, nil},
		{"string", `"spicy"`, nil},
		{"malformed", `{"spicy":`, nil},
		{"keeps booleans", `{"spicy":true,"containsDairy":false}`, map[string]bool{"spicy": true, "containsDairy": false}},
		{"drops null and unknown", `{"spicy":null,"radioactive":true,"caffeine":"yes","alcohol":true}`, map[string]bool{"alcohol": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRiskTags([]byte(tt.raw)))
		})
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
