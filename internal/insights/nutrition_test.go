package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCalories(t *testing.T) {
	stats := SummarizeCalories([]FoodEvent{
		{Name: "Soup"},
		{Name: "Toast", CaloriesKcal: kcal(200.4)},
		{Name: "Pasta", CaloriesKcal: kcal(300.4)},
	})

	n := stats.Nutrition()
	assert.Equal(t, 2, n.EntriesWithCalories)
	require.NotNil(t, n.TotalCaloriesKcal)
	assert.Equal(t, 501.0, *n.TotalCaloriesKcal)
	assert.Equal(t, 250.0, *n.AvgCaloriesKcal)
}

func TestHighlight(t *testing.T) {
	streams := Streams{
		Foods: []FoodEvent{
			{Name: "Yogurt", Brand: "Acme"},
			{Name: " Yogurt ", Brand: " Acme "},
			{Name: "Yogurt"},
			{Name: ""},
		},
		Medications: []MedicationEvent{
			med("Iron ", base),
			med("Iron", base),
			med("unknown medication", base),
			med("  ", base),
		},
		Symptoms: []SymptomEvent{
			symptom("Pain", 3, base),
			symptom("", 3, base),
		},
	}

	h := Highlight(streams, 5)

	assert.Equal(t, []Entry{{"Yogurt (Acme)", 2}, {"Yogurt", 1}, {"Unknown food", 1}}, h.TopFoods)
	assert.Equal(t, []Entry{{"Iron", 2}}, h.TopMedications)
	assert.Equal(t, []Entry{{"Pain", 1}}, h.TopSymptoms)
}
