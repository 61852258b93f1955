package insights

import (
	"math"
	"strings"
)

// CalorieStats summarises calorie values over the entries that carry one.
// Missing values are excluded, never counted as zero.
type CalorieStats struct {
	Entries int
	Total   *float64
	Average *float64
}

// SummarizeCalories computes rounded calorie totals and averages.
func SummarizeCalories(foods []FoodEvent) CalorieStats {
	var sum float64
	var n int
	for _, f := range foods {
		if f.CaloriesKcal == nil || Calories(*f.CaloriesKcal) == nil {
			continue
		}
		sum += *f.CaloriesKcal
		n++
	}
	if n == 0 {
		return CalorieStats{}
	}
	total := math.Round(sum)
	avg := math.Round(sum / float64(n))
	return CalorieStats{Entries: n, Total: &total, Average: &avg}
}

// NutritionSummary is the calorie block of the correlations response.
type NutritionSummary struct {
	TotalCaloriesKcal   *float64 `json:"totalCaloriesKcal"`
	AvgCaloriesKcal     *float64 `json:"avgCaloriesKcal"`
	EntriesWithCalories int      `json:"entriesWithCalories"`
}

// Nutrition converts the stats into the correlations shape.
func (c CalorieStats) Nutrition() NutritionSummary {
	return NutritionSummary{
		TotalCaloriesKcal:   c.Total,
		AvgCaloriesKcal:     c.Average,
		EntriesWithCalories: c.Entries,
	}
}

// Highlights are the top lists shown next to the correlation summary.
type Highlights struct {
	TopFoods       []Entry
	TopMedications []Entry
	TopSymptoms    []Entry
}

// Highlight ranks foods by "name (brand)" label and medications and
// symptoms by trimmed name. Blank names are skipped, except foods, which
// fall back to "Unknown food".
func Highlight(s Streams, n int) Highlights {
	foods := NewTally()
	for _, f := range s.Foods {
		label := strings.TrimSpace(f.Name)
		if label == "" {
			label = "Unknown food"
		}
		if brand := strings.TrimSpace(f.Brand); brand != "" {
			label += " (" + brand + ")"
		}
		foods.Add(label)
	}

	meds := NewTally()
	for _, m := range s.Medications {
		if IsPlaceholderMedication(m.Name) {
			continue
		}
		meds.Add(strings.TrimSpace(m.Name))
	}

	symptoms := NewTally()
	for _, e := range s.Symptoms {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		symptoms.Add(name)
	}

	return Highlights{
		TopFoods:       foods.TopN(n),
		TopMedications: meds.TopN(n),
		TopSymptoms:    symptoms.TopN(n),
	}
}
