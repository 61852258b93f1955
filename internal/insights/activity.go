package insights

import (
	"math"
	"sort"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// ActivityCoverage reports how many days in the window had any logging.
type ActivityCoverage struct {
	PctDaysWithSymptoms   int `json:"pctDaysWithSymptoms"`
	PctDaysWithFood       int `json:"pctDaysWithFood"`
	PctDaysWithMedication int `json:"pctDaysWithMedication"`
	DaysWithSymptoms      int `json:"daysWithSymptoms"`
	DaysWithFood          int `json:"daysWithFood"`
	DaysWithMedication    int `json:"daysWithMedication"`
}

type ActivityCounts struct {
	FoodsLogged       int `json:"foodsLogged"`
	MedicationsLogged int `json:"medicationsLogged"`
	SymptomsLogged    int `json:"symptomsLogged"`
}

type SeverityBucket struct {
	Severity int `json:"severity"`
	Count    int `json:"count"`
}

type DailySeverity struct {
	Day         string   `json:"day"`
	AvgSeverity *float64 `json:"avgSeverity"`
	Count       int      `json:"count"`
}

type SymptomStats struct {
	AvgSeverity          *float64         `json:"avgSeverity"`
	SeverityDistribution []SeverityBucket `json:"severityDistribution"`
	TopSymptoms          []Entry          `json:"topSymptoms"`
	DailyAvgSeverity     []DailySeverity  `json:"dailyAvgSeverity"`
}

type FoodStats struct {
	TopFoods []Entry `json:"topFoods"`
}

// MedicationDay is one row of the medication tracker.
type MedicationDay struct {
	Day         string   `json:"day"`
	Count       int      `json:"count"`
	Medications []string `json:"medications"`
}

type MedicationStats struct {
	TopMedications  []Entry         `json:"topMedications"`
	MedicationDaily []MedicationDay `json:"medicationDaily"`
}

type CalorieSummary struct {
	EntriesWithCalories int      `json:"entriesWithCalories"`
	TotalCalories       *float64 `json:"totalCalories"`
	AvgCaloriesPerEntry *float64 `json:"avgCaloriesPerEntry"`
}

// ActivityReport is the personal-insights aggregate.
type ActivityReport struct {
	Activity    ActivityCoverage `json:"activity"`
	Counts      ActivityCounts   `json:"counts"`
	Symptoms    SymptomStats     `json:"symptoms"`
	Food        FoodStats        `json:"food"`
	Medications MedicationStats  `json:"medications"`
	Calories    CalorieSummary   `json:"calories"`
	Notes       []string         `json:"notes"`
}

// Aggregator computes day-bucketed statistics straight from the streams.
// Names are grouped by exact string, unlike the Analyzer, which normalizes
// case and whitespace.
type Aggregator struct {
	loc    *time.Location
	policy Policy
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithLocation buckets days in loc instead of UTC.
func WithLocation(loc *time.Location) AggregatorOption {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p Policy) AggregatorOption {
	return func(a *Aggregator) {
		a.policy = p
	}
}

// NewAggregator returns an Aggregator bucketing days in UTC by default.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{loc: time.UTC, policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate builds the report for a window of days. Placeholder medications
// are dropped before anything is counted.
func (a *Aggregator) Aggregate(days int, s Streams) ActivityReport {
	days = ActivityWindow.Normalize(days)
	meds := FilterMedicationNoise(s.Medications)

	symptomDays := a.distinctDays(len(s.Symptoms), func(i int) time.Time { return s.Symptoms[i].OccurredAt })
	foodDays := a.distinctDays(len(s.Foods), func(i int) time.Time { return s.Foods[i].ConsumedAt })
	medDays := a.distinctDays(len(meds), func(i int) time.Time { return meds[i].TakenAt })

	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(days) * 100))
	}

	calories := SummarizeCalories(s.Foods)

	return ActivityReport{
		Activity: ActivityCoverage{
			PctDaysWithSymptoms:   pct(symptomDays),
			PctDaysWithFood:       pct(foodDays),
			PctDaysWithMedication: pct(medDays),
			DaysWithSymptoms:      symptomDays,
			DaysWithFood:          foodDays,
			DaysWithMedication:    medDays,
		},
		Counts: ActivityCounts{
			FoodsLogged:       len(s.Foods),
			MedicationsLogged: len(meds),
			SymptomsLogged:    len(s.Symptoms),
		},
		Symptoms: a.symptomStats(s.Symptoms),
		Food:     FoodStats{TopFoods: topFoodNames(s.Foods, a.policy.ActivityTopN)},
		Medications: MedicationStats{
			TopMedications:  topMedicationNames(meds, a.policy.ActivityTopN),
			MedicationDaily: a.medicationDaily(meds),
		},
		Calories: CalorieSummary{
			EntriesWithCalories: calories.Entries,
			TotalCalories:       calories.Total,
			AvgCaloriesPerEntry: calories.Average,
		},
		Notes: []string{
			"Personal insights computed only from your own logs.",
			"No cohort comparison is used here.",
		},
	}
}

func (a *Aggregator) day(t time.Time) string {
	return t.In(a.loc).Format(dayLayout)
}

func (a *Aggregator) distinctDays(n int, at func(int) time.Time) int {
	seen := make(map[string]struct{})
	for i := 0; i < n; i++ {
		t := at(i)
		if !validTime(t) {
			continue
		}
		seen[a.day(t)] = struct{}{}
	}
	return len(seen)
}

func (a *Aggregator) symptomStats(symptoms []SymptomEvent) SymptomStats {
	var sum float64
	var n int
	dist := make(map[int]int)
	names := NewTally()

	type dayAcc struct {
		sum   float64
		rated int
		count int
	}
	daily := make(map[string]*dayAcc)

	for _, e := range symptoms {
		names.Add(e.Name)
		if e.Severity != nil {
			sum += float64(*e.Severity)
			n++
			dist[*e.Severity]++
		}
		if !validTime(e.OccurredAt) {
			continue
		}
		d := a.day(e.OccurredAt)
		acc, ok := daily[d]
		if !ok {
			acc = &dayAcc{}
			daily[d] = acc
		}
		acc.count++
		if e.Severity != nil {
			acc.sum += float64(*e.Severity)
			acc.rated++
		}
	}

	stats := SymptomStats{
		SeverityDistribution: make([]SeverityBucket, 0, len(dist)),
		TopSymptoms:          names.TopN(a.policy.ActivityTopN),
		DailyAvgSeverity:     make([]DailySeverity, 0, len(daily)),
	}
	if n > 0 {
		stats.AvgSeverity = round2(sum / float64(n))
	}

	for sev, count := range dist {
		stats.SeverityDistribution = append(stats.SeverityDistribution, SeverityBucket{Severity: sev, Count: count})
	}
	sort.Slice(stats.SeverityDistribution, func(i, j int) bool {
		return stats.SeverityDistribution[i].Severity < stats.SeverityDistribution[j].Severity
	})

	for d, acc := range daily {
		row := DailySeverity{Day: d, Count: acc.count}
		if acc.rated > 0 {
			row.AvgSeverity = round2(acc.sum / float64(acc.rated))
		}
		stats.DailyAvgSeverity = append(stats.DailyAvgSeverity, row)
	}
	sort.Slice(stats.DailyAvgSeverity, func(i, j int) bool {
		return stats.DailyAvgSeverity[i].Day < stats.DailyAvgSeverity[j].Day
	})

	return stats
}

// medicationDaily lists only days that have at least one medication event,
// oldest first.
func (a *Aggregator) medicationDaily(meds []MedicationEvent) []MedicationDay {
	byDay := make(map[string]*MedicationDay)
	for _, m := range meds {
		if !validTime(m.TakenAt) {
			continue
		}
		d := a.day(m.TakenAt)
		row, ok := byDay[d]
		if !ok {
			row = &MedicationDay{Day: d, Medications: []string{}}
			byDay[d] = row
		}
		row.Count++
		name := a.trackerName(m.Name)
		if name == "" || len(row.Medications) >= a.policy.TrackerNamesPerDay || contains(row.Medications, name) {
			continue
		}
		row.Medications = append(row.Medications, name)
	}

	out := make([]MedicationDay, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func (a *Aggregator) trackerName(name string) string {
	limit := a.policy.TrackerNameMaxChars
	trimmed := strings.TrimSpace(name)
	if IsPlaceholderMedication(trimmed) {
		return ""
	}
	if r := []rune(trimmed); limit > 3 && len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	return trimmed
}

func topFoodNames(foods []FoodEvent, n int) []Entry {
	t := NewTally()
	for _, f := range foods {
		t.Add(f.Name)
	}
	return t.TopN(n)
}

func topMedicationNames(meds []MedicationEvent, n int) []Entry {
	t := NewTally()
	for _, m := range meds {
		t.Add(m.Name)
	}
	return t.TopN(n)
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
