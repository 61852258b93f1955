package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(s Streams) []Finding {
	return NewAnalyzer(DefaultPolicy()).Analyze(s)
}

func TestAnalyze_RequiresTwoRatedSymptoms(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Bloating", 8, base),
			{Name: "Fatigue", OccurredAt: base.Add(-time.Hour)},
		},
		Foods: []FoodEvent{food("Dairy", base.Add(-2*time.Hour))},
	}

	findings := analyze(streams)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingWarning, findings[0].Type)
	assert.Contains(t, findings[0].Message, "more data required")
	assert.Nil(t, MetaOf(findings))
}

func TestReport_BaselineAndInclusiveThreshold(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Pain", 4, base.Add(-48*time.Hour)),
			symptom("Pain", 6, base.Add(-24*time.Hour)),
			symptom("Pain", 8, base),
		},
	}

	report, ok := NewAnalyzer(DefaultPolicy()).Report(streams)
	require.True(t, ok)

	assert.Equal(t, 6.0, report.Baseline)
	assert.Equal(t, 7.0, report.Threshold)
	assert.True(t, report.IsSpike(7))
	assert.False(t, report.IsSpike(6))
}

func TestAnalyze_FoodSpikeScenario(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Bloating", 8, base),
			symptom("Nausea", 4, base.Add(-time.Hour)),
		},
		Foods: []FoodEvent{food("Dairy", base.Add(-2*time.Hour))},
	}

	findings := analyze(streams)
	meta := MetaOf(findings)
	require.NotNil(t, meta)

	assert.Equal(t, []string{"Dairy"}, meta.RiskFoods)
	assert.Empty(t, meta.SafeFoods)
	assert.Empty(t, meta.MixedFoods)
	assert.Equal(t, FindingWarning, findings[2].Type)
	assert.Equal(t,
		"Higher-than-usual symptoms (often Bloating) occurred after Dairy. Consider reducing or spacing this item and discuss with your clinician if the pattern repeats.",
		findings[2].Message)

	cards := BuildCards(meta, BuildPayload(14, streams).Payload.Counts, 14, nil)
	require.NotEmpty(t, cards)
	assert.Equal(t, CardTriggerFoods, cards[0].ID)
	assert.Contains(t, cards[0].Summary, "Dairy")
	assert.Equal(t, ConfidenceLow, cards[0].Confidence)
}

func TestAnalyze_SafeFoodScenario(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Cramps", 3, base.Add(4*time.Hour)),
			symptom("Cramps", 9, base.Add(-48*time.Hour)),
		},
		Foods: []FoodEvent{food("Rice", base)},
	}

	meta := MetaOf(analyze(streams))
	require.NotNil(t, meta)

	assert.Equal(t, []string{"Rice"}, meta.SafeFoods)
	assert.NotContains(t, meta.RiskFoods, "Rice")
}

func TestAnalyze_FoodWindowBoundary(t *testing.T) {
	build := func(offset time.Duration) Streams {
		return Streams{
			Symptoms: []SymptomEvent{
				symptom("Pain", 9, base),
				symptom("Pain", 1, base.Add(-72*time.Hour)),
			},
			Foods: []FoodEvent{food("Curry", base.Add(-offset))},
		}
	}

	atEdge := MetaOf(analyze(build(12 * time.Hour)))
	assert.Equal(t, []string{"Curry"}, atEdge.RiskFoods)

	pastEdge := MetaOf(analyze(build(12*time.Hour + time.Second)))
	assert.Empty(t, pastEdge.RiskFoods)
}

func TestReport_MedicationWindowBoundary(t *testing.T) {
	build := func(offset time.Duration) Streams {
		return Streams{
			Symptoms: []SymptomEvent{
				symptom("Fatigue", 8, base),
				symptom("Fatigue", 4, base.Add(-30*time.Hour)),
			},
			Medications: []MedicationEvent{med("Azathioprine", base.Add(-offset))},
		}
	}

	analyzer := NewAnalyzer(DefaultPolicy())

	report, ok := analyzer.Report(build(24 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, 1, report.SpikesAfterMedication)
	assert.Equal(t, 1, report.RiskMedications.Count("azathioprine"))

	report, ok = analyzer.Report(build(24*time.Hour + time.Second))
	require.True(t, ok)
	assert.Equal(t, 0, report.SpikesAfterMedication)
}

func TestReport_MedicationCountedOnlyForSpikes(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Headache", 2, base),
			symptom("Headache", 9, base.Add(-96*time.Hour)),
		},
		Medications: []MedicationEvent{med("Paracetamol", base.Add(-time.Hour))},
	}

	report, ok := NewAnalyzer(DefaultPolicy()).Report(streams)
	require.True(t, ok)
	assert.Equal(t, 0, report.SpikesAfterMedication)

	findings := report.Findings()
	assert.Contains(t, messages(findings), "No clear medication-related pattern was detected in this time window.")
}

func TestReport_PlaceholderMedicationIgnored(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Pain", 9, base),
			symptom("Pain", 1, base.Add(-96*time.Hour)),
		},
		Medications: []MedicationEvent{
			med("Unknown Medication", base.Add(-time.Hour)),
			med("Mesalazine", base.Add(-3*time.Hour)),
		},
	}

	report, ok := NewAnalyzer(DefaultPolicy()).Report(streams)
	require.True(t, ok)

	top, _ := report.RiskMedications.Top()
	assert.Equal(t, "Mesalazine", report.Label(top))
	assert.Equal(t, 0, report.RiskMedications.Count("unknown medication"))
}

func TestReport_FirstFoodInOrderWins(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Bloating", 9, base),
			symptom("Bloating", 1, base.Add(-96*time.Hour)),
		},
		// newest first, as fetched
		Foods: []FoodEvent{
			food("Coffee", base.Add(-time.Hour)),
			food("Pasta", base.Add(-3*time.Hour)),
		},
	}

	report, ok := NewAnalyzer(DefaultPolicy()).Report(streams)
	require.True(t, ok)

	assert.Equal(t, 1, report.RiskFoods.Count("coffee"))
	assert.Equal(t, 0, report.RiskFoods.Count("pasta"))
}

func TestReport_NormalizesFoodNamesKeepingFirstSpelling(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Bloating", 9, base),
			symptom("Bloating", 9, base.Add(-24*time.Hour)),
			symptom("Bloating", 1, base.Add(-96*time.Hour)),
			symptom("Bloating", 1, base.Add(-120*time.Hour)),
		},
		Foods: []FoodEvent{
			food(" Milk ", base.Add(-time.Hour)),
			food("milk", base.Add(-25*time.Hour)),
		},
	}

	report, ok := NewAnalyzer(DefaultPolicy()).Report(streams)
	require.True(t, ok)

	assert.Equal(t, 2, report.RiskFoods.Count("milk"))
	assert.Equal(t, []string{"Milk"}, report.Classification().RiskFoods)
	assert.Equal(t, []Entry{{Name: "Milk", Count: 2}}, report.EvidenceFoods())
}

func TestReport_TagNoteNeedsTwoHits(t *testing.T) {
	dairy := map[string]bool{"containsDairy": true, "spicy": false}

	one := Streams{
		Symptoms: []SymptomEvent{
			symptom("Cramps", 9, base),
			symptom("Cramps", 1, base.Add(-96*time.Hour)),
		},
		Foods: []FoodEvent{{Name: "Cheese", ConsumedAt: base.Add(-time.Hour), RiskTags: dairy}},
	}
	assert.NotContains(t, messages(analyze(one)), "Higher-than-usual symptoms often followed foods tagged dairy. Consider reducing or spacing those items to see if symptoms improve.")

	two := Streams{
		Symptoms: []SymptomEvent{
			symptom("Cramps", 9, base),
			symptom("Cramps", 9, base.Add(-24*time.Hour)),
			symptom("Cramps", 1, base.Add(-96*time.Hour)),
			symptom("Cramps", 1, base.Add(-120*time.Hour)),
		},
		Foods: []FoodEvent{
			{Name: "Cheese", ConsumedAt: base.Add(-time.Hour), RiskTags: dairy},
			{Name: "Latte", ConsumedAt: base.Add(-25 * time.Hour), RiskTags: dairy},
		},
	}
	assert.Contains(t, messages(analyze(two)), "Higher-than-usual symptoms often followed foods tagged dairy. Consider reducing or spacing those items to see if symptoms improve.")
}

func TestReport_MixedFoods(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Pain", 9, base),
			symptom("Pain", 2, base.Add(-46*time.Hour)),
			symptom("Pain", 2, base.Add(-96*time.Hour)),
		},
		Foods: []FoodEvent{
			food("Bread", base.Add(-time.Hour)),
			food("bread", base.Add(-48*time.Hour)),
		},
	}

	meta := MetaOf(analyze(streams))
	require.NotNil(t, meta)

	assert.Equal(t, []string{"Bread"}, meta.RiskFoods)
	assert.Equal(t, []string{"Bread"}, meta.SafeFoods)
	assert.Equal(t, []string{"Bread"}, meta.MixedFoods)
}

func TestAnalyze_EmissionOrder(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Bloating", 8, base),
			symptom("Nausea", 4, base.Add(-time.Hour)),
			symptom("Nausea", 2, base.Add(30*time.Hour)),
		},
		Foods: []FoodEvent{
			food("Toast", base.Add(28*time.Hour)),
			food("Dairy", base.Add(-2*time.Hour)),
		},
		Medications: []MedicationEvent{med("Mesalazine", base.Add(-3*time.Hour))},
	}

	findings := analyze(streams)

	types := make([]FindingType, 0, len(findings))
	for _, f := range findings {
		types = append(types, f.Type)
	}
	assert.Equal(t, []FindingType{
		FindingMeta, FindingInfo, FindingWarning, FindingNote, FindingWarning,
		FindingNote, FindingNote, FindingNote,
	}, types)
	assert.Empty(t, findings[0].Message)
	assert.Equal(t, "These notes look for possible patterns in your recent logs to help you spot triggers and routines.", findings[1].Message)
	assert.Equal(t, "Some foods were not followed by higher-than-usual symptoms within 12 hours (often Toast). These may be safer options for you to repeat.", findings[3].Message)
	assert.Contains(t, findings[4].Message, "occurred after Mesalazine")
	assert.Equal(t, "These are correlations, not diagnoses. Use them to guide self-care and clinician conversations.", findings[5].Message)
}

func TestAnalyze_NoPatterns(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Pain", 5, base),
			symptom("Pain", 5, base.Add(-24*time.Hour)),
		},
	}

	findings := analyze(streams)

	require.Len(t, findings, 7)
	assert.Equal(t, &FoodClassification{RiskFoods: []string{}, SafeFoods: []string{}, MixedFoods: []string{}}, MetaOf(findings))
	assert.Equal(t, "No clear food-related pattern was detected in this time window.", findings[2].Message)
	assert.Equal(t, "No clear medication-related pattern was detected in this time window.", findings[3].Message)
}

func TestAnalyze_SkipsMalformedTimestamps(t *testing.T) {
	streams := Streams{
		Symptoms: []SymptomEvent{
			{Name: "Pain", Severity: sev(9)},
			symptom("Pain", 1, base),
		},
		Foods: []FoodEvent{{Name: "Chips"}},
	}

	report, ok := NewAnalyzer(DefaultPolicy()).Report(streams)
	require.True(t, ok)
	assert.Equal(t, 5.0, report.Baseline)
	assert.Equal(t, 0, report.RiskFoods.Len())
	assert.Equal(t, 0, report.SafeFoods.Len())
}

func TestAnalyzer_CustomPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.FoodLookback = time.Hour

	streams := Streams{
		Symptoms: []SymptomEvent{
			symptom("Pain", 9, base),
			symptom("Pain", 1, base.Add(-96*time.Hour)),
		},
		Foods: []FoodEvent{food("Beans", base.Add(-2*time.Hour))},
	}

	assert.Empty(t, MetaOf(NewAnalyzer(p).Analyze(streams)).RiskFoods)
	assert.Equal(t, []string{"Beans"}, MetaOf(analyze(streams)).RiskFoods)
}

func messages(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}
