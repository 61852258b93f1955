package insights

import (
	"fmt"
	"strings"
	"time"
)

// FindingType tags a CorrelationFinding.
type FindingType string

const (
	FindingMeta    FindingType = "meta"
	FindingInfo    FindingType = "info"
	FindingWarning FindingType = "warning"
	FindingNote    FindingType = "note"
)

// FoodClassification is the payload of the meta finding.
type FoodClassification struct {
	RiskFoods  []string `json:"riskFoods"`
	SafeFoods  []string `json:"safeFoods"`
	MixedFoods []string `json:"mixedFoods"`
}

// Finding is one entry of a correlation summary. Only the meta finding
// carries a FoodClassification.
type Finding struct {
	Type    FindingType `json:"type"`
	Message string      `json:"message,omitempty"`
	*FoodClassification
}

// MetaOf returns the classification from the first meta finding, or nil.
func MetaOf(findings []Finding) *FoodClassification {
	for _, f := range findings {
		if f.Type == FindingMeta && f.FoodClassification != nil {
			return f.FoodClassification
		}
	}
	return nil
}

const (
	msgNeedMoreSymptoms = "More symptom entries are needed before symptom-based correlations can be computed (more data required)"
	msgIntro            = "These notes look for possible patterns in your recent logs to help you spot triggers and routines."
	msgNoFoodPattern    = "No clear food-related pattern was detected in this time window."
	msgNoMedPattern     = "No clear medication-related pattern was detected in this time window."
	msgNotDiagnosis     = "These are correlations, not diagnoses. Use them to guide self-care and clinician conversations."
	msgTipTiming        = "Tip: log symptoms when they start and again if they change later in the day to capture patterns."
	msgTipContext       = "Tip: add simple context (sleep, stress, new foods, missed meds) to make patterns clearer."

	fallbackFoodName       = "a food entry"
	fallbackMedicationName = "a medication entry"
	fallbackSymptomName    = "symptoms"
)

// TimingReport is the structured result of the timing analysis. Tally keys
// are normalized names; Label maps them back to the first-seen spelling.
type TimingReport struct {
	Baseline  float64
	Threshold float64

	SpikesAfterFood       int
	SpikesAfterMedication int

	RiskFoods          *Tally
	SafeFoods          *Tally
	FoodSymptoms       *Tally
	FoodTags           *Tally
	RiskMedications    *Tally
	MedicationSymptoms *Tally

	labels map[string]string
	policy Policy
}

// Label returns the display spelling for a normalized key.
func (r *TimingReport) Label(key string) string {
	if l, ok := r.labels[key]; ok {
		return l
	}
	return key
}

// IsSpike reports whether severity reaches the high-severity threshold.
func (r *TimingReport) IsSpike(severity int) bool {
	return float64(severity) >= r.Threshold
}

func (r *TimingReport) remember(name, fallback string) string {
	display := strings.TrimSpace(name)
	if display == "" {
		display = fallback
	}
	key := normalizeKey(display)
	if _, ok := r.labels[key]; !ok {
		r.labels[key] = display
	}
	return key
}

// Analyzer finds timing associations between symptom spikes and the foods
// and medications that preceded them.
type Analyzer struct {
	policy Policy
}

// NewAnalyzer returns an analyzer bound to policy.
func NewAnalyzer(policy Policy) *Analyzer {
	return &Analyzer{policy: policy}
}

// Report runs the analysis. ok is false when fewer than
// MinSeveritySamples symptoms carry a severity.
func (a *Analyzer) Report(s Streams) (report *TimingReport, ok bool) {
	var sum float64
	var n int
	for _, e := range s.Symptoms {
		if e.Severity == nil {
			continue
		}
		sum += float64(*e.Severity)
		n++
	}
	if n < a.policy.MinSeveritySamples {
		return nil, false
	}

	r := &TimingReport{
		Baseline:           sum / float64(n),
		RiskFoods:          NewTally(),
		SafeFoods:          NewTally(),
		FoodSymptoms:       NewTally(),
		FoodTags:           NewTally(),
		RiskMedications:    NewTally(),
		MedicationSymptoms: NewTally(),
		labels:             make(map[string]string),
		policy:             a.policy,
	}
	r.Threshold = r.Baseline + a.policy.SpikeMargin

	meds := FilterMedicationNoise(s.Medications)

	for _, sym := range s.Symptoms {
		if sym.Severity == nil || !validTime(sym.OccurredAt) {
			continue
		}
		at := sym.OccurredAt
		spike := r.IsSpike(*sym.Severity)

		foodStart := at.Add(-a.policy.FoodLookback)
		if food, found := firstFoodBetween(s.Foods, foodStart, at); found {
			foodKey := r.remember(food.Name, fallbackFoodName)
			symptomKey := r.remember(sym.Name, fallbackSymptomName)
			if spike {
				r.SpikesAfterFood++
				r.RiskFoods.Add(foodKey)
				r.FoodSymptoms.Add(symptomKey)
				for _, tag := range RiskTagKeys {
					if food.RiskTags[tag] {
						r.FoodTags.Add(tag)
					}
				}
			}
		}

		medStart := at.Add(-a.policy.MedicationLookback)
		if med, found := firstMedicationBetween(meds, medStart, at); found && spike {
			medKey := r.remember(med.Name, fallbackMedicationName)
			symptomKey := r.remember(sym.Name, fallbackSymptomName)
			r.SpikesAfterMedication++
			r.RiskMedications.Add(medKey)
			r.MedicationSymptoms.Add(symptomKey)
		}
	}

	for _, food := range s.Foods {
		if !validTime(food.ConsumedAt) {
			continue
		}
		end := food.ConsumedAt.Add(a.policy.SafeFoodLookahead)
		seen, high := false, false
		for _, sym := range s.Symptoms {
			if !validTime(sym.OccurredAt) || sym.OccurredAt.Before(food.ConsumedAt) || sym.OccurredAt.After(end) {
				continue
			}
			seen = true
			if sym.Severity != nil && r.IsSpike(*sym.Severity) {
				high = true
				break
			}
		}
		if seen && !high {
			r.SafeFoods.Add(r.remember(food.Name, fallbackFoodName))
		}
	}

	return r, true
}

// Analyze returns the ordered correlation summary for the streams.
func (a *Analyzer) Analyze(s Streams) []Finding {
	report, ok := a.Report(s)
	if !ok {
		return []Finding{{Type: FindingWarning, Message: msgNeedMoreSymptoms}}
	}
	return report.Findings()
}

// Classification returns the display lists carried by the meta finding.
func (r *TimingReport) Classification() *FoodClassification {
	return &FoodClassification{
		RiskFoods:  r.labelsOf(r.RiskFoods.TopN(r.policy.DisplayTopN)),
		SafeFoods:  r.labelsOf(r.SafeFoods.TopN(r.policy.DisplayTopN)),
		MixedFoods: r.mixedFoods(),
	}
}

// Findings renders the report in its fixed emission order.
func (r *TimingReport) Findings() []Finding {
	findings := []Finding{
		{Type: FindingMeta, FoodClassification: r.Classification()},
		{Type: FindingInfo, Message: msgIntro},
	}

	if r.SpikesAfterFood > 0 {
		food, _ := r.RiskFoods.Top()
		symptom, _ := r.FoodSymptoms.Top()
		findings = append(findings, Finding{
			Type: FindingWarning,
			Message: fmt.Sprintf(
				"Higher-than-usual symptoms (often %s) occurred after %s. Consider reducing or spacing this item and discuss with your clinician if the pattern repeats.",
				r.Label(symptom), r.Label(food)),
		})
	} else {
		findings = append(findings, Finding{Type: FindingInfo, Message: msgNoFoodPattern})
	}

	if tag, ok := r.FoodTags.Top(); ok && r.FoodTags.Count(tag) >= r.policy.MinTagCount {
		label := riskTagLabels[tag]
		if label == "" {
			label = tag
		}
		findings = append(findings, Finding{
			Type: FindingNote,
			Message: fmt.Sprintf(
				"Higher-than-usual symptoms often followed foods tagged %s. Consider reducing or spacing those items to see if symptoms improve.",
				label),
		})
	}

	if safe, ok := r.SafeFoods.Top(); ok {
		findings = append(findings, Finding{
			Type: FindingNote,
			Message: fmt.Sprintf(
				"Some foods were not followed by higher-than-usual symptoms within %d hours (often %s). These may be safer options for you to repeat.",
				int(r.policy.SafeFoodLookahead.Hours()), r.Label(safe)),
		})
	}

	if r.SpikesAfterMedication > 0 {
		med, _ := r.RiskMedications.Top()
		symptom, _ := r.MedicationSymptoms.Top()
		findings = append(findings, Finding{
			Type: FindingWarning,
			Message: fmt.Sprintf(
				"Higher-than-usual symptoms (often %s) occurred after %s. Consider noting dose timing and missed doses, and discuss with your clinician if it repeats.",
				r.Label(symptom), r.Label(med)),
		})
	} else {
		findings = append(findings, Finding{Type: FindingInfo, Message: msgNoMedPattern})
	}

	return append(findings,
		Finding{Type: FindingNote, Message: msgNotDiagnosis},
		Finding{Type: FindingNote, Message: msgTipTiming},
		Finding{Type: FindingNote, Message: msgTipContext},
	)
}

// EvidenceFoods returns the risk foods with counts for evidence lists.
func (r *TimingReport) EvidenceFoods() []Entry {
	return r.labelEntries(r.RiskFoods.TopN(r.policy.EvidenceTopN))
}

// EvidenceMedications returns the risk medications with counts.
func (r *TimingReport) EvidenceMedications() []Entry {
	return r.labelEntries(r.RiskMedications.TopN(r.policy.EvidenceTopN))
}

func (r *TimingReport) mixedFoods() []string {
	mixed := make([]string, 0, r.policy.MixedFoodsCap)
	for _, key := range r.RiskFoods.Keys() {
		if len(mixed) >= r.policy.MixedFoodsCap {
			break
		}
		if r.SafeFoods.Count(key) > 0 {
			mixed = append(mixed, r.Label(key))
		}
	}
	return mixed
}

func (r *TimingReport) labelsOf(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, r.Label(e.Name))
	}
	return out
}

func (r *TimingReport) labelEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{Name: r.Label(e.Name), Count: e.Count})
	}
	return out
}

func firstFoodBetween(foods []FoodEvent, start, end time.Time) (FoodEvent, bool) {
	for _, f := range foods {
		if inWindow(f.ConsumedAt, start, end) {
			return f, true
		}
	}
	return FoodEvent{}, false
}

func firstMedicationBetween(meds []MedicationEvent, start, end time.Time) (MedicationEvent, bool) {
	for _, m := range meds {
		if inWindow(m.TakenAt, start, end) {
			return m, true
		}
	}
	return MedicationEvent{}, false
}

// inWindow is inclusive on both ends.
func inWindow(t, start, end time.Time) bool {
	return validTime(t) && !t.Before(start) && !t.After(end)
}
