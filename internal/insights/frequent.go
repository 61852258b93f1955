package insights

import (
	"fmt"
	"sort"
	"strings"
)

// ItemKind selects which stream FrequentItems ranks.
type ItemKind string

const (
	KindFood       ItemKind = "food"
	KindMedication ItemKind = "medication"
	KindSymptom    ItemKind = "symptom"
	KindAll        ItemKind = "all"
)

// FrequentItemsLimit is the number of items returned.
const FrequentItemsLimit = 10

// ParseItemKind validates a kind string. Empty input means KindAll.
func ParseItemKind(raw string) (ItemKind, error) {
	switch k := ItemKind(strings.ToLower(strings.TrimSpace(raw))); k {
	case "":
		return KindAll, nil
	case KindFood, KindMedication, KindSymptom, KindAll:
		return k, nil
	default:
		return "", fmt.Errorf("invalid item type %q", raw)
	}
}

// FrequentItem is a quick-log suggestion.
type FrequentItem struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Type  ItemKind `json:"type"`
}

// FrequentItems ranks names by exact-string frequency. For KindAll the three
// per-stream lists are merged, re-sorted by count and cut to limit.
func FrequentItems(s Streams, kind ItemKind, limit int) []FrequentItem {
	foods := func() []FrequentItem {
		t := NewTally()
		for _, f := range s.Foods {
			t.Add(f.Name)
		}
		return asItems(t.TopN(limit), KindFood)
	}
	meds := func() []FrequentItem {
		t := NewTally()
		for _, m := range FilterMedicationNoise(s.Medications) {
			t.Add(m.Name)
		}
		return asItems(t.TopN(limit), KindMedication)
	}
	symptoms := func() []FrequentItem {
		t := NewTally()
		for _, e := range s.Symptoms {
			t.Add(e.Name)
		}
		return asItems(t.TopN(limit), KindSymptom)
	}

	switch kind {
	case KindFood:
		return foods()
	case KindMedication:
		return meds()
	case KindSymptom:
		return symptoms()
	}

	items := append(append(foods(), meds()...), symptoms()...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func asItems(entries []Entry, kind ItemKind) []FrequentItem {
	out := make([]FrequentItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, FrequentItem{Name: e.Name, Count: e.Count, Type: kind})
	}
	return out
}
