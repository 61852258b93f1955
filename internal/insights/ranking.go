package insights

import "sort"

// Entry is a ranked name with its count.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Tally counts keys and remembers the order in which they were first seen.
// Rankings sort by count descending and fall back to first-seen order on
// ties.
type Tally struct {
	keys   []string
	counts map[string]int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increments key by one.
func (t *Tally) Add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key]++
}

// Count returns the count for key.
func (t *Tally) Count(key string) int {
	return t.counts[key]
}

// Len returns the number of distinct keys.
func (t *Tally) Len() int {
	return len(t.keys)
}

// Keys returns the keys in first-seen order.
func (t *Tally) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Ranked returns every entry ordered by count descending.
func (t *Tally) Ranked() []Entry {
	entries := make([]Entry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, Entry{Name: k, Count: t.counts[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// TopN returns at most n ranked entries.
func (t *Tally) TopN(n int) []Entry {
	entries := t.Ranked()
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Top returns the highest ranked key.
func (t *Tally) Top() (string, bool) {
	entries := t.TopN(1)
	if len(entries) == 0 {
		return "", false
	}
	return entries[0].Name, true
}
