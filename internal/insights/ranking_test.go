package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTally_TopPicksHighestCount(t *testing.T) {
	tally := NewTally()
	for _, k := range []string{"A", "B", "C", "B", "A", "B", "A", "B", "B"} {
		tally.Add(k)
	}

	top, ok := tally.Top()
	assert.True(t, ok)
	assert.Equal(t, "B", top)
	assert.Equal(t, []Entry{{"B", 5}, {"A", 3}, {"C", 1}}, tally.Ranked())
}

func TestTally_TiesResolveToFirstSeen(t *testing.T) {
	tally := NewTally()
	tally.Add("A")
	tally.Add("B")
	tally.Add("B")
	tally.Add("A")

	for i := 0; i < 20; i++ {
		top, _ := tally.Top()
		assert.Equal(t, "A", top)
	}
	assert.Equal(t, []Entry{{"A", 2}, {"B", 2}}, tally.TopN(5))
}

func TestTally_Empty(t *testing.T) {
	tally := NewTally()
	_, ok := tally.Top()
	assert.False(t, ok)
	assert.Empty(t, tally.TopN(3))
	assert.Equal(t, 0, tally.Count("missing"))
}

func TestTally_TopNTruncates(t *testing.T) {
	tally := NewTally()
	for _, k := range []string{"a", "b", "c", "d"} {
		tally.Add(k)
	}
	assert.Len(t, tally.TopN(3), 3)
	assert.Equal(t, []string{"a", "b", "c", "d"}, tally.Keys())
}
