package ngfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaner/nicofilter/internal/models"
)

func TestWordFilterSubstringMatch(t *testing.T) {
	f := NewWordFilter("big")
	f.Activate(&models.RunContext{})

	hit := &models.Comment{ID: "c1", Body: "that was big"}
	miss := &models.Comment{ID: "c2", Body: "small"}

	st := NewState()
	f.Filtering([]*models.Comment{hit, miss}, st, false)

	assert.True(t, st.Removed("c1"))
	assert.False(t, st.Removed("c2"))
	assert.Equal(t, []string{"c1"}, f.Report().Grouped.IDs("big", "that was big"))
}

func TestWordFilterFirstRuleWins(t *testing.T) {
	f := NewWordFilter("alpha\nbeta")
	f.Activate(&models.RunContext{})

	c := &models.Comment{ID: "c1", Body: "alpha beta"}

	st := NewState()
	f.Filtering([]*models.Comment{c}, st, false)

	assert.Equal(t, []string{"alpha"}, f.Report().Grouped.Keys())
	assert.Equal(t, 1, f.Report().BlockedCount)
}

func TestWordFilterGroupsDuplicateBodies(t *testing.T) {
	f := NewWordFilter("spam")
	f.Activate(&models.RunContext{})

	items := []*models.Comment{
		{ID: "c1", Body: "spam spam"},
		{ID: "c2", Body: "spam spam"},
		{ID: "c3", Body: "more spam"},
	}

	st := NewState()
	f.Filtering(items, st, false)

	g := f.Report().Grouped
	assert.Equal(t, []string{"spam spam", "more spam"}, g.Bodies("spam"))
	assert.Equal(t, []string{"c1", "c2"}, g.IDs("spam", "spam spam"))
}

func TestWordFilterStrictPass(t *testing.T) {
	f := NewWordFilter("@strict\nbanned\n@end\nplain")
	f.Activate(&models.RunContext{})

	items := []*models.Comment{
		{ID: "c1", UserID: "u1", Body: "banned phrase"},
		{ID: "c2", UserID: "u2", Body: "plain phrase"},
		{ID: "c3", UserID: "u1", Body: "banned again"},
	}

	st := NewState()
	f.Filtering(items, st, true)

	// Only strict rules participate, authors are deduplicated, nothing is
	// claimed.
	assert.Equal(t, []string{"u1"}, f.PromotedAuthors())
	assert.Zero(t, st.Len())
}

func TestWordFilterPatternRule(t *testing.T) {
	f := NewWordFilter("/sp+am/i")
	f.Activate(&models.RunContext{})

	c := &models.Comment{ID: "c1", Body: "SPPPAM alert"}

	st := NewState()
	f.Filtering([]*models.Comment{c}, st, false)

	assert.True(t, st.Removed("c1"))
}
