package ngfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ruleset"
)

func comparatorOver(byScore bool, comments ...*models.Comment) *Comparator {
	items := make(map[string]models.Item, len(comments))
	for _, c := range comments {
		items[c.ID] = c
	}

	return NewComparator(items, byScore)
}

func TestSortMatchLogDeclarationOrder(t *testing.T) {
	rules := ruleset.New().Parse("alpha\nbeta")
	cmp := comparatorOver(false)

	l := NewMatchLog()
	l.Add("beta", "c1")
	l.Add("u99", "c2")
	l.Add("alpha", "c3")

	SortMatchLog(l, rules, cmp)

	// Declared keys first in declaration order, then undeclared keys such
	// as promoted author ids in first-match order.
	assert.Equal(t, []string{"alpha", "beta", "u99"}, l.Keys())
}

func TestSortMatchLogOrdersIDsByDisplayText(t *testing.T) {
	a := &models.Comment{ID: "c1", Body: "banana"}
	b := &models.Comment{ID: "c2", Body: "apple"}
	cmp := comparatorOver(false, a, b)

	l := NewMatchLog()
	l.Add("k", "c1")
	l.Add("k", "c2")

	SortMatchLog(l, nil, cmp)

	assert.Equal(t, []string{"c2", "c1"}, l.IDs("k"))
}

func TestSortMatchLogScoreTieBreak(t *testing.T) {
	a := &models.Comment{ID: "c1", Body: "same", Score: -5}
	b := &models.Comment{ID: "c2", Body: "same", Score: -9}
	cmp := comparatorOver(true, a, b)

	l := NewMatchLog()
	l.Add("k", "c1")
	l.Add("k", "c2")

	SortMatchLog(l, nil, cmp)

	assert.Equal(t, []string{"c2", "c1"}, l.IDs("k"))
}

func TestSortMatchLogDoesNotMutateCallerSlices(t *testing.T) {
	a := &models.Comment{ID: "c1", Body: "b"}
	b := &models.Comment{ID: "c2", Body: "a"}
	cmp := comparatorOver(false, a, b)

	l := NewMatchLog()
	l.Add("k", "c1")
	l.Add("k", "c2")

	before := l.IDs("k")

	SortMatchLog(l, nil, cmp)

	assert.Equal(t, []string{"c1", "c2"}, before)
	assert.Equal(t, []string{"c2", "c1"}, l.IDs("k"))
}

func TestSortMatchLogIdempotent(t *testing.T) {
	rules := ruleset.New().Parse("alpha\nbeta")
	a := &models.Comment{ID: "c1", Body: "y"}
	b := &models.Comment{ID: "c2", Body: "x"}
	cmp := comparatorOver(false, a, b)

	l := NewMatchLog()
	l.Add("beta", "c1")
	l.Add("beta", "c2")
	l.Add("alpha", "c1")

	SortMatchLog(l, rules, cmp)
	keys := append([]string(nil), l.Keys()...)
	ids := append([]string(nil), l.IDs("beta")...)

	SortMatchLog(l, rules, cmp)

	assert.Equal(t, keys, l.Keys())
	assert.Equal(t, ids, l.IDs("beta"))
}

func TestSortGroupedLog(t *testing.T) {
	rules := ruleset.New().Parse("alpha\nbeta")
	a := &models.Comment{ID: "c1", Body: "zz"}
	b := &models.Comment{ID: "c2", Body: "aa"}
	c := &models.Comment{ID: "c3", Body: "mm"}
	cmp := comparatorOver(false, a, b, c)

	l := NewGroupedLog()
	l.Add("beta", "zz", "c1")
	l.Add("alpha", "zz", "c1")
	l.Add("alpha", "aa", "c2")
	l.Add("alpha", "mm", "c3")

	SortGroupedLog(l, rules, cmp)

	assert.Equal(t, []string{"alpha", "beta"}, l.Keys())
	// Bodies order by the display text of their first sorted id.
	assert.Equal(t, []string{"aa", "mm", "zz"}, l.Bodies("alpha"))
}

func TestSortGroupedLogIdempotent(t *testing.T) {
	a := &models.Comment{ID: "c1", Body: "same"}
	b := &models.Comment{ID: "c2", Body: "same"}
	cmp := comparatorOver(false, a, b)

	l := NewGroupedLog()
	l.Add("k", "x", "c2")
	l.Add("k", "x", "c1")
	l.Add("k", "y", "c1")

	SortGroupedLog(l, nil, cmp)
	bodies := append([]string(nil), l.Bodies("k")...)
	ids := append([]string(nil), l.IDs("k", "x")...)

	SortGroupedLog(l, nil, cmp)

	assert.Equal(t, bodies, l.Bodies("k"))
	assert.Equal(t, ids, l.IDs("k", "x"))
}

func TestSortGroupedByCount(t *testing.T) {
	cs := []*models.Comment{
		{ID: "c1", Body: "888"},
		{ID: "c2", Body: "888"},
		{ID: "c3", Body: "888"},
		{ID: "c4", Body: "www"},
		{ID: "c5", Body: "!?"},
		{ID: "c6", Body: "!?"},
	}
	cmp := comparatorOver(false, cs...)

	l := NewGroupedLog()
	for _, c := range cs {
		l.Add(CategoryAssist, c.Body, c.ID)
	}

	SortGroupedByCount(l, cmp)

	assert.Equal(t, []string{"888", "!?", "www"}, l.Bodies(CategoryAssist))
}

func TestComparatorUnknownIDs(t *testing.T) {
	known := &models.Comment{ID: "c1", Body: "a"}
	cmp := comparatorOver(false, known)

	// Unknown ids compare by empty display text and sort first.
	assert.True(t, cmp.Less("ghost", "c1"))
	assert.False(t, cmp.Less("c1", "ghost"))
}
