package ngfilter

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ruleset"
)

// Comparator orders logged item ids for display: the primary key is a
// locale-aware compare of the referenced item's display text, the optional
// secondary key is the item's numeric score ascending.
type Comparator struct {
	col     *collate.Collator
	items   map[string]models.Item
	byScore bool
}

// NewComparator creates a comparator over the given id to item index.
// byScore enables the secondary score key, matching the log display when
// scores are visible.
func NewComparator(items map[string]models.Item, byScore bool) *Comparator {
	return &Comparator{
		col:     collate.New(language.Japanese),
		items:   items,
		byScore: byScore,
	}
}

// Less reports whether the item with id a sorts before the item with id b.
// Ids with no known item compare by empty display text.
func (c *Comparator) Less(a, b string) bool {
	if r := c.col.CompareString(c.display(a), c.display(b)); r != 0 {
		return r < 0
	}

	if c.byScore {
		return c.score(a) < c.score(b)
	}

	return false
}

func (c *Comparator) display(id string) string {
	if it, ok := c.items[id]; ok {
		return it.DisplayText()
	}

	return ""
}

func (c *Comparator) score(id string) int {
	if it, ok := c.items[id]; ok {
		return it.ScoreValue()
	}

	return 0
}

// sortIDs returns a sorted copy; the original list is never mutated.
func (c *Comparator) sortIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool { return c.Less(out[i], out[j]) })

	return out
}

// SortMatchLog re-orders the log into rule-declaration order and sorts each
// id list with the comparator. Keys not backed by a declared rule, such as
// promoted author ids, keep their first-match order after the declared ones.
// Sorting an already sorted log is a no-op.
func SortMatchLog(l *MatchLog, rules []*ruleset.Rule, cmp *Comparator) {
	if l == nil || l.Len() == 0 {
		return
	}

	keys := make([]string, 0, len(l.keys))
	seen := make(map[string]bool, len(l.keys))
	for _, r := range rules {
		k := r.Key()
		if _, ok := l.entries[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	for _, k := range l.keys {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	l.keys = keys
	for k, ids := range l.entries {
		l.entries[k] = cmp.sortIDs(ids)
	}
}

// SortGroupedLog re-orders a two-level log: keys into rule-declaration
// order, bodies by a representative id under the comparator, id lists with
// the comparator.
func SortGroupedLog(l *GroupedLog, rules []*ruleset.Rule, cmp *Comparator) {
	if l == nil || l.Len() == 0 {
		return
	}

	keys := make([]string, 0, len(l.keys))
	seen := make(map[string]bool, len(l.keys))
	for _, r := range rules {
		k := r.Key()
		if _, ok := l.groups[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	for _, k := range l.keys {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	l.keys = keys
	for _, g := range l.groups {
		sortBodies(g, cmp, func(a, b string) bool {
			return cmp.Less(representative(g, a), representative(g, b))
		})
	}
}

// SortGroupedByCount re-orders every body group by duplicate count
// descending, ties broken by the representative id comparator. Used by the
// duplicate-heuristic category.
func SortGroupedByCount(l *GroupedLog, cmp *Comparator) {
	if l == nil || l.Len() == 0 {
		return
	}

	for _, g := range l.groups {
		sortBodies(g, cmp, func(a, b string) bool {
			na, nb := len(g.ids[a]), len(g.ids[b])
			if na != nb {
				return na > nb
			}

			return cmp.Less(representative(g, a), representative(g, b))
		})
	}
}

// sortBodies sorts the id lists first so that the representative id is
// stable, then orders the bodies; repeated sorting is a no-op.
func sortBodies(g *bodyGroup, cmp *Comparator, less func(a, b string) bool) {
	for body, ids := range g.ids {
		g.ids[body] = cmp.sortIDs(ids)
	}

	bodies := make([]string, len(g.bodies))
	copy(bodies, g.bodies)
	sort.SliceStable(bodies, func(i, j int) bool { return less(bodies[i], bodies[j]) })
	g.bodies = bodies
}

// representative maps a body to its first logged id.
func representative(g *bodyGroup, body string) string {
	ids := g.ids[body]
	if len(ids) == 0 {
		return ""
	}

	return ids[0]
}
