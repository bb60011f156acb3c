package ngfilter

import (
	"github.com/mosaner/nicofilter/internal/models"
)

// State tracks ownership of removed items across the sequential category
// passes of one invocation. The first filter to claim an item owns it; later
// filters must not re-examine claimed items.
type State struct {
	removed map[string]models.Item
}

// NewState creates an empty pass state.
func NewState() *State {
	return &State{removed: make(map[string]models.Item)}
}

// Claim records the item as removed by the calling filter. It returns false
// when an earlier filter already claimed the item.
func (s *State) Claim(it models.Item) bool {
	id := it.Key()
	if _, ok := s.removed[id]; ok {
		return false
	}

	s.removed[id] = it

	return true
}

// Removed reports whether the item with the given id has been claimed.
func (s *State) Removed(id string) bool {
	_, ok := s.removed[id]

	return ok
}

// Items returns the id to snapshot mapping of all claimed items.
func (s *State) Items() map[string]models.Item { return s.removed }

// Len returns the number of claimed items.
func (s *State) Len() int { return len(s.removed) }

// ExemptFunc reports whether a comment is exempt from removal by engagement
// count. A nil ExemptFunc exempts nothing.
type ExemptFunc func(c *models.Comment) bool

// NicoruExempt returns the shared engagement exemption predicate: comments
// nicoru'd at or above floor are spared. A non-positive floor exempts
// nothing.
func NicoruExempt(floor int) ExemptFunc {
	if floor <= 0 {
		return nil
	}

	return func(c *models.Comment) bool {
		return c.NicoruCount >= floor
	}
}
