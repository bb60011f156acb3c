package ngfilter

// MatchLog is an insertion-ordered mapping from a rule key to the ids of the
// items it matched, built in first-match order during a pass.
type MatchLog struct {
	keys    []string
	entries map[string][]string
}

// NewMatchLog creates an empty match log.
func NewMatchLog() *MatchLog {
	return &MatchLog{entries: make(map[string][]string)}
}

// Add appends an item id under the given rule key.
func (l *MatchLog) Add(key, id string) {
	if _, ok := l.entries[key]; !ok {
		l.keys = append(l.keys, key)
	}

	l.entries[key] = append(l.entries[key], id)
}

// Len returns the number of distinct keys.
func (l *MatchLog) Len() int { return len(l.keys) }

// Keys returns the keys in their current order.
func (l *MatchLog) Keys() []string { return l.keys }

// IDs returns the item ids logged under key.
func (l *MatchLog) IDs(key string) []string { return l.entries[key] }

// GroupedLog is a two-level log: rule key to item body to item ids. Distinct
// bodies matching the same rule are tracked separately for duplicate display.
type GroupedLog struct {
	keys   []string
	groups map[string]*bodyGroup
}

type bodyGroup struct {
	bodies []string
	ids    map[string][]string
}

// NewGroupedLog creates an empty grouped log.
func NewGroupedLog() *GroupedLog {
	return &GroupedLog{groups: make(map[string]*bodyGroup)}
}

// Add appends an item id under the given rule key and body.
func (l *GroupedLog) Add(key, body, id string) {
	g, ok := l.groups[key]
	if !ok {
		g = &bodyGroup{ids: make(map[string][]string)}
		l.groups[key] = g
		l.keys = append(l.keys, key)
	}

	if _, ok = g.ids[body]; !ok {
		g.bodies = append(g.bodies, body)
	}

	g.ids[body] = append(g.ids[body], id)
}

// Len returns the number of distinct keys.
func (l *GroupedLog) Len() int { return len(l.keys) }

// Keys returns the keys in their current order.
func (l *GroupedLog) Keys() []string { return l.keys }

// Bodies returns the distinct bodies logged under key.
func (l *GroupedLog) Bodies(key string) []string {
	if g, ok := l.groups[key]; ok {
		return g.bodies
	}

	return nil
}

// IDs returns the item ids logged under key and body.
func (l *GroupedLog) IDs(key, body string) []string {
	if g, ok := l.groups[key]; ok {
		return g.ids[body]
	}

	return nil
}
