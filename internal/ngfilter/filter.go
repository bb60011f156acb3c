// Package ngfilter implements the per-category NG filters: each category
// owns its compiled rules, its match log, and its counters, and claims items
// through a shared pass state so that the first category in priority order
// wins.
package ngfilter

import (
	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ruleset"
)

// CommentFilter is the contract shared by all comment categories.
//
// Filtering claims matched items through the state instead of removing them
// from the slice; it must skip items already claimed by an earlier category.
// Activate must be called once per pass before Filtering. SortLogs applies
// the display ordering and is idempotent.
type CommentFilter interface {
	Name() string
	Activate(ctx *models.RunContext)
	Filtering(items []*models.Comment, st *State, strictOnly bool)
	SortLogs(cmp *Comparator)
	Report() Report
}

// VideoFilter is the contract shared by all video categories. Videos have no
// strict pass.
type VideoFilter interface {
	Name() string
	Activate(ctx *models.RunContext)
	Filtering(items []*models.Video, st *State)
	SortLogs(cmp *Comparator)
	Report() Report
}

// StrictCollector is implemented by the strict-capable categories; the
// authors collected during the strict-only pass feed the promotion merge.
type StrictCollector interface {
	PromotedAuthors() []string
}

// Report is the per-category outcome surfaced to callers. Exactly one of Log
// and Grouped is set for categories that log.
type Report struct {
	Category string

	RuleCount      int
	InvalidCount   int
	BlockedCount   int
	DisabledCount  int
	IncludeSkipped int
	ExcludeSkipped int

	Log     *MatchLog
	Grouped *GroupedLog
}

// ruleFilter carries the shared state of every rule-bearing category.
type ruleFilter struct {
	name  string
	rules []*ruleset.Rule
	stats ruleset.Stats

	// active is the subset of rules in effect for the current pass,
	// recomputed by Activate.
	active []*ruleset.Rule

	blocked        int
	disabled       int
	includeSkipped int
	excludeSkipped int

	promoted     []string
	promotedSeen map[string]bool
}

// newRuleFilter compiles the category's rule text.
func newRuleFilter(name, text string) ruleFilter {
	p := ruleset.New()
	rules := p.Parse(text)

	return ruleFilter{
		name:         name,
		rules:        rules,
		stats:        p.Stats(),
		promotedSeen: make(map[string]bool),
	}
}

// Name returns the category name.
func (f *ruleFilter) Name() string { return f.name }

// Activate computes the active rule subset for this run and the
// include/exclude skip counters.
func (f *ruleFilter) Activate(ctx *models.RunContext) {
	f.active = nil
	f.includeSkipped, f.excludeSkipped = 0, 0

	for _, r := range f.rules {
		if !r.Include.IsUnconditioned() && !r.Include.IsSatisfied(ctx) {
			f.includeSkipped++
			continue
		}

		if !r.Exclude.IsUnconditioned() && r.Exclude.IsSatisfied(ctx) {
			f.excludeSkipped++
			continue
		}

		f.active = append(f.active, r)
	}
}

// promote records an author discovered by a strict rule. Empty and duplicate
// ids are dropped.
func (f *ruleFilter) promote(userID string) {
	if userID == "" || f.promotedSeen[userID] {
		return
	}

	f.promotedSeen[userID] = true
	f.promoted = append(f.promoted, userID)
}

// PromotedAuthors returns the authors collected during the strict-only pass
// in discovery order.
func (f *ruleFilter) PromotedAuthors() []string { return f.promoted }

// report fills the counter part of a Report.
func (f *ruleFilter) report() Report {
	return Report{
		Category:       f.name,
		RuleCount:      len(f.rules),
		InvalidCount:   f.stats.Invalid,
		BlockedCount:   f.blocked,
		DisabledCount:  f.disabled,
		IncludeSkipped: f.includeSkipped,
		ExcludeSkipped: f.excludeSkipped,
	}
}
