package ruleset

import (
	"github.com/mosaner/nicofilter/internal/models"
)

// Scope holds the activation conditions attached to a rule. Each dimension is
// a sequence of groups; a group is satisfied when at least one of its members
// is present in the run context, and the scope is satisfied when every group
// in every non-empty dimension is satisfied (AND across groups, OR within).
type Scope struct {
	Tags      [][]string
	VideoIDs  [][]string
	UserIDs   [][]string
	SeriesIDs [][]string
}

// IsUnconditioned reports whether the scope has no conditions at all.
func (s *Scope) IsUnconditioned() bool {
	return len(s.Tags) == 0 && len(s.VideoIDs) == 0 &&
		len(s.UserIDs) == 0 && len(s.SeriesIDs) == 0
}

// merge appends the other scope's groups onto this one.
func (s *Scope) merge(o Scope) {
	s.Tags = append(s.Tags, o.Tags...)
	s.VideoIDs = append(s.VideoIDs, o.VideoIDs...)
	s.UserIDs = append(s.UserIDs, o.UserIDs...)
	s.SeriesIDs = append(s.SeriesIDs, o.SeriesIDs...)
}

// IsSatisfied reports whether every group of every dimension has at least one
// member present in ctx. An unconditioned scope is trivially satisfied.
func (s *Scope) IsSatisfied(ctx *models.RunContext) bool {
	for _, g := range s.Tags {
		if !groupSatisfied(g, ctx.HasTag) {
			return false
		}
	}

	for _, g := range s.VideoIDs {
		if !groupSatisfied(g, ctx.HasVideoID) {
			return false
		}
	}

	for _, g := range s.UserIDs {
		if !groupSatisfied(g, ctx.HasUserID) {
			return false
		}
	}

	for _, g := range s.SeriesIDs {
		if !groupSatisfied(g, ctx.HasSeriesID) {
			return false
		}
	}

	return true
}

// groupSatisfied reports whether any member of the group is present.
func groupSatisfied(group []string, has func(string) bool) bool {
	for _, m := range group {
		if has(m) {
			return true
		}
	}

	return false
}

// IsActive decides whether a rule applies for this run: a conditioned include
// scope must be satisfied, and a satisfied exclude scope deactivates the rule
// regardless of include.
func IsActive(r *Rule, ctx *models.RunContext) bool {
	includeOK := r.Include.IsUnconditioned() || r.Include.IsSatisfied(ctx)
	excludeBlocks := !r.Exclude.IsUnconditioned() && r.Exclude.IsSatisfied(ctx)

	return includeOK && !excludeBlocks
}
