package ngfilter

import (
	"strings"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ruleset"
)

// CategoryCommand is the command-tag category name.
const CategoryCommand = "command"

// superRuleAll is the literal that, combined with @disable, clears every
// command token on every surviving comment.
const superRuleAll = "all"

// CommandFilter matches comments by their command tokens. Hide rules remove
// the comment; disable rules strip the matching token instead and run after
// the hide rules within the normal pass.
type CommandFilter struct {
	ruleFilter

	log *MatchLog

	// clearAll is set by an "all"+@disable super-rule. It only takes effect
	// while at least one ordinary rule is active: a rule text holding
	// nothing but the super-rule never activates the category. Known quirk,
	// kept so existing rule texts behave the same.
	clearAll bool
}

// NewCommandFilter compiles the command-tag rule text.
func NewCommandFilter(text string) *CommandFilter {
	f := &CommandFilter{
		ruleFilter: newRuleFilter(CategoryCommand, text),
		log:        NewMatchLog(),
	}

	kept := f.rules[:0]
	for _, r := range f.rules {
		if r.IsDisable && !r.IsPattern() && strings.EqualFold(r.Literal, superRuleAll) {
			f.clearAll = true
			continue
		}

		kept = append(kept, r)
	}
	f.rules = kept

	return f
}

// Filtering applies the command-tag category. On the strict-only pass it
// records authors matched by strict hide rules; on the normal pass it hides,
// then disables.
func (f *CommandFilter) Filtering(items []*models.Comment, st *State, strictOnly bool) {
	if strictOnly {
		for _, c := range items {
			if st.Removed(c.ID) {
				continue
			}

			for _, r := range f.active {
				if !r.IsStrict || r.IsDisable {
					continue
				}

				if _, ok := matchToken(r, c.Commands); ok {
					f.promote(c.UserID)
					break
				}
			}
		}

		return
	}

	if len(f.active) == 0 {
		return
	}

	for _, c := range items {
		if st.Removed(c.ID) {
			continue
		}

		for _, r := range f.active {
			if r.IsDisable {
				continue
			}

			if _, ok := matchToken(r, c.Commands); ok {
				if st.Claim(c) {
					f.blocked++
					f.log.Add(r.Key(), c.ID)
				}

				break
			}
		}
	}

	for _, c := range items {
		if st.Removed(c.ID) {
			continue
		}

		for _, r := range f.active {
			if !r.IsDisable {
				continue
			}

			if f.stripTokens(c, r) {
				f.disabled++
				f.log.Add(r.Key(), c.ID)
			}
		}

		if f.clearAll && len(c.Commands) > 0 {
			c.Commands = nil
			f.disabled++
		}
	}
}

// stripTokens removes the tokens matched by a disable rule from the comment.
func (f *CommandFilter) stripTokens(c *models.Comment, r *ruleset.Rule) (stripped bool) {
	kept := c.Commands[:0]
	for _, tok := range c.Commands {
		if r.MatchToken(tok) {
			stripped = true
			continue
		}

		kept = append(kept, tok)
	}

	c.Commands = kept

	return stripped
}

// matchToken returns the first command token the rule matches.
func matchToken(r *ruleset.Rule, tokens []string) (tok string, ok bool) {
	for _, t := range tokens {
		if r.MatchToken(t) {
			return t, true
		}
	}

	return "", false
}

// SortLogs applies the display ordering to the match log.
func (f *CommandFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, f.rules, cmp)
}

// Report returns the category outcome.
func (f *CommandFilter) Report() Report {
	r := f.report()
	r.Log = f.log

	return r
}
