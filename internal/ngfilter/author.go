package ngfilter

import (
	"strings"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ruleset"
)

// CategoryAuthor is the author-id category name.
const CategoryAuthor = "author"

// AuthorFilter blocks comments by author id. A literal rule may be written
// "<scope>@<id>" to apply only while filtering that content's comments. The
// filter is the promotion target: it never takes part in the strict-only
// pass, and its active set can be widened at run time with authors promoted
// by the strict rules of other categories.
type AuthorFilter struct {
	ruleFilter

	log *MatchLog

	// members maps an author id to the literal rule that blocks it; the
	// value is nil for ids added by Widen or SetAuthors.
	members  map[string]*ruleset.Rule
	patterns []*ruleset.Rule
	widened  []string
}

// NewAuthorFilter compiles the author-id rule text.
func NewAuthorFilter(text string) *AuthorFilter {
	return &AuthorFilter{
		ruleFilter: newRuleFilter(CategoryAuthor, text),
		log:        NewMatchLog(),
		members:    make(map[string]*ruleset.Rule),
	}
}

// Activate resolves the active rules against the context and rebuilds the id
// membership set. Scoped literals are kept only when their scope is the
// current video id.
func (f *AuthorFilter) Activate(ctx *models.RunContext) {
	f.ruleFilter.Activate(ctx)

	f.members = make(map[string]*ruleset.Rule, len(f.active))
	f.patterns = nil

	for _, r := range f.active {
		if r.IsPattern() {
			f.patterns = append(f.patterns, r)
			continue
		}

		scope, id, scoped := strings.Cut(r.Literal, "@")
		if !scoped {
			f.members[r.Literal] = r
			continue
		}

		if id != "" && scope == ctx.VideoID {
			f.members[id] = r
		}
	}

	for _, id := range f.widened {
		if _, ok := f.members[id]; !ok {
			f.members[id] = nil
		}
	}
}

// Widen adds promoted author ids to the active block set without reparsing.
func (f *AuthorFilter) Widen(ids []string) {
	for _, id := range ids {
		if id == "" {
			continue
		}

		f.widened = append(f.widened, id)
		if _, ok := f.members[id]; !ok {
			f.members[id] = nil
		}
	}
}

// SetAuthors replaces the plain-id membership without recompiling, for
// settings refreshes where only the id list changed. Scoped and pattern
// rules from the compiled text are kept as they are.
func (f *AuthorFilter) SetAuthors(ids []string) {
	for id, r := range f.members {
		if r == nil || !strings.Contains(r.Key(), "@") {
			delete(f.members, id)
		}
	}

	f.widened = nil
	for _, id := range ids {
		if id != "" {
			f.members[id] = nil
		}
	}
}

// Filtering claims comments whose author is blocked. The author category is
// excluded from the strict-only pass.
func (f *AuthorFilter) Filtering(items []*models.Comment, st *State, strictOnly bool) {
	if strictOnly {
		return
	}

	for _, c := range items {
		if st.Removed(c.ID) || c.UserID == "" {
			continue
		}

		key, ok := f.matchAuthor(c.UserID)
		if !ok || !st.Claim(c) {
			continue
		}

		f.blocked++
		f.log.Add(key, c.ID)
	}
}

// matchAuthor returns the log key of the rule blocking the author, if any.
func (f *AuthorFilter) matchAuthor(userID string) (key string, ok bool) {
	if r, hit := f.members[userID]; hit {
		if r != nil {
			return r.Key(), true
		}

		return userID, true
	}

	for _, r := range f.patterns {
		if r.MatchID(userID) {
			return r.Key(), true
		}
	}

	return "", false
}

// SortLogs applies the display ordering to the match log.
func (f *AuthorFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, f.rules, cmp)
}

// Report returns the category outcome.
func (f *AuthorFilter) Report() Report {
	r := f.report()
	r.Log = f.log

	return r
}
