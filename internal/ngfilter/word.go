package ngfilter

import (
	"github.com/mosaner/nicofilter/internal/models"
)

// CategoryWord is the word category name.
const CategoryWord = "word"

// WordFilter matches comment bodies against word rules. Its log is
// two-level, rule key to body to ids, so duplicates of the same body under
// one rule stay visible. On a strict-only pass a strict match records the
// author for promotion instead of removing the comment.
type WordFilter struct {
	ruleFilter

	glog *GroupedLog
}

// NewWordFilter compiles the word rule text.
func NewWordFilter(text string) *WordFilter {
	return &WordFilter{
		ruleFilter: newRuleFilter(CategoryWord, text),
		glog:       NewGroupedLog(),
	}
}

// Filtering applies the word category.
func (f *WordFilter) Filtering(items []*models.Comment, st *State, strictOnly bool) {
	if strictOnly {
		for _, c := range items {
			if st.Removed(c.ID) {
				continue
			}

			for _, r := range f.active {
				if r.IsStrict && r.MatchText(c.Body) {
					f.promote(c.UserID)
					break
				}
			}
		}

		return
	}

	for _, c := range items {
		if st.Removed(c.ID) {
			continue
		}

		for _, r := range f.active {
			if !r.MatchText(c.Body) {
				continue
			}

			if st.Claim(c) {
				f.blocked++
				f.glog.Add(r.Key(), c.Body, c.ID)
			}

			break
		}
	}
}

// SortLogs applies the display ordering to the grouped log.
func (f *WordFilter) SortLogs(cmp *Comparator) {
	SortGroupedLog(f.glog, f.rules, cmp)
}

// Report returns the category outcome.
func (f *WordFilter) Report() Report {
	r := f.report()
	r.Grouped = f.glog

	return r
}
