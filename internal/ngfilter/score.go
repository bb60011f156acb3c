package ngfilter

import (
	"github.com/mosaner/nicofilter/internal/models"
)

// CategoryScore is the numeric-score category name.
const CategoryScore = "score"

// ScoreFilter removes comments whose NG score is at or below the threshold.
// Comments exempted by the engagement predicate are spared by this category
// only.
type ScoreFilter struct {
	threshold int
	exempt    ExemptFunc

	log     *MatchLog
	blocked int
}

// NewScoreFilter creates the score category. exempt may be nil.
func NewScoreFilter(threshold int, exempt ExemptFunc) *ScoreFilter {
	return &ScoreFilter{
		threshold: threshold,
		exempt:    exempt,
		log:       NewMatchLog(),
	}
}

// Name returns the category name.
func (f *ScoreFilter) Name() string { return CategoryScore }

// Activate is a no-op; the score category carries no rules.
func (f *ScoreFilter) Activate(_ *models.RunContext) {}

// Filtering claims comments at or below the score threshold. The category is
// not strict-capable.
func (f *ScoreFilter) Filtering(items []*models.Comment, st *State, strictOnly bool) {
	if strictOnly {
		return
	}

	for _, c := range items {
		if st.Removed(c.ID) {
			continue
		}

		if f.exempt != nil && f.exempt(c) {
			continue
		}

		if c.Score <= f.threshold && st.Claim(c) {
			f.blocked++
			f.log.Add(CategoryScore, c.ID)
		}
	}
}

// SortLogs applies the display ordering to the match log.
func (f *ScoreFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, nil, cmp)
}

// Report returns the category outcome.
func (f *ScoreFilter) Report() Report {
	return Report{
		Category:     CategoryScore,
		BlockedCount: f.blocked,
		Log:          f.log,
	}
}
