package ngfilter

import (
	"github.com/mosaner/nicofilter/internal/models"
)

// CategoryTierHide is the easy-tier hide category name.
const CategoryTierHide = "tier-hide"

// TierHideFilter unconditionally removes comments from the easy partition.
// It always runs before the rule-based categories and is outside the
// strict/normal two-pass split.
type TierHideFilter struct {
	log     *MatchLog
	blocked int
}

// NewTierHideFilter creates the easy-tier hide category.
func NewTierHideFilter() *TierHideFilter {
	return &TierHideFilter{log: NewMatchLog()}
}

// Name returns the category name.
func (f *TierHideFilter) Name() string { return CategoryTierHide }

// Activate is a no-op; the tier-hide category carries no rules.
func (f *TierHideFilter) Activate(_ *models.RunContext) {}

// Filtering claims every comment in the easy fork.
func (f *TierHideFilter) Filtering(items []*models.Comment, st *State, strictOnly bool) {
	if strictOnly {
		return
	}

	for _, c := range items {
		if st.Removed(c.ID) || c.Fork != models.ForkEasy {
			continue
		}

		if st.Claim(c) {
			f.blocked++
			f.log.Add(models.ForkEasy, c.ID)
		}
	}
}

// SortLogs applies the display ordering to the match log.
func (f *TierHideFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, nil, cmp)
}

// Report returns the category outcome.
func (f *TierHideFilter) Report() Report {
	return Report{
		Category:     CategoryTierHide,
		BlockedCount: f.blocked,
		Log:          f.log,
	}
}
