package ngfilter

import (
	"time"

	"github.com/mosaner/nicofilter/internal/models"
)

// CategoryAssist is the low-effort duplicate heuristic category name.
const CategoryAssist = "assist"

// AssistFilter removes low-effort duplicates: comments carrying no command
// tokens posted at or after the cutoff. Its log groups ids by body and is
// sorted by duplicate count descending.
type AssistFilter struct {
	cutoff time.Time
	exempt ExemptFunc

	glog    *GroupedLog
	blocked int
}

// NewAssistFilter creates the assist category. A zero cutoff falls back to
// [models.DefaultAssistCutoff]; exempt may be nil.
func NewAssistFilter(cutoff time.Time, exempt ExemptFunc) *AssistFilter {
	if cutoff.IsZero() {
		cutoff = models.DefaultAssistCutoff
	}

	return &AssistFilter{
		cutoff: cutoff,
		exempt: exempt,
		glog:   NewGroupedLog(),
	}
}

// Name returns the category name.
func (f *AssistFilter) Name() string { return CategoryAssist }

// Activate is a no-op; the assist category carries no rules.
func (f *AssistFilter) Activate(_ *models.RunContext) {}

// Filtering claims command-less comments posted at or after the cutoff. The
// category is not strict-capable.
func (f *AssistFilter) Filtering(items []*models.Comment, st *State, strictOnly bool) {
	if strictOnly {
		return
	}

	for _, c := range items {
		if st.Removed(c.ID) {
			continue
		}

		if len(c.Commands) > 0 || c.PostedAt.Before(f.cutoff) {
			continue
		}

		if f.exempt != nil && f.exempt(c) {
			continue
		}

		if st.Claim(c) {
			f.blocked++
			f.glog.Add(CategoryAssist, c.Body, c.ID)
		}
	}
}

// SortLogs orders the body groups by duplicate count descending.
func (f *AssistFilter) SortLogs(cmp *Comparator) {
	SortGroupedByCount(f.glog, cmp)
}

// Report returns the category outcome.
func (f *AssistFilter) Report() Report {
	return Report{
		Category:     CategoryAssist,
		BlockedCount: f.blocked,
		Grouped:      f.glog,
	}
}
