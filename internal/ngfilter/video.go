package ngfilter

import (
	"regexp"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ruleset"
)

// Video category names.
const (
	CategoryVideoID    = "video-id"
	CategoryTitle      = "title"
	CategoryAuthorName = "author-name"
	CategoryPaid       = "paid"
	CategoryViews      = "views"
)

// Literal id shapes the video-id category recognizes without a user-authored
// pattern.
var (
	reUserIDShape  = regexp.MustCompile(`^[0-9]+$`)
	reChannelShape = regexp.MustCompile(`^ch[0-9]+$`)
	reContentShape = regexp.MustCompile(`^(?:sm|so|nm)[0-9]+$`)
)

// VideoIDFilter blocks videos by id. A literal rule that looks like a
// numeric user id, a channel id, or a content id matches the corresponding
// field exactly; any other rule falls back to matching the content id.
type VideoIDFilter struct {
	ruleFilter

	log *MatchLog
}

// NewVideoIDFilter compiles the blocked-id rule text.
func NewVideoIDFilter(text string) *VideoIDFilter {
	return &VideoIDFilter{
		ruleFilter: newRuleFilter(CategoryVideoID, text),
		log:        NewMatchLog(),
	}
}

// Filtering claims videos matched by an id rule.
func (f *VideoIDFilter) Filtering(items []*models.Video, st *State) {
	for _, v := range items {
		if st.Removed(v.ID) {
			continue
		}

		for _, r := range f.active {
			if !matchVideoID(r, v) {
				continue
			}

			if st.Claim(v) {
				f.blocked++
				f.log.Add(r.Key(), v.ID)
			}

			break
		}
	}
}

// matchVideoID resolves the literal id shapes before falling back to the
// rule's ordinary matcher.
func matchVideoID(r *ruleset.Rule, v *models.Video) bool {
	if r.IsPattern() {
		return r.MatchID(v.ID)
	}

	lit := r.Literal
	switch {
	case reContentShape.MatchString(lit):
		return v.ID == lit
	case reChannelShape.MatchString(lit):
		return v.ChannelID == lit
	case reUserIDShape.MatchString(lit):
		return v.UserID == lit
	default:
		return v.ID == lit
	}
}

// SortLogs applies the display ordering to the match log.
func (f *VideoIDFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, f.rules, cmp)
}

// Report returns the category outcome.
func (f *VideoIDFilter) Report() Report {
	r := f.report()
	r.Log = f.log

	return r
}

// textVideoFilter is the shared shape of the title and author-name
// categories: free-text matching against one field of the video.
type textVideoFilter struct {
	ruleFilter

	log   *MatchLog
	field func(v *models.Video) string
}

// Filtering claims videos whose selected field matches a rule.
func (f *textVideoFilter) Filtering(items []*models.Video, st *State) {
	for _, v := range items {
		if st.Removed(v.ID) {
			continue
		}

		text := f.field(v)
		if text == "" {
			continue
		}

		for _, r := range f.active {
			if !r.MatchText(text) {
				continue
			}

			if st.Claim(v) {
				f.blocked++
				f.log.Add(r.Key(), v.ID)
			}

			break
		}
	}
}

// SortLogs applies the display ordering to the match log.
func (f *textVideoFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, f.rules, cmp)
}

// Report returns the category outcome.
func (f *textVideoFilter) Report() Report {
	r := f.report()
	r.Log = f.log

	return r
}

// TitleFilter blocks videos whose title matches a rule.
type TitleFilter struct {
	textVideoFilter
}

// NewTitleFilter compiles the blocked-title rule text.
func NewTitleFilter(text string) *TitleFilter {
	return &TitleFilter{textVideoFilter{
		ruleFilter: newRuleFilter(CategoryTitle, text),
		log:        NewMatchLog(),
		field:      func(v *models.Video) string { return v.Title },
	}}
}

// AuthorNameFilter blocks videos whose author name matches a rule.
type AuthorNameFilter struct {
	textVideoFilter
}

// NewAuthorNameFilter compiles the blocked-author-name rule text.
func NewAuthorNameFilter(text string) *AuthorNameFilter {
	return &AuthorNameFilter{textVideoFilter{
		ruleFilter: newRuleFilter(CategoryAuthorName, text),
		log:        NewMatchLog(),
		field:      func(v *models.Video) string { return v.UserName },
	}}
}

// PaidFilter removes payment-flagged videos.
type PaidFilter struct {
	log     *MatchLog
	blocked int
}

// NewPaidFilter creates the paid category.
func NewPaidFilter() *PaidFilter {
	return &PaidFilter{log: NewMatchLog()}
}

// Name returns the category name.
func (f *PaidFilter) Name() string { return CategoryPaid }

// Activate is a no-op; the paid category carries no rules.
func (f *PaidFilter) Activate(_ *models.RunContext) {}

// Filtering claims paid videos.
func (f *PaidFilter) Filtering(items []*models.Video, st *State) {
	for _, v := range items {
		if st.Removed(v.ID) || !v.IsPaid {
			continue
		}

		if st.Claim(v) {
			f.blocked++
			f.log.Add(CategoryPaid, v.ID)
		}
	}
}

// SortLogs applies the display ordering to the match log.
func (f *PaidFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, nil, cmp)
}

// Report returns the category outcome.
func (f *PaidFilter) Report() Report {
	return Report{Category: CategoryPaid, BlockedCount: f.blocked, Log: f.log}
}

// ViewsFilter removes videos with fewer views than the configured minimum.
// A non-positive minimum disables the category.
type ViewsFilter struct {
	min     int
	log     *MatchLog
	blocked int
}

// NewViewsFilter creates the view-count category.
func NewViewsFilter(minViews int) *ViewsFilter {
	return &ViewsFilter{min: minViews, log: NewMatchLog()}
}

// Name returns the category name.
func (f *ViewsFilter) Name() string { return CategoryViews }

// Activate is a no-op; the views category carries no rules.
func (f *ViewsFilter) Activate(_ *models.RunContext) {}

// Filtering claims videos below the view-count minimum.
func (f *ViewsFilter) Filtering(items []*models.Video, st *State) {
	if f.min <= 0 {
		return
	}

	for _, v := range items {
		if st.Removed(v.ID) || v.ViewCount >= f.min {
			continue
		}

		if st.Claim(v) {
			f.blocked++
			f.log.Add(CategoryViews, v.ID)
		}
	}
}

// SortLogs applies the display ordering to the match log.
func (f *ViewsFilter) SortLogs(cmp *Comparator) {
	SortMatchLog(f.log, nil, cmp)
}

// Report returns the category outcome.
func (f *ViewsFilter) Report() Report {
	return Report{Category: CategoryViews, BlockedCount: f.blocked, Log: f.log}
}
