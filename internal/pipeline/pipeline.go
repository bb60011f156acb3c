// Package pipeline sequences the category filters: tier-hide, then the
// strict-only pass, the promotion merge, the ordered normal pass, and the
// final log sort. Stage order is load-bearing: the first category in
// priority order that matches an item is the one that logs and counts it.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/AdguardTeam/golibs/logutil/slogutil"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ngfilter"
)

// Store persists the author-id rule text when strict promotions occur, so
// promotions survive restarts. Implementations live outside the engine.
type Store interface {
	SaveAuthorRules(ctx context.Context, text string) (err error)
}

// CommentConfig configures one comment filtering invocation.
type CommentConfig struct {
	// Logger is used for debug output. If nil, output is discarded.
	Logger *slog.Logger

	// Store receives the widened author rule text after a promotion merge.
	// Optional.
	Store Store

	Settings models.CommentSettings

	// Rule texts per category.
	AuthorText  string
	CommandText string
	WordText    string
}

// Comments applies the comment categories in their fixed priority order:
// author, assist, score, command, word.
type Comments struct {
	logger *slog.Logger
	store  Store
	set    models.CommentSettings

	authorText string

	tier    *ngfilter.TierHideFilter
	author  *ngfilter.AuthorFilter
	assist  *ngfilter.AssistFilter
	score   *ngfilter.ScoreFilter
	command *ngfilter.CommandFilter
	word    *ngfilter.WordFilter
}

// NewComments compiles the rule texts and builds the category filters for
// one invocation. c must not be nil.
func NewComments(c *CommentConfig) *Comments {
	logger := c.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	set := c.Settings
	exempt := ngfilter.NicoruExempt(set.NicoruFloor)

	scoreExempt := ngfilter.ExemptFunc(nil)
	if set.ScoreNicoruExempt {
		scoreExempt = exempt
	}

	assistExempt := ngfilter.ExemptFunc(nil)
	if set.AssistNicoruExempt {
		assistExempt = exempt
	}

	return &Comments{
		logger:     logger,
		store:      c.Store,
		set:        set,
		authorText: c.AuthorText,
		tier:       ngfilter.NewTierHideFilter(),
		author:     ngfilter.NewAuthorFilter(c.AuthorText),
		assist:     ngfilter.NewAssistFilter(set.AssistCutoff, assistExempt),
		score:      ngfilter.NewScoreFilter(set.ScoreThreshold, scoreExempt),
		command:    ngfilter.NewCommandFilter(c.CommandText),
		word:       ngfilter.NewWordFilter(c.WordText),
	}
}

// Run filters the comment collection. It is synchronous and runs each stage
// to completion in order; a disabled category simply skips its filtering
// call.
func (p *Comments) Run(
	ctx context.Context,
	rctx *models.RunContext,
	items []*models.Comment,
) (res *CommentResult) {
	st := ngfilter.NewState()
	index := make(map[string]models.Item, len(items))
	for _, c := range items {
		index[c.ID] = c
	}

	var timings StageTimings

	start := time.Now()
	if p.set.TierHideEnabled {
		p.tier.Filtering(items, st, false)
	}
	timings.TierHide = time.Since(start)

	p.author.Activate(rctx)
	p.command.Activate(rctx)
	p.word.Activate(rctx)

	start = time.Now()
	if p.set.WordEnabled {
		p.word.Filtering(items, st, true)
	}
	if p.set.CommandEnabled {
		p.command.Filtering(items, st, true)
	}
	timings.StrictPass = time.Since(start)

	start = time.Now()
	promoted := unionAuthors(p.word.PromotedAuthors(), p.command.PromotedAuthors())
	entries := promotionEntries(promoted, rctx.PromotionScope)
	if len(promoted) > 0 {
		p.author.Widen(promoted)

		if p.store != nil {
			text := AppendAuthorRules(p.authorText, entries)
			if err := p.store.SaveAuthorRules(ctx, text); err != nil {
				p.logger.WarnContext(ctx, "persisting promoted authors", "err", err)
			}
		}

		p.logger.DebugContext(ctx, "strict promotion", "authors", len(promoted))
	}
	timings.PromotionMerge = time.Since(start)

	start = time.Now()
	if p.set.AuthorEnabled {
		p.author.Filtering(items, st, false)
	}
	if p.set.AssistEnabled {
		p.assist.Filtering(items, st, false)
	}
	if p.set.ScoreEnabled {
		p.score.Filtering(items, st, false)
	}
	if p.set.CommandEnabled {
		p.command.Filtering(items, st, false)
	}
	if p.set.WordEnabled {
		p.word.Filtering(items, st, false)
	}
	timings.NormalPass = time.Since(start)

	start = time.Now()
	cmp := ngfilter.NewComparator(index, p.set.ShowScore)
	filters := []ngfilter.CommentFilter{
		p.tier, p.author, p.assist, p.score, p.command, p.word,
	}
	for _, f := range filters {
		f.SortLogs(cmp)
	}
	timings.LogSort = time.Since(start)

	surviving := make([]*models.Comment, 0, len(items)-st.Len())
	for _, c := range items {
		if !st.Removed(c.ID) {
			surviving = append(surviving, c)
		}
	}

	reports := make([]ngfilter.Report, 0, len(filters))
	for _, f := range filters {
		reports = append(reports, f.Report())
	}

	p.logger.DebugContext(
		ctx,
		"comment filtering done",
		"in", len(items),
		"removed", st.Len(),
	)

	return &CommentResult{
		Comments: surviving,
		Removed:  st.Items(),
		Promoted: entries,
		Reports:  reports,
		Timings:  timings,
	}
}

// unionAuthors merges the per-category promotion sets preserving discovery
// order.
func unionAuthors(sets ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, set := range sets {
		for _, id := range set {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	return out
}

// promotionEntries renders promoted author ids the way they are persisted:
// scoped to the promotion scope when one is set, bare otherwise.
func promotionEntries(ids []string, scope string) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if scope != "" {
			out = append(out, scope+"@"+id)
		} else {
			out = append(out, id)
		}
	}

	return out
}
