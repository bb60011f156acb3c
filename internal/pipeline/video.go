package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/AdguardTeam/golibs/logutil/slogutil"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ngfilter"
)

// VideoConfig configures one video filtering invocation.
type VideoConfig struct {
	// Logger is used for debug output. If nil, output is discarded.
	Logger *slog.Logger

	Settings models.VideoSettings

	// Rule texts per category.
	IDText         string
	TitleText      string
	AuthorNameText string
}

// Videos applies the video categories in their fixed priority order: id,
// title, author-name, paid, views.
type Videos struct {
	logger *slog.Logger
	set    models.VideoSettings

	id     *ngfilter.VideoIDFilter
	title  *ngfilter.TitleFilter
	author *ngfilter.AuthorNameFilter
	paid   *ngfilter.PaidFilter
	views  *ngfilter.ViewsFilter
}

// NewVideos compiles the rule texts and builds the category filters for one
// invocation. c must not be nil.
func NewVideos(c *VideoConfig) *Videos {
	logger := c.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	return &Videos{
		logger: logger,
		set:    c.Settings,
		id:     ngfilter.NewVideoIDFilter(c.IDText),
		title:  ngfilter.NewTitleFilter(c.TitleText),
		author: ngfilter.NewAuthorNameFilter(c.AuthorNameText),
		paid:   ngfilter.NewPaidFilter(),
		views:  ngfilter.NewViewsFilter(c.Settings.MinViewCount),
	}
}

// Run filters the video collection. Videos have no strict pass; the normal
// pass runs directly.
func (p *Videos) Run(
	ctx context.Context,
	rctx *models.RunContext,
	items []*models.Video,
) (res *VideoResult) {
	st := ngfilter.NewState()
	index := make(map[string]models.Item, len(items))
	for _, v := range items {
		index[v.ID] = v
	}

	var timings StageTimings

	p.id.Activate(rctx)
	p.title.Activate(rctx)
	p.author.Activate(rctx)

	start := time.Now()
	if p.set.IDEnabled {
		p.id.Filtering(items, st)
	}
	if p.set.TitleEnabled {
		p.title.Filtering(items, st)
	}
	if p.set.AuthorNameEnabled {
		p.author.Filtering(items, st)
	}
	if p.set.PaidEnabled {
		p.paid.Filtering(items, st)
	}
	if p.set.ViewsEnabled {
		p.views.Filtering(items, st)
	}
	timings.NormalPass = time.Since(start)

	start = time.Now()
	cmp := ngfilter.NewComparator(index, false)
	filters := []ngfilter.VideoFilter{p.id, p.title, p.author, p.paid, p.views}
	for _, f := range filters {
		f.SortLogs(cmp)
	}
	timings.LogSort = time.Since(start)

	surviving := make([]*models.Video, 0, len(items)-st.Len())
	for _, v := range items {
		if !st.Removed(v.ID) {
			surviving = append(surviving, v)
		}
	}

	reports := make([]ngfilter.Report, 0, len(filters))
	for _, f := range filters {
		reports = append(reports, f.Report())
	}

	p.logger.DebugContext(
		ctx,
		"video filtering done",
		"in", len(items),
		"removed", st.Len(),
	)

	return &VideoResult{
		Videos:  surviving,
		Removed: st.Items(),
		Reports: reports,
		Timings: timings,
	}
}
