package pipeline

import (
	"time"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ngfilter"
)

// StageTimings holds elapsed time per pipeline stage. The values are opaque
// telemetry for display; nothing in the engine branches on them.
type StageTimings struct {
	TierHide       time.Duration
	StrictPass     time.Duration
	PromotionMerge time.Duration
	NormalPass     time.Duration
	LogSort        time.Duration
}

// CommentResult is the aggregate outcome of one comment filtering
// invocation. It is self-contained: the caller extracts what it needs and
// discards it.
type CommentResult struct {
	// Comments holds the surviving items in their original order.
	Comments []*models.Comment

	// Removed maps each removed item id to its snapshot; the first category
	// to remove an item owns the entry.
	Removed map[string]models.Item

	// Promoted lists the author entries added by strict promotion, in the
	// form they were persisted, so an undo can remove exactly this set.
	Promoted []string

	// Reports holds one entry per category in pipeline order.
	Reports []ngfilter.Report

	Timings StageTimings
}

// VideoResult is the aggregate outcome of one video filtering invocation.
type VideoResult struct {
	Videos  []*models.Video
	Removed map[string]models.Item
	Reports []ngfilter.Report
	Timings StageTimings
}
