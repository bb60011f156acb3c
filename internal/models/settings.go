package models

import "time"

// DefaultAssistCutoff is the posting-time floor for the low-effort duplicate
// heuristic: older comments predate the assist rollout and are left alone.
var DefaultAssistCutoff = time.Date(2021, time.October, 1, 0, 0, 0, 0, time.UTC)

// Settings is the per-invocation settings snapshot.
type Settings struct {
	HTTP    SourceConfig    `mapstructure:"http"`
	Comment CommentSettings `mapstructure:"comment"`
	Video   VideoSettings   `mapstructure:"video"`
}

// SourceConfig contains rule/item source loading settings.
type SourceConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// CommentSettings controls the comment filter categories.
type CommentSettings struct {
	AuthorEnabled   bool `mapstructure:"author_enabled"`
	CommandEnabled  bool `mapstructure:"command_enabled"`
	WordEnabled     bool `mapstructure:"word_enabled"`
	ScoreEnabled    bool `mapstructure:"score_enabled"`
	AssistEnabled   bool `mapstructure:"assist_enabled"`
	TierHideEnabled bool `mapstructure:"tier_hide_enabled"`

	// ScoreThreshold removes comments whose NG score is at or below it.
	ScoreThreshold int `mapstructure:"score_threshold"`

	// NicoruFloor is the engagement count at or above which a comment is
	// exempt from the score and assist categories.
	NicoruFloor        int  `mapstructure:"nicoru_floor"`
	ScoreNicoruExempt  bool `mapstructure:"score_nicoru_exempt"`
	AssistNicoruExempt bool `mapstructure:"assist_nicoru_exempt"`

	// AssistCutoff overrides [DefaultAssistCutoff] when non-zero.
	AssistCutoff time.Time `mapstructure:"assist_cutoff"`

	// ShowScore also orders log entries by score, the way the log display
	// does when scores are visible.
	ShowScore bool `mapstructure:"show_score"`
}

// VideoSettings controls the video filter categories.
type VideoSettings struct {
	IDEnabled         bool `mapstructure:"id_enabled"`
	TitleEnabled      bool `mapstructure:"title_enabled"`
	AuthorNameEnabled bool `mapstructure:"author_name_enabled"`
	PaidEnabled       bool `mapstructure:"paid_enabled"`
	ViewsEnabled      bool `mapstructure:"views_enabled"`

	// MinViewCount removes videos with fewer views when positive.
	MinViewCount int `mapstructure:"min_view_count"`
}
