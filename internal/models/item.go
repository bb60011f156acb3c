package models

import "time"

// Item is the minimal view of a filterable entity shared by the removed-item
// map and the log sorter.
type Item interface {
	Key() string
	DisplayText() string
	ScoreValue() int
}

// Fork values for Comment.Fork.
const (
	ForkMain  = "main"
	ForkOwner = "owner"
	ForkEasy  = "easy"
)

// Comment represents a single comment from a thread response.
type Comment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Body        string    `json:"body"`
	Commands    []string  `json:"commands"`
	NicoruCount int       `json:"nicoruCount"`
	Score       int       `json:"score"`
	PostedAt    time.Time `json:"postedAt"`
	Fork        string    `json:"fork"`
}

// Key returns the comment id.
func (c *Comment) Key() string { return c.ID }

// DisplayText returns the comment body.
func (c *Comment) DisplayText() string { return c.Body }

// ScoreValue returns the NG score of the comment.
func (c *Comment) ScoreValue() int { return c.Score }

// Video represents a single recommended video entry.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	UserID    string `json:"userId"`
	ChannelID string `json:"channelId"`
	UserName  string `json:"userName"`
	IsPaid    bool   `json:"isPaid"`
	ViewCount int    `json:"viewCount"`
}

// Key returns the video content id.
func (v *Video) Key() string { return v.ID }

// DisplayText returns the video title.
func (v *Video) DisplayText() string { return v.Title }

// ScoreValue always returns zero; videos carry no NG score.
func (v *Video) ScoreValue() int { return 0 }
