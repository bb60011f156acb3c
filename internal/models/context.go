package models

import "strings"

// RunContext is the read-only activation context for one filtering
// invocation: the tags and ids of the content the items belong to.
type RunContext struct {
	Tags     []string
	VideoID  string
	OwnerID  string
	SeriesID string

	// PromotionScope, when non-empty, scopes author ids promoted by strict
	// rules to this content id instead of blocking them globally.
	PromotionScope string
}

// HasTag reports whether tag is among the active tags. The comparison is
// case-insensitive.
func (c *RunContext) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	return false
}

// HasVideoID reports whether id is the current video id.
func (c *RunContext) HasVideoID(id string) bool { return c.VideoID != "" && c.VideoID == id }

// HasUserID reports whether id is the current content owner's user id.
func (c *RunContext) HasUserID(id string) bool { return c.OwnerID != "" && c.OwnerID == id }

// HasSeriesID reports whether id is the current series id.
func (c *RunContext) HasSeriesID(id string) bool { return c.SeriesID != "" && c.SeriesID == id }
