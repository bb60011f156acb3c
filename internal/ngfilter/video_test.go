package ngfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaner/nicofilter/internal/models"
)

func TestVideoIDFilterLiteralShapes(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		video   models.Video
		wantHit bool
	}{
		{
			name:    "content id matches the video id",
			rule:    "sm9",
			video:   models.Video{ID: "sm9"},
			wantHit: true,
		},
		{
			name:    "content id shapes are exact",
			rule:    "sm9",
			video:   models.Video{ID: "sm99"},
			wantHit: false,
		},
		{
			name:    "numeric id matches the uploader",
			rule:    "123",
			video:   models.Video{ID: "sm9", UserID: "123"},
			wantHit: true,
		},
		{
			name:    "channel id matches the channel",
			rule:    "ch45",
			video:   models.Video{ID: "so77", ChannelID: "ch45"},
			wantHit: true,
		},
		{
			name:    "channel id ignores the uploader field",
			rule:    "ch45",
			video:   models.Video{ID: "so77", UserID: "ch45"},
			wantHit: false,
		},
		{
			name:    "unshaped literal falls back to the video id",
			rule:    "xyz",
			video:   models.Video{ID: "xyz"},
			wantHit: true,
		},
		{
			name:    "pattern matches the video id",
			rule:    "/^sm1[0-9]$/",
			video:   models.Video{ID: "sm15"},
			wantHit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewVideoIDFilter(tt.rule)
			f.Activate(&models.RunContext{})

			v := tt.video
			st := NewState()
			f.Filtering([]*models.Video{&v}, st)

			assert.Equal(t, tt.wantHit, st.Removed(v.ID))
		})
	}
}

func TestTitleFilter(t *testing.T) {
	f := NewTitleFilter("spoiler\n/^\\[ad\\]/i")
	f.Activate(&models.RunContext{})

	items := []*models.Video{
		{ID: "sm1", Title: "big spoiler inside"},
		{ID: "sm2", Title: "[AD] watch this"},
		{ID: "sm3", Title: "plain"},
		{ID: "sm4"},
	}

	st := NewState()
	f.Filtering(items, st)

	assert.True(t, st.Removed("sm1"))
	assert.True(t, st.Removed("sm2"))
	assert.False(t, st.Removed("sm3"))
	assert.False(t, st.Removed("sm4"))
	assert.Equal(t, 2, f.Report().BlockedCount)
}

func TestAuthorNameFilter(t *testing.T) {
	f := NewAuthorNameFilter("bot")
	f.Activate(&models.RunContext{})

	items := []*models.Video{
		{ID: "sm1", UserName: "somebot"},
		{ID: "sm2", UserName: "human"},
	}

	st := NewState()
	f.Filtering(items, st)

	assert.True(t, st.Removed("sm1"))
	assert.False(t, st.Removed("sm2"))
}

func TestPaidFilter(t *testing.T) {
	f := NewPaidFilter()
	f.Activate(&models.RunContext{})

	items := []*models.Video{
		{ID: "sm1", IsPaid: true},
		{ID: "sm2"},
	}

	st := NewState()
	f.Filtering(items, st)

	assert.True(t, st.Removed("sm1"))
	assert.False(t, st.Removed("sm2"))
	assert.Equal(t, []string{"sm1"}, f.Report().Log.IDs(CategoryPaid))
}

func TestViewsFilter(t *testing.T) {
	t.Run("below minimum removed", func(t *testing.T) {
		f := NewViewsFilter(1000)
		f.Activate(&models.RunContext{})

		items := []*models.Video{
			{ID: "sm1", ViewCount: 999},
			{ID: "sm2", ViewCount: 1000},
		}

		st := NewState()
		f.Filtering(items, st)

		assert.True(t, st.Removed("sm1"))
		assert.False(t, st.Removed("sm2"))
	})

	t.Run("non-positive minimum disables the category", func(t *testing.T) {
		f := NewViewsFilter(0)
		f.Activate(&models.RunContext{})

		st := NewState()
		f.Filtering([]*models.Video{{ID: "sm1", ViewCount: 0}}, st)

		assert.Zero(t, st.Len())
	})
}
