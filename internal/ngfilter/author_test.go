package ngfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaner/nicofilter/internal/models"
)

func filterAuthors(f *AuthorFilter, ids ...string) *State {
	items := make([]*models.Comment, 0, len(ids))
	for i, id := range ids {
		items = append(items, &models.Comment{ID: string(rune('a' + i)), UserID: id})
	}

	st := NewState()
	f.Filtering(items, st, false)

	return st
}

func TestAuthorFilterPlainID(t *testing.T) {
	f := NewAuthorFilter("111\n222")
	f.Activate(&models.RunContext{})

	st := filterAuthors(f, "111", "333")

	assert.True(t, st.Removed("a"))
	assert.False(t, st.Removed("b"))
	assert.Equal(t, []string{"a"}, f.Report().Log.IDs("111"))
}

func TestAuthorFilterScopedID(t *testing.T) {
	f := NewAuthorFilter("sm9@42")

	t.Run("active on the scoped video", func(t *testing.T) {
		f.Activate(&models.RunContext{VideoID: "sm9"})
		st := filterAuthors(f, "42")

		assert.True(t, st.Removed("a"))
		assert.Equal(t, []string{"a"}, f.Report().Log.IDs("sm9@42"))
	})

	t.Run("inert elsewhere", func(t *testing.T) {
		f.Activate(&models.RunContext{VideoID: "sm10"})
		st := filterAuthors(f, "42")

		assert.False(t, st.Removed("a"))
	})
}

func TestAuthorFilterPattern(t *testing.T) {
	f := NewAuthorFilter("/^9[0-9]+$/")
	f.Activate(&models.RunContext{})

	st := filterAuthors(f, "912", "812")

	assert.True(t, st.Removed("a"))
	assert.False(t, st.Removed("b"))
}

func TestAuthorFilterWiden(t *testing.T) {
	f := NewAuthorFilter("111")
	f.Activate(&models.RunContext{})
	f.Widen([]string{"555", ""})

	st := filterAuthors(f, "555")

	assert.True(t, st.Removed("a"))
	// Widened ids log under their own id, not a rule key.
	assert.Equal(t, []string{"a"}, f.Report().Log.IDs("555"))
}

func TestAuthorFilterWidenSurvivesActivate(t *testing.T) {
	f := NewAuthorFilter("")
	f.Activate(&models.RunContext{})
	f.Widen([]string{"555"})
	f.Activate(&models.RunContext{})

	st := filterAuthors(f, "555")

	assert.True(t, st.Removed("a"))
}

func TestAuthorFilterSetAuthors(t *testing.T) {
	f := NewAuthorFilter("111\nsm9@42")
	f.Activate(&models.RunContext{VideoID: "sm9"})

	f.SetAuthors([]string{"222"})

	st := filterAuthors(f, "111", "222", "42")

	// Plain ids are replaced, scoped rules survive the refresh.
	assert.False(t, st.Removed("a"))
	assert.True(t, st.Removed("b"))
	assert.True(t, st.Removed("c"))
}

func TestAuthorFilterSkipsStrictPassAndAnonymous(t *testing.T) {
	f := NewAuthorFilter("111")
	f.Activate(&models.RunContext{})

	st := NewState()
	f.Filtering([]*models.Comment{{ID: "c1", UserID: "111"}}, st, true)
	assert.Zero(t, st.Len())

	f.Filtering([]*models.Comment{{ID: "c2", UserID: ""}}, st, false)
	assert.False(t, st.Removed("c2"))
}
