package ngfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaner/nicofilter/internal/models"
)

func TestTierHideFilter(t *testing.T) {
	f := NewTierHideFilter()
	f.Activate(&models.RunContext{})

	items := []*models.Comment{
		{ID: "c1", Fork: models.ForkEasy},
		{ID: "c2", Fork: models.ForkMain},
		{ID: "c3", Fork: models.ForkOwner},
		{ID: "c4", Fork: models.ForkEasy},
	}

	st := NewState()
	f.Filtering(items, st, false)

	assert.True(t, st.Removed("c1"))
	assert.False(t, st.Removed("c2"))
	assert.False(t, st.Removed("c3"))
	assert.True(t, st.Removed("c4"))

	r := f.Report()
	assert.Equal(t, 2, r.BlockedCount)
	assert.Equal(t, []string{"c1", "c4"}, r.Log.IDs(models.ForkEasy))
}

func TestTierHideFilterSkipsStrictPass(t *testing.T) {
	f := NewTierHideFilter()
	f.Activate(&models.RunContext{})

	st := NewState()
	f.Filtering([]*models.Comment{{ID: "c1", Fork: models.ForkEasy}}, st, true)

	assert.Zero(t, st.Len())
}
