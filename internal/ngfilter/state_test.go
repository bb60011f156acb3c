package ngfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaner/nicofilter/internal/models"
)

func TestStateFirstClaimWins(t *testing.T) {
	st := NewState()
	c := &models.Comment{ID: "c1", Body: "first"}

	assert.True(t, st.Claim(c))
	assert.False(t, st.Claim(&models.Comment{ID: "c1", Body: "second"}))
	assert.True(t, st.Removed("c1"))
	assert.False(t, st.Removed("c2"))

	assert.Equal(t, 1, st.Len())
	assert.Same(t, models.Item(c), st.Items()["c1"])
}

func TestNicoruExempt(t *testing.T) {
	t.Run("non-positive floor exempts nothing", func(t *testing.T) {
		assert.Nil(t, NicoruExempt(0))
		assert.Nil(t, NicoruExempt(-1))
	})

	t.Run("floor is inclusive", func(t *testing.T) {
		exempt := NicoruExempt(30)

		assert.True(t, exempt(&models.Comment{NicoruCount: 30}))
		assert.True(t, exempt(&models.Comment{NicoruCount: 31}))
		assert.False(t, exempt(&models.Comment{NicoruCount: 29}))
	})
}
