package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("SplitsItemsAcrossPages", func(t *testing.T) {
		p := New(1, 10, 13)
		assert.Equal(t, 1, p.Number)
		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasPrev)
		assert.True(t, p.HasNext)
		assert.Equal(t, 0, p.Offset())

		p = New(2, 10, 13)
		assert.Equal(t, 2, p.Number)
		assert.True(t, p.HasPrev)
		assert.False(t, p.HasNext)
		assert.Equal(t, 10, p.Offset())
	})

	t.Run("ClampsOutOfRangePages", func(t *testing.T) {
		p := New(99, 10, 13)
		assert.Equal(t, 2, p.Number)

		p = New(-5, 10, 13)
		assert.Equal(t, 1, p.Number)
	})

	t.Run("EmptyResultYieldsSinglePage", func(t *testing.T) {
		p := New(3, 10, 0)
		assert.Equal(t, 1, p.Number)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasPrev)
		assert.False(t, p.HasNext)
	})

	t.Run("ExactMultiple", func(t *testing.T) {
		p := New(2, 10, 20)
		assert.Equal(t, 2, p.TotalPages)
		assert.Equal(t, 2, p.Number)
		assert.False(t, p.HasNext)
	})
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-2"))
	assert.Equal(t, 7, ParsePage("7"))
}
