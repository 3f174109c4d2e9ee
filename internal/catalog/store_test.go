package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonFixture(id, subject string, spaces int) Lesson {
	return Lesson{
		ID:       id,
		Subject:  subject,
		Location: "Port Louis",
		Price:    decimal.NewFromInt(1000),
		Spaces:   spaces,
	}
}

func TestStore_ReplaceAndGet(t *testing.T) {
	store := NewStore()
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, uint64(0), store.Version())

	store.Replace([]Lesson{
		lessonFixture("1", "Mathematics", 5),
		lessonFixture("2", "English Skills", 5),
	})

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, uint64(1), store.Version())

	l, ok := store.Get("2")
	require.True(t, ok)
	assert.Equal(t, "English Skills", l.Subject)

	_, ok = store.Get("99")
	assert.False(t, ok)
}

func TestStore_ReplaceOverwritesWholeListing(t *testing.T) {
	store := NewStore()
	store.Replace([]Lesson{lessonFixture("1", "Mathematics", 5)})
	store.Replace([]Lesson{lessonFixture("2", "Science Lab", 5)})

	assert.Equal(t, uint64(2), store.Version())
	_, ok := store.Get("1")
	assert.False(t, ok)
	_, ok = store.Get("2")
	assert.True(t, ok)
}

func TestStore_LessonsReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Replace([]Lesson{lessonFixture("1", "Mathematics", 5)})

	out := store.Lessons()
	out[0].Spaces = 0

	l, ok := store.Get("1")
	require.True(t, ok)
	assert.Equal(t, 5, l.Spaces)
}

func TestStore_ReplaceCopiesInput(t *testing.T) {
	store := NewStore()
	in := []Lesson{lessonFixture("1", "Mathematics", 5)}
	store.Replace(in)

	in[0].Spaces = 0

	l, _ := store.Get("1")
	assert.Equal(t, 5, l.Spaces)
}
