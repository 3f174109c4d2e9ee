package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/lesson-shop/internal/catalog"
)

func lesson(id string, price int64, spaces int) catalog.Lesson {
	return catalog.Lesson{
		ID:       id,
		Subject:  "Subject " + id,
		Location: "Location " + id,
		Price:    decimal.NewFromInt(price),
		Spaces:   spaces,
	}
}

// ============================================
// AddUnit Tests
// ============================================

func TestLedger_AddUnit_SnapshotsLesson(t *testing.T) {
	ledger := NewLedger()

	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))

	units := ledger.Units()
	require.Len(t, units, 1)
	assert.Equal(t, "1", units[0].LessonID)
	assert.Equal(t, "Subject 1", units[0].Subject)
	assert.True(t, units[0].Price.Equal(decimal.NewFromInt(1000)))
}

func TestLedger_AddUnit_CapacityExceeded(t *testing.T) {
	ledger := NewLedger()
	l := lesson("5", 1200, 1)

	require.NoError(t, ledger.AddUnit(l))
	err := ledger.AddUnit(l)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 1, ledger.Len(), "refused add must not mutate the ledger")
}

func TestLedger_AddUnit_ZeroSpaces(t *testing.T) {
	ledger := NewLedger()

	err := ledger.AddUnit(lesson("1", 1000, 0))

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 0, ledger.Len())
}

// Lesson {id:5, spaces:1}: add succeeds, second add fails, remove frees the
// space, add succeeds again.
func TestLedger_AddRemoveAdd_Scenario(t *testing.T) {
	ledger := NewLedger()
	l := lesson("5", 1200, 1)

	require.NoError(t, ledger.AddUnit(l))
	assert.ErrorIs(t, ledger.AddUnit(l), ErrCapacityExceeded)

	assert.True(t, ledger.RemoveUnit("5"))
	require.NoError(t, ledger.AddUnit(l))
	assert.Equal(t, 1, ledger.CountFor("5"))
}

// CountFor never exceeds spaces at the time each add was accepted,
// regardless of the add/remove sequence.
func TestLedger_CapacityNeverExceeded(t *testing.T) {
	ledger := NewLedger()
	l := lesson("1", 1000, 3)

	for i := 0; i < 10; i++ {
		err := ledger.AddUnit(l)
		if ledger.CountFor("1") > l.Spaces {
			t.Fatalf("count %d exceeded spaces %d", ledger.CountFor("1"), l.Spaces)
		}
		if i >= 3 {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
		}
		if i%2 == 0 {
			ledger.RemoveUnit("1")
		}
	}
}

// ============================================
// Remove Tests
// ============================================

func TestLedger_RemoveUnit_FirstMatch(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))
	require.NoError(t, ledger.AddUnit(lesson("2", 900, 5)))
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))

	assert.True(t, ledger.RemoveUnit("1"))

	assert.Equal(t, 1, ledger.CountFor("1"))
	assert.Equal(t, 1, ledger.CountFor("2"))
	assert.Equal(t, 2, ledger.Len())
}

func TestLedger_RemoveUnit_NoMatch(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))

	assert.False(t, ledger.RemoveUnit("99"))
	assert.Equal(t, 1, ledger.Len())
}

func TestLedger_RemoveAllUnits(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))
	require.NoError(t, ledger.AddUnit(lesson("2", 900, 5)))
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))

	removed := ledger.RemoveAllUnits("1")

	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, ledger.CountFor("1"))
	assert.Equal(t, 1, ledger.Len())
}

func TestLedger_Clear(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))
	require.NoError(t, ledger.AddUnit(lesson("2", 900, 5)))

	ledger.Clear()

	assert.Equal(t, 0, ledger.Len())
	assert.Empty(t, ledger.Units())
}

// Adding N units then removing N units of the same lesson returns the
// ledger to its prior multiset.
func TestLedger_AddRemoveRoundTrip(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddUnit(lesson("2", 900, 5)))
	before := ledger.Units()

	l := lesson("1", 1000, 4)
	for i := 0; i < 4; i++ {
		require.NoError(t, ledger.AddUnit(l))
	}
	for i := 0; i < 4; i++ {
		assert.True(t, ledger.RemoveUnit("1"))
	}

	assert.Equal(t, before, ledger.Units())
	assert.Equal(t, 0, ledger.CountFor("1"))
}

func TestLedger_UnitsReturnsCopy(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddUnit(lesson("1", 1000, 5)))

	units := ledger.Units()
	units[0].LessonID = "hacked"

	assert.Equal(t, 1, ledger.CountFor("1"))
}
