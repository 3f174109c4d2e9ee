package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/example/lesson-shop/internal/catalog"
)

var ErrCapacityExceeded = errors.New("no spaces left for lesson")

// Unit is one purchasable slot of a lesson. Subject, location and price are
// snapshotted at add time so the cart display stays correct even if the
// catalog changes afterwards. LessonID is a relation only, not ownership.
type Unit struct {
	LessonID string
	Subject  string
	Location string
	Price    decimal.Decimal
}

// Ledger is an ordered multiset of units, one entry per purchased unit.
// Insertion order carries no business meaning but is stable so index-based
// display and removal behave predictably.
type Ledger struct {
	mu    sync.RWMutex
	units []Unit
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// AddUnit appends one unit of the lesson after checking remaining capacity
// against the lesson's last-known spaces. A refused add mutates nothing and
// returns ErrCapacityExceeded for the caller to surface.
//
// The check is optimistic-local: it uses the spaces value the caller holds
// now and is not re-validated if a later refresh lowers capacity.
func (l *Ledger) AddUnit(lesson catalog.Lesson) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := lesson.Spaces - l.countLocked(lesson.ID)
	if remaining <= 0 {
		return ErrCapacityExceeded
	}

	l.units = append(l.units, Unit{
		LessonID: lesson.ID,
		Subject:  lesson.Subject,
		Location: lesson.Location,
		Price:    lesson.Price,
	})
	return nil
}

// RemoveUnit removes the first unit matching the lesson id. Units of the
// same lesson are fungible, so first-found is fine. Returns false when no
// unit matched.
func (l *Ledger) RemoveUnit(lessonID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, u := range l.units {
		if u.LessonID == lessonID {
			l.units = append(l.units[:i], l.units[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAllUnits removes every unit of the lesson and returns how many were
// removed.
func (l *Ledger) RemoveAllUnits(lessonID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.units[:0]
	removed := 0
	for _, u := range l.units {
		if u.LessonID == lessonID {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	l.units = kept
	return removed
}

// Clear empties the ledger. Used after a successful checkout.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.units = nil
}

// CountFor returns the current unit count for a lesson.
func (l *Ledger) CountFor(lessonID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.countLocked(lessonID)
}

func (l *Ledger) countLocked(lessonID string) int {
	n := 0
	for _, u := range l.units {
		if u.LessonID == lessonID {
			n++
		}
	}
	return n
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.units)
}

// Units returns a copy of the ledger in insertion order.
func (l *Ledger) Units() []Unit {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Unit, len(l.units))
	copy(out, l.units)
	return out
}
