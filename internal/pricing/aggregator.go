package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/example/lesson-shop/internal/cart"
	"github.com/example/lesson-shop/internal/catalog"
)

// vatRate is the fixed 15% VAT applied on top of the subtotal.
var vatRate = decimal.RequireFromString("0.15")

// GroupedEntry collapses the cart units of one lesson into a single
// quantity line. Derived on demand, never stored.
type GroupedEntry struct {
	LessonID string
	Subject  string
	Location string
	Price    decimal.Decimal
	Qty      int
}

// Aggregator derives view state from the catalog store and the cart ledger.
// It only reads; every value is recomputed on each call so no mutation can
// leave a stale cache behind.
type Aggregator struct {
	catalog *catalog.Store
	ledger  *cart.Ledger
}

func NewAggregator(store *catalog.Store, ledger *cart.Ledger) *Aggregator {
	return &Aggregator{catalog: store, ledger: ledger}
}

// GroupedEntries returns one entry per distinct lesson in the ledger, in
// order of first appearance. Entries with qty 0 are never materialized.
func (a *Aggregator) GroupedEntries() []GroupedEntry {
	units := a.ledger.Units()

	entries := make([]GroupedEntry, 0, len(units))
	byID := make(map[string]int, len(units))
	for _, u := range units {
		if i, ok := byID[u.LessonID]; ok {
			entries[i].Qty++
			continue
		}
		byID[u.LessonID] = len(entries)
		entries = append(entries, GroupedEntry{
			LessonID: u.LessonID,
			Subject:  u.Subject,
			Location: u.Location,
			Price:    u.Price,
			Qty:      1,
		})
	}
	return entries
}

// RemainingCapacity returns the lesson's spaces minus the units already in
// the cart, floored at zero. When a refresh lowers spaces below the carted
// count the result floors at 0 and the ledger is left alone; the conflict
// surfaces at the next add or checkout attempt.
func (a *Aggregator) RemainingCapacity(lessonID string) int {
	lesson, ok := a.catalog.Get(lessonID)
	if !ok {
		return 0
	}
	remaining := lesson.Spaces - a.ledger.CountFor(lessonID)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Subtotal sums price*qty over the grouped entries using the snapshotted
// unit prices, not the live catalog prices.
func (a *Aggregator) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range a.GroupedEntries() {
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.Qty))))
	}
	return total
}

func (a *Aggregator) VAT() decimal.Decimal {
	return a.Subtotal().Mul(vatRate)
}

func (a *Aggregator) GrandTotal() decimal.Decimal {
	subtotal := a.Subtotal()
	return subtotal.Add(subtotal.Mul(vatRate))
}

// Display helpers round to two decimal places. Intermediate sums are kept
// in full precision; rounding happens only here.

func (a *Aggregator) DisplaySubtotal() string   { return a.Subtotal().StringFixed(2) }
func (a *Aggregator) DisplayVAT() string        { return a.VAT().StringFixed(2) }
func (a *Aggregator) DisplayGrandTotal() string { return a.GrandTotal().StringFixed(2) }
