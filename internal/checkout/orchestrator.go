package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/lesson-shop/internal/cart"
	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/pricing"
	"github.com/example/lesson-shop/internal/remote"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidName      = errors.New("name must contain letters and spaces only")
	ErrInvalidPhone     = errors.New("phone must be 8 digits with an optional +230 prefix")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z ]+$`)
	phonePattern = regexp.MustCompile(`^(?:\+?230[\s-]?)?\d{8}$`)
)

// ValidName reports whether the contact name passes the alphabetic-with-
// spaces check.
func ValidName(name string) bool { return namePattern.MatchString(name) }

// ValidPhone accepts 8 local digits, optionally prefixed with +230 and a
// space or dash.
func ValidPhone(phone string) bool { return phonePattern.MatchString(phone) }

// Orchestrator runs the order-submission protocol: validate, create the
// order, best-effort decrement remote capacity per lesson, then clear the
// cart and resynchronize the catalog.
//
// The order-creation call is the system of record. If it fails the whole
// checkout fails with the cart untouched and no decrement is issued. Once
// it succeeds, individual decrement failures are logged and swallowed; the
// local catalog is merely stale until the next refresh.
type Orchestrator struct {
	service remote.Service
	ledger  *cart.Ledger
	agg     *pricing.Aggregator
	catalog *catalog.Store
	refresh func(ctx context.Context) error
	logger  *zap.Logger

	mu   sync.Mutex
	busy bool
}

// NewOrchestrator wires the orchestrator. refresh is called after a
// successful checkout to resynchronize the catalog; nil disables it.
func NewOrchestrator(
	svc remote.Service,
	ledger *cart.Ledger,
	agg *pricing.Aggregator,
	store *catalog.Store,
	refresh func(ctx context.Context) error,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		service: svc,
		ledger:  ledger,
		agg:     agg,
		catalog: store,
		refresh: refresh,
		logger:  logger,
	}
}

// Busy reports whether a checkout is currently in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Submit runs one checkout. Validation failures and a second call while a
// checkout is in flight are reported without any network traffic.
func (o *Orchestrator) Submit(ctx context.Context, name, phone string) error {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return ErrCheckoutInFlight
	}
	o.busy = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	if o.ledger.Len() == 0 {
		return ErrEmptyCart
	}
	if !ValidName(name) {
		return ErrInvalidName
	}
	if !ValidPhone(phone) {
		return ErrInvalidPhone
	}

	entries := o.agg.GroupedEntries()
	items := make([]remote.OrderItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, remote.OrderItem{LessonID: e.LessonID, Qty: e.Qty})
	}

	req := remote.OrderRequest{
		Reference: uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Items:     items,
	}
	if err := o.service.CreateOrder(ctx, req); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	o.logger.Info("order created",
		zap.String("reference", req.Reference),
		zap.Int("lines", len(items)))

	o.reconcile(ctx, entries)
	o.ledger.Clear()

	if o.refresh != nil {
		// The order is already committed remotely; a failed refresh only
		// leaves the local catalog stale.
		if err := o.refresh(ctx); err != nil {
			o.logger.Warn("catalog refresh after checkout failed", zap.Error(err))
		}
	}
	return nil
}

// reconcile pushes spaces-minus-qty per distinct lesson. Each call is
// independent and best-effort.
func (o *Orchestrator) reconcile(ctx context.Context, entries []pricing.GroupedEntry) {
	for _, e := range entries {
		lesson, ok := o.catalog.Get(e.LessonID)
		if !ok {
			continue
		}
		spaces := lesson.Spaces - e.Qty
		if spaces < 0 {
			spaces = 0
		}
		if err := o.service.UpdateSpaces(ctx, e.LessonID, spaces); err != nil {
			o.logger.Warn("capacity decrement failed",
				zap.String("lesson_id", e.LessonID),
				zap.Int("spaces", spaces),
				zap.Error(err))
		}
	}
}
