package remote

import (
	"context"

	"github.com/example/lesson-shop/internal/catalog"
)

// Sort keys and directions understood by the lessons service. Sorting is
// server-delegated; the engine only passes these through.
const (
	SortSubject  = "subject"
	SortLocation = "location"
	SortPrice    = "price"
	SortSpaces   = "spaces"

	DirAsc  = "asc"
	DirDesc = "desc"
)

// OrderItem is one grouped (lesson, quantity) line of an order request.
type OrderItem struct {
	LessonID string `json:"lessonId"`
	Qty      int    `json:"qty"`
}

// OrderRequest is the body of POST /orders. Reference is a client-generated
// UUID so a retry after a transport failure is distinguishable server-side.
type OrderRequest struct {
	Reference string      `json:"reference"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Items     []OrderItem `json:"items"`
}

// Service is the remote catalog/order contract the engine consumes. The
// service is the authority for durable capacity and order records; the
// engine's own capacity view is an optimistic local approximation.
type Service interface {
	// FetchLessons returns the full listing, server-sorted.
	FetchLessons(ctx context.Context, sort, dir string) ([]catalog.Lesson, error)
	// SearchLessons returns the filtered listing, server-sorted.
	SearchLessons(ctx context.Context, query, sort, dir string) ([]catalog.Lesson, error)
	// CreateOrder submits an order. Any error means nothing was committed
	// from the engine's point of view.
	CreateOrder(ctx context.Context, req OrderRequest) error
	// UpdateSpaces sets a lesson's authoritative capacity. Best-effort:
	// the checkout orchestrator ignores failures.
	UpdateSpaces(ctx context.Context, lessonID string, spaces int) error
}
