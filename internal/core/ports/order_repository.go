package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status ledger. Ledger entries are written only through
// AddStatusRecord; they are never updated or deleted.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Ledger entries
	// are not touched; only the row fields (including the cached status) are.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate scoped to an organization.
	Get(ctx context.Context, id kernel.UUID, organizationID kernel.UUID) (*order.Order, error)

	// AddStatusRecord appends one immutable entry to the order's status ledger.
	AddStatusRecord(ctx context.Context, record *order.StatusRecord) error

	// GetStatusHistory returns the order's ledger entries ordered by creation time.
	GetStatusHistory(ctx context.Context, orderID kernel.UUID) ([]*order.StatusRecord, error)
}
