package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
)

// TripRepository defines the persistence contract for trip aggregates, their
// append-only status ledger and their driver-expense line items.
type TripRepository interface {
	// Add persists a new trip aggregate to storage.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update persists changes to an existing trip aggregate.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Get retrieves a trip aggregate scoped to an organization.
	Get(ctx context.Context, id kernel.UUID, organizationID kernel.UUID) (*trip.Trip, error)

	// GetByOrderID retrieves all published trips of an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*trip.Trip, error)

	// GetActiveByOrderID retrieves the order's published trips whose cached
	// status is not Canceled. Used when cancellation walks every active trip.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) ([]*trip.Trip, error)

	// SumActiveWeight returns the total weight already allocated to the
	// order's non-cancelled trips. The order's remaining weight is its total
	// weight minus this sum.
	SumActiveWeight(ctx context.Context, orderID kernel.UUID) (float64, error)

	// AddStatusRecord appends one immutable entry to the trip's status ledger.
	// The (tripID, sequence) pair is protected by a unique constraint; a
	// violation surfaces as an already-exists error so concurrent writers for
	// the same trip cannot produce duplicate sequence numbers.
	AddStatusRecord(ctx context.Context, record *trip.StatusRecord) error

	// CountStatusRecords returns the number of ledger entries for a trip.
	// Sequence numbers are assigned as count+1 inside the same transaction
	// that performs the insert.
	CountStatusRecords(ctx context.Context, tripID kernel.UUID) (int, error)

	// GetStatusHistory returns the trip's ledger entries ordered by sequence.
	GetStatusHistory(ctx context.Context, tripID kernel.UUID) ([]*trip.StatusRecord, error)

	// ReplaceDriverExpenses deletes the trip's expense line items and inserts
	// the given replacements in one go.
	ReplaceDriverExpenses(ctx context.Context, tripID kernel.UUID, items []*trip.DriverExpense) error

	// GetDriverExpenses returns the trip's expense line items.
	GetDriverExpenses(ctx context.Context, tripID kernel.UUID) ([]*trip.DriverExpense, error)
}
