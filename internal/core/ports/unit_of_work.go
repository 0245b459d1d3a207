package ports

import (
	"context"
	"time"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and hands out repositories bound to the current
// transaction, so all writes in one lifecycle operation share one atomic
// unit of work. Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// BeginWithTimeout starts a new database transaction whose statements run
	// under the given deadline. Used by the trip allocator, whose budget
	// scales with the requested trip count.
	BeginWithTimeout(ctx context.Context, timeout time.Duration) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// TripRepository returns a TripRepository bound to the current transaction.
	TripRepository() TripRepository

	// NotificationRepository returns a NotificationRepository bound to the
	// current transaction.
	NotificationRepository() NotificationRepository

	// DriverReportRepository returns a DriverReportRepository bound to the
	// current transaction.
	DriverReportRepository() DriverReportRepository
}
