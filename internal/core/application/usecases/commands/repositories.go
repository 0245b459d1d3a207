// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, exclusivity check,
// transaction management, persistence, and post-commit notification fan-out.
package commands

import (
	"context"
	"time"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	//
	// Repositories handed out by a unit of work run against the base
	// connection until Begin is called, which is what lets handlers perform
	// the exclusivity pre-check before any transaction opens.
	TxManager interface {
		Begin(ctx context.Context) error
		BeginWithTimeout(ctx context.Context, timeout time.Duration) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TripRepoFactory provides access to the trip repository within a transaction.
	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	// DriverReportRepoFactory provides access to the driver-report lookup
	// within a transaction.
	DriverReportRepoFactory interface {
		DriverReportRepository() ports.DriverReportRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates and their ledger.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TripUoW manages transactions for trip-only operations.
	// Used when commands only modify trip aggregates and their ledger.
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	// TripUoWFactory creates new trip unit of work instances.
	TripUoWFactory interface {
		Create() TripUoW
	}

	// TripReportUoW manages transactions for trip-status operations that stamp
	// ledger entries with the organization's driver-report checklist step.
	TripReportUoW interface {
		TxManager
		TripRepoFactory
		DriverReportRepoFactory
	}

	// TripReportUoWFactory creates new trip-report unit of work instances.
	TripReportUoWFactory interface {
		Create() TripReportUoW
	}

	// UoW manages transactions across both order and trip aggregates.
	// Used for commands that coordinate changes between multiple aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   tripRepo := uow.TripRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		TripRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
