// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work owns one business transaction and hands out
// repositories bound to it, so every write of a lifecycle operation lands in
// the same atomic transaction.
//
// Repositories resolve their connection lazily on every call: before Begin
// they run against the base connection, and once a transaction is open their
// operations execute inside it. Command handlers rely on this to perform
// their exclusivity pre-check before Begin and keep using the same repository
// for transactional writes afterwards.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/notificationrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/reportrepo"
	"freight/internal/adapters/out/postgres/triprepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all created
// instances; each instance opens its own transaction.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and aggregate
// tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. It implements the Unit of Work pattern on
// top of GORM's transaction support.
//
// The tracked aggregates enable patterns like domain event publishing after
// successful commits or implementing the outbox pattern.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	cancel            context.CancelFunc
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create
// nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// BeginWithTimeout starts a transaction whose statements run under the given
// deadline. The trip allocator uses this with a budget that scales with the
// requested trip count.
func (uow *GormUnitOfWork) BeginWithTimeout(ctx context.Context, timeout time.Duration) error {
	if uow.tx != nil {
		return nil
	}

	txCtx, cancel := context.WithTimeout(ctx, timeout)
	if err := uow.Begin(txCtx); err != nil {
		cancel()
		return err
	}
	uow.cancel = cancel

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.close()
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.close()
	return err
}

func (uow *GormUnitOfWork) close() {
	uow.tx = nil
	if uow.cancel != nil {
		uow.cancel()
		uow.cancel = nil
	}
}

// conn returns the active transaction if one is open, otherwise the base
// connection for immediate execution.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides access to order persistence operations within the
// unit of work. The returned repository tracks all order aggregates that are
// added or updated.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepositoryWithConn(uow.conn, uow)
}

// TripRepository provides access to trip persistence operations within the
// unit of work. The returned repository tracks all trip aggregates that are
// added or updated.
func (uow *GormUnitOfWork) TripRepository() ports.TripRepository {
	return triprepo.NewGormTripRepositoryWithConn(uow.conn, uow)
}

// NotificationRepository provides access to notification persistence within
// the unit of work.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepositoryWithConn(uow.conn)
}

// DriverReportRepository provides access to the organization's driver-report
// checklist configuration within the unit of work.
func (uow *GormUnitOfWork) DriverReportRepository() ports.DriverReportRepository {
	return reportrepo.NewGormDriverReportRepositoryWithConn(uow.conn)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call this when aggregates are added or
// updated, enabling post-transaction processing such as domain event
// publishing.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
