package orderrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	conn    func() *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a repository bound to a fixed connection.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return NewGormOrderRepositoryWithConn(func() *gorm.DB { return db }, tracker)
}

// NewGormOrderRepositoryWithConn creates a repository that resolves its
// connection on every call. The unit of work hands repositories out before a
// transaction may exist; lazy resolution keeps their writes inside the
// transaction once Begin opens it.
func NewGormOrderRepositoryWithConn(conn func() *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		conn:    conn,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.conn().WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order", aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Ledger entries are not
// touched; only the row fields are.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.conn().WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID scoped to an organization.
func (r *GormOrderRepository) Get(
	ctx context.Context,
	id kernel.UUID,
	organizationID kernel.UUID,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), organizationID.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.conn().WithContext(ctx).
		First(&dto, "id = ? AND organization_id = ?", id.Bytes(), organizationID.Bytes()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddStatusRecord appends one immutable entry to the order's status ledger.
func (r *GormOrderRepository) AddStatusRecord(ctx context.Context, record *order.StatusRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(record)
	if err := r.conn().WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("statusRecord", record.ID().String(), err)
		}
		return err
	}

	return nil
}

// GetStatusHistory returns the order's ledger entries ordered by creation time.
func (r *GormOrderRepository) GetStatusHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*order.StatusRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusRecordDTO
	err := r.conn().WithContext(ctx).
		Order("created_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	records := make([]*order.StatusRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := recordToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}
