package triprepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTripRepository implements TripRepository using GORM.
type GormTripRepository struct {
	conn    func() *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTripRepository creates a repository bound to a fixed connection.
func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return NewGormTripRepositoryWithConn(func() *gorm.DB { return db }, tracker)
}

// NewGormTripRepositoryWithConn creates a repository that resolves its
// connection on every call. The unit of work hands repositories out before a
// transaction may exist; lazy resolution keeps their writes inside the
// transaction once Begin opens it.
func NewGormTripRepositoryWithConn(conn func() *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		conn:    conn,
		tracker: tracker,
	}
}

// Add saves a new trip to the database.
func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.conn().WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("trip", aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing trip to the database.
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.conn().WithContext(ctx).
		Model(&TripDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a trip by ID scoped to an organization.
func (r *GormTripRepository) Get(
	ctx context.Context,
	id kernel.UUID,
	organizationID kernel.UUID,
) (*trip.Trip, error) {
	if err := errors.Join(id.Validate(), organizationID.Validate()); err != nil {
		return nil, err
	}

	var dto TripDTO
	err := r.conn().WithContext(ctx).
		First(&dto, "id = ? AND organization_id = ?", id.Bytes(), organizationID.Bytes()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves all published trips of an order ordered by code.
func (r *GormTripRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*trip.Trip, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TripDTO
	err := r.conn().WithContext(ctx).
		Order("code").
		Find(&dtos, "order_id = ? AND is_published", orderID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetActiveByOrderID retrieves the order's published trips whose cached status
// is not Canceled.
func (r *GormTripRepository) GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) ([]*trip.Trip, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TripDTO
	err := r.conn().WithContext(ctx).
		Order("code").
		Find(&dtos, "order_id = ? AND is_published AND last_status_type <> ?", orderID.Bytes(), int(trip.Canceled)).
		Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// SumActiveWeight returns the total weight already allocated to the order's
// non-cancelled trips.
func (r *GormTripRepository) SumActiveWeight(ctx context.Context, orderID kernel.UUID) (float64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var total float64
	err := r.conn().WithContext(ctx).
		Model(&TripDTO{}).
		Where("order_id = ? AND is_published AND last_status_type <> ?", orderID.Bytes(), int(trip.Canceled)).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// AddStatusRecord appends one immutable entry to the trip's status ledger.
// A violation of the (trip_id, sequence) unique index surfaces as an
// already-exists error.
func (r *GormTripRepository) AddStatusRecord(ctx context.Context, record *trip.StatusRecord) error {
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

// CountStatusRecords returns the number of ledger entries for a trip.
func (r *GormTripRepository) CountStatusRecords(ctx context.Context, tripID kernel.UUID) (int, error) {
	if err := tripID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.conn().WithContext(ctx).
		Model(&StatusRecordDTO{}).
		Where("trip_id = ?", tripID.Bytes()).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetStatusHistory returns the trip's ledger entries ordered by sequence.
func (r *GormTripRepository) GetStatusHistory(
	ctx context.Context,
	tripID kernel.UUID,
) ([]*trip.StatusRecord, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusRecordDTO
	err := r.conn().WithContext(ctx).
		Order("sequence").
		Find(&dtos, "trip_id = ?", tripID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	records := make([]*trip.StatusRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := recordToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}

// ReplaceDriverExpenses deletes the trip's expense line items and inserts the
// given replacements in one go.
func (r *GormTripRepository) ReplaceDriverExpenses(
	ctx context.Context,
	tripID kernel.UUID,
	items []*trip.DriverExpense,
) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	err := r.conn().WithContext(ctx).
		Where("trip_id = ?", tripID.Bytes()).
		Delete(&DriverExpenseDTO{}).
		Error
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	dtos := make([]DriverExpenseDTO, 0, len(items))
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, expenseFromDomain(item))
	}

	return r.conn().WithContext(ctx).Create(&dtos).Error
}

// GetDriverExpenses returns the trip's expense line items.
func (r *GormTripRepository) GetDriverExpenses(
	ctx context.Context,
	tripID kernel.UUID,
) ([]*trip.DriverExpense, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DriverExpenseDTO
	err := r.conn().WithContext(ctx).
		Order("created_at").
		Find(&dtos, "trip_id = ?", tripID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]*trip.DriverExpense, 0, len(dtos))
	for _, dto := range dtos {
		item, convErr := expenseToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		items = append(items, item)
	}

	return items, nil
}

func toDomainSlice(dtos []TripDTO) ([]*trip.Trip, error) {
	trips := make([]*trip.Trip, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}
