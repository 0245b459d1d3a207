// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its append-only status ledger, handling conversion between
// domain entities and database representations.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The cached last status lives on the row; the full history lives in the
// status ledger table.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	Code           string    `gorm:"index"`
	CustomerID     uuid.UUID `gorm:"type:uuid"`
	RouteID        uuid.UUID `gorm:"type:uuid"`
	UnitID         uuid.UUID `gorm:"type:uuid"`
	TotalWeight    float64
	IsDraft        bool
	IsPublished    bool
	LastStatusType int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      uuid.UUID `gorm:"type:uuid"`
	UpdatedBy      uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusRecordDTO represents one immutable entry of the order status ledger.
// Rows are only ever inserted.
type StatusRecordDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	OrganizationID uuid.UUID `gorm:"type:uuid"`
	StatusType     int
	CreatedBy      uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for order status ledger entries.
func (StatusRecordDTO) TableName() string {
	return "order_status_records"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		OrganizationID: aggregate.OrganizationID().Bytes(),
		Code:           aggregate.Code(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		RouteID:        aggregate.RouteID().Bytes(),
		UnitID:         aggregate.UnitID().Bytes(),
		TotalWeight:    aggregate.TotalWeight(),
		IsDraft:        aggregate.IsDraft(),
		IsPublished:    aggregate.IsPublished(),
		LastStatusType: int(aggregate.LastStatusType()),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		CreatedBy:      aggregate.CreatedBy().Bytes(),
		UpdatedBy:      aggregate.UpdatedBy().Bytes(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}
	unitID, err := kernel.UUIDFromBytes(dto.UnitID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		organizationID,
		dto.Code,
		customerID,
		routeID,
		unitID,
		dto.TotalWeight,
		dto.IsDraft,
		dto.IsPublished,
		order.Status(dto.LastStatusType),
		dto.CreatedAt,
		dto.UpdatedAt,
		createdBy,
		updatedBy,
	)
}

// recordFromDomain converts a ledger entry to its database representation.
func recordFromDomain(record *order.StatusRecord) StatusRecordDTO {
	return StatusRecordDTO{
		ID:             record.ID().Bytes(),
		OrderID:        record.OrderID().Bytes(),
		OrganizationID: record.OrganizationID().Bytes(),
		StatusType:     int(record.StatusType()),
		CreatedBy:      record.CreatedBy().Bytes(),
		CreatedAt:      record.CreatedAt(),
	}
}

// recordToDomain converts a database DTO to a ledger entry using
// RestoreStatusRecord.
func recordToDomain(dto StatusRecordDTO) (*order.StatusRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusRecord(
		id,
		orderID,
		organizationID,
		order.Status(dto.StatusType),
		createdBy,
		dto.CreatedAt,
	)
}
