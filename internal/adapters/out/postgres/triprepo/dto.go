// Package triprepo provides data transfer objects and mapping functions for
// trip persistence. It covers the trip aggregate, its append-only status
// ledger and its driver-expense line items.
package triprepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO represents the database structure for persisting trip aggregates.
type TripDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	OrganizationID    uuid.UUID `gorm:"type:uuid;index"`
	Code              string    `gorm:"index"`
	Weight            float64
	DriverID          *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID         *uuid.UUID `gorm:"type:uuid"`
	DriverCost        float64
	SubcontractorCost float64
	BridgeToll        float64
	OtherCost         float64
	LastStatusType    int
	IsPublished       bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         uuid.UUID `gorm:"type:uuid"`
	UpdatedBy         uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for trip entities.
func (TripDTO) TableName() string {
	return "trips"
}

// StatusRecordDTO represents one immutable entry of the trip status ledger.
// The unique index on (trip_id, sequence) is what stops concurrent writers
// from producing duplicate sequence numbers for the same trip.
type StatusRecordDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID         uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_trip_status_sequence"`
	OrganizationID uuid.UUID `gorm:"type:uuid"`
	StatusType     int
	DriverReportID *uuid.UUID `gorm:"type:uuid"`
	Sequence       int        `gorm:"uniqueIndex:idx_trip_status_sequence"`
	Notes          string
	BillOfLading   string
	CreatedBy      uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for trip status ledger entries.
func (StatusRecordDTO) TableName() string {
	return "trip_status_records"
}

// DriverExpenseDTO represents one driver-expense line item of a trip.
type DriverExpenseDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	ExpenseID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Amount    float64
	CreatedAt time.Time
}

// TableName specifies the database table name for driver-expense line items.
func (DriverExpenseDTO) TableName() string {
	return "trip_driver_expenses"
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// fromDomain converts a trip domain aggregate to its database representation.
func fromDomain(aggregate *trip.Trip) TripDTO {
	return TripDTO{
		ID:                aggregate.ID().Bytes(),
		OrderID:           aggregate.OrderID().Bytes(),
		OrganizationID:    aggregate.OrganizationID().Bytes(),
		Code:              aggregate.Code(),
		Weight:            aggregate.Weight(),
		DriverID:          optionalBytes(aggregate.DriverID()),
		VehicleID:         optionalBytes(aggregate.VehicleID()),
		DriverCost:        aggregate.DriverCost(),
		SubcontractorCost: aggregate.SubcontractorCost(),
		BridgeToll:        aggregate.BridgeToll(),
		OtherCost:         aggregate.OtherCost(),
		LastStatusType:    int(aggregate.LastStatusType()),
		IsPublished:       aggregate.IsPublished(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		CreatedBy:         aggregate.CreatedBy().Bytes(),
		UpdatedBy:         aggregate.UpdatedBy().Bytes(),
	}
}

// toDomain converts a database DTO to a trip domain aggregate using RestoreTrip.
func toDomain(dto TripDTO) (*trip.Trip, error) {
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
	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := optionalUUID(dto.VehicleID)
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

	return trip.RestoreTrip(
		id,
		orderID,
		organizationID,
		dto.Code,
		dto.Weight,
		driverID,
		vehicleID,
		dto.DriverCost,
		dto.SubcontractorCost,
		dto.BridgeToll,
		dto.OtherCost,
		trip.Status(dto.LastStatusType),
		dto.IsPublished,
		dto.CreatedAt,
		dto.UpdatedAt,
		createdBy,
		updatedBy,
	)
}

// recordFromDomain converts a ledger entry to its database representation.
func recordFromDomain(record *trip.StatusRecord) StatusRecordDTO {
	return StatusRecordDTO{
		ID:             record.ID().Bytes(),
		TripID:         record.TripID().Bytes(),
		OrganizationID: record.OrganizationID().Bytes(),
		StatusType:     int(record.StatusType()),
		DriverReportID: optionalBytes(record.DriverReportID()),
		Sequence:       record.Sequence(),
		Notes:          record.Notes(),
		BillOfLading:   record.BillOfLading(),
		CreatedBy:      record.CreatedBy().Bytes(),
		CreatedAt:      record.CreatedAt(),
	}
}

// recordToDomain converts a database DTO to a ledger entry using
// RestoreStatusRecord.
func recordToDomain(dto StatusRecordDTO) (*trip.StatusRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tripID, err := kernel.UUIDFromBytes(dto.TripID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}
	driverReportID, err := optionalUUID(dto.DriverReportID)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	return trip.RestoreStatusRecord(
		id,
		tripID,
		organizationID,
		trip.Status(dto.StatusType),
		driverReportID,
		dto.Sequence,
		dto.Notes,
		dto.BillOfLading,
		createdBy,
		dto.CreatedAt,
	)
}

// expenseFromDomain converts an expense line item to its database representation.
func expenseFromDomain(item *trip.DriverExpense) DriverExpenseDTO {
	return DriverExpenseDTO{
		ID:        item.ID().Bytes(),
		TripID:    item.TripID().Bytes(),
		ExpenseID: item.ExpenseID().Bytes(),
		Name:      item.Name(),
		Amount:    item.Amount(),
		CreatedAt: item.CreatedAt(),
	}
}

// expenseToDomain converts a database DTO to an expense line item using
// RestoreDriverExpense.
func expenseToDomain(dto DriverExpenseDTO) (*trip.DriverExpense, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tripID, err := kernel.UUIDFromBytes(dto.TripID[:])
	if err != nil {
		return nil, err
	}
	expenseID, err := kernel.UUIDFromBytes(dto.ExpenseID[:])
	if err != nil {
		return nil, err
	}

	return trip.RestoreDriverExpense(id, tripID, expenseID, dto.Name, dto.Amount, dto.CreatedAt)
}
