package order

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
)

// ErrStatusRecordIsNotConstructed is returned when a StatusRecord was not
// created through NewStatusRecord or RestoreStatusRecord.
var ErrStatusRecordIsNotConstructed = errors.New("StatusRecord must be created via NewStatusRecord constructor")

// StatusRecord is one immutable entry in an order's append-only status
// ledger. Entries are never updated or deleted; cancellation, receipt and
// completion each append a new record. The ledger is the authoritative
// status history; the order's LastStatusType is only a cached projection.
type StatusRecord struct {
	id             kernel.UUID
	orderID        kernel.UUID
	organizationID kernel.UUID
	statusType     Status
	createdBy      kernel.UUID
	createdAt      time.Time

	isConstructed bool
}

// NewStatusRecord creates a ledger entry for an order status transition.
func NewStatusRecord(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	statusType Status,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*StatusRecord, error) {
	r := &StatusRecord{
		id:            kernel.NewUUID(),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		orderID.Validate(),
		organizationID.Validate(),
		statusType.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	r.orderID = orderID
	r.organizationID = organizationID
	r.statusType = statusType
	r.createdBy = createdBy

	return r, nil
}

// RestoreStatusRecord reconstructs a ledger entry from persistence.
func RestoreStatusRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	organizationID kernel.UUID,
	statusType Status,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*StatusRecord, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		organizationID.Validate(),
		statusType.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	return &StatusRecord{
		id:             id,
		orderID:        orderID,
		organizationID: organizationID,
		statusType:     statusType,
		createdBy:      createdBy,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the record was built through a factory method.
func (r *StatusRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStatusRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *StatusRecord) ID() kernel.UUID {
	return r.id
}

// OrderID returns the owning order.
func (r *StatusRecord) OrderID() kernel.UUID {
	return r.orderID
}

// OrganizationID returns the owning organization.
func (r *StatusRecord) OrganizationID() kernel.UUID {
	return r.organizationID
}

// StatusType returns the transition kind this entry records.
func (r *StatusRecord) StatusType() Status {
	return r.statusType
}

// CreatedBy returns the user that caused the transition.
func (r *StatusRecord) CreatedBy() kernel.UUID {
	return r.createdBy
}

// CreatedAt returns the transition timestamp.
func (r *StatusRecord) CreatedAt() time.Time {
	return r.createdAt
}
