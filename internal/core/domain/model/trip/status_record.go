package trip

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrStatusRecordIsNotConstructed is returned when a StatusRecord was not
// created through NewStatusRecord or RestoreStatusRecord.
var ErrStatusRecordIsNotConstructed = errors.New("StatusRecord must be created via NewStatusRecord constructor")

// StatusRecord is one immutable entry in a trip's append-only status ledger.
//
// Each entry carries an explicit 1-based sequence number unique per trip.
// Ordering is by sequence number, not by timestamp, because two entries can
// be written within the same millisecond. The sequence is assigned as
// count(existing entries)+1 inside the same transaction that performs the
// insert, and a unique database constraint on (trip_id, sequence) serializes
// concurrent writers for the same trip.
//
// The optional driver report reference names the per-organization checklist
// step this transition corresponds to.
type StatusRecord struct {
	id             kernel.UUID
	tripID         kernel.UUID
	organizationID kernel.UUID
	statusType     Status
	driverReportID *kernel.UUID
	sequence       int
	notes          string
	billOfLading   string
	createdBy      kernel.UUID
	createdAt      time.Time

	isConstructed bool
}

// NewStatusRecord creates a ledger entry for a trip status transition.
func NewStatusRecord(
	tripID kernel.UUID,
	organizationID kernel.UUID,
	statusType Status,
	driverReportID *kernel.UUID,
	sequence int,
	notes string,
	billOfLading string,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*StatusRecord, error) {
	if err := errors.Join(
		tripID.Validate(),
		organizationID.Validate(),
		statusType.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if sequence < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"sequence is invalid",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}
	if driverReportID != nil {
		if err := driverReportID.Validate(); err != nil {
			return nil, err
		}
	}

	return &StatusRecord{
		id:             kernel.NewUUID(),
		tripID:         tripID,
		organizationID: organizationID,
		statusType:     statusType,
		driverReportID: driverReportID,
		sequence:       sequence,
		notes:          notes,
		billOfLading:   billOfLading,
		createdBy:      createdBy,
		createdAt:      createdAt.UTC(),
		isConstructed:  true,
	}, nil
}

// RestoreStatusRecord reconstructs a ledger entry from persistence.
func RestoreStatusRecord(
	id kernel.UUID,
	tripID kernel.UUID,
	organizationID kernel.UUID,
	statusType Status,
	driverReportID *kernel.UUID,
	sequence int,
	notes string,
	billOfLading string,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*StatusRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	rec, err := NewStatusRecord(
		tripID, organizationID, statusType, driverReportID,
		sequence, notes, billOfLading, createdBy, createdAt,
	)
	if err != nil {
		return nil, err
	}
	rec.id = id
	rec.createdAt = createdAt

	return rec, nil
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

// TripID returns the owning trip.
func (r *StatusRecord) TripID() kernel.UUID {
	return r.tripID
}

// OrganizationID returns the owning organization.
func (r *StatusRecord) OrganizationID() kernel.UUID {
	return r.organizationID
}

// StatusType returns the transition kind this entry records.
func (r *StatusRecord) StatusType() Status {
	return r.statusType
}

// DriverReportID returns the checklist step reference, or nil.
func (r *StatusRecord) DriverReportID() *kernel.UUID {
	return r.driverReportID
}

// Sequence returns the entry's 1-based position in the trip's ledger.
func (r *StatusRecord) Sequence() int {
	return r.sequence
}

// Notes returns the free-form notes attached to the transition.
func (r *StatusRecord) Notes() string {
	return r.notes
}

// BillOfLading returns the bill-of-lading reference attached to the transition.
func (r *StatusRecord) BillOfLading() string {
	return r.billOfLading
}

// CreatedBy returns the user that caused the transition.
func (r *StatusRecord) CreatedBy() kernel.UUID {
	return r.createdBy
}

// CreatedAt returns the transition timestamp.
func (r *StatusRecord) CreatedAt() time.Time {
	return r.createdAt
}
