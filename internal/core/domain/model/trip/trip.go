package trip

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip instance was not created
	// through the NewTrip or RestoreTrip factory methods.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip constructor")
)

// Trip represents one vehicle run fulfilling part of an order's cargo weight.
// A trip owns its status ledger and its driver-expense line items.
//
// Invariants:
//   - Weight is never negative; a zero-weight trip is legal (the allocator
//     creates one when the requested trip count exceeds the remaining weight)
//   - LastStatusType mirrors the latest ledger entry for the trip
//   - DriverCost is the denormalized sum of the trip's expense line items
type Trip struct {
	id                kernel.UUID
	orderID           kernel.UUID
	organizationID    kernel.UUID
	code              string
	weight            float64
	driverID          *kernel.UUID
	vehicleID         *kernel.UUID
	driverCost        float64
	subcontractorCost float64
	bridgeToll        float64
	otherCost         float64
	lastStatusType    Status
	isPublished       bool
	createdAt         time.Time
	updatedAt         time.Time
	createdBy         kernel.UUID
	updatedBy         kernel.UUID

	isConstructed bool
}

// NewTrip creates a trip in the New status with the allocated weight.
func NewTrip(
	id kernel.UUID,
	orderID kernel.UUID,
	organizationID kernel.UUID,
	code string,
	weight float64,
	createdBy kernel.UUID,
	now time.Time,
) (*Trip, error) {
	t := &Trip{
		lastStatusType: New,
		isPublished:    true,
		createdAt:      now.UTC(),
		updatedAt:      now.UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setOrganizationID(organizationID),
		t.setCode(code),
		t.setWeight(weight),
		t.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}
	t.updatedBy = createdBy

	return t, nil
}

// RestoreTrip reconstructs a Trip from persistence.
func RestoreTrip(
	id kernel.UUID,
	orderID kernel.UUID,
	organizationID kernel.UUID,
	code string,
	weight float64,
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	driverCost float64,
	subcontractorCost float64,
	bridgeToll float64,
	otherCost float64,
	lastStatusType Status,
	isPublished bool,
	createdAt time.Time,
	updatedAt time.Time,
	createdBy kernel.UUID,
	updatedBy kernel.UUID,
) (*Trip, error) {
	t := &Trip{
		driverCost:        driverCost,
		subcontractorCost: subcontractorCost,
		bridgeToll:        bridgeToll,
		otherCost:         otherCost,
		isPublished:       isPublished,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setOrganizationID(organizationID),
		t.setCode(code),
		t.setWeight(weight),
		t.setCreatedBy(createdBy),
		lastStatusType.Validate(),
		updatedBy.Validate(),
	); err != nil {
		return nil, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		t.driverID = driverID
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return nil, err
		}
		t.vehicleID = vehicleID
	}
	t.lastStatusType = lastStatusType
	t.updatedBy = updatedBy

	return t, nil
}

// Validate ensures the Trip was built through a factory method.
func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

// IsEqual compares two trips by their unique identifiers.
func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the trip's unique identifier.
func (t *Trip) ID() kernel.UUID {
	return t.id
}

// OrderID returns the owning order.
func (t *Trip) OrderID() kernel.UUID {
	return t.orderID
}

// OrganizationID returns the owning organization.
func (t *Trip) OrganizationID() kernel.UUID {
	return t.organizationID
}

// Code returns the trip's human-facing code.
func (t *Trip) Code() string {
	return t.code
}

// Weight returns the cargo weight carried by this trip.
func (t *Trip) Weight() float64 {
	return t.weight
}

// DriverID returns the assigned driver, or nil when unassigned.
func (t *Trip) DriverID() *kernel.UUID {
	return t.driverID
}

// VehicleID returns the assigned vehicle, or nil when unassigned.
func (t *Trip) VehicleID() *kernel.UUID {
	return t.vehicleID
}

// DriverCost returns the denormalized sum of driver-expense line items.
func (t *Trip) DriverCost() float64 {
	return t.driverCost
}

// SubcontractorCost returns the subcontractor cost field.
func (t *Trip) SubcontractorCost() float64 {
	return t.subcontractorCost
}

// BridgeToll returns the bridge toll cost field.
func (t *Trip) BridgeToll() float64 {
	return t.bridgeToll
}

// OtherCost returns the miscellaneous cost field.
func (t *Trip) OtherCost() float64 {
	return t.otherCost
}

// LastStatusType returns the cached status of the most recent ledger entry.
func (t *Trip) LastStatusType() Status {
	return t.lastStatusType
}

// IsPublished reports whether the trip is visible (not soft-deleted).
func (t *Trip) IsPublished() bool {
	return t.isPublished
}

// CreatedAt returns the creation timestamp.
func (t *Trip) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns the modification timestamp used as the optimistic
// concurrency token.
func (t *Trip) UpdatedAt() time.Time {
	return t.updatedAt
}

// CreatedBy returns the creating user reference.
func (t *Trip) CreatedBy() kernel.UUID {
	return t.createdBy
}

// UpdatedBy returns the last modifying user reference.
func (t *Trip) UpdatedBy() kernel.UUID {
	return t.updatedBy
}

// ChangeStatus moves the trip to next after validating the transition and
// refreshes the cached status. The caller must append the matching ledger
// entry in the same transaction.
func (t *Trip) ChangeStatus(next Status, by kernel.UUID, at time.Time) error {
	if err := t.lastStatusType.CanTransitionTo(next); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	t.lastStatusType = next
	t.touch(by, at)
	return nil
}

// Cancel moves the trip to Canceled. Allowed from any state before Completed.
func (t *Trip) Cancel(by kernel.UUID, at time.Time) error {
	return t.ChangeStatus(Canceled, by, at)
}

// IsCanceled reports whether the trip's cached status is Canceled.
func (t *Trip) IsCanceled() bool {
	return t.lastStatusType == Canceled
}

// Edit updates the trip's assignment and cost fields. Weight and status are
// not editable here; weight is fixed at allocation time and status only moves
// through the ledger.
func (t *Trip) Edit(
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	subcontractorCost float64,
	bridgeToll float64,
	otherCost float64,
	by kernel.UUID,
	at time.Time,
) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}
	if subcontractorCost < 0 || bridgeToll < 0 || otherCost < 0 {
		return errs.NewValueIsInvalidError("costs must not be negative")
	}

	t.driverID = driverID
	t.vehicleID = vehicleID
	t.subcontractorCost = subcontractorCost
	t.bridgeToll = bridgeToll
	t.otherCost = otherCost
	t.touch(by, at)
	return nil
}

// SetDriverCost refreshes the denormalized driver cost after the trip's
// expense line items changed.
func (t *Trip) SetDriverCost(total float64, by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if total < 0 {
		return errs.NewValueIsInvalidError("driverCost must not be negative")
	}
	t.driverCost = total
	t.touch(by, at)
	return nil
}

// Unpublish soft-deletes the trip.
func (t *Trip) Unpublish(by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	t.isPublished = false
	t.touch(by, at)
	return nil
}

func (t *Trip) touch(by kernel.UUID, at time.Time) {
	t.updatedAt = at.UTC()
	t.updatedBy = by
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Trip) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *Trip) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.organizationID = id
	return nil
}

func (t *Trip) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	t.code = code
	return nil
}

func (t *Trip) setWeight(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid",
			fmt.Errorf("%v is negative", weight),
		)
	}
	t.weight = weight
	return nil
}

func (t *Trip) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.createdBy = id
	return nil
}
