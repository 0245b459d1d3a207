package order

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a shipment request and is the aggregate root of the order
// lifecycle. An order owns its status ledger and the trips split out of its
// cargo weight.
//
// Invariants:
//   - Identifier, organization, customer, route and unit references are valid UUIDs
//   - Total weight is strictly positive
//   - LastStatusType always mirrors the type of the most recent ledger entry;
//     it is a cache, never the source of truth
//   - Orders are never physically deleted; deletion is modeled as unpublishing
//     plus a Canceled ledger entry
type Order struct {
	id             kernel.UUID
	organizationID kernel.UUID
	code           string
	isDraft        bool
	lastStatusType Status
	customerID     kernel.UUID
	routeID        kernel.UUID
	unitID         kernel.UUID
	totalWeight    float64
	isPublished    bool
	createdAt      time.Time
	updatedAt      time.Time
	createdBy      kernel.UUID
	updatedBy      kernel.UUID

	isConstructed bool
}

// NewOrder creates a new Order with validation. Newly created orders are
// published, carry the New status and identical created/updated audit fields.
func NewOrder(
	id kernel.UUID,
	organizationID kernel.UUID,
	code string,
	customerID kernel.UUID,
	routeID kernel.UUID,
	unitID kernel.UUID,
	totalWeight float64,
	isDraft bool,
	createdBy kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		lastStatusType: New,
		isDraft:        isDraft,
		isPublished:    true,
		createdAt:      now.UTC(),
		updatedAt:      now.UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganizationID(organizationID),
		o.setCode(code),
		o.setCustomerID(customerID),
		o.setRouteID(routeID),
		o.setUnitID(unitID),
		o.setTotalWeight(totalWeight),
		o.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}
	o.updatedBy = createdBy

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without reapplying
// creation defaults. The stored lastStatusType must be a valid status.
func RestoreOrder(
	id kernel.UUID,
	organizationID kernel.UUID,
	code string,
	customerID kernel.UUID,
	routeID kernel.UUID,
	unitID kernel.UUID,
	totalWeight float64,
	isDraft bool,
	isPublished bool,
	lastStatusType Status,
	createdAt time.Time,
	updatedAt time.Time,
	createdBy kernel.UUID,
	updatedBy kernel.UUID,
) (*Order, error) {
	o := &Order{
		isDraft:       isDraft,
		isPublished:   isPublished,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrganizationID(organizationID),
		o.setCode(code),
		o.setCustomerID(customerID),
		o.setRouteID(routeID),
		o.setUnitID(unitID),
		o.setTotalWeight(totalWeight),
		o.setCreatedBy(createdBy),
		lastStatusType.Validate(),
		updatedBy.Validate(),
	); err != nil {
		return nil, err
	}
	o.lastStatusType = lastStatusType
	o.updatedBy = updatedBy

	return o, nil
}

// Validate ensures the Order was built through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrganizationID returns the owning organization.
func (o *Order) OrganizationID() kernel.UUID {
	return o.organizationID
}

// Code returns the order's human-facing code.
func (o *Order) Code() string {
	return o.code
}

// IsDraft reports whether the order is still a draft.
func (o *Order) IsDraft() bool {
	return o.isDraft
}

// LastStatusType returns the cached status of the most recent ledger entry.
func (o *Order) LastStatusType() Status {
	return o.lastStatusType
}

// CustomerID returns the customer reference.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RouteID returns the route reference.
func (o *Order) RouteID() kernel.UUID {
	return o.routeID
}

// UnitID returns the unit-of-measure reference.
func (o *Order) UnitID() kernel.UUID {
	return o.unitID
}

// TotalWeight returns the order's total cargo weight.
func (o *Order) TotalWeight() float64 {
	return o.totalWeight
}

// IsPublished reports whether the order is visible (not soft-deleted).
func (o *Order) IsPublished() bool {
	return o.isPublished
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the modification timestamp used as the optimistic
// concurrency token.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CreatedBy returns the creating user reference.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// UpdatedBy returns the last modifying user reference.
func (o *Order) UpdatedBy() kernel.UUID {
	return o.updatedBy
}

// Receive moves the order to Received. The caller must append the matching
// ledger entry in the same transaction that persists this cache update.
func (o *Order) Receive(by kernel.UUID, at time.Time) error {
	newStatus, err := o.lastStatusType.Receive()
	if err != nil {
		return err
	}
	return o.applyStatus(newStatus, by, at)
}

// Start moves the order to InProgress.
func (o *Order) Start(by kernel.UUID, at time.Time) error {
	newStatus, err := o.lastStatusType.Start()
	if err != nil {
		return err
	}
	return o.applyStatus(newStatus, by, at)
}

// Complete moves the order to Completed.
func (o *Order) Complete(by kernel.UUID, at time.Time) error {
	newStatus, err := o.lastStatusType.Complete()
	if err != nil {
		return err
	}
	return o.applyStatus(newStatus, by, at)
}

// Cancel moves the order to Canceled. Allowed from any non-terminal state.
func (o *Order) Cancel(by kernel.UUID, at time.Time) error {
	newStatus, err := o.lastStatusType.Cancel()
	if err != nil {
		return err
	}
	return o.applyStatus(newStatus, by, at)
}

// Unpublish soft-deletes the order. The order row stays in place so its
// status ledger remains auditable.
func (o *Order) Unpublish(by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	o.isPublished = false
	o.touch(by, at)
	return nil
}

// Edit updates the non-status fields of the order. Status fields can only be
// changed by appending ledger entries.
func (o *Order) Edit(
	code string,
	customerID kernel.UUID,
	routeID kernel.UUID,
	unitID kernel.UUID,
	totalWeight float64,
	isDraft bool,
	by kernel.UUID,
	at time.Time,
) error {
	if err := errors.Join(
		o.setCode(code),
		o.setCustomerID(customerID),
		o.setRouteID(routeID),
		o.setUnitID(unitID),
		o.setTotalWeight(totalWeight),
		by.Validate(),
	); err != nil {
		return err
	}
	o.isDraft = isDraft
	o.touch(by, at)
	return nil
}

func (o *Order) applyStatus(newStatus Status, by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	o.lastStatusType = newStatus
	o.touch(by, at)
	return nil
}

func (o *Order) touch(by kernel.UUID, at time.Time) {
	o.updatedAt = at.UTC()
	o.updatedBy = by
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrganizationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.organizationID = id
	return nil
}

func (o *Order) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	o.code = code
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setRouteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.routeID = id
	return nil
}

func (o *Order) setUnitID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.unitID = id
	return nil
}

func (o *Order) setTotalWeight(totalWeight float64) error {
	if totalWeight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalWeight is invalid",
			fmt.Errorf("%v is not greater than 0", totalWeight),
		)
	}
	o.totalWeight = totalWeight
	return nil
}

func (o *Order) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.createdBy = id
	return nil
}
