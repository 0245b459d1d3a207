package commands

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrEditTripCommandIsNotConstructed = errors.New(
	"EditTripCommand must be created via NewEditTripCommand constructor",
)

// EditTripCommand updates a trip's assignment and cost fields. Weight and
// status are not editable: weight is fixed at allocation time and status only
// moves through the ledger.
type EditTripCommand struct { //nolint:recvcheck //using for validation
	tripID            kernel.UUID
	organizationID    kernel.UUID
	driverID          *kernel.UUID
	vehicleID         *kernel.UUID
	subcontractorCost float64
	bridgeToll        float64
	otherCost         float64
	lastUpdatedAt     time.Time
	editedBy          kernel.UUID

	guard guard.ConstructorGuard
}

// NewEditTripCommand creates a command to edit a trip's assignment and costs.
func NewEditTripCommand(
	tripID kernel.UUID,
	organizationID kernel.UUID,
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	subcontractorCost float64,
	bridgeToll float64,
	otherCost float64,
	lastUpdatedAt time.Time,
	editedBy kernel.UUID,
) (EditTripCommand, error) {
	cmd := EditTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setOrganizationID(organizationID),
		cmd.setDriverID(driverID),
		cmd.setVehicleID(vehicleID),
		cmd.setCosts(subcontractorCost, bridgeToll, otherCost),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setEditedBy(editedBy),
	); err != nil {
		return EditTripCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditTripCommand) Validate() error {
	return c.guard.Validate(ErrEditTripCommandIsNotConstructed)
}

// TripID returns the trip to edit.
func (c EditTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// OrganizationID returns the organization scope of the operation.
func (c EditTripCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// DriverID returns the new driver assignment, or nil to unassign.
func (c EditTripCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// VehicleID returns the new vehicle assignment, or nil to unassign.
func (c EditTripCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

// SubcontractorCost returns the new subcontractor cost.
func (c EditTripCommand) SubcontractorCost() float64 {
	return c.subcontractorCost
}

// BridgeToll returns the new bridge toll cost.
func (c EditTripCommand) BridgeToll() float64 {
	return c.bridgeToll
}

// OtherCost returns the new miscellaneous cost.
func (c EditTripCommand) OtherCost() float64 {
	return c.otherCost
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c EditTripCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// EditedBy returns the acting user.
func (c EditTripCommand) EditedBy() kernel.UUID {
	return c.editedBy
}

func (c *EditTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *EditTripCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *EditTripCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}

	c.driverID = driverID
	return nil
}

func (c *EditTripCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *EditTripCommand) setCosts(subcontractorCost, bridgeToll, otherCost float64) error {
	if subcontractorCost < 0 || bridgeToll < 0 || otherCost < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"costs are invalid",
			fmt.Errorf("cost fields must not be negative"),
		)
	}

	c.subcontractorCost = subcontractorCost
	c.bridgeToll = bridgeToll
	c.otherCost = otherCost
	return nil
}

func (c *EditTripCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *EditTripCommand) setEditedBy(editedBy kernel.UUID) error {
	if err := editedBy.Validate(); err != nil {
		return err
	}

	c.editedBy = editedBy
	return nil
}
