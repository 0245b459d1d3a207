package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrChangeTripStatusCommandIsNotConstructed = errors.New(
	"ChangeTripStatusCommand must be created via NewChangeTripStatusCommand constructor",
)

// ChangeTripStatusCommand appends one entry to a trip's status ledger and
// refreshes the trip's cached status. Optional notes and a bill-of-lading
// reference travel with the ledger entry, not with the trip row.
type ChangeTripStatusCommand struct { //nolint:recvcheck //using for validation
	tripID         kernel.UUID
	organizationID kernel.UUID
	statusType     trip.Status
	notes          string
	billOfLading   string
	lastUpdatedAt  time.Time
	changedBy      kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeTripStatusCommand creates a command to move a trip's state machine.
func NewChangeTripStatusCommand(
	tripID kernel.UUID,
	organizationID kernel.UUID,
	statusType trip.Status,
	notes string,
	billOfLading string,
	lastUpdatedAt time.Time,
	changedBy kernel.UUID,
) (ChangeTripStatusCommand, error) {
	cmd := ChangeTripStatusCommand{
		notes:        notes,
		billOfLading: billOfLading,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setOrganizationID(organizationID),
		cmd.setStatusType(statusType),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setChangedBy(changedBy),
	); err != nil {
		return ChangeTripStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeTripStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeTripStatusCommandIsNotConstructed)
}

// TripID returns the trip whose status changes.
func (c ChangeTripStatusCommand) TripID() kernel.UUID {
	return c.tripID
}

// OrganizationID returns the organization scope of the operation.
func (c ChangeTripStatusCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// StatusType returns the target status.
func (c ChangeTripStatusCommand) StatusType() trip.Status {
	return c.statusType
}

// Notes returns the free-form notes for the ledger entry.
func (c ChangeTripStatusCommand) Notes() string {
	return c.notes
}

// BillOfLading returns the bill-of-lading reference for the ledger entry.
func (c ChangeTripStatusCommand) BillOfLading() string {
	return c.billOfLading
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c ChangeTripStatusCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// ChangedBy returns the acting user.
func (c ChangeTripStatusCommand) ChangedBy() kernel.UUID {
	return c.changedBy
}

func (c *ChangeTripStatusCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *ChangeTripStatusCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *ChangeTripStatusCommand) setStatusType(statusType trip.Status) error {
	if err := statusType.Validate(); err != nil {
		return err
	}

	c.statusType = statusType
	return nil
}

func (c *ChangeTripStatusCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *ChangeTripStatusCommand) setChangedBy(changedBy kernel.UUID) error {
	if err := changedBy.Validate(); err != nil {
		return err
	}

	c.changedBy = changedBy
	return nil
}
