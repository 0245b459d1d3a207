package commands

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateTripsCommandIsNotConstructed = errors.New(
	"CreateTripsCommand must be created via NewCreateTripsCommand constructor",
)

// CreateTripsCommand splits an order's remaining cargo weight across the
// requested number of new trips. An explicit request for N trips always
// yields N trips, zero-weight ones included.
type CreateTripsCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	organizationID     kernel.UUID
	requestedTripCount int
	weightPerTrip      float64
	lastUpdatedAt      time.Time
	createdBy          kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateTripsCommand creates a command to allocate trips for an order.
func NewCreateTripsCommand(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	requestedTripCount int,
	weightPerTrip float64,
	lastUpdatedAt time.Time,
	createdBy kernel.UUID,
) (CreateTripsCommand, error) {
	cmd := CreateTripsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrganizationID(organizationID),
		cmd.setRequestedTripCount(requestedTripCount),
		cmd.setWeightPerTrip(weightPerTrip),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreateTripsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTripsCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripsCommandIsNotConstructed)
}

// OrderID returns the order whose weight is being split.
func (c CreateTripsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrganizationID returns the organization scope of the operation.
func (c CreateTripsCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// RequestedTripCount returns the number of trips to create.
func (c CreateTripsCommand) RequestedTripCount() int {
	return c.requestedTripCount
}

// WeightPerTrip returns the target weight for each new trip.
func (c CreateTripsCommand) WeightPerTrip() float64 {
	return c.weightPerTrip
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c CreateTripsCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// CreatedBy returns the acting user.
func (c CreateTripsCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateTripsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateTripsCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *CreateTripsCommand) setRequestedTripCount(requestedTripCount int) error {
	if requestedTripCount < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"requestedTripCount is invalid",
			fmt.Errorf("%d is not greater than 0", requestedTripCount),
		)
	}

	c.requestedTripCount = requestedTripCount
	return nil
}

func (c *CreateTripsCommand) setWeightPerTrip(weightPerTrip float64) error {
	if weightPerTrip <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightPerTrip is invalid",
			fmt.Errorf("%v is not greater than 0", weightPerTrip),
		)
	}

	c.weightPerTrip = weightPerTrip
	return nil
}

func (c *CreateTripsCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *CreateTripsCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}

	c.createdBy = createdBy
	return nil
}
