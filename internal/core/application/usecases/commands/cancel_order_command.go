package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order and every non-cancelled trip under it.
// Cancellation is not a cascade flag: each trip receives its own Canceled
// ledger entry at that trip's next sequence number.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	organizationID kernel.UUID
	lastUpdatedAt  time.Time
	canceledBy     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order and its trips.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	lastUpdatedAt time.Time,
	canceledBy kernel.UUID,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrganizationID(organizationID),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setCanceledBy(canceledBy),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrganizationID returns the organization scope of the operation.
func (c CancelOrderCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c CancelOrderCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// CanceledBy returns the acting user.
func (c CancelOrderCommand) CanceledBy() kernel.UUID {
	return c.canceledBy
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *CancelOrderCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *CancelOrderCommand) setCanceledBy(canceledBy kernel.UUID) error {
	if err := canceledBy.Validate(); err != nil {
		return err
	}

	c.canceledBy = canceledBy
	return nil
}
