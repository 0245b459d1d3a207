package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrReceiveOrderCommandIsNotConstructed = errors.New(
	"ReceiveOrderCommand must be created via NewReceiveOrderCommand constructor",
)

// ReceiveOrderCommand moves an order from New to Received, appending the
// matching ledger entry. Carries the client's last seen modification
// timestamp for the exclusivity pre-check.
type ReceiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	organizationID kernel.UUID
	lastUpdatedAt  time.Time
	receivedBy     kernel.UUID

	guard guard.ConstructorGuard
}

// NewReceiveOrderCommand creates a command to mark an order as received.
func NewReceiveOrderCommand(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	lastUpdatedAt time.Time,
	receivedBy kernel.UUID,
) (ReceiveOrderCommand, error) {
	cmd := ReceiveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrganizationID(organizationID),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setReceivedBy(receivedBy),
	); err != nil {
		return ReceiveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrReceiveOrderCommandIsNotConstructed)
}

// OrderID returns the order to receive.
func (c ReceiveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrganizationID returns the organization scope of the operation.
func (c ReceiveOrderCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c ReceiveOrderCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// ReceivedBy returns the acting user.
func (c ReceiveOrderCommand) ReceivedBy() kernel.UUID {
	return c.receivedBy
}

func (c *ReceiveOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReceiveOrderCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *ReceiveOrderCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *ReceiveOrderCommand) setReceivedBy(receivedBy kernel.UUID) error {
	if err := receivedBy.Validate(); err != nil {
		return err
	}

	c.receivedBy = receivedBy
	return nil
}
