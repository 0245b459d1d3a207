package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand soft-deletes an order. The order row is unpublished, not
// removed, so its status ledger stays auditable; a Canceled ledger entry is
// appended when the order is not already in a terminal state.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	organizationID kernel.UUID
	lastUpdatedAt  time.Time
	deletedBy      kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to soft-delete an order.
func NewDeleteOrderCommand(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	lastUpdatedAt time.Time,
	deletedBy kernel.UUID,
) (DeleteOrderCommand, error) {
	cmd := DeleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrganizationID(organizationID),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setDeletedBy(deletedBy),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to delete.
func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrganizationID returns the organization scope of the operation.
func (c DeleteOrderCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c DeleteOrderCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// DeletedBy returns the acting user.
func (c DeleteOrderCommand) DeletedBy() kernel.UUID {
	return c.deletedBy
}

func (c *DeleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeleteOrderCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *DeleteOrderCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *DeleteOrderCommand) setDeletedBy(deletedBy kernel.UUID) error {
	if err := deletedBy.Validate(); err != nil {
		return err
	}

	c.deletedBy = deletedBy
	return nil
}
