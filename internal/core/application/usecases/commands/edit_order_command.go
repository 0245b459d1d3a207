package commands

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand updates an order's non-status fields. Status fields can
// only change by appending ledger entries, never through edits.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	organizationID kernel.UUID
	code           string
	customerID     kernel.UUID
	routeID        kernel.UUID
	unitID         kernel.UUID
	totalWeight    float64
	isDraft        bool
	lastUpdatedAt  time.Time
	editedBy       kernel.UUID

	guard guard.ConstructorGuard
}

// NewEditOrderCommand creates a command to edit an order's non-status fields.
func NewEditOrderCommand(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	code string,
	customerID kernel.UUID,
	routeID kernel.UUID,
	unitID kernel.UUID,
	totalWeight float64,
	isDraft bool,
	lastUpdatedAt time.Time,
	editedBy kernel.UUID,
) (EditOrderCommand, error) {
	cmd := EditOrderCommand{
		isDraft: isDraft,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrganizationID(organizationID),
		cmd.setCode(code),
		cmd.setCustomerID(customerID),
		cmd.setRouteID(routeID),
		cmd.setUnitID(unitID),
		cmd.setTotalWeight(totalWeight),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setEditedBy(editedBy),
	); err != nil {
		return EditOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

// OrderID returns the order to edit.
func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrganizationID returns the organization scope of the operation.
func (c EditOrderCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// Code returns the new order code.
func (c EditOrderCommand) Code() string {
	return c.code
}

// CustomerID returns the new customer reference.
func (c EditOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RouteID returns the new route reference.
func (c EditOrderCommand) RouteID() kernel.UUID {
	return c.routeID
}

// UnitID returns the new unit-of-measure reference.
func (c EditOrderCommand) UnitID() kernel.UUID {
	return c.unitID
}

// TotalWeight returns the new total cargo weight.
func (c EditOrderCommand) TotalWeight() float64 {
	return c.totalWeight
}

// IsDraft returns the new draft flag.
func (c EditOrderCommand) IsDraft() bool {
	return c.isDraft
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c EditOrderCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// EditedBy returns the acting user.
func (c EditOrderCommand) EditedBy() kernel.UUID {
	return c.editedBy
}

func (c *EditOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *EditOrderCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	c.code = code
	return nil
}

func (c *EditOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *EditOrderCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *EditOrderCommand) setUnitID(unitID kernel.UUID) error {
	if err := unitID.Validate(); err != nil {
		return err
	}

	c.unitID = unitID
	return nil
}

func (c *EditOrderCommand) setTotalWeight(totalWeight float64) error {
	if totalWeight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalWeight is invalid",
			fmt.Errorf("%v is not greater than 0", totalWeight),
		)
	}

	c.totalWeight = totalWeight
	return nil
}

func (c *EditOrderCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *EditOrderCommand) setEditedBy(editedBy kernel.UUID) error {
	if err := editedBy.Validate(); err != nil {
		return err
	}

	c.editedBy = editedBy
	return nil
}
