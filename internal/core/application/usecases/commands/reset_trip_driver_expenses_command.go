package commands

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrResetTripDriverExpensesCommandIsNotConstructed = errors.New(
	"ResetTripDriverExpensesCommand must be created via NewResetTripDriverExpensesCommand constructor",
)

// DriverExpenseInput is one expense line item from the route's standard
// expense schedule, supplied by the caller when resetting a trip's expenses.
type DriverExpenseInput struct {
	ExpenseID kernel.UUID
	Name      string
	Amount    float64
}

// ResetTripDriverExpensesCommand replaces a trip's driver-expense line items
// wholesale and recomputes the denormalized driver cost on the trip.
type ResetTripDriverExpensesCommand struct { //nolint:recvcheck //using for validation
	tripID         kernel.UUID
	organizationID kernel.UUID
	items          []DriverExpenseInput
	lastUpdatedAt  time.Time
	resetBy        kernel.UUID

	guard guard.ConstructorGuard
}

// NewResetTripDriverExpensesCommand creates a command to reset a trip's
// driver expenses. An empty item list clears the expenses and zeroes the
// driver cost.
func NewResetTripDriverExpensesCommand(
	tripID kernel.UUID,
	organizationID kernel.UUID,
	items []DriverExpenseInput,
	lastUpdatedAt time.Time,
	resetBy kernel.UUID,
) (ResetTripDriverExpensesCommand, error) {
	cmd := ResetTripDriverExpensesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setOrganizationID(organizationID),
		cmd.setItems(items),
		cmd.setLastUpdatedAt(lastUpdatedAt),
		cmd.setResetBy(resetBy),
	); err != nil {
		return ResetTripDriverExpensesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetTripDriverExpensesCommand) Validate() error {
	return c.guard.Validate(ErrResetTripDriverExpensesCommandIsNotConstructed)
}

// TripID returns the trip whose expenses are reset.
func (c ResetTripDriverExpensesCommand) TripID() kernel.UUID {
	return c.tripID
}

// OrganizationID returns the organization scope of the operation.
func (c ResetTripDriverExpensesCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// Items returns the replacement expense line items.
func (c ResetTripDriverExpensesCommand) Items() []DriverExpenseInput {
	return c.items
}

// LastUpdatedAt returns the client's last seen modification timestamp.
func (c ResetTripDriverExpensesCommand) LastUpdatedAt() time.Time {
	return c.lastUpdatedAt
}

// ResetBy returns the acting user.
func (c ResetTripDriverExpensesCommand) ResetBy() kernel.UUID {
	return c.resetBy
}

func (c *ResetTripDriverExpensesCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *ResetTripDriverExpensesCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *ResetTripDriverExpensesCommand) setItems(items []DriverExpenseInput) error {
	for i, item := range items {
		if err := item.ExpenseID.Validate(); err != nil {
			return err
		}
		if item.Name == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].name", i))
		}
		if item.Amount < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"amount is invalid",
				fmt.Errorf("%v is negative", item.Amount),
			)
		}
	}

	c.items = items
	return nil
}

func (c *ResetTripDriverExpensesCommand) setLastUpdatedAt(lastUpdatedAt time.Time) error {
	if lastUpdatedAt.IsZero() {
		return errs.NewValueIsRequiredError("lastUpdatedAt")
	}

	c.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (c *ResetTripDriverExpensesCommand) setResetBy(resetBy kernel.UUID) error {
	if err := resetBy.Validate(); err != nil {
		return err
	}

	c.resetBy = resetBy
	return nil
}
