package trip

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrDriverExpenseIsNotConstructed is returned when a DriverExpense was not
// created through NewDriverExpense or RestoreDriverExpense.
var ErrDriverExpenseIsNotConstructed = errors.New("DriverExpense must be created via NewDriverExpense constructor")

// DriverExpense is one line item of a trip's driver cost, drawn from the
// route's standard expense schedule. The trip's aggregate driver cost is the
// sum of its line items and is denormalized onto the trip for fast reads.
type DriverExpense struct {
	id        kernel.UUID
	tripID    kernel.UUID
	expenseID kernel.UUID
	name      string
	amount    float64
	createdAt time.Time

	isConstructed bool
}

// NewDriverExpense creates an expense line item for a trip.
func NewDriverExpense(
	tripID kernel.UUID,
	expenseID kernel.UUID,
	name string,
	amount float64,
	createdAt time.Time,
) (*DriverExpense, error) {
	if err := errors.Join(
		tripID.Validate(),
		expenseID.Validate(),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if amount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%v is negative", amount),
		)
	}

	return &DriverExpense{
		id:            kernel.NewUUID(),
		tripID:        tripID,
		expenseID:     expenseID,
		name:          name,
		amount:        amount,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreDriverExpense reconstructs an expense line item from persistence.
func RestoreDriverExpense(
	id kernel.UUID,
	tripID kernel.UUID,
	expenseID kernel.UUID,
	name string,
	amount float64,
	createdAt time.Time,
) (*DriverExpense, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	e, err := NewDriverExpense(tripID, expenseID, name, amount, createdAt)
	if err != nil {
		return nil, err
	}
	e.id = id
	e.createdAt = createdAt

	return e, nil
}

// Validate ensures the line item was built through a factory method.
func (e *DriverExpense) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrDriverExpenseIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (e *DriverExpense) ID() kernel.UUID {
	return e.id
}

// TripID returns the owning trip.
func (e *DriverExpense) TripID() kernel.UUID {
	return e.tripID
}

// ExpenseID returns the route schedule entry this line item came from.
func (e *DriverExpense) ExpenseID() kernel.UUID {
	return e.expenseID
}

// Name returns the expense label.
func (e *DriverExpense) Name() string {
	return e.name
}

// Amount returns the expense amount.
func (e *DriverExpense) Amount() float64 {
	return e.amount
}

// CreatedAt returns the creation timestamp.
func (e *DriverExpense) CreatedAt() time.Time {
	return e.createdAt
}

// SumDriverExpenses totals the amounts of the given line items. Used to
// refresh the denormalized driver cost on a trip.
func SumDriverExpenses(items []*DriverExpense) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount()
	}
	return total
}
